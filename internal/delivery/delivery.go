// Package delivery defines the process-facing entry points (HTTP servers) started by the fx app.
package delivery

import "context"

// Delivery is a long-running server started from the application's run loop.
type Delivery interface {
	Serve(ctx context.Context) error
}
