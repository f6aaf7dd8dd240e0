// Package lifecycle holds process lifecycle constants shared by infrastructure.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown.
const DefaultTimeout = 10 * time.Second
