package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order aggregates product references on behalf of a single principal.
type Order struct {
	ID          uuid.UUID
	PrincipalID uuid.UUID   // Owner; always the verified principal of the creating request.
	ProductIDs  []uuid.UUID // Referenced products in submission order, duplicates allowed.
	Products    []*Product  // Populated on reads, aligned with ProductIDs.
	CreatedAt   time.Time
}
