package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item that orders reference.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
