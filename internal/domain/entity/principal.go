// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Principal is a registered identity capable of authenticating.
// ID is assigned by the credential store on insert and never changes afterwards.
type Principal struct {
	ID           uuid.UUID // Store-assigned identifier, immutable once set.
	DisplayName  string    // The registration username, unique across principals.
	PasswordHash string    // bcrypt digest with embedded salt and cost. Never leaves the store/usecase boundary.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
