// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPrincipalNotFound is returned when no principal matches the lookup.
var ErrPrincipalNotFound = errors.New("principal not found")

// PrincipalRepository is the credential store. It is the only owner of password digests.
type PrincipalRepository interface {
	// FindByDisplayName retrieves the principal registered under name.
	FindByDisplayName(ctx context.Context, name string) (*entity.Principal, error)

	// FindByID retrieves a principal by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error)

	// Insert persists a new principal and returns the store-assigned identifier.
	// The write either fully succeeds or leaves no principal behind.
	Insert(ctx context.Context, principal *entity.Principal) (uuid.UUID, error)
}
