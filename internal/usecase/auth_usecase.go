// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new principal.
type RegisterInput struct {
	DisplayName string
	Password    string
}

// LoginInput defines the data required for a principal to log in.
type LoginInput struct {
	DisplayName string
	Password    string
}

// --- Output DTOs ---

// RegisterOutput carries only the new principal's identifier. No credential material is echoed.
type RegisterOutput struct {
	PrincipalID uuid.UUID
}

// LoginOutput returns the signed bearer token after a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
}

// PrincipalOutput is the public view of a principal.
type PrincipalOutput struct {
	ID          uuid.UUID
	DisplayName string
	CreatedAt   time.Time
}

// AuthUsecase defines the credential lifecycle operations.
type AuthUsecase interface {
	// Register hashes the password and persists a new principal.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and issues a token bound to the principal.
	// Unknown names and wrong passwords produce the same ErrInvalidCredentials.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetPrincipal resolves a verified principal identifier to its public view.
	GetPrincipal(ctx context.Context, principalID uuid.UUID) (*PrincipalOutput, error)
}
