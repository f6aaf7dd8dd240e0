package service

import (
	"time"

	"github.com/google/uuid"
)

// IssuedToken is a signed bearer token together with its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues and verifies signed bearer tokens binding one principal.
type TokenService interface {
	// Issue signs a token carrying the principal identifier, issuance time and expiry.
	Issue(principalID uuid.UUID) (*IssuedToken, error)

	// Verify checks the signature and claims and returns the bound principal.
	// Failures are reported as *errors.VerificationError.
	Verify(token string) (uuid.UUID, error)
}
