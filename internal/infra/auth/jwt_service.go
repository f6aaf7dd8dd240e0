// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Process-wide signing key, read-only after construction.
	ttl    time.Duration    // Lifetime of issued tokens.
	now    func() time.Time // Clock, replaceable in tests.
}

// NewJWTService is the constructor for jwtService.
// A missing secret or TTL is a startup error: the process must not serve requests without them.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.Auth == nil || cfg.Auth.SigningSecret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, errors.New("jwt token ttl must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Auth.SigningSecret),
		ttl:    cfg.Auth.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token whose claims are exactly sub, iat and exp.
func (s *jwtService) Issue(principalID uuid.UUID) (*service.IssuedToken, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   principalID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &service.IssuedToken{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify validates the signature and claims of tokenString and returns the bound principal.
func (s *jwtService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// lenient base64 would accept signatures differing only in padding bits
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, classifyVerificationError(tokenString, err)
	}

	principalID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domainerrors.NewVerificationError(domainerrors.Malformed, errors.Wrap(err, "invalid subject claim"))
	}

	return principalID, nil
}

// classifyVerificationError maps jwt parse failures onto verification reasons.
// Claims are only validated after the signature checks out, so Expired implies a genuine token.
func classifyVerificationError(tokenString string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed) && signatureSegmentOnly(tokenString):
		return domainerrors.NewVerificationError(domainerrors.BadSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domainerrors.NewVerificationError(domainerrors.Malformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerrors.NewVerificationError(domainerrors.BadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.NewVerificationError(domainerrors.Expired, err)
	default:
		return domainerrors.NewVerificationError(domainerrors.Malformed, err)
	}
}

// signatureSegmentOnly reports whether header and claims parse cleanly, which
// leaves the signature segment as the only thing that failed to decode.
func signatureSegmentOnly(tokenString string) bool {
	_, _, err := jwt.NewParser(jwt.WithStrictDecoding()).ParseUnverified(tokenString, &jwt.RegisteredClaims{})

	return err == nil
}
