package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test_signing_secret_key_very_long_for_testing"
	base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			SigningSecret: secret,
			TokenTTL:      ttl,
		},
	}
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	return svc.(*jwtService)
}

func requireVerificationReason(t *testing.T, err error, want domainerrors.VerificationReason) {
	t.Helper()

	var verr *domainerrors.VerificationError
	require.True(t, errors.As(err, &verr), "expected VerificationError, got %v", err)
	assert.Equal(t, want, verr.Reason)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t)

	for range 5 {
		principalID := uuid.New()

		issued, err := svc.Issue(principalID)
		require.NoError(t, err)
		assert.NotEmpty(t, issued.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 2*time.Second)

		got, err := svc.Verify(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, principalID, got)
	}
}

func TestJWTService_ClaimsAreExactlySubjectIssuedAtExpiry(t *testing.T) {
	svc := newTestJWTService(t)

	issued, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(issued.Token, claims)
	require.NoError(t, err)

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"sub", "iat", "exp"}, keys)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestJWTService(t)

	for _, token := range []string{
		"",
		"clearly-not-a-jwt-token-format",
		"a.b",
		"a.b.c.d",
		"!!!.@@@.###",
	} {
		t.Run(token, func(t *testing.T) {
			id, err := svc.Verify(token)
			require.Error(t, err)
			assert.Equal(t, uuid.Nil, id)
			requireVerificationReason(t, err, domainerrors.Malformed)
		})
	}
}

func TestJWTService_SignatureMutationIsBadSignature(t *testing.T) {
	svc := newTestJWTService(t)

	issued, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)
	signature := parts[2]

	for i := 0; i < len(signature); i++ {
		replacement := byte('A')
		if signature[i] == 'A' {
			replacement = 'B'
		}
		mutated := signature[:i] + string(replacement) + signature[i+1:]
		token := parts[0] + "." + parts[1] + "." + mutated

		_, err := svc.Verify(token)
		requireVerificationReason(t, err, domainerrors.BadSignature)
	}
}

func TestJWTService_PaddingBitMutationIsBadSignature(t *testing.T) {
	svc := newTestJWTService(t)

	for range 20 {
		issued, err := svc.Issue(uuid.New())
		require.NoError(t, err)

		parts := strings.Split(issued.Token, ".")
		require.Len(t, parts, 3)
		signature := parts[2]

		// 32 bytes encode to 43 chars; the last one holds 4 data bits and 2 padding bits,
		// so its neighbour decodes to the same bytes under lenient decoding.
		last := signature[len(signature)-1]
		idx := strings.IndexByte(base64URLAlphabet, last)
		require.GreaterOrEqual(t, idx, 0)
		neighbour := base64URLAlphabet[idx^1]

		token := parts[0] + "." + parts[1] + "." + signature[:len(signature)-1] + string(neighbour)

		id, err := svc.Verify(token)
		assert.Equal(t, uuid.Nil, id)
		requireVerificationReason(t, err, domainerrors.BadSignature)
	}
}

func TestJWTService_TamperedClaimsRejected(t *testing.T) {
	svc := newTestJWTService(t)

	issued, err := svc.Issue(uuid.New())
	require.NoError(t, err)
	parts := strings.Split(issued.Token, ".")

	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + uuid.NewString() + `","iat":1,"exp":9999999999}`))
	_, err = svc.Verify(parts[0] + "." + forged + "." + parts[2])
	requireVerificationReason(t, err, domainerrors.BadSignature)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	svc := newTestJWTService(t)

	other, err := NewJWTService(newTestConfig("a-completely-different-secret", time.Hour))
	require.NoError(t, err)

	issued, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(issued.Token)
	requireVerificationReason(t, err, domainerrors.BadSignature)
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	svc := newTestJWTService(t)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	requireVerificationReason(t, err, domainerrors.BadSignature)

	// Same payload with the HS256 header but an empty signature segment.
	parts := strings.Split(unsigned, ".")
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	_, err = svc.Verify(header + "." + parts[1] + ".")
	requireVerificationReason(t, err, domainerrors.BadSignature)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	issued, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(issued.Token)
	requireVerificationReason(t, err, domainerrors.Expired)
}

func TestJWTService_InvalidSubject(t *testing.T) {
	svc := newTestJWTService(t)

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	requireVerificationReason(t, err, domainerrors.Malformed)
}

func TestJWTService_MissingExpiryRejected(t *testing.T) {
	svc := newTestJWTService(t)

	claims := jwt.RegisteredClaims{
		Subject:  uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
}

func TestNewJWTService_StartupErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "jwt signing secret must be provided"},
		{name: "no auth section", cfg: &config.Config{}, wantErr: "jwt signing secret must be provided"},
		{name: "empty secret", cfg: newTestConfig("", time.Hour), wantErr: "jwt signing secret must be provided"},
		{name: "zero ttl", cfg: newTestConfig(testSecret, 0), wantErr: "jwt token ttl must be provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewJWTService(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
