package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"
)

func buildToken(t *testing.T, now time.Time, issuer, role string, exp time.Time) jwt.Token {
	t.Helper()
	b := jwt.NewBuilder().
		Issuer(issuer).
		Subject("ops@kitabghor.com").
		IssuedAt(now).
		NotBefore(now).
		Expiration(exp)
	if role != "" {
		b = b.Claim("role", role)
	}
	tok, err := b.Build()
	require.NoError(t, err)
	return tok
}

func TestTokenValidatorValidateSuccess(t *testing.T) {
	now := time.Now()
	tok := buildToken(t, now, "kitabghor", RoleAdmin, now.Add(time.Minute))
	v := TokenValidator{Issuer: "kitabghor", Role: RoleAdmin, ClockSkew: time.Second}
	require.NoError(t, v.Validate(tok, now))
}

func TestTokenValidatorIssuerMismatch(t *testing.T) {
	now := time.Now()
	tok := buildToken(t, now, "other", RoleAdmin, now.Add(time.Minute))
	v := TokenValidator{Issuer: "kitabghor", Role: RoleAdmin}
	require.Error(t, v.Validate(tok, now))
}

func TestTokenValidatorExpiry(t *testing.T) {
	now := time.Now()
	tok := buildToken(t, now.Add(-2*time.Hour), "kitabghor", RoleAdmin, now.Add(-time.Minute))
	v := TokenValidator{Issuer: "kitabghor", Role: RoleAdmin}
	require.Error(t, v.Validate(tok, now))
}

func TestTokenValidatorRole(t *testing.T) {
	now := time.Now()
	v := TokenValidator{Role: RoleAdmin}
	require.Error(t, v.Validate(buildToken(t, now, "", "customer", now.Add(time.Minute)), now))
	require.Error(t, v.Validate(buildToken(t, now, "", "", now.Add(time.Minute)), now))
}
