package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// RoleAdmin is the role claim value required on admin routes.
const RoleAdmin = "admin"

// TokenValidator validates contextual claims of admin tokens.
type TokenValidator struct {
	Issuer    string
	Role      string
	ClockSkew time.Duration
}

// Validate checks expiry, not-before, issuer and role claims against now.
func (v TokenValidator) Validate(tok jwt.Token, now time.Time) error {
	if tok == nil {
		return errors.New("auth: token is nil")
	}

	options := []jwt.ValidateOption{
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	}
	if v.ClockSkew > 0 {
		options = append(options, jwt.WithAcceptableSkew(v.ClockSkew))
	}
	if v.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.Issuer))
	}
	if err := jwt.Validate(tok, options...); err != nil {
		return err
	}
	if tok.Subject() == "" {
		return errors.New("auth: token missing subject")
	}

	if v.Role == "" {
		return nil
	}
	raw, ok := tok.Get("role")
	if !ok {
		return errors.New("auth: token missing role claim")
	}
	role, ok := raw.(string)
	if !ok || role != v.Role {
		return fmt.Errorf("auth: role %v not permitted", raw)
	}
	return nil
}
