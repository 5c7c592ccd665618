// Package auth verifies bearer tokens issued to the web front-end and
// carries the verified identity through the request context.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

// Claims is the part of a verified token the service uses. Subject is the
// caller's username. Local is set instead of a token when auth is disabled;
// local callers act as account admins.
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
	Local     bool
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier checks HMAC-signed tokens. An empty issuer disables the
// issuer check.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("auth secret must be set")
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(defaultLeeway),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name, jwt.SigningMethodHS384.Name, jwt.SigningMethodHS512.Name}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := v.parser.ParseWithClaims(tokenString, &rc, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if rc.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	c := &Claims{Subject: rc.Subject, Issuer: rc.Issuer}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}

type ctxKey int

const claimsKey ctxKey = iota

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}
