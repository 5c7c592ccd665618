package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerify(t *testing.T) {
	v, err := NewVerifier("s3cret", "seats")
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := sign(t, "s3cret", jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "seats",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	c, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Subject)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.False(t, c.Local)
}

func TestVerify_Rejects(t *testing.T) {
	v, err := NewVerifier("s3cret", "seats")
	require.NoError(t, err)

	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	cases := map[string]string{
		"wrong secret": sign(t, "other", jwt.RegisteredClaims{Subject: "a", Issuer: "seats", ExpiresAt: future}),
		"wrong issuer": sign(t, "s3cret", jwt.RegisteredClaims{Subject: "a", Issuer: "evil", ExpiresAt: future}),
		"expired": sign(t, "s3cret", jwt.RegisteredClaims{
			Subject: "a", Issuer: "seats", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}),
		"no expiry":  sign(t, "s3cret", jwt.RegisteredClaims{Subject: "a", Issuer: "seats"}),
		"no subject": sign(t, "s3cret", jwt.RegisteredClaims{Issuer: "seats", ExpiresAt: future}),
		"garbage":    "not.a.token",
	}

	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(tok)
			assert.Error(t, err)
		})
	}
}

func TestNewVerifier_NeedsSecret(t *testing.T) {
	_, err := NewVerifier("", "")
	assert.Error(t, err)
}

func TestClaimsContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithClaims(context.Background(), &Claims{Subject: "bob"})
	c, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "bob", c.Subject)
}
