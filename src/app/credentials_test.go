package app

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService(t *testing.T) {
	service := NewCredentialService("test-secret", "jwt_token", 7*24*time.Hour)
	principal := Principal{
		UserID:  "user-1",
		Email:   "user@x.com",
		Name:    "Test User",
		Picture: "https://example.com/p.jpg",
	}

	t.Run("roundtrip", func(t *testing.T) {
		token, err := service.Issue(principal)
		require.NoError(t, err)

		got, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, principal, got)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		short := NewCredentialService("test-secret", "jwt_token", -time.Minute)
		token, err := short.Issue(principal)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		other := NewCredentialService("other-secret", "jwt_token", time.Hour)
		token, err := other.Issue(principal)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing and malformed are unauthorized", func(t *testing.T) {
		_, err := service.Verify("")
		assert.ErrorIs(t, err, ErrUnauthorized)
		_, err = service.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestTokenFromRequest(t *testing.T) {
	service := NewCredentialService("test-secret", "jwt_token", time.Hour)

	t.Run("cookie", func(t *testing.T) {
		r, _ := http.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "jwt_token", Value: "from-cookie"})
		assert.Equal(t, "from-cookie", service.TokenFromRequest(r))
	})

	t.Run("bearer header", func(t *testing.T) {
		r, _ := http.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "from-header", service.TokenFromRequest(r))
	})

	t.Run("cookie takes precedence", func(t *testing.T) {
		r, _ := http.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "jwt_token", Value: "from-cookie"})
		r.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "from-cookie", service.TokenFromRequest(r))
	})

	t.Run("neither", func(t *testing.T) {
		r, _ := http.NewRequest("GET", "/", nil)
		assert.Empty(t, service.TokenFromRequest(r))
	})
}
