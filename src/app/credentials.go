package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity claims embedded in the session token.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// CredentialService issues and verifies the opaque bearer credential.
// Validity is solely signature plus expiry, there is no revocation list.
type CredentialService struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
}

func NewCredentialService(secret, cookieName string, ttl time.Duration) *CredentialService {
	return &CredentialService{
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
	}
}

func (s *CredentialService) CookieName() string {
	return s.cookieName
}

func (s *CredentialService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the principal's claims, expiring after the
// configured TTL.
func (s *CredentialService) Issue(p Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email:   p.Email,
		Name:    p.Name,
		Picture: p.Picture,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("can not sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and checks the token. Missing, malformed and expired all
// collapse into the one ErrUnauthorized signal.
func (s *CredentialService) Verify(tokenString string) (Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrUnauthorized
	}

	return Principal{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// TokenFromRequest extracts the credential from the session cookie or,
// failing that, an Authorization: Bearer header. Cookie takes precedence.
func (s *CredentialService) TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}
