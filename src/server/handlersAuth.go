package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	app "photoserv/src/app"
	cfg "photoserv/src/configuration"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	googleIssuer    = "https://accounts.google.com"
	stateCookieName = "oauth_state"
)

type AuthHandler struct {
	provider      *oidc.Provider
	authConfig    *oauth2.Config
	creds         *app.CredentialService
	frontendURL   string
	profilePath   string
	secureCookies bool
	log           *slog.Logger
}

func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func NewAuthHandler(config *cfg.Properties, creds *app.CredentialService, log *slog.Logger) (*AuthHandler, error) {
	provider, err := oidc.NewProvider(context.Background(), googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("can not create OIDC provider: %w", err)
	}

	authConfig := &oauth2.Config{
		ClientID:     config.Auth.GoogleClientID,
		ClientSecret: config.Auth.GoogleClientSecret,
		RedirectURL:  config.Auth.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &AuthHandler{
		provider:      provider,
		authConfig:    authConfig,
		creds:         creds,
		frontendURL:   config.Frontend.Origin,
		profilePath:   config.Frontend.ProfilePath,
		secureCookies: config.IsProduction(),
		log:           log,
	}, nil
}

// RequireAuth extracts and verifies the bearer credential and attaches the
// principal to the request context. Every failure mode answers the same
// undifferentiated 401.
func (a *AuthHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := a.creds.TokenFromRequest(c.Request)
		principal, err := a.creds.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

func (a *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := randString(16)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, 600, "/", "", a.secureCookies, true)
	c.Redirect(http.StatusFound, a.authConfig.AuthCodeURL(state))
}

func (a *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || c.Query("state") != stateCookie {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}

	ctx := c.Request.Context()

	// Exchange the authorization code for an access token, then fetch the
	// profile claims with it. Either call failing is one generic 400.
	token, err := a.authConfig.Exchange(ctx, code)
	if err != nil {
		a.log.Error("code exchange failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity exchange failed"})
		return
	}

	userInfo, err := a.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		a.log.Error("userinfo fetch failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity exchange failed"})
		return
	}

	var claims struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := userInfo.Claims(&claims); err != nil {
		a.log.Error("can not parse userinfo claims", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity exchange failed"})
		return
	}

	principal := app.Principal{
		UserID:  userInfo.Subject,
		Email:   userInfo.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}

	signed, err := a.creds.Issue(principal)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.creds.CookieName(), signed, int(a.creds.TTL().Seconds()), "/", "", a.secureCookies, true)
	c.Redirect(http.StatusFound, a.frontendURL+a.profilePath)
}

func (a *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.creds.CookieName(), "", -1, "/", "", a.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (a *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": principalFrom(c)})
}

func (a *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": principalFrom(c)})
}
