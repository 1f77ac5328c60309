package server

import (
	"errors"
	"log/slog"
	"net/http"

	app "photoserv/src/app"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type (
	CreateAlbumBody struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	UpdateAlbumBody struct {
		Description string `json:"description"`
	}

	ShareAlbumBody struct {
		Emails []string `json:"emails"`
	}

	SetFavoriteBody struct {
		IsFavorite *bool `json:"isFavorite"`
	}

	AddCommentBody struct {
		Comment string `json:"comment"`
	}
)

func principalFrom(c *gin.Context) app.Principal {
	return c.MustGet(principalKey).(app.Principal)
}

// respondError translates the error taxonomy into a status and a JSON
// {error} body. Anything unexpected is logged and answered with a
// generic 500.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, app.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, app.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrUpstream):
		log.Error("upstream call failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream failure"})
	default:
		log.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
