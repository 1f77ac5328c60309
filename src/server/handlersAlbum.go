package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	app "photoserv/src/app"
	db "photoserv/src/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlbumHandler struct {
	albums db.AlbumRepository
	images db.ImageRepository
	media  app.MediaStore
	log    *slog.Logger
}

func NewAlbumHandler(albums db.AlbumRepository, images db.ImageRepository, media app.MediaStore, log *slog.Logger) *AlbumHandler {
	return &AlbumHandler{
		albums: albums,
		images: images,
		media:  media,
		log:    log,
	}
}

func (h *AlbumHandler) CreateAlbum(c *gin.Context) {
	var body CreateAlbumBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		respondError(c, h.log, fmt.Errorf("%w: album name is required", app.ErrValidation))
		return
	}

	principal := principalFrom(c)
	album := &app.Album{
		ID:          uuid.NewString(),
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     principal.UserID,
		OwnerEmail:  principal.Email,
		SharedWith:  []string{},
		CreatedAt:   time.Now(),
	}
	if err := h.albums.Create(c.Request.Context(), album); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, album)
}

func (h *AlbumHandler) ListAlbums(c *gin.Context) {
	albums, err := h.albums.ListForUser(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) GetAlbum(c *gin.Context) {
	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) UpdateAlbum(c *gin.Context) {
	var body UpdateAlbumBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	album, err := h.ownedAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	// Empty description keeps the prior value.
	if body.Description == "" {
		c.JSON(http.StatusOK, album)
		return
	}

	updated, err := h.albums.UpdateDescription(c.Request.Context(), album.ID, body.Description)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AlbumHandler) ShareAlbum(c *gin.Context) {
	var body ShareAlbumBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	album, err := h.ownedAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	valid := app.FilterValidEmails(body.Emails)
	if len(valid) == 0 {
		respondError(c, h.log, fmt.Errorf("%w: no valid emails", app.ErrValidation))
		return
	}

	updated, err := h.albums.Share(c.Request.Context(), album.ID, valid)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAlbum cascades: every image record goes, each stored object is
// destroyed best-effort, then the album itself. The steps are sequential
// with no cross-document transaction.
func (h *AlbumHandler) DeleteAlbum(c *gin.Context) {
	album, err := h.ownedAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	images, err := h.images.List(ctx, album.ID, nil)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	for _, image := range images {
		destroyImageObjects(ctx, h.media, &image, h.log)
	}
	if err := h.images.DeleteByAlbum(ctx, album.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.albums.Delete(ctx, album.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album deleted"})
}

// accessibleAlbum loads the album from the path and checks read access.
// Not-found and forbidden stay distinct signals.
func (h *AlbumHandler) accessibleAlbum(c *gin.Context) (*app.Album, error) {
	album, err := h.albums.Get(c.Request.Context(), c.Param("albumId"))
	if err != nil {
		return nil, err
	}
	if !app.HasAccess(principalFrom(c), album) {
		return nil, app.ErrForbidden
	}
	return album, nil
}

func (h *AlbumHandler) ownedAlbum(c *gin.Context) (*app.Album, error) {
	album, err := h.albums.Get(c.Request.Context(), c.Param("albumId"))
	if err != nil {
		return nil, err
	}
	if !app.CanModify(principalFrom(c), album) {
		return nil, app.ErrForbidden
	}
	return album, nil
}
