package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	app "photoserv/src/app"
	db "photoserv/src/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The upload boundary rejects oversized and non-image payloads before any
// gateway call or record write.
const maxUploadSize = 5 << 20

type ImageHandler struct {
	albums db.AlbumRepository
	images db.ImageRepository
	media  app.MediaStore
	log    *slog.Logger
}

func NewImageHandler(albums db.AlbumRepository, images db.ImageRepository, media app.MediaStore, log *slog.Logger) *ImageHandler {
	return &ImageHandler{
		albums: albums,
		images: images,
		media:  media,
		log:    log,
	}
}

func (h *ImageHandler) UploadImage(c *gin.Context) {
	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, h.log, fmt.Errorf("%w: can not find file in request", app.ErrValidation))
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(c, h.log, fmt.Errorf("%w: file exceeds 5 MiB", app.ErrValidation))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, h.log, fmt.Errorf("%w: only image uploads are supported", app.ErrValidation))
		return
	}

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, file); err != nil {
		respondError(c, h.log, fmt.Errorf("failed to read file: %w", err))
		return
	}

	ctx := c.Request.Context()
	stored, err := h.media.Store(ctx, bytes.NewReader(buffer.Bytes()), int64(buffer.Len()), contentType, album.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	principal := principalFrom(c)
	image := &app.Image{
		ID:         uuid.NewString(),
		AlbumID:    album.ID,
		Name:       header.Filename,
		URL:        stored.URL,
		ObjectID:   stored.ObjectID,
		Tags:       parseTags(c.PostForm("tags")),
		Person:     c.PostForm("person"),
		IsFavorite: c.PostForm("isFavorite") == "true",
		Comments:   []app.Comment{},
		Size:       stored.Size,
		UploadedAt: time.Now(),
		UploadedBy: principal.UserID,
	}

	// Thumbnail is best-effort: an undecodable original still uploads.
	if thumb, err := app.MakeThumbnail(buffer.Bytes()); err == nil {
		thumbStored, err := h.media.Store(ctx, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg", album.ID+"/thumbs")
		if err != nil {
			h.log.Warn("thumbnail upload failed", "album", album.ID, "error", err)
		} else {
			image.ThumbnailURL = thumbStored.URL
			image.ThumbnailObjectID = thumbStored.ObjectID
		}
	}

	if err := h.images.Insert(ctx, image); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (h *ImageHandler) ListImages(c *gin.Context) {
	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	tagFilter := []string{}
	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tagFilter = append(tagFilter, tag)
			}
		}
	}

	images, err := h.images.List(c.Request.Context(), album.ID, tagFilter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *ImageHandler) ListFavorites(c *gin.Context) {
	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	images, err := h.images.ListFavorites(c.Request.Context(), album.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *ImageHandler) SetFavorite(c *gin.Context) {
	var body SetFavoriteBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	// Absent isFavorite toggles the current value.
	value, err := h.images.SetFavorite(c.Request.Context(), album.ID, c.Param("imageId"), body.IsFavorite)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageId": c.Param("imageId"), "isFavorite": value})
}

func (h *ImageHandler) AddComment(c *gin.Context) {
	var body AddCommentBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	text := strings.TrimSpace(body.Comment)
	if text == "" {
		respondError(c, h.log, fmt.Errorf("%w: comment must not be empty", app.ErrValidation))
		return
	}

	principal := principalFrom(c)
	comments, err := h.images.AddComment(c.Request.Context(), album.ID, c.Param("imageId"), app.Comment{
		UserID:    principal.UserID,
		UserEmail: principal.Email,
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()
	album, err := h.albums.Get(ctx, c.Param("albumId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	image, err := h.images.Get(ctx, album.ID, c.Param("imageId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !app.CanDeleteImage(principalFrom(c), album, image) {
		respondError(c, h.log, app.ErrForbidden)
		return
	}

	// Gateway delete first; its failure is logged, the record goes anyway.
	destroyImageObjects(ctx, h.media, image, h.log)
	if err := h.images.Delete(ctx, album.ID, image.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}

func (h *ImageHandler) GetImageURL(c *gin.Context) {
	album, err := h.accessibleAlbum(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	image, err := h.images.Get(c.Request.Context(), album.ID, c.Param("imageId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": image.URL, "imageId": image.ID, "name": image.Name})
}

func (h *ImageHandler) accessibleAlbum(c *gin.Context) (*app.Album, error) {
	album, err := h.albums.Get(c.Request.Context(), c.Param("albumId"))
	if err != nil {
		return nil, err
	}
	if !app.HasAccess(principalFrom(c), album) {
		return nil, app.ErrForbidden
	}
	return album, nil
}

// parseTags accepts a JSON-encoded array or a plain comma-separated list.
// Malformed JSON degrades to no tags rather than a validation error.
func parseTags(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}

	if strings.HasPrefix(value, "[") {
		tags := []string{}
		if err := json.Unmarshal([]byte(value), &tags); err != nil {
			return []string{}
		}
		return tags
	}

	tags := []string{}
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func destroyImageObjects(ctx context.Context, media app.MediaStore, image *app.Image, log *slog.Logger) {
	if err := media.Destroy(ctx, image.ObjectID); err != nil {
		log.Warn("media delete failed", "objectId", image.ObjectID, "error", err)
	}
	if image.ThumbnailObjectID != "" {
		if err := media.Destroy(ctx, image.ThumbnailObjectID); err != nil {
			log.Warn("media delete failed", "objectId", image.ThumbnailObjectID, "error", err)
		}
	}
}
