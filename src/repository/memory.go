package repository

import (
	"context"
	"sort"
	"sync"

	app "photoserv/src/app"
)

// In-memory repositories with the same behavior as the mongo ones. Used in
// tests and for local runs without a database.

type InMemoryAlbumRepository struct {
	mu    sync.RWMutex
	table map[string]app.Album
}

func NewInMemoryAlbumRepository() *InMemoryAlbumRepository {
	return &InMemoryAlbumRepository{table: make(map[string]app.Album)}
}

func (r *InMemoryAlbumRepository) Create(ctx context.Context, album *app.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[album.ID] = *album
	return nil
}

func (r *InMemoryAlbumRepository) Get(ctx context.Context, id string) (*app.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	album, ok := r.table[id]
	if !ok {
		return nil, app.ErrNotFound
	}
	return &album, nil
}

func (r *InMemoryAlbumRepository) ListForUser(ctx context.Context, p app.Principal) ([]app.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	albums := []app.Album{}
	for _, album := range r.table {
		if app.HasAccess(p, &album) {
			albums = append(albums, album)
		}
	}
	sort.Slice(albums, func(i, j int) bool {
		return albums[i].CreatedAt.After(albums[j].CreatedAt)
	})
	return albums, nil
}

func (r *InMemoryAlbumRepository) UpdateDescription(ctx context.Context, id, description string) (*app.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	album, ok := r.table[id]
	if !ok {
		return nil, app.ErrNotFound
	}
	album.Description = description
	r.table[id] = album
	return &album, nil
}

func (r *InMemoryAlbumRepository) Share(ctx context.Context, id string, emails []string) (*app.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	album, ok := r.table[id]
	if !ok {
		return nil, app.ErrNotFound
	}

	for _, email := range emails {
		if email == album.OwnerEmail || contains(album.SharedWith, email) {
			continue
		}
		album.SharedWith = append(album.SharedWith, email)
	}
	r.table[id] = album
	return &album, nil
}

func (r *InMemoryAlbumRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.table[id]; !ok {
		return app.ErrNotFound
	}
	delete(r.table, id)
	return nil
}

type InMemoryImageRepository struct {
	mu    sync.RWMutex
	table map[string]app.Image
}

func NewInMemoryImageRepository() *InMemoryImageRepository {
	return &InMemoryImageRepository{table: make(map[string]app.Image)}
}

func (r *InMemoryImageRepository) Insert(ctx context.Context, image *app.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[image.ID] = *image
	return nil
}

func (r *InMemoryImageRepository) Get(ctx context.Context, albumID, imageID string) (*app.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	image, ok := r.table[imageID]
	if !ok || image.AlbumID != albumID {
		return nil, app.ErrNotFound
	}
	return &image, nil
}

func (r *InMemoryImageRepository) List(ctx context.Context, albumID string, tagFilter []string) ([]app.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	images := []app.Image{}
	for _, image := range r.table {
		if image.AlbumID != albumID {
			continue
		}
		if len(tagFilter) > 0 && !intersects(image.Tags, tagFilter) {
			continue
		}
		images = append(images, image)
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].UploadedAt.After(images[j].UploadedAt)
	})
	return images, nil
}

func (r *InMemoryImageRepository) ListFavorites(ctx context.Context, albumID string) ([]app.Image, error) {
	images, err := r.List(ctx, albumID, nil)
	if err != nil {
		return nil, err
	}
	favorites := []app.Image{}
	for _, image := range images {
		if image.IsFavorite {
			favorites = append(favorites, image)
		}
	}
	return favorites, nil
}

func (r *InMemoryImageRepository) SetFavorite(ctx context.Context, albumID, imageID string, value *bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	image, ok := r.table[imageID]
	if !ok || image.AlbumID != albumID {
		return false, app.ErrNotFound
	}

	next := !image.IsFavorite
	if value != nil {
		next = *value
	}
	image.IsFavorite = next
	r.table[imageID] = image
	return next, nil
}

func (r *InMemoryImageRepository) AddComment(ctx context.Context, albumID, imageID string, comment app.Comment) ([]app.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	image, ok := r.table[imageID]
	if !ok || image.AlbumID != albumID {
		return nil, app.ErrNotFound
	}

	image.Comments = append(image.Comments, comment)
	r.table[imageID] = image
	return image.Comments, nil
}

func (r *InMemoryImageRepository) Delete(ctx context.Context, albumID, imageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	image, ok := r.table[imageID]
	if !ok || image.AlbumID != albumID {
		return app.ErrNotFound
	}
	delete(r.table, imageID)
	return nil
}

func (r *InMemoryImageRepository) DeleteByAlbum(ctx context.Context, albumID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, image := range r.table {
		if image.AlbumID == albumID {
			delete(r.table, id)
		}
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
