package repository

import (
	"context"
	"errors"

	app "photoserv/src/app"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type (
	// ImageRepository is CRUD over image documents, always scoped to an
	// album. SetFavorite with a nil value toggles; the read-then-write is
	// not guarded against concurrent writers, last write wins.
	ImageRepository interface {
		Insert(ctx context.Context, image *app.Image) error
		Get(ctx context.Context, albumID, imageID string) (*app.Image, error)
		List(ctx context.Context, albumID string, tagFilter []string) ([]app.Image, error)
		ListFavorites(ctx context.Context, albumID string) ([]app.Image, error)
		SetFavorite(ctx context.Context, albumID, imageID string, value *bool) (bool, error)
		AddComment(ctx context.Context, albumID, imageID string, comment app.Comment) ([]app.Comment, error)
		Delete(ctx context.Context, albumID, imageID string) error
		DeleteByAlbum(ctx context.Context, albumID string) error
	}

	MongoImageRepository struct {
		col *mongo.Collection
	}
)

func (r *MongoImageRepository) Insert(ctx context.Context, image *app.Image) error {
	_, err := r.col.InsertOne(ctx, image)
	return err
}

func (r *MongoImageRepository) Get(ctx context.Context, albumID, imageID string) (*app.Image, error) {
	image := &app.Image{}
	err := r.col.FindOne(ctx, bson.M{"_id": imageID, "albumId": albumID}).Decode(image)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, app.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return image, nil
}

// List returns the album's images, newest first. A non-empty tagFilter
// keeps only images whose tag list intersects it.
func (r *MongoImageRepository) List(ctx context.Context, albumID string, tagFilter []string) ([]app.Image, error) {
	filter := bson.M{"albumId": albumID}
	if len(tagFilter) > 0 {
		filter["tags"] = bson.M{"$in": tagFilter}
	}
	return r.find(ctx, filter)
}

func (r *MongoImageRepository) ListFavorites(ctx context.Context, albumID string) ([]app.Image, error) {
	return r.find(ctx, bson.M{"albumId": albumID, "isFavorite": true})
}

func (r *MongoImageRepository) find(ctx context.Context, filter bson.M) ([]app.Image, error) {
	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	images := []app.Image{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *MongoImageRepository) SetFavorite(ctx context.Context, albumID, imageID string, value *bool) (bool, error) {
	image, err := r.Get(ctx, albumID, imageID)
	if err != nil {
		return false, err
	}

	next := !image.IsFavorite
	if value != nil {
		next = *value
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": imageID, "albumId": albumID},
		bson.M{"$set": bson.M{"isFavorite": next}})
	if err != nil {
		return false, err
	}
	return next, nil
}

func (r *MongoImageRepository) AddComment(ctx context.Context, albumID, imageID string, comment app.Comment) ([]app.Comment, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": imageID, "albumId": albumID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, app.ErrNotFound
	}

	image, err := r.Get(ctx, albumID, imageID)
	if err != nil {
		return nil, err
	}
	return image.Comments, nil
}

func (r *MongoImageRepository) Delete(ctx context.Context, albumID, imageID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": imageID, "albumId": albumID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *MongoImageRepository) DeleteByAlbum(ctx context.Context, albumID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"albumId": albumID})
	return err
}
