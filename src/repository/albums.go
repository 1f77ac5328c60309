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
	// AlbumRepository is CRUD over album documents. The access decisions
	// themselves live with the caller; repositories only move documents.
	AlbumRepository interface {
		Create(ctx context.Context, album *app.Album) error
		Get(ctx context.Context, id string) (*app.Album, error)
		ListForUser(ctx context.Context, p app.Principal) ([]app.Album, error)
		UpdateDescription(ctx context.Context, id, description string) (*app.Album, error)
		Share(ctx context.Context, id string, emails []string) (*app.Album, error)
		Delete(ctx context.Context, id string) error
	}

	MongoAlbumRepository struct {
		col *mongo.Collection
	}
)

func (r *MongoAlbumRepository) Create(ctx context.Context, album *app.Album) error {
	_, err := r.col.InsertOne(ctx, album)
	return err
}

func (r *MongoAlbumRepository) Get(ctx context.Context, id string) (*app.Album, error) {
	album := &app.Album{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(album)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, app.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return album, nil
}

func (r *MongoAlbumRepository) ListForUser(ctx context.Context, p app.Principal) ([]app.Album, error) {
	filter := bson.M{"$or": []bson.M{
		{"ownerId": p.UserID},
		{"sharedWith": p.Email},
	}}
	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	albums := []app.Album{}
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *MongoAlbumRepository) UpdateDescription(ctx context.Context, id, description string) (*app.Album, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"description": description}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, app.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Share appends each email to sharedWith unless already present or equal to
// the owner's own address. The add is idempotent.
func (r *MongoAlbumRepository) Share(ctx context.Context, id string, emails []string) (*app.Album, error) {
	album, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	toAdd := []string{}
	for _, email := range emails {
		if email != album.OwnerEmail {
			toAdd = append(toAdd, email)
		}
	}

	if len(toAdd) > 0 {
		_, err = r.col.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$addToSet": bson.M{"sharedWith": bson.M{"$each": toAdd}}})
		if err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

func (r *MongoAlbumRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}
