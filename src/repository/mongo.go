package repository

import (
	"context"
	"fmt"

	cfg "photoserv/src/configuration"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	albumsCollection = "albums"
	imagesCollection = "images"
)

// DataBase owns the mongo client for the process. It is created at startup,
// handed to the repositories, and closed on shutdown.
type DataBase struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewDataBase(config *cfg.Properties) (*DataBase, error) {
	if config == nil {
		return nil, fmt.Errorf("config is not valid")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("can not create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Mongo.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	return &DataBase{
		client: client,
		db:     client.Database(config.Mongo.Database),
	}, nil
}

func (d *DataBase) Albums() *MongoAlbumRepository {
	return &MongoAlbumRepository{col: d.db.Collection(albumsCollection)}
}

func (d *DataBase) Images() *MongoImageRepository {
	return &MongoImageRepository{col: d.db.Collection(imagesCollection)}
}

func (d *DataBase) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
