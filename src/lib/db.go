package lib

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB wraps the Mongo client so the handle can be passed around and closed
// explicitly instead of living in a package global.
type DB struct {
	client   *mongo.Client
	Database *mongo.Database
}

// ConnectDB opens the Mongo connection and pings the primary before
// returning, so a bad URI fails at startup rather than on first request.
func ConnectDB(ctx context.Context, uri, name string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("connected to MongoDB", "database", name)

	return &DB{
		client:   client,
		Database: client.Database(name),
	}, nil
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.Database.Collection(name)
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
