package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feednest/backend/src/lib"
	"github.com/feednest/backend/src/models"
)

type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(db *lib.DB) *MongoUsers {
	return &MongoUsers{coll: db.Collection("users")}
}

func (s *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	projection := bson.M{
		"name":     1,
		"username": 1,
		"avatar":   1,
	}

	var user models.User
	err := s.coll.FindOne(
		ctx,
		bson.M{"_id": id},
		options.FindOne().SetProjection(projection),
	).Decode(&user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
