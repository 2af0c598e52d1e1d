package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feednest/backend/src/lib"
	"github.com/feednest/backend/src/models"
)

// maxUpdateRetries bounds the optimistic-concurrency loop in Update.
const maxUpdateRetries = 3

type MongoPosts struct {
	coll *mongo.Collection
}

func NewMongoPosts(db *lib.DB) *MongoPosts {
	return &MongoPosts{coll: db.Collection("posts")}
}

func (s *MongoPosts) Insert(ctx context.Context, post *models.Post) error {
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

func (s *MongoPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPosts) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Update implements load-mutate-save with a version guard. The replace
// filter matches both _id and the version the document was loaded with, so a
// concurrent writer makes MatchedCount come back zero and the loop reloads
// and reapplies mutate on fresh state.
func (s *MongoPosts) Update(ctx context.Context, id primitive.ObjectID, mutate func(*models.Post) error) (*models.Post, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		post, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := mutate(post); err != nil {
			return nil, err
		}

		loadedVersion := post.Version
		post.Version++
		post.UpdatedAt = time.Now()

		result, err := s.coll.ReplaceOne(
			ctx,
			bson.M{"_id": id, "version": loadedVersion},
			post,
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 1 {
			return post, nil
		}
	}

	return nil, ErrConflict
}
