// Package store holds the persistence boundary: interfaces the service layer
// consumes plus their MongoDB implementations.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feednest/backend/src/models"
)

var (
	// ErrNotFound reports that no document matched the given identifier.
	ErrNotFound = errors.New("document not found")
	// ErrConflict reports that a guarded save kept losing against
	// concurrent writers and the retry budget ran out.
	ErrConflict = errors.New("concurrent update conflict")
)

// Posts is the post collection as the service sees it.
type Posts interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindAll(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Update loads the post, applies mutate to the in-memory copy and
	// persists the whole document, guarding against lost updates. An error
	// returned by mutate aborts the save and is passed through unchanged.
	Update(ctx context.Context, id primitive.ObjectID, mutate func(*models.Post) error) (*models.Post, error)
}

// Users is the read-only slice of the external user store this backend needs.
type Users interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
