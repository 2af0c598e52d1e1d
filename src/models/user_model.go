package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is owned by the external profile service; this backend only reads the
// fields it snapshots onto posts and comments.
type User struct {
	Id       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Username string             `json:"username" bson:"username"`
	Avatar   string             `json:"avatar" bson:"avatar"`
}
