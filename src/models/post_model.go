package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	Id           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Author       primitive.ObjectID `json:"author" bson:"author"`
	AuthorName   string             `json:"authorName" bson:"authorName"`
	AuthorAvatar string             `json:"authorAvatar" bson:"authorAvatar"`
	Text         string             `json:"text" bson:"text"`
	Likes        []Like             `json:"likes" bson:"likes"`
	Comments     []Comment          `json:"comments" bson:"comments"`
	// Version guards the whole-document replace; bumped on every save.
	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Like struct {
	User primitive.ObjectID `json:"user" bson:"user"`
}

type Comment struct {
	Id           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User         primitive.ObjectID `json:"user" bson:"user"`
	AuthorName   string             `json:"authorName" bson:"authorName"`
	AuthorAvatar string             `json:"authorAvatar" bson:"authorAvatar"`
	Text         string             `json:"text" bson:"text"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
