package service

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post has not been liked yet")
	ErrNotPostAuthor    = errors.New("user is not the author of this post")
	ErrNotCommentAuthor = errors.New("user is not the author of this comment")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
