// Package service implements the post operations: create, list, fetch and
// delete posts, toggle likes, add and remove comments. Handlers stay thin;
// every domain rule lives here.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feednest/backend/src/metrics"
	"github.com/feednest/backend/src/models"
	"github.com/feednest/backend/src/store"
)

type PostService struct {
	posts store.Posts
}

func NewPostService(posts store.Posts) *PostService {
	return &PostService{posts: posts}
}

// Create validates the text, snapshots the author's display data onto the
// post and persists it with empty likes and comments.
func (s *PostService) Create(ctx context.Context, author models.User, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "Text is required"}
	}

	now := time.Now()
	post := &models.Post{
		Id:           primitive.NewObjectID(),
		Author:       author.Id,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Text:         text,
		Likes:        []models.Like{},
		Comments:     []models.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.FindAll(ctx)
}

func (s *PostService) Get(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

// Delete removes a post permanently. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, callerID primitive.ObjectID) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	if post.Author != callerID {
		return ErrNotPostAuthor
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	metrics.PostsDeleted.Inc()
	return nil
}

// Like prepends a like for the caller and returns the updated likes. A
// second like from the same caller is rejected, so a post never holds more
// than one like per user.
func (s *PostService) Like(ctx context.Context, postID, callerID primitive.ObjectID) ([]models.Like, error) {
	post, err := s.posts.Update(ctx, postID, func(post *models.Post) error {
		alreadyLiked := lo.ContainsBy(post.Likes, func(like models.Like) bool {
			return like.User == callerID
		})
		if alreadyLiked {
			return ErrAlreadyLiked
		}

		post.Likes = append([]models.Like{{User: callerID}}, post.Likes...)
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	metrics.PostsLiked.Inc()
	return post.Likes, nil
}

// Unlike removes the first like whose user matches the caller and returns
// the updated likes.
func (s *PostService) Unlike(ctx context.Context, postID, callerID primitive.ObjectID) ([]models.Like, error) {
	post, err := s.posts.Update(ctx, postID, func(post *models.Post) error {
		_, index, found := lo.FindIndexOf(post.Likes, func(like models.Like) bool {
			return like.User == callerID
		})
		if !found {
			return ErrNotLiked
		}

		post.Likes = removeLikeAt(post.Likes, index)
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	metrics.PostsUnliked.Inc()
	return post.Likes, nil
}

// AddComment validates the text, prepends a comment carrying the commenting
// user's display snapshot and returns the updated comments.
func (s *PostService) AddComment(ctx context.Context, postID primitive.ObjectID, author models.User, text string) ([]models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "Text is required"}
	}

	comment := models.Comment{
		Id:           primitive.NewObjectID(),
		User:         author.Id,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Text:         text,
		CreatedAt:    time.Now(),
	}

	post, err := s.posts.Update(ctx, postID, func(post *models.Post) error {
		post.Comments = append([]models.Comment{comment}, post.Comments...)
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	metrics.CommentsAdded.Inc()
	return post.Comments, nil
}

// DeleteComment removes a comment and returns the updated comments. The
// comment looked up by id must belong to the caller; removal is then keyed
// on the comment author, not the matched id.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, callerID primitive.ObjectID) ([]models.Comment, error) {
	post, err := s.posts.Update(ctx, postID, func(post *models.Post) error {
		comment, _, found := lo.FindIndexOf(post.Comments, func(c models.Comment) bool {
			return c.Id == commentID
		})
		if !found {
			return ErrCommentNotFound
		}
		if comment.User != callerID {
			return ErrNotCommentAuthor
		}

		_, index, _ := lo.FindIndexOf(post.Comments, func(c models.Comment) bool {
			return c.User == callerID
		})
		post.Comments = removeCommentAt(post.Comments, index)
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	metrics.CommentsRemoved.Inc()
	return post.Comments, nil
}

func translateStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

// removeLikeAt rebuilds the sequence excluding the element at index. The
// three-index slice keeps the result from aliasing the stored backing array.
func removeLikeAt(likes []models.Like, index int) []models.Like {
	return append(likes[:index:index], likes[index+1:]...)
}

func removeCommentAt(comments []models.Comment, index int) []models.Comment {
	return append(comments[:index:index], comments[index+1:]...)
}
