package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feednest/backend/src/models"
)

// MemoryPosts is an in-memory Posts implementation for tests and local
// development. Update runs under the store lock, which stands in for the
// guarded replace of the Mongo implementation.
type MemoryPosts struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
}

func NewMemoryPosts() *MemoryPosts {
	return &MemoryPosts{posts: map[primitive.ObjectID]models.Post{}}
}

func clonePost(post models.Post) models.Post {
	post.Likes = slices.Clone(post.Likes)
	post.Comments = slices.Clone(post.Comments)
	return post
}

func (s *MemoryPosts) Insert(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.Id] = clonePost(*post)
	return nil
}

func (s *MemoryPosts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	post = clonePost(post)
	return &post, nil
}

func (s *MemoryPosts) FindAll(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, clonePost(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemoryPosts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryPosts) Update(_ context.Context, id primitive.ObjectID, mutate func(*models.Post) error) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}

	post := clonePost(stored)
	if err := mutate(&post); err != nil {
		return nil, err
	}

	post.Version++
	post.UpdatedAt = time.Now()
	s.posts[id] = clonePost(post)
	return &post, nil
}

// MemoryUsers is an in-memory Users implementation for tests and local
// development.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[primitive.ObjectID]models.User{}}
}

func (s *MemoryUsers) Add(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Id] = user
}

func (s *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
