package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feednest/backend/src/controllers"
	"github.com/feednest/backend/src/lib"
	"github.com/feednest/backend/src/middleware"
	"github.com/feednest/backend/src/models"
	"github.com/feednest/backend/src/routes"
	"github.com/feednest/backend/src/service"
	"github.com/feednest/backend/src/store"
)

const testSecret = "test-secret"

type testEnv struct {
	app   *fiber.App
	users *store.MemoryUsers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	posts := store.NewMemoryPosts()
	users := store.NewMemoryUsers()

	svc := service.NewPostService(posts)
	pc := controllers.NewPostController(svc)
	auth := middleware.NewAuth(users, testSecret)

	app := fiber.New()
	routes.PostRoutes(app, auth, pc)

	return &testEnv{app: app, users: users}
}

// addUser registers a user and returns a valid bearer token for it.
func (env *testEnv) addUser(t *testing.T, name string) (models.User, string) {
	t.Helper()

	user := models.User{
		Id:       primitive.NewObjectID(),
		Name:     name,
		Username: name,
		Avatar:   "https://example.com/" + name + ".png",
	}
	env.users.Add(user)

	token, err := lib.GenerateJWT(user.Id.Hex(), testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return user, token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	resp.Body.Close()
	return out
}

func TestAuthGate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/posts/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/posts/", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("malformed header: status = %d, want 401", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/posts/", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", resp.StatusCode)
	}

	// Valid token but the user no longer exists.
	ghost, err := lib.GenerateJWT(primitive.NewObjectID().Hex(), testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	resp = env.request(t, http.MethodGet, "/posts/", ghost, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unknown user: status = %d, want 401", resp.StatusCode)
	}

	_, token := env.addUser(t, "alice")
	resp = env.request(t, http.MethodGet, "/posts/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", resp.StatusCode)
	}
}

func TestCreatePostValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")

	resp := env.request(t, http.MethodPost, "/posts/", token, fiber.Map{"text": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty text: status = %d, want 400", resp.StatusCode)
	}

	body := decodeJSON[map[string][]map[string]string](t, resp)
	if len(body["errors"]) != 1 || body["errors"][0]["param"] != "text" {
		t.Errorf("validation body = %v, want field-level error on text", body)
	}
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	author, authorToken := env.addUser(t, "alice")
	_, otherToken := env.addUser(t, "bob")

	// Create.
	resp := env.request(t, http.MethodPost, "/posts/", authorToken, fiber.Map{"text": "hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: status = %d, want 200", resp.StatusCode)
	}
	post := decodeJSON[models.Post](t, resp)
	if post.AuthorName != author.Name {
		t.Errorf("authorName = %q, want %q", post.AuthorName, author.Name)
	}
	postID := post.Id.Hex()

	// List.
	resp = env.request(t, http.MethodGet, "/posts/", authorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status = %d, want 200", resp.StatusCode)
	}
	if posts := decodeJSON[[]models.Post](t, resp); len(posts) != 1 {
		t.Fatalf("list returned %d posts, want 1", len(posts))
	}

	// Fetch.
	resp = env.request(t, http.MethodGet, "/posts/"+postID, authorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: status = %d, want 200", resp.StatusCode)
	}

	// Like, duplicate like, unlike.
	resp = env.request(t, http.MethodPut, "/posts/like/"+postID, otherToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("like: status = %d, want 200", resp.StatusCode)
	}
	if likes := decodeJSON[[]models.Like](t, resp); len(likes) != 1 {
		t.Fatalf("likes = %v, want one entry", likes)
	}

	resp = env.request(t, http.MethodPut, "/posts/like/"+postID, otherToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate like: status = %d, want 400", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPut, "/posts/unlike/"+postID, otherToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unlike: status = %d, want 200", resp.StatusCode)
	}
	if likes := decodeJSON[[]models.Like](t, resp); len(likes) != 0 {
		t.Fatalf("likes after unlike = %v, want empty", likes)
	}

	resp = env.request(t, http.MethodPut, "/posts/unlike/"+postID, otherToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unlike without like: status = %d, want 400", resp.StatusCode)
	}

	// Comments.
	resp = env.request(t, http.MethodPost, "/posts/comment/"+postID, authorToken, fiber.Map{"text": "nice"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("comment: status = %d, want 200", resp.StatusCode)
	}
	comments := decodeJSON[[]models.Comment](t, resp)
	if len(comments) != 1 || comments[0].Text != "nice" {
		t.Fatalf("comments = %v, want single comment %q", comments, "nice")
	}
	commentID := comments[0].Id.Hex()

	resp = env.request(t, http.MethodDelete, "/posts/comment/"+postID+"/"+commentID, otherToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("delete comment as non-owner: status = %d, want 401", resp.StatusCode)
	}

	resp = env.request(t, http.MethodDelete, "/posts/comment/"+postID+"/"+commentID, authorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete comment as owner: status = %d, want 200", resp.StatusCode)
	}
	if comments := decodeJSON[[]models.Comment](t, resp); len(comments) != 0 {
		t.Fatalf("comments after delete = %v, want empty", comments)
	}

	// Delete post.
	resp = env.request(t, http.MethodDelete, "/posts/"+postID, otherToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("delete as non-author: status = %d, want 401", resp.StatusCode)
	}

	resp = env.request(t, http.MethodDelete, "/posts/"+postID, authorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete as author: status = %d, want 200", resp.StatusCode)
	}
	if body := decodeJSON[map[string]string](t, resp); body["msg"] == "" {
		t.Errorf("delete body = %v, want msg", body)
	}

	resp = env.request(t, http.MethodGet, "/posts/"+postID, authorToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestNotFoundResponses(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")

	missing := primitive.NewObjectID().Hex()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/posts/" + missing},
		{http.MethodDelete, "/posts/" + missing},
		{http.MethodPut, "/posts/like/" + missing},
		{http.MethodPut, "/posts/unlike/" + missing},
		{http.MethodDelete, "/posts/comment/" + missing + "/" + missing},
		{http.MethodGet, "/posts/not-a-hex-id"},
	} {
		resp := env.request(t, tc.method, tc.path, token, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s %s: status = %d, want 404", tc.method, tc.path, resp.StatusCode)
		}
	}
}
