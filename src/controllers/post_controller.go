package controllers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feednest/backend/src/lib"
	"github.com/feednest/backend/src/models"
	"github.com/feednest/backend/src/service"
)

type PostController struct {
	service *service.PostService
}

func NewPostController(svc *service.PostService) *PostController {
	return &PostController{service: svc}
}

// validationResponse builds the field-level error body for rejected input.
func validationResponse(verr *service.ValidationError) fiber.Map {
	return fiber.Map{
		"errors": []fiber.Map{
			{"param": verr.Field, "msg": verr.Message},
		},
	}
}

// GetAllPosts returns every post, newest first.
func (pc *PostController) GetAllPosts(c *fiber.Ctx) error {
	posts, err := pc.service.List(c.Context())
	if err != nil {
		slog.Error("fetching posts", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// CreatePost creates a new post authored by the authenticated user.
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	type CreatePostRequest struct {
		Text string `json:"text"`
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := c.Locals("user").(models.User)

	post, err := pc.service.Create(c.Context(), user, req.Text)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(validationResponse(verr))
		}
		slog.Error("creating post", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// GetPostByID returns a single post.
func (pc *PostController) GetPostByID(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		// An unparseable id can match no document.
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
	}

	post, err := pc.service.Get(c.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		slog.Error("fetching post", "post", postID.Hex(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post if the authenticated user is its author.
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
	}

	user := c.Locals("user").(models.User)

	if err := pc.service.Delete(c.Context(), postID, user.Id); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		case errors.Is(err, service.ErrNotPostAuthor):
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("User not authorized"))
		default:
			slog.Error("deleting post", "post", postID.Hex(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
		}
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Post removed"))
}

// LikePost adds the authenticated user's like and returns the likes.
func (pc *PostController) LikePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
	}

	user := c.Locals("user").(models.User)

	likes, err := pc.service.Like(c.Context(), postID, user.Id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		case errors.Is(err, service.ErrAlreadyLiked):
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Post already liked"))
		default:
			slog.Error("liking post", "post", postID.Hex(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
		}
	}

	return c.Status(fiber.StatusOK).JSON(likes)
}

// UnlikePost removes the authenticated user's like and returns the likes.
func (pc *PostController) UnlikePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
	}

	user := c.Locals("user").(models.User)

	likes, err := pc.service.Unlike(c.Context(), postID, user.Id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		case errors.Is(err, service.ErrNotLiked):
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Post has not yet been liked"))
		default:
			slog.Error("unliking post", "post", postID.Hex(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
		}
	}

	return c.Status(fiber.StatusOK).JSON(likes)
}

// CreateComment adds a comment to a post and returns the comments.
func (pc *PostController) CreateComment(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
	}

	type CreateCommentRequest struct {
		Text string `json:"text"`
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := c.Locals("user").(models.User)

	comments, err := pc.service.AddComment(c.Context(), postID, user, req.Text)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(validationResponse(verr))
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		default:
			slog.Error("adding comment", "post", postID.Hex(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
		}
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// DeleteComment removes a comment if the authenticated user wrote it and
// returns the comments.
func (pc *PostController) DeleteComment(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
	}

	commentID, err := primitive.ObjectIDFromHex(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Comment does not exist"))
	}

	user := c.Locals("user").(models.User)

	comments, err := pc.service.DeleteComment(c.Context(), postID, commentID, user.Id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		case errors.Is(err, service.ErrCommentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Comment does not exist"))
		case errors.Is(err, service.ErrNotCommentAuthor):
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("User not authorized"))
		default:
			slog.Error("deleting comment", "post", postID.Hex(), "comment", commentID.Hex(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server Error"))
		}
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}
