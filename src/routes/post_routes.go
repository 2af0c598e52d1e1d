package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feednest/backend/src/controllers"
	"github.com/feednest/backend/src/middleware"
)

// PostRoutes sets up post-related routes for listing, creation, deletion,
// details, likes, and comments
func PostRoutes(app *fiber.App, auth *middleware.Auth, pc *controllers.PostController) {
	post := app.Group("/posts", auth.ProtectRoute)

	post.Post("/", pc.CreatePost)
	post.Get("/", pc.GetAllPosts)
	post.Put("/like/:id", pc.LikePost)
	post.Put("/unlike/:id", pc.UnlikePost)
	post.Post("/comment/:id", pc.CreateComment)
	post.Delete("/comment/:id/:commentId", pc.DeleteComment)
	post.Get("/:id", pc.GetPostByID)
	post.Delete("/:id", pc.DeletePost)
}
