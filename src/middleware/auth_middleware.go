package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feednest/backend/src/lib"
	"github.com/feednest/backend/src/store"
)

type Auth struct {
	users  store.Users
	secret string
}

func NewAuth(users store.Users, secret string) *Auth {
	return &Auth{users: users, secret: secret}
}

// ProtectRoute checks for a valid bearer token, resolves the caller and
// attaches the user document to the request context.
func (m *Auth) ProtectRoute(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Unauthorized - no token provided",
		})
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Unauthorized - invalid token format",
		})
	}

	decoded, err := lib.VerifyJWT(token, m.secret)
	if err != nil || decoded == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Unauthorized - invalid token",
		})
	}

	userID, ok := decoded["userId"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Unauthorized - invalid token",
		})
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Unauthorized - invalid user ID",
		})
	}

	user, err := m.users.FindByID(c.Context(), objectID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Unauthorized - user not found",
		})
	}

	c.Locals("user", *user)

	return c.Next()
}
