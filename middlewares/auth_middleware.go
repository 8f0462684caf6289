package middlewares

import (
	"strings"

	"fiber-shop-api/configs"
	"fiber-shop-api/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware verifies the bearer token and stores the authenticated user
// id in Locals. Everything downstream trusts that id as the cart owner key.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "No auth token, access denied")
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return unauthorized(c, "Invalid authorization header format")
	}

	claims := &jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(bearerToken[1], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.EnvJWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return unauthorized(c, "Token verification failed, access denied")
	}

	userId, ok := (*claims)["id"].(string)
	if !ok || userId == "" {
		return unauthorized(c, "User ID not found in token")
	}
	c.Locals("userId", userId)

	if userType, ok := (*claims)["type"].(string); ok {
		c.Locals("userType", userType)
	}

	return c.Next()
}

// AdminOnly gates admin endpoints. Must run after AuthMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	if userType, ok := c.Locals("userType").(string); !ok || userType != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(responses.APIResponse{
			Success: false,
			Message: "Admin access required",
		})
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
		Success: false,
		Message: message,
	})
}
