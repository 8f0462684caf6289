package responses

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope every endpoint returns. Clients branch on
// Success for business outcomes, not on the HTTP status alone.
type APIResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *fiber.Map `json:"data,omitempty"`
}
