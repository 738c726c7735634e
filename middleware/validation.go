package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/shared"
)

// ValidateContactForm rejects malformed contact submissions at the edge with
// a specific reason, before the request reaches the service layer. The
// service re-validates; this only keeps junk out of the pipeline early.
// Checks run in order: presence, email shape, message length.
func ValidateContactForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CreateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return shared.ResponseBadRequest(c, "All fields are required")
		}

		if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
			return shared.ResponseBadRequest(c, "All fields are required")
		}

		if !dto.IsValidEmail(req.Email) {
			return shared.ResponseBadRequest(c, "Invalid email format")
		}

		if len(strings.TrimSpace(req.Message)) < dto.MinMessageLength {
			return shared.ResponseBadRequest(c, "Message must be at least 10 characters")
		}

		return c.Next()
	}
}
