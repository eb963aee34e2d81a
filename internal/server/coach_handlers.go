package server

import (
	"nabta/internal/coach"
	"nabta/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CoachChat handles POST /api/coach/chat. The request carries the running
// conversation; the response is the coach's next reply.
func (s *Server) CoachChat(c *fiber.Ctx) error {
	var req struct {
		Messages []coach.Message `json:"messages"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.coach.Chat(c.Context(), req.Messages)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": coach.Message{Role: "assistant", Content: reply},
	})
}
