package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nikhilsahni/resume-radar/internal/models"
	"nikhilsahni/resume-radar/internal/services"
)

type ChatHandler struct {
	chat     services.ChatService
	validate *validator.Validate
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		validate: validator.New(),
	}
}

// HandleChat handles POST /chat
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	response, err := h.chat.Respond(c.UserContext(), req.Message, req.ResumeText, req.JDText)
	if err != nil {
		return err
	}

	return c.JSON(models.ChatResponse{Response: response})
}
