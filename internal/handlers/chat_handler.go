package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Ask forwards the user's message to the assistant. Upstream failures are
// absorbed: the client gets a 200 with a localized apology, never a 5xx.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reply, err := h.chatService.Ask(req.Message, req.Language)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("assistant request failed", "error", err)
		return c.JSON(dto.ChatResponse{Response: services.FallbackMessage(req.Language)})
	}

	return c.JSON(dto.ChatResponse{Response: reply})
}
