package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vailure/internal/chat"
	"vailure/internal/log"
	"vailure/internal/metrics"
	"vailure/internal/session"
	"vailure/internal/validate"
)

type ChatHandler struct {
	Sessions *session.Registry
}

type chatSubmitBody struct {
	Text         string `json:"text"`
	ThinkingMode bool   `json:"thinkingMode"`
}

// Open marks the widget opened (inserting the welcome message on a fresh
// transcript) and returns the transcript.
func (h *ChatHandler) Open(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	return c.JSON(fiber.Map{"messages": sess.Chat.Open()})
}

// Transcript returns the current transcript without touching it.
func (h *ChatHandler) Transcript(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	return c.JSON(fiber.Map{
		"messages": sess.Chat.Messages(),
		"busy":     sess.Chat.Busy(),
	})
}

// Submit sends one user turn to the assistant and returns the assistant
// message (the fixed fallback when the remote call fails). 400 on empty
// text, 409 while a prior request is still in flight.
func (h *ChatHandler) Submit(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)

	var body chatSubmitBody
	if err := c.BodyParser(&body); err != nil {
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	text, ok := validate.ChatText(body.Text)
	if !ok {
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message text required"})
	}

	msg, err := sess.Chat.Submit(c.UserContext(), text, body.ThinkingMode)
	switch {
	case errors.Is(err, chat.ErrBusy):
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a request is already in flight"})
	case errors.Is(err, chat.ErrEmpty):
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message text required"})
	case errors.Is(err, chat.ErrStale):
		// Superseded while resolving; the transcript already moved on.
		return c.SendStatus(fiber.StatusNoContent)
	case err != nil:
		log.Error(c, "chat.submit.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "chat unavailable"})
	}
	return c.JSON(fiber.Map{"message": msg})
}
