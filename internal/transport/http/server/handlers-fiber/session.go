package handlers_fiber

import (
	"net/http"

	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/good-enough-software/team-builder/internal/mapper"
	"github.com/gofiber/fiber/v2"
)

// PostSession creates an empty session.
func (h *Handler) PostSession(c *fiber.Ctx) error {
	s, err := h.uc.CreateSession(c.Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusCreated, s)
}

// GetSession returns roster and teams of a session.
func (h *Handler) GetSession(c *fiber.Ctx, sessionID string) error {
	s, err := h.uc.Session(c.Context(), sessionID)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusOK, s)
}

// DeleteSession drops a session with its stored state.
func (h *Handler) DeleteSession(c *fiber.Ctx, sessionID string) error {
	if err := h.uc.DeleteSession(c.Context(), sessionID); err != nil {
		return h.writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) sessionJSON(c *fiber.Ctx, status int, s *entities.Session) error {
	return c.Status(status).JSON(mapper.ToOAPISession(*s, h.uc.RequiredSize()))
}
