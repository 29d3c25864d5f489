package handlers_fiber

import (
	"net/http"

	api "github.com/good-enough-software/team-builder/internal/oapi"
	"github.com/gofiber/fiber/v2"
)

// PostPlayer appends a player with the default skill level.
func (h *Handler) PostPlayer(c *fiber.Ctx, sessionID string) error {
	var body api.PostPlayerJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	s, err := h.uc.AddPlayer(c.Context(), sessionID, body.Name)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusCreated, s)
}

// PostPlayersFill tops the roster up with generated players.
func (h *Handler) PostPlayersFill(c *fiber.Ctx, sessionID string) error {
	s, err := h.uc.FillRoster(c.Context(), sessionID)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusOK, s)
}

// PatchPlayer sets the skill level of the player at index.
func (h *Handler) PatchPlayer(c *fiber.Ctx, sessionID string, index int) error {
	var body api.PatchPlayerJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	if body.SkillLevel == nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "skill_level is required"))
	}

	s, err := h.uc.UpdateSkill(c.Context(), sessionID, index, *body.SkillLevel)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusOK, s)
}

// DeletePlayer removes the player at index.
func (h *Handler) DeletePlayer(c *fiber.Ctx, sessionID string, index int) error {
	s, err := h.uc.RemovePlayer(c.Context(), sessionID, index)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusOK, s)
}

// PostReset clears roster and teams.
func (h *Handler) PostReset(c *fiber.Ctx, sessionID string) error {
	s, err := h.uc.Reset(c.Context(), sessionID)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusOK, s)
}
