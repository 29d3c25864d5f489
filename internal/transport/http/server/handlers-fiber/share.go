package handlers_fiber

import (
	"net/http"

	"github.com/good-enough-software/team-builder/internal/mapper"
	api "github.com/good-enough-software/team-builder/internal/oapi"
	"github.com/gofiber/fiber/v2"
)

// PostShare produces a view link for the roster or the teams.
func (h *Handler) PostShare(c *fiber.Ctx, sessionID string) error {
	var body api.PostShareJSONRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badBody(c)
		}
	}

	link, err := h.uc.Share(c.Context(), sessionID, mapper.FromOAPIShareRequest(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToOAPIShareLink(link))
}

// PostImport loads a view link into the session.
func (h *Handler) PostImport(c *fiber.Ctx, sessionID string) error {
	var body api.PostImportJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	s, err := h.uc.Import(c.Context(), sessionID, body.Url)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.sessionJSON(c, http.StatusOK, s)
}

// GetView decodes the view document carried by the query string.
func (h *Handler) GetView(c *fiber.Ctx) error {
	query := string(c.Request().URI().QueryString())

	view, err := h.uc.View(c.Context(), query)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToOAPIView(view))
}
