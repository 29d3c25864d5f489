package handlers_fiber

import (
	"net/http"

	"github.com/good-enough-software/team-builder/internal/mapper"
	api "github.com/good-enough-software/team-builder/internal/oapi"
	"github.com/gofiber/fiber/v2"
)

// PostBalance splits the roster into teams. An empty body uses the default threshold.
func (h *Handler) PostBalance(c *fiber.Ctx, sessionID string) error {
	var body api.PostBalanceJSONRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badBody(c)
		}
	}

	res, err := h.uc.Balance(c.Context(), sessionID, body.MaxImbalance)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToOAPIBalanceResult(res))
}
