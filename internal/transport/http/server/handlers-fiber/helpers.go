package handlers_fiber

import (
	"errors"
	"net/http"

	"github.com/good-enough-software/team-builder/internal/entities"
	api "github.com/good-enough-software/team-builder/internal/oapi"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "path", c.Path(), "error", err)
	} else {
		h.log.Debugw("request rejected", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(errorResponse(code, msg))
}

func classify(err error) (int, api.ErrorResponseErrorCode, string) {
	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		return http.StatusBadRequest, api.INVALIDARGUMENT, err.Error()
	case errors.Is(err, entities.ErrInvalidShareData):
		return http.StatusBadRequest, api.INVALIDSHAREDATA, err.Error()
	case errors.Is(err, entities.ErrSessionNotFound):
		return http.StatusNotFound, api.NOTFOUND, "session not found"
	case errors.Is(err, entities.ErrPlayerNotFound):
		return http.StatusNotFound, api.NOTFOUND, "player not found"
	case errors.Is(err, entities.ErrRosterFull):
		return http.StatusConflict, api.ROSTERFULL, "roster is full"
	case errors.Is(err, entities.ErrInvalidInputSize):
		return http.StatusConflict, api.ROSTERINCOMPLETE, err.Error()
	default:
		return http.StatusInternalServerError, api.INTERNAL, "internal error"
	}
}

func errorResponse(code api.ErrorResponseErrorCode, msg string) api.ErrorResponse {
	var resp api.ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

func badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
}
