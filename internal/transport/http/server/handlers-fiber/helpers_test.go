package handlers_fiber

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/good-enough-software/team-builder/internal/entities"
	api "github.com/good-enough-software/team-builder/internal/oapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    api.ErrorResponseErrorCode
		message string
	}{
		{"invalid argument", fmt.Errorf("%w: name is required", entities.ErrInvalidArgument), http.StatusBadRequest, api.INVALIDARGUMENT, "invalid argument: name is required"},
		{"share data", fmt.Errorf("%w: no teams", entities.ErrInvalidShareData), http.StatusBadRequest, api.INVALIDSHAREDATA, "invalid share data: no teams"},
		{"session", entities.ErrSessionNotFound, http.StatusNotFound, api.NOTFOUND, "session not found"},
		{"player", entities.ErrPlayerNotFound, http.StatusNotFound, api.NOTFOUND, "player not found"},
		{"roster full", entities.ErrRosterFull, http.StatusConflict, api.ROSTERFULL, "roster is full"},
		{"input size", fmt.Errorf("%w: got 4", entities.ErrInvalidInputSize), http.StatusConflict, api.ROSTERINCOMPLETE, "invalid input size: got 4"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, api.INTERNAL, "internal error"},
	}

	h := &Handler{log: zap.NewNop().Sugar()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return h.writeError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
			require.Equal(t, tt.message, body.Error.Message)
		})
	}
}
