package api

import "github.com/gofiber/fiber/v2"

// ServerInterface lists the handlers of the HTTP contract.
type ServerInterface interface {
	PostSession(c *fiber.Ctx) error
	GetSession(c *fiber.Ctx, sessionID string) error
	DeleteSession(c *fiber.Ctx, sessionID string) error
	PostPlayer(c *fiber.Ctx, sessionID string) error
	PostPlayersFill(c *fiber.Ctx, sessionID string) error
	PatchPlayer(c *fiber.Ctx, sessionID string, index int) error
	DeletePlayer(c *fiber.Ctx, sessionID string, index int) error
	PostReset(c *fiber.Ctx, sessionID string) error
	PostBalance(c *fiber.Ctx, sessionID string) error
	PostShare(c *fiber.Ctx, sessionID string) error
	PostImport(c *fiber.Ctx, sessionID string) error
	GetView(c *fiber.Ctx) error
}

// RegisterHandlers mounts every route of si on router.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Post("/sessions", si.PostSession)
	router.Get("/sessions/:id", withSession(si.GetSession))
	router.Delete("/sessions/:id", withSession(si.DeleteSession))
	router.Post("/sessions/:id/players", withSession(si.PostPlayer))
	router.Post("/sessions/:id/players/fill", withSession(si.PostPlayersFill))
	router.Patch("/sessions/:id/players/:index", withPlayer(si.PatchPlayer))
	router.Delete("/sessions/:id/players/:index", withPlayer(si.DeletePlayer))
	router.Post("/sessions/:id/reset", withSession(si.PostReset))
	router.Post("/sessions/:id/balance", withSession(si.PostBalance))
	router.Post("/sessions/:id/share", withSession(si.PostShare))
	router.Post("/sessions/:id/import", withSession(si.PostImport))
	router.Get("/view", si.GetView)
}

func withSession(h func(*fiber.Ctx, string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h(c, c.Params("id"))
	}
}

func withPlayer(h func(*fiber.Ctx, string, int) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil {
			var body ErrorResponse
			body.Error.Code = INVALIDARGUMENT
			body.Error.Message = "index must be a non-negative integer"
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
		return h(c, c.Params("id"), index)
	}
}
