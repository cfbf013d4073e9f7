package optimization

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/ai"
	"github.com/wichananm65/meli-optimizer/internal/connection"
	"github.com/wichananm65/meli-optimizer/internal/product"
	"github.com/wichananm65/meli-optimizer/internal/user"
)

type ActiveConnections interface {
	Active(userID int) (connection.Connection, error)
}

type Handler struct {
	service *Service
	conns   ActiveConnections
}

func NewHandler(service *Service, conns ActiveConnections) *Handler {
	return &Handler{service: service, conns: conns}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products/:id/optimize", h.optimize)
	app.Get("/api/v1/products/:id/suggestions", h.getSuggestions)
}

func (h *Handler) optimize(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	// Trends are optional, so a missing connection only drops them.
	var token string
	if conn, err := h.conns.Active(userID); err == nil {
		token = conn.AccessToken
	}

	s, err := h.service.Optimize(c.UserContext(), userID, c.Params("id"), token)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrNoProvider):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, product.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		default:
			zap.L().Warn("optimization failed", zap.String("item_id", c.Params("id")), zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *Handler) getSuggestions(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	history, err := h.service.History(userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(history)
}
