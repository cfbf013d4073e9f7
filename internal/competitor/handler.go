package competitor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/connection"
	"github.com/wichananm65/meli-optimizer/internal/meli"
	"github.com/wichananm65/meli-optimizer/internal/user"
)

// ActiveConnections resolves the caller's MELI connection.
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
	app.Get("/api/v1/similar-products", h.getSimilarProducts)
}

func (h *Handler) getSimilarProducts(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product_id is required"})
	}

	conn, err := h.conns.Active(userID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Analyze(c.UserContext(), conn.AccessToken, productID)
	if err != nil {
		var apiErr *meli.APIError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.StatusCode).JSON(fiber.Map{"error": "failed to fetch product " + productID})
		}
		zap.L().Error("competitor analysis failed", zap.String("item_id", productID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(report)
}
