package product

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/meli-optimizer/internal/connection"
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
	app.Get("/api/v1/products", h.getListings)
	app.Post("/api/v1/products/sync", h.sync)
	app.Get("/api/v1/products/:id", h.getListing)
	app.Delete("/api/v1/products/:id", h.deleteListing)
}

func (h *Handler) getListings(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	listings, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(listings)
}

func (h *Handler) getListing(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	l, err := h.service.Get(userID, c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(l)
}

func (h *Handler) sync(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	conn, err := h.conns.Active(userID)
	if err != nil {
		if err == connection.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := h.service.Sync(c.UserContext(), userID, conn)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(result)
}

func (h *Handler) deleteListing(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Delete(userID, c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
