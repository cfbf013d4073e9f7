package keyword

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/connection"
	"github.com/wichananm65/meli-optimizer/internal/meli"
	"github.com/wichananm65/meli-optimizer/internal/product"
	"github.com/wichananm65/meli-optimizer/internal/user"
)

type ActiveConnections interface {
	Active(userID int) (connection.Connection, error)
}

type Listings interface {
	Get(userID int, id string) (product.Listing, error)
}

type Handler struct {
	cache    *Cache
	conns    ActiveConnections
	listings Listings
}

func NewHandler(cache *Cache, conns ActiveConnections, listings Listings) *Handler {
	return &Handler{cache: cache, conns: conns, listings: listings}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/keywords/trending", h.getTrending)
	app.Get("/api/v1/products/:id/keywords", h.getListingKeywords)
}

func (h *Handler) getTrending(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	categoryID := c.Query("category_id")
	if categoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "category_id is required"})
	}

	conn, err := h.conns.Active(userID)
	if err != nil {
		return connectionError(c, err)
	}

	trends, err := h.cache.Trending(c.UserContext(), conn.AccessToken, categoryID)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"categoryId": categoryID, "keywords": trends})
}

func (h *Handler) getListingKeywords(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	listing, err := h.listings.Get(userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	conn, err := h.conns.Active(userID)
	if err != nil {
		return connectionError(c, err)
	}

	trends, err := h.cache.Trending(c.UserContext(), conn.AccessToken, listing.CategoryID)
	if err != nil {
		return upstreamError(c, err)
	}

	scores := ScoreTitle(listing.Title, Keywords(trends))
	return c.JSON(fiber.Map{"keywords": scores, "missing": Missing(scores)})
}

// Keywords extracts the search terms of trends, in order.
func Keywords(trends []meli.Trend) []string {
	out := make([]string, 0, len(trends))
	for _, t := range trends {
		out = append(out, t.Keyword)
	}
	return out
}

func connectionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, connection.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}

func upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *meli.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": apiErr.Error()})
	}
	zap.L().Error("trends lookup failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
