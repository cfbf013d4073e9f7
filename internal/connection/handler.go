package connection

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/meli-optimizer/internal/user"
)

type Handler struct {
	service *Service
}

type saveRequest struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	MeliUserID   int64     `json:"meliUserId"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type statusResponse struct {
	Connected  bool       `json:"connected"`
	MeliUserID int64      `json:"meliUserId,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/v1/meli/connection", h.save)
	app.Get("/api/v1/meli/connection", h.status)
	app.Delete("/api/v1/meli/connection", h.disconnect)
}

func (h *Handler) save(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(saveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.AccessToken == "" || payload.MeliUserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "accessToken and meliUserId are required"})
	}

	saved, err := h.service.Save(Connection{
		UserID:       userID,
		MeliUserID:   payload.MeliUserID,
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    payload.ExpiresAt,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(redact(saved))
}

func (h *Handler) status(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	conn, err := h.service.Active(userID)
	if err != nil {
		if err == ErrNotFound {
			return c.JSON(statusResponse{Connected: false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	resp := statusResponse{Connected: true, MeliUserID: conn.MeliUserID}
	if !conn.ExpiresAt.IsZero() {
		resp.ExpiresAt = &conn.ExpiresAt
	}
	return c.JSON(resp)
}

func (h *Handler) disconnect(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Disconnect(userID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func redact(conn Connection) Connection {
	conn.AccessToken = ""
	conn.RefreshToken = ""
	return conn
}
