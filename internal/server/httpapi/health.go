package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct{ store Pinger }

func NewHealthHandler(store Pinger) *HealthHandler { return &HealthHandler{store: store} }

// Live: the process is up.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// Ready: the store answers a ping within a second.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 1*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
