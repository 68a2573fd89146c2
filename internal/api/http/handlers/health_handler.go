package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/resolvehub/issue-desk/internal/persistence"
)

// Pinger is a storage backend that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	driver      string
	storage     Pinger
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance. storage may be nil for the
// flat-file driver, which has no connection to check.
func NewHealthHandler(serviceName, version, driver string, storage Pinger, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, driver: driver, storage: storage, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness of the storage driver and Redis. Redis left
// unconfigured is reported as disabled and does not fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if h.storage == nil {
		depStatus[h.driver] = "ok"
	} else if err := h.storage.Ping(ctx); err != nil {
		depStatus[h.driver] = err.Error()
		ready = false
	} else {
		depStatus[h.driver] = "ok"
	}

	if err := h.redis.Ping(ctx); errors.Is(err, persistence.ErrRedisDisabled) {
		depStatus["redis"] = "disabled"
	} else if err != nil {
		depStatus["redis"] = err.Error()
		ready = false
	} else {
		depStatus["redis"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
