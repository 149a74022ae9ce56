package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/middleware"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
)

type ConfigHandler struct {
	agg *service.Aggregator
}

func NewConfigHandler(agg *service.Aggregator) *ConfigHandler {
	return &ConfigHandler{agg: agg}
}

// Get handles GET /api/config
func (h *ConfigHandler) Get(c fiber.Ctx) error {
	return c.JSON(h.agg.Config())
}

// Patch handles PATCH /api/config. Fields absent from the body keep their
// current values; the merged config is applied as a whole or not at all.
func (h *ConfigHandler) Patch(c fiber.Ctx) error {
	var patch model.ConfigPatch
	if err := c.Bind().JSON(&patch); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON config patch")
	}

	if err := h.agg.UpdateConfig(&patch); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CONFIG", err.Error())
	}

	return c.JSON(h.agg.Config())
}
