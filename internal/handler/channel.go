package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/middleware"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
)

type ChannelHandler struct {
	agg *service.Aggregator
}

func NewChannelHandler(agg *service.Aggregator) *ChannelHandler {
	return &ChannelHandler{agg: agg}
}

// GetByID handles GET /api/channels/:channelId
func (h *ChannelHandler) GetByID(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL_ID", errMsg)
	}

	channel := h.agg.GetChannelByID(c.Context(), id)
	if channel == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
	}

	return c.JSON(channel)
}
