package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/middleware"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
)

type CacheHandler struct {
	agg *service.Aggregator
}

func NewCacheHandler(agg *service.Aggregator) *CacheHandler {
	return &CacheHandler{agg: agg}
}

// Clear handles DELETE /api/cache?pattern=X. Without a pattern the whole
// result cache is cleared.
func (h *CacheHandler) Clear(c fiber.Ctx) error {
	pattern, errMsg := middleware.ValidatePattern(fiber.Query[string](c, "pattern"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PATTERN", errMsg)
	}

	h.agg.ClearCache(c.Context(), pattern)

	return c.JSON(fiber.Map{
		"cleared": true,
		"pattern": pattern,
	})
}
