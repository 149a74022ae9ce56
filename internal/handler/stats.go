package handler

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
)

type StatsHandler struct {
	agg     *service.Aggregator
	catalog repository.Catalog
}

func NewStatsHandler(agg *service.Aggregator, catalog repository.Catalog) *StatsHandler {
	return &StatsHandler{agg: agg, catalog: catalog}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats := h.agg.Stats()

	resp := fiber.Map{
		"cache": fiber.Map{
			"hits":    stats.CacheHits,
			"misses":  stats.CacheMisses,
			"entries": stats.CacheEntries,
		},
		"droppedRecords": stats.DroppedRecords,
	}

	// Catalog counts are best-effort: the endpoint stays useful when the
	// database is unreachable.
	if h.catalog != nil {
		videos, channels, err := h.catalog.Counts(c.Context())
		if err != nil {
			log.Printf("stats: catalog counts failed: %v", err)
		} else {
			resp["catalog"] = fiber.Map{
				"videos":   videos,
				"channels": channels,
			}
		}
	}

	return c.JSON(resp)
}
