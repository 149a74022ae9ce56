package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/middleware"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
)

type VideoHandler struct {
	agg *service.Aggregator
}

func NewVideoHandler(agg *service.Aggregator) *VideoHandler {
	return &VideoHandler{agg: agg}
}

// Trending handles GET /api/videos/trending?limit=N&category=X&sources=local,external
func (h *VideoHandler) Trending(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	category, errMsg := middleware.ValidateCategory(fiber.Query[string](c, "category"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY", errMsg)
	}

	filters, errMsg := parseFilters(c)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SOURCES", errMsg)
	}
	filters.Category = category

	return c.JSON(h.agg.GetTrendingVideos(c.Context(), limit, filters))
}

// Search handles GET /api/videos/search?q=X&limit=N
func (h *VideoHandler) Search(c fiber.Ctx) error {
	query, errMsg := middleware.ValidateSearchQuery(fiber.Query[string](c, "q"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	filters, errMsg := parseFilters(c)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SOURCES", errMsg)
	}

	return c.JSON(h.agg.SearchVideos(c.Context(), query, limit, filters))
}

// Shorts handles GET /api/videos/shorts?limit=N
func (h *VideoHandler) Shorts(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	return c.JSON(h.agg.GetShortsVideos(c.Context(), limit))
}

// GetByID handles GET /api/videos/:videoId
func (h *VideoHandler) GetByID(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	video := h.agg.GetVideoByID(c.Context(), id)
	if video == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
	}

	return c.JSON(video)
}

// parseFilters reads the optional sources override from the query string.
// A nil result means the configured source set applies.
func parseFilters(c fiber.Ctx) (*service.Filters, string) {
	raw := strings.TrimSpace(fiber.Query[string](c, "sources"))
	if raw == "" {
		return &service.Filters{}, ""
	}

	var sources []model.Source
	for _, part := range strings.Split(raw, ",") {
		switch model.Source(strings.TrimSpace(part)) {
		case model.SourceLocal:
			sources = append(sources, model.SourceLocal)
		case model.SourceExternal:
			sources = append(sources, model.SourceExternal)
		default:
			return nil, "sources must be a comma-separated list of local, external"
		}
	}
	return &service.Filters{Sources: sources}, ""
}
