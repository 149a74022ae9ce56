package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Input length limits for the public API surface.
const (
	MaxVideoIDLen   = 512 // identifiers may arrive as full watch-page URLs
	MaxChannelIDLen = 64
	MaxQueryLen     = 200
	MaxCategoryLen  = 40
	MaxPatternLen   = 256
	MaxListLimit    = 100
)

var (
	// channelIDRe matches channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// categoryRe matches category names: letters, digits, spaces, ampersand.
	categoryRe = regexp.MustCompile(`^[A-Za-z0-9 &]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video identifier is present and bounded.
// Prefixed IDs and full video URLs are accepted here; the resolver decides
// what they mean.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 512 characters"
	}
	return id, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 64 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateSearchQuery trims and bounds a search query.
func ValidateSearchQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLen {
		return "", "q must be at most 200 characters"
	}
	return q, ""
}

// ValidateCategory checks an optional category filter.
func ValidateCategory(category string) (string, string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", ""
	}
	if len(category) > MaxCategoryLen {
		return "", "category must be at most 40 characters"
	}
	if !categoryRe.MatchString(category) {
		return "", "category contains invalid characters"
	}
	return category, ""
}

// ValidateLimit parses an optional limit query param. Empty returns 0,
// meaning the caller should fall back to the configured total limit.
func ValidateLimit(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "limit must be an integer"
	}
	if n < 1 || n > MaxListLimit {
		return 0, "limit must be between 1 and 100"
	}
	return n, ""
}

// ValidatePattern bounds a cache invalidation pattern. Empty means clear all.
func ValidatePattern(pattern string) (string, string) {
	pattern = strings.TrimSpace(pattern)
	if len(pattern) > MaxPatternLen {
		return "", "pattern must be at most 256 characters"
	}
	return pattern, ""
}
