// Package adapter wraps the two backing sources behind a uniform fetch
// surface. Each adapter owns a short-lived burst cache and absorbs upstream
// failures on the list paths: a broken source yields zero results and a
// logged warning, never an error the aggregator has to handle.
package adapter

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/cache"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/pkg/hash"
)

// burstTTL bounds how long identical upstream calls are served from the
// adapter's own cache. Long enough to absorb a burst (e.g. repeated channel
// lookups while normalizing one result page), short enough to stay out of
// the aggregator's way.
const burstTTL = 30 * time.Second

// Local fetches raw records from the local catalog.
type Local struct {
	catalog repository.Catalog
	burst   *cache.Store
}

func NewLocal(catalog repository.Catalog) *Local {
	return &Local{catalog: catalog, burst: cache.New(burstTTL)}
}

// Trending returns the catalog's most viewed public videos. Failures are
// absorbed into an empty result.
func (a *Local) Trending(ctx context.Context, limit int) []repository.CatalogVideo {
	key := hash.Signature("local-trending", strconv.Itoa(limit))
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]repository.CatalogVideo)
	}
	videos, err := a.catalog.Trending(ctx, limit)
	if err != nil {
		log.Printf("local adapter: trending fetch failed: %v", err)
		return []repository.CatalogVideo{}
	}
	a.burst.Set(key, videos)
	return videos
}

// ByCategory returns public catalog videos in a category; failures absorbed.
func (a *Local) ByCategory(ctx context.Context, category string, limit int) []repository.CatalogVideo {
	key := hash.Signature("local-category", category, strconv.Itoa(limit))
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]repository.CatalogVideo)
	}
	videos, err := a.catalog.ByCategory(ctx, category, limit)
	if err != nil {
		log.Printf("local adapter: category fetch failed: %v", err)
		return []repository.CatalogVideo{}
	}
	a.burst.Set(key, videos)
	return videos
}

// Search runs a free-text catalog search; failures absorbed.
func (a *Local) Search(ctx context.Context, query string, limit int) []repository.CatalogVideo {
	key := hash.Signature("local-search", query, strconv.Itoa(limit))
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]repository.CatalogVideo)
	}
	videos, err := a.catalog.Search(ctx, query, limit)
	if err != nil {
		log.Printf("local adapter: search %q failed: %v", query, err)
		return []repository.CatalogVideo{}
	}
	a.burst.Set(key, videos)
	return videos
}

// ByIDs fetches specific videos. Unlike the list paths the error propagates:
// the aggregator needs to distinguish "source broken" from "not found" on
// by-ID lookups before falling back to the other source.
func (a *Local) ByIDs(ctx context.Context, ids []string) ([]repository.CatalogVideo, error) {
	key := hash.Signature("local-ids", strings.Join(ids, ","))
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]repository.CatalogVideo), nil
	}
	videos, err := a.catalog.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	a.burst.Set(key, videos)
	return videos, nil
}

// Channel fetches a single channel row; nil means not found.
func (a *Local) Channel(ctx context.Context, id string) (*repository.CatalogChannel, error) {
	key := hash.Signature("local-channel", id)
	if hit, ok := a.burst.Get(key); ok {
		return hit.(*repository.CatalogChannel), nil
	}
	ch, err := a.catalog.ChannelByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch != nil {
		a.burst.Set(key, ch)
	}
	return ch, nil
}
