package adapter

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/cache"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/youtube"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/pkg/hash"
)

// PlatformAPI is the slice of the platform client the adapter consumes;
// narrowed to an interface so tests can fail calls on demand.
type PlatformAPI interface {
	MostPopular(ctx context.Context, limit int, categoryID string) ([]youtube.Video, error)
	Search(ctx context.Context, query string, limit int) ([]youtube.Video, error)
	VideosByIDs(ctx context.Context, ids []string) ([]youtube.Video, error)
	ChannelByID(ctx context.Context, id string) (*youtube.Channel, error)
}

// External fetches raw records from the third-party platform API.
type External struct {
	api   PlatformAPI
	burst *cache.Store
}

func NewExternal(api PlatformAPI) *External {
	return &External{api: api, burst: cache.New(burstTTL)}
}

// Trending returns the platform's most popular chart; failures absorbed.
func (a *External) Trending(ctx context.Context, limit int, categoryID string) []youtube.Video {
	key := hash.Signature("ext-trending", strconv.Itoa(limit), categoryID)
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]youtube.Video)
	}
	videos, err := a.api.MostPopular(ctx, limit, categoryID)
	if err != nil {
		log.Printf("external adapter: trending fetch failed: %v", err)
		return []youtube.Video{}
	}
	a.burst.Set(key, videos)
	return videos
}

// Search runs a platform search; failures absorbed.
func (a *External) Search(ctx context.Context, query string, limit int) []youtube.Video {
	key := hash.Signature("ext-search", query, strconv.Itoa(limit))
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]youtube.Video)
	}
	videos, err := a.api.Search(ctx, query, limit)
	if err != nil {
		log.Printf("external adapter: search %q failed: %v", query, err)
		return []youtube.Video{}
	}
	a.burst.Set(key, videos)
	return videos
}

// ByIDs fetches specific platform videos; the error propagates for by-ID
// lookups (see Local.ByIDs).
func (a *External) ByIDs(ctx context.Context, ids []string) ([]youtube.Video, error) {
	key := hash.Signature("ext-ids", strings.Join(ids, ","))
	if hit, ok := a.burst.Get(key); ok {
		return hit.([]youtube.Video), nil
	}
	videos, err := a.api.VideosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	a.burst.Set(key, videos)
	return videos, nil
}

// Channel fetches a platform channel; nil means not found. The burst cache
// matters most here: one page of videos from a single channel triggers the
// same lookup once per video.
func (a *External) Channel(ctx context.Context, id string) (*youtube.Channel, error) {
	key := hash.Signature("ext-channel", id)
	if hit, ok := a.burst.Get(key); ok {
		return hit.(*youtube.Channel), nil
	}
	ch, err := a.api.ChannelByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch != nil {
		a.burst.Set(key, ch)
	}
	return ch, nil
}
