package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemCatalog is an in-process Catalog. It backs the server when no database
// is configured and stands in for PostgreSQL in tests.
type MemCatalog struct {
	mu       sync.RWMutex
	videos   []CatalogVideo
	channels map[string]CatalogChannel
}

func NewMemCatalog() *MemCatalog {
	return &MemCatalog{channels: make(map[string]CatalogChannel)}
}

// AddVideo inserts or replaces a video row.
func (m *MemCatalog) AddVideo(v CatalogVideo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.videos {
		if m.videos[i].ID == v.ID {
			m.videos[i] = v
			return
		}
	}
	m.videos = append(m.videos, v)
}

// AddChannel inserts or replaces a channel row.
func (m *MemCatalog) AddChannel(ch CatalogChannel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[ch.ID] = ch
}

func (m *MemCatalog) Trending(ctx context.Context, limit int) ([]CatalogVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	public := m.publicVideos()
	sort.SliceStable(public, func(i, j int) bool { return public[i].Views > public[j].Views })
	return truncate(public, limit), nil
}

func (m *MemCatalog) ByCategory(ctx context.Context, category string, limit int) ([]CatalogVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []CatalogVideo
	for _, v := range m.publicVideos() {
		if strings.EqualFold(v.Category, category) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	return truncate(out, limit), nil
}

func (m *MemCatalog) Search(ctx context.Context, query string, limit int) ([]CatalogVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(query)
	var out []CatalogVideo
	for _, v := range m.publicVideos() {
		if strings.Contains(strings.ToLower(v.Title), q) ||
			strings.Contains(strings.ToLower(v.Description), q) ||
			strings.Contains(strings.ToLower(v.ChannelName), q) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	return truncate(out, limit), nil
}

func (m *MemCatalog) ByIDs(ctx context.Context, ids []string) ([]CatalogVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []CatalogVideo
	for _, v := range m.videos {
		if _, ok := want[v.ID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MemCatalog) ChannelByID(ctx context.Context, id string) (*CatalogChannel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.channels[id]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (m *MemCatalog) Counts(ctx context.Context) (int64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.videos)), int64(len(m.channels)), nil
}

// publicVideos returns a copy of the public rows; callers may reorder it.
func (m *MemCatalog) publicVideos() []CatalogVideo {
	out := make([]CatalogVideo, 0, len(m.videos))
	for _, v := range m.videos {
		if v.Visibility == "" || v.Visibility == "public" {
			out = append(out, v)
		}
	}
	return out
}

func truncate(videos []CatalogVideo, limit int) []CatalogVideo {
	if limit > 0 && len(videos) > limit {
		return videos[:limit]
	}
	return videos
}
