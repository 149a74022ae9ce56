package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/adapter"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/cache"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/normalize"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/resolver"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/youtube"
)

// Filters narrows a list request. A nil *Filters means "whatever the current
// config says".
type Filters struct {
	Sources  []model.Source // overrides config's enabled sources when set
	Category string
	Type     string // "short" or "live"
}

// Aggregator composes both sources into unified responses. It owns the
// runtime aggregation config and its result cache; constructing one per
// process preserves singleton behavior while tests build isolated instances.
//
// The list operations never fail: a broken source contributes zero
// candidates and the envelope is still returned. By-ID operations return nil
// on a miss from both sources, never an error.
type Aggregator struct {
	local    *adapter.Local
	external *adapter.External
	edge     *EdgeCache
	results  *cache.Store

	mu  sync.RWMutex
	cfg model.AggregationConfig

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	dropped     atomic.Int64
}

// NewAggregator wires the adapters and caches together. external and edge
// may be nil: a nil external adapter behaves as a permanently disabled
// source, a nil edge cache as a no-op.
func NewAggregator(local *adapter.Local, external *adapter.External, edge *EdgeCache, cfg model.AggregationConfig) *Aggregator {
	if edge == nil {
		edge = &EdgeCache{}
	}
	results := cache.New(cfg.Caching.TTL)
	results.SetEnabled(cfg.Caching.Enabled)
	return &Aggregator{
		local:    local,
		external: external,
		edge:     edge,
		results:  results,
		cfg:      cfg,
	}
}

// Config returns a copy of the current aggregation config.
func (a *Aggregator) Config() model.AggregationConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()
	cfg := a.cfg
	cfg.Mixing.SourcePriority = append([]model.Source(nil), a.cfg.Mixing.SourcePriority...)
	return cfg
}

// UpdateConfig merges the patch into the current config and swaps the result
// in atomically. An invalid merge is rejected whole: the previous config
// stays in effect.
func (a *Aggregator) UpdateConfig(patch *model.ConfigPatch) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	merged := patch.Merge(a.cfg)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("config update rejected: %w", err)
	}
	a.cfg = merged
	a.results.SetEnabled(merged.Caching.Enabled)
	a.results.SetTTL(merged.Caching.TTL)
	return nil
}

// ClearCache drops cached responses from both cache layers. An empty pattern
// clears everything.
func (a *Aggregator) ClearCache(ctx context.Context, pattern string) {
	a.results.Invalidate(pattern)
	a.edge.Invalidate(ctx, pattern)
}

// GetTrendingVideos returns the mixed trending feed.
func (a *Aggregator) GetTrendingVideos(ctx context.Context, limit int, f *Filters) *model.VideoListResponse {
	return a.list(ctx, "trending", "", limit, f, false)
}

// SearchVideos returns mixed free-text search results. A blank query
// delegates to trending.
func (a *Aggregator) SearchVideos(ctx context.Context, query string, limit int, f *Filters) *model.VideoListResponse {
	query = strings.TrimSpace(query)
	if query == "" {
		return a.GetTrendingVideos(ctx, limit, f)
	}
	return a.list(ctx, "search", query, limit, f, false)
}

// GetShortsVideos is trending narrowed to short-form videos.
func (a *Aggregator) GetShortsVideos(ctx context.Context, limit int) *model.VideoListResponse {
	return a.list(ctx, "shorts", "", limit, &Filters{Type: "short"}, false)
}

// RefreshTrending recomputes the default trending response and replaces the
// cached copy, skipping the cache read. Used by the warm worker.
func (a *Aggregator) RefreshTrending(ctx context.Context) {
	a.list(ctx, "trending", "", 0, nil, true)
}

// GetVideoByID resolves the identifier, queries the indicated source first
// and falls back to the other one. Returns nil when both miss.
func (a *Aggregator) GetVideoByID(ctx context.Context, id string) *model.Video {
	r := resolver.Resolve(id)
	key := fmt.Sprintf("video:%s:%s", r.Source, r.CanonicalID)

	if hit, ok := a.results.Get(key); ok {
		a.cacheHits.Add(1)
		return hit.(*model.Video)
	}
	var edged model.Video
	if a.edge.GetVideo(ctx, string(r.Source)+":"+r.CanonicalID, &edged) {
		a.cacheHits.Add(1)
		a.results.Set(key, &edged)
		return &edged
	}
	a.cacheMisses.Add(1)

	for _, src := range sourceOrder(r.Source) {
		v := a.videoFrom(ctx, src, r.CanonicalID)
		if v != nil {
			a.results.Set(key, v)
			a.edge.SetVideo(ctx, string(r.Source)+":"+r.CanonicalID, v)
			return v
		}
	}
	return nil
}

// GetChannelByID is the channel counterpart of GetVideoByID.
func (a *Aggregator) GetChannelByID(ctx context.Context, id string) *model.Channel {
	r := resolver.Resolve(id)
	key := fmt.Sprintf("channel:%s:%s", r.Source, r.CanonicalID)

	if hit, ok := a.results.Get(key); ok {
		a.cacheHits.Add(1)
		return hit.(*model.Channel)
	}
	var edged model.Channel
	if a.edge.GetChannel(ctx, string(r.Source)+":"+r.CanonicalID, &edged) {
		a.cacheHits.Add(1)
		a.results.Set(key, &edged)
		return &edged
	}
	a.cacheMisses.Add(1)

	for _, src := range sourceOrder(r.Source) {
		ch := a.channelFrom(ctx, src, r.CanonicalID)
		if ch != nil {
			a.results.Set(key, ch)
			a.edge.SetChannel(ctx, string(r.Source)+":"+r.CanonicalID, ch)
			return ch
		}
	}
	return nil
}

// InvalidateVideos drops cached responses affected by catalog changes to the
// given video IDs, list caches included. Called by the invalidation worker.
func (a *Aggregator) InvalidateVideos(ctx context.Context, ids []string) {
	for _, id := range ids {
		a.results.Invalidate(regexp.QuoteMeta(id))
		a.edge.Invalidate(ctx, id)
	}
	a.results.Invalidate(`^(trending|search|shorts):`)
}

// Stats is a snapshot of the aggregator's cache counters.
type Stats struct {
	CacheHits      int64 `json:"cacheHits"`
	CacheMisses    int64 `json:"cacheMisses"`
	CacheEntries   int   `json:"cacheEntries"`
	DroppedRecords int64 `json:"droppedRecords"`
}

func (a *Aggregator) Stats() Stats {
	return Stats{
		CacheHits:      a.cacheHits.Load(),
		CacheMisses:    a.cacheMisses.Load(),
		CacheEntries:   a.results.Len(),
		DroppedRecords: a.dropped.Load(),
	}
}

// list is the shared trending/search path: cache check, concurrent source
// fetches, normalization, mixing, envelope.
func (a *Aggregator) list(ctx context.Context, op, query string, limit int, f *Filters, skipCacheRead bool) *model.VideoListResponse {
	cfg := a.Config()
	if limit <= 0 {
		limit = cfg.Limits.Total
	}
	active := a.activeSources(cfg, f)
	key := listKey(op, query, limit, active, f)

	if !skipCacheRead {
		if hit, ok := a.results.Get(key); ok {
			a.cacheHits.Add(1)
			return hit.(*model.VideoListResponse)
		}
		a.cacheMisses.Add(1)
	}

	// Fan out to every active source; each outcome is collected
	// independently so one source's failure never aborts another's.
	results := make(map[model.Source]sourceResult, len(active))
	var (
		wg sync.WaitGroup
		rm sync.Mutex
	)
	for _, src := range active {
		wg.Add(1)
		go func(src model.Source) {
			defer wg.Done()
			res := a.fetchSource(ctx, src, op, query, f, cfg)
			rm.Lock()
			results[src] = res
			rm.Unlock()
		}(src)
	}
	wg.Wait()

	mixed := a.mix(results, cfg, limit)

	resp := &model.VideoListResponse{
		Data:    mixed,
		Sources: make(map[model.Source]model.SourceStat, len(results)),
	}
	for src, res := range results {
		resp.Sources[src] = model.SourceStat{Count: len(res.videos), HasMore: res.hasMore}
		resp.TotalCount += len(res.videos)
		if res.hasMore {
			resp.HasMore = true
		}
	}
	if len(mixed) < resp.TotalCount {
		resp.HasMore = true
	}

	a.results.Set(key, resp)
	return resp
}

type sourceResult struct {
	videos  []model.Video
	hasMore bool
}

func (a *Aggregator) fetchSource(ctx context.Context, src model.Source, op, query string, f *Filters, cfg model.AggregationConfig) sourceResult {
	switch src {
	case model.SourceLocal:
		return a.fetchLocal(ctx, op, query, f, cfg)
	case model.SourceExternal:
		return a.fetchExternal(ctx, op, query, f, cfg)
	}
	return sourceResult{}
}

func (a *Aggregator) fetchLocal(ctx context.Context, op, query string, f *Filters, cfg model.AggregationConfig) sourceResult {
	limit := perSourceLimit(cfg.Limits.Local, cfg.Limits.Total)

	var raw []repository.CatalogVideo
	switch {
	case op == "search":
		raw = a.local.Search(ctx, query, limit)
	case f != nil && f.Category != "":
		raw = a.local.ByCategory(ctx, f.Category, limit)
	default:
		raw = a.local.Trending(ctx, limit)
	}

	videos := make([]model.Video, 0, len(raw))
	for _, rec := range raw {
		v, err := normalize.LocalVideo(rec)
		if err != nil {
			a.dropped.Add(1)
			log.Printf("aggregator: dropping local record: %v", err)
			continue
		}
		videos = append(videos, v)
	}
	videos = applyTypeFilter(videos, f)
	return sourceResult{videos: videos, hasMore: len(raw) >= limit && limit > 0}
}

func (a *Aggregator) fetchExternal(ctx context.Context, op, query string, f *Filters, cfg model.AggregationConfig) sourceResult {
	limit := perSourceLimit(cfg.Limits.External, cfg.Limits.Total)

	var raw []youtube.Video
	switch {
	case op == "search":
		raw = a.external.Search(ctx, query, limit)
	default:
		raw = a.external.Trending(ctx, limit, externalCategoryID(f))
	}

	channels := a.enrichChannels(ctx, raw)

	videos := make([]model.Video, 0, len(raw))
	for _, rec := range raw {
		v, err := normalize.ExternalVideo(rec, channels[rec.Snippet.ChannelID])
		if err != nil {
			a.dropped.Add(1)
			log.Printf("aggregator: dropping external record: %v", err)
			continue
		}
		videos = append(videos, v)
	}
	videos = applyTypeFilter(videos, f)
	return sourceResult{videos: videos, hasMore: len(raw) >= limit && limit > 0}
}

// enrichChannels fetches channel resources for the distinct channel IDs in
// the batch. Best-effort: a failed lookup leaves a nil entry and the
// normalizer falls back to snippet data.
func (a *Aggregator) enrichChannels(ctx context.Context, raw []youtube.Video) map[string]*youtube.Channel {
	channels := make(map[string]*youtube.Channel)
	for _, rec := range raw {
		id := rec.Snippet.ChannelID
		if id == "" {
			continue
		}
		if _, done := channels[id]; done {
			continue
		}
		ch, err := a.external.Channel(ctx, id)
		if err != nil {
			log.Printf("aggregator: channel enrichment for %s failed: %v", id, err)
			ch = nil
		}
		channels[id] = ch
	}
	return channels
}

func (a *Aggregator) mix(results map[model.Source]sourceResult, cfg model.AggregationConfig, limit int) []model.Video {
	local := results[model.SourceLocal].videos
	external := results[model.SourceExternal].videos

	switch cfg.Mixing.Strategy {
	case model.MixSourcePriority:
		bySource := map[model.Source][]model.Video{
			model.SourceLocal:    local,
			model.SourceExternal: external,
		}
		priority := cfg.Mixing.SourcePriority
		if len(priority) == 0 {
			priority = []model.Source{model.SourceLocal, model.SourceExternal}
		}
		return mixByPriority(bySource, priority, limit)
	case model.MixRelevance:
		return mixByRelevance(local, external, limit)
	default:
		return mixRoundRobin(local, external, limit)
	}
}

// videoFrom fetches and normalizes one video from one source. Errors are
// absorbed into a miss so the caller can fall back to the other source.
func (a *Aggregator) videoFrom(ctx context.Context, src model.Source, id string) *model.Video {
	switch src {
	case model.SourceLocal:
		recs, err := a.local.ByIDs(ctx, []string{id})
		if err != nil {
			log.Printf("aggregator: local video lookup %s failed: %v", id, err)
			return nil
		}
		if len(recs) == 0 {
			return nil
		}
		v, err := normalize.LocalVideo(recs[0])
		if err != nil {
			a.dropped.Add(1)
			log.Printf("aggregator: dropping local record: %v", err)
			return nil
		}
		return &v
	case model.SourceExternal:
		if a.external == nil {
			return nil
		}
		recs, err := a.external.ByIDs(ctx, []string{id})
		if err != nil {
			log.Printf("aggregator: external video lookup %s failed: %v", id, err)
			return nil
		}
		if len(recs) == 0 {
			return nil
		}
		channels := a.enrichChannels(ctx, recs[:1])
		v, err := normalize.ExternalVideo(recs[0], channels[recs[0].Snippet.ChannelID])
		if err != nil {
			a.dropped.Add(1)
			log.Printf("aggregator: dropping external record: %v", err)
			return nil
		}
		return &v
	}
	return nil
}

func (a *Aggregator) channelFrom(ctx context.Context, src model.Source, id string) *model.Channel {
	switch src {
	case model.SourceLocal:
		rec, err := a.local.Channel(ctx, id)
		if err != nil {
			log.Printf("aggregator: local channel lookup %s failed: %v", id, err)
			return nil
		}
		if rec == nil {
			return nil
		}
		ch, err := normalize.LocalChannel(*rec)
		if err != nil {
			a.dropped.Add(1)
			return nil
		}
		return &ch
	case model.SourceExternal:
		if a.external == nil {
			return nil
		}
		rec, err := a.external.Channel(ctx, id)
		if err != nil {
			log.Printf("aggregator: external channel lookup %s failed: %v", id, err)
			return nil
		}
		if rec == nil {
			return nil
		}
		ch, err := normalize.ExternalChannel(*rec)
		if err != nil {
			a.dropped.Add(1)
			return nil
		}
		return &ch
	}
	return nil
}

// activeSources resolves the source set for one request: explicit filter
// override first, then the config's enabled flags. A source without a wired
// adapter is never active.
func (a *Aggregator) activeSources(cfg model.AggregationConfig, f *Filters) []model.Source {
	enabled := map[model.Source]bool{
		model.SourceLocal:    cfg.Sources.Local && a.local != nil,
		model.SourceExternal: cfg.Sources.External && a.external != nil,
	}
	if f != nil && len(f.Sources) > 0 {
		enabled = map[model.Source]bool{
			model.SourceLocal:    a.local != nil,
			model.SourceExternal: a.external != nil,
		}
		want := make(map[model.Source]bool)
		for _, s := range f.Sources {
			want[s] = true
		}
		for src := range enabled {
			enabled[src] = enabled[src] && want[src]
		}
	}

	var active []model.Source
	for _, src := range []model.Source{model.SourceLocal, model.SourceExternal} {
		if enabled[src] {
			active = append(active, src)
		}
	}
	return active
}

func sourceOrder(first model.Source) []model.Source {
	if first == model.SourceExternal {
		return []model.Source{model.SourceExternal, model.SourceLocal}
	}
	return []model.Source{model.SourceLocal, model.SourceExternal}
}

func applyTypeFilter(videos []model.Video, f *Filters) []model.Video {
	if f == nil || f.Type == "" {
		return videos
	}
	out := videos[:0:0]
	for _, v := range videos {
		switch f.Type {
		case "short":
			if v.IsShort {
				out = append(out, v)
			}
		case "live":
			if v.IsLive {
				out = append(out, v)
			}
		default:
			out = append(out, v)
		}
	}
	return out
}

func perSourceLimit(sourceLimit, totalLimit int) int {
	if sourceLimit > 0 {
		return sourceLimit
	}
	return totalLimit
}

func listKey(op, query string, limit int, active []model.Source, f *Filters) string {
	names := make([]string, len(active))
	for i, s := range active {
		names[i] = string(s)
	}
	sort.Strings(names)

	category, typ := "", ""
	if f != nil {
		category, typ = f.Category, f.Type
	}
	return fmt.Sprintf("%s:q=%s:limit=%d:sources=%s:category=%s:type=%s",
		op, query, limit, strings.Join(names, ","), category, typ)
}

// externalCategoryID passes the category through to the platform only when
// it already looks like a platform category ID (numeric). Local category
// names mean nothing to the external API.
func externalCategoryID(f *Filters) string {
	if f == nil || f.Category == "" {
		return ""
	}
	for _, r := range f.Category {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return f.Category
}
