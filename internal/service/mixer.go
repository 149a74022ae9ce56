package service

import (
	"sort"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
)

// Mixing merges the per-source normalized candidate lists into one ordered
// slice, truncated to limit (limit <= 0 means no truncation). All strategies
// deduplicate IDs appearing in both sources: the first occurrence in the
// strategy's own visit order wins.

// mixRoundRobin interleaves element by element, local first, until the limit
// is reached or both lists are exhausted.
func mixRoundRobin(local, external []model.Video, limit int) []model.Video {
	out := make([]model.Video, 0, len(local)+len(external))
	seen := make(map[string]struct{})

	for i := 0; i < len(local) || i < len(external); i++ {
		if i < len(local) {
			out = appendUnique(out, local[i], seen)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
		if i < len(external) {
			out = appendUnique(out, external[i], seen)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// mixByPriority consumes sources whole in priority order, filling up to the
// limit from each before moving to the next.
func mixByPriority(bySource map[model.Source][]model.Video, priority []model.Source, limit int) []model.Video {
	out := make([]model.Video, 0)
	seen := make(map[string]struct{})

	for _, src := range priority {
		for _, v := range bySource[src] {
			out = appendUnique(out, v, seen)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// mixByRelevance concatenates both lists (local first), sorts descending by
// engagement score, and truncates. The sort is stable, so ties keep their
// input order.
func mixByRelevance(local, external []model.Video, limit int) []model.Video {
	merged := make([]model.Video, 0, len(local)+len(external))
	seen := make(map[string]struct{})
	for _, v := range local {
		merged = appendUnique(merged, v, seen)
	}
	for _, v := range external {
		merged = appendUnique(merged, v, seen)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return relevanceScore(merged[i]) > relevanceScore(merged[j])
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// relevanceScore weighs engagement: a like is worth ten views, a comment five.
func relevanceScore(v model.Video) int64 {
	return v.Views + v.Likes*10 + v.CommentCount*5
}

func appendUnique(out []model.Video, v model.Video, seen map[string]struct{}) []model.Video {
	if _, dup := seen[v.ID]; dup {
		return out
	}
	seen[v.ID] = struct{}{}
	return append(out, v)
}
