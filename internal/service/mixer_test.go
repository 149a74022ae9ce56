package service

import (
	"testing"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
)

func vid(id string, src model.Source) model.Video {
	return model.Video{ID: id, Source: src}
}

func ids(videos []model.Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.ID
	}
	return out
}

func assertOrder(t *testing.T, got []model.Video, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	}
}

func TestMixRoundRobin(t *testing.T) {
	local := []model.Video{vid("L1", model.SourceLocal), vid("L2", model.SourceLocal)}
	external := []model.Video{vid("E1", model.SourceExternal), vid("E2", model.SourceExternal)}

	assertOrder(t, mixRoundRobin(local, external, 4), "L1", "E1", "L2", "E2")
}

func TestMixRoundRobin_LimitAndExhaustion(t *testing.T) {
	local := []model.Video{vid("L1", model.SourceLocal)}
	external := []model.Video{vid("E1", model.SourceExternal), vid("E2", model.SourceExternal), vid("E3", model.SourceExternal)}

	// Limit cuts mid-interleave.
	assertOrder(t, mixRoundRobin(local, external, 3), "L1", "E1", "E2")
	// A drained list lets the other run out the remainder.
	assertOrder(t, mixRoundRobin(local, external, 10), "L1", "E1", "E2", "E3")
	// Empty local starts with external.
	assertOrder(t, mixRoundRobin(nil, external, 2), "E1", "E2")
}

func TestMixByPriority(t *testing.T) {
	bySource := map[model.Source][]model.Video{
		model.SourceLocal:    {vid("L1", model.SourceLocal), vid("L2", model.SourceLocal)},
		model.SourceExternal: {vid("E1", model.SourceExternal), vid("E2", model.SourceExternal)},
	}

	got := mixByPriority(bySource, []model.Source{model.SourceLocal, model.SourceExternal}, 4)
	assertOrder(t, got, "L1", "L2", "E1", "E2")

	// Reversed priority consumes external first.
	got = mixByPriority(bySource, []model.Source{model.SourceExternal, model.SourceLocal}, 3)
	assertOrder(t, got, "E1", "E2", "L1")
}

func TestMixByRelevance(t *testing.T) {
	score := func(id string, views, likes, comments int64) model.Video {
		return model.Video{ID: id, Views: views, Likes: likes, CommentCount: comments}
	}
	// Scores: L1 = 100, L2 = 1000+50 = 1050, E1 = 500+250 = 750.
	local := []model.Video{score("L1", 100, 0, 0), score("L2", 1000, 5, 0)}
	external := []model.Video{score("E1", 500, 0, 50)}

	got := mixByRelevance(local, external, 10)
	assertOrder(t, got, "L2", "E1", "L1")
}

func TestMixByRelevance_StableTies(t *testing.T) {
	// Identical scores keep input order: local list first, then external.
	local := []model.Video{vid("L1", model.SourceLocal), vid("L2", model.SourceLocal)}
	external := []model.Video{vid("E1", model.SourceExternal)}

	got := mixByRelevance(local, external, 10)
	assertOrder(t, got, "L1", "L2", "E1")
}

func TestMix_DeduplicatesAcrossSources(t *testing.T) {
	// The same ID in both sources survives once; first occurrence wins.
	local := []model.Video{vid("X", model.SourceLocal), vid("L2", model.SourceLocal)}
	external := []model.Video{vid("X", model.SourceExternal), vid("E2", model.SourceExternal)}

	got := mixRoundRobin(local, external, 10)
	assertOrder(t, got, "X", "L2", "E2")
	if got[0].Source != model.SourceLocal {
		t.Errorf("first occurrence should win, got %s", got[0].Source)
	}

	got = mixByRelevance(local, external, 10)
	assertOrder(t, got, "X", "L2", "E2")
}

func TestMix_ZeroLimitMeansUnbounded(t *testing.T) {
	local := []model.Video{vid("L1", model.SourceLocal), vid("L2", model.SourceLocal)}
	if got := mixRoundRobin(local, nil, 0); len(got) != 2 {
		t.Errorf("limit 0 should not truncate, got %v", ids(got))
	}
}
