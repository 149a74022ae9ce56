package adapter

import (
	"context"
	"fmt"
	"testing"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/youtube"
)

// failingCatalog errors on every call.
type failingCatalog struct{}

func (failingCatalog) Trending(context.Context, int) ([]repository.CatalogVideo, error) {
	return nil, fmt.Errorf("db down")
}
func (failingCatalog) ByCategory(context.Context, string, int) ([]repository.CatalogVideo, error) {
	return nil, fmt.Errorf("db down")
}
func (failingCatalog) Search(context.Context, string, int) ([]repository.CatalogVideo, error) {
	return nil, fmt.Errorf("db down")
}
func (failingCatalog) ByIDs(context.Context, []string) ([]repository.CatalogVideo, error) {
	return nil, fmt.Errorf("db down")
}
func (failingCatalog) ChannelByID(context.Context, string) (*repository.CatalogChannel, error) {
	return nil, fmt.Errorf("db down")
}
func (failingCatalog) Counts(context.Context) (int64, int64, error) {
	return 0, 0, fmt.Errorf("db down")
}

// countingAPI counts platform calls and can be told to fail.
type countingAPI struct {
	calls int
	fail  bool
}

func (c *countingAPI) video() []youtube.Video {
	return []youtube.Video{{ID: "dQw4w9WgXcQ", Snippet: youtube.Snippet{Title: "t", ChannelID: "UCabc"}}}
}

func (c *countingAPI) MostPopular(context.Context, int, string) ([]youtube.Video, error) {
	c.calls++
	if c.fail {
		return nil, fmt.Errorf("api down")
	}
	return c.video(), nil
}
func (c *countingAPI) Search(context.Context, string, int) ([]youtube.Video, error) {
	c.calls++
	if c.fail {
		return nil, fmt.Errorf("api down")
	}
	return c.video(), nil
}
func (c *countingAPI) VideosByIDs(context.Context, []string) ([]youtube.Video, error) {
	c.calls++
	if c.fail {
		return nil, fmt.Errorf("api down")
	}
	return c.video(), nil
}
func (c *countingAPI) ChannelByID(_ context.Context, id string) (*youtube.Channel, error) {
	c.calls++
	if c.fail {
		return nil, fmt.Errorf("api down")
	}
	return &youtube.Channel{ID: id}, nil
}

func TestLocal_ListFailuresAbsorbed(t *testing.T) {
	a := NewLocal(failingCatalog{})
	ctx := context.Background()

	if got := a.Trending(ctx, 10); len(got) != 0 {
		t.Errorf("Trending on broken catalog = %v, want empty", got)
	}
	if got := a.Search(ctx, "q", 10); len(got) != 0 {
		t.Errorf("Search on broken catalog = %v, want empty", got)
	}
	if got := a.ByCategory(ctx, "music", 10); len(got) != 0 {
		t.Errorf("ByCategory on broken catalog = %v, want empty", got)
	}
}

func TestLocal_ByIDErrorPropagates(t *testing.T) {
	a := NewLocal(failingCatalog{})
	if _, err := a.ByIDs(context.Background(), []string{"x"}); err == nil {
		t.Error("ByIDs must propagate catalog errors")
	}
	if _, err := a.Channel(context.Background(), "x"); err == nil {
		t.Error("Channel must propagate catalog errors")
	}
}

func TestExternal_BurstCache(t *testing.T) {
	api := &countingAPI{}
	a := NewExternal(api)
	ctx := context.Background()

	a.Trending(ctx, 10, "")
	a.Trending(ctx, 10, "")
	if api.calls != 1 {
		t.Errorf("identical trending burst hit the API %d times, want 1", api.calls)
	}

	// Different arguments are distinct keys.
	a.Trending(ctx, 20, "")
	if api.calls != 2 {
		t.Errorf("calls = %d, want 2 after a different limit", api.calls)
	}
}

func TestExternal_ChannelBurstCache(t *testing.T) {
	api := &countingAPI{}
	a := NewExternal(api)
	ctx := context.Background()

	// One page of videos from the same channel: one upstream lookup.
	for range 5 {
		if _, err := a.Channel(ctx, "UCabc"); err != nil {
			t.Fatal(err)
		}
	}
	if api.calls != 1 {
		t.Errorf("channel burst hit the API %d times, want 1", api.calls)
	}
}

func TestExternal_ListFailuresAbsorbed(t *testing.T) {
	api := &countingAPI{fail: true}
	a := NewExternal(api)
	ctx := context.Background()

	if got := a.Trending(ctx, 10, ""); len(got) != 0 {
		t.Errorf("Trending on broken API = %v, want empty", got)
	}
	if got := a.Search(ctx, "q", 10); len(got) != 0 {
		t.Errorf("Search on broken API = %v, want empty", got)
	}
	if _, err := a.ByIDs(ctx, []string{"x"}); err == nil {
		t.Error("ByIDs must propagate API errors")
	}
}

func TestLocal_MemCatalogRoundTrip(t *testing.T) {
	cat := repository.NewMemCatalog()
	cat.AddVideo(repository.CatalogVideo{ID: "v1", Title: "First", Views: 100})
	cat.AddVideo(repository.CatalogVideo{ID: "v2", Title: "Second", Views: 200})
	a := NewLocal(cat)

	got := a.Trending(context.Background(), 10)
	if len(got) != 2 {
		t.Fatalf("got %d videos, want 2", len(got))
	}
	if got[0].ID != "v2" {
		t.Errorf("trending order wrong: %s first, want v2 (more views)", got[0].ID)
	}
}
