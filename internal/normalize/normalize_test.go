package normalize

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/youtube"
)

func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = orig })
}

func localFixture() repository.CatalogVideo {
	return repository.CatalogVideo{
		ID:                 "local-video-1",
		Title:              "A Local Video",
		Description:        "desc",
		ThumbnailURL:       "https://cdn.local/thumb.jpg",
		VideoURL:           "https://cdn.local/v.mp4",
		Views:              1234567,
		Likes:              4500,
		CommentCount:       120,
		Duration:           "4:13",
		PublishedAt:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Category:           "music",
		Tags:               []string{"a", "b"},
		Visibility:         "public",
		ChannelID:          "local-channel-1",
		ChannelName:        "Local Channel",
		ChannelSubscribers: 543000,
		ChannelVerified:    true,
	}
}

func externalFixture() youtube.Video {
	return youtube.Video{
		ID: "dQw4w9WgXcQ",
		Snippet: youtube.Snippet{
			PublishedAt:  "2024-05-01T00:00:00Z",
			ChannelID:    "UCabc",
			Title:        "An External Video",
			ChannelTitle: "External Channel",
			Tags:         []string{"x"},
		},
		Statistics: youtube.Statistics{
			ViewCount:    "1234567",
			LikeCount:    "4500",
			CommentCount: "120",
		},
		ContentDetails: youtube.ContentDetails{Duration: "PT4M13S"},
	}
}

func TestLocalVideo(t *testing.T) {
	pinNow(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	v, err := LocalVideo(localFixture())
	if err != nil {
		t.Fatalf("LocalVideo: %v", err)
	}

	if v.Source != model.SourceLocal {
		t.Errorf("Source = %q", v.Source)
	}
	if v.Duration != "4:13" {
		t.Errorf("Duration = %q, want 4:13", v.Duration)
	}
	if v.ViewsFormatted != "1.2M views" {
		t.Errorf("ViewsFormatted = %q", v.ViewsFormatted)
	}
	if v.Channel.SubscribersFormatted != "543K subscribers" {
		t.Errorf("SubscribersFormatted = %q", v.Channel.SubscribersFormatted)
	}
	if v.PublishedAt != "2024-05-01T00:00:00Z" {
		t.Errorf("PublishedAt = %q", v.PublishedAt)
	}
	if v.PublishedAtFormatted != "1 month ago" {
		t.Errorf("PublishedAtFormatted = %q", v.PublishedAtFormatted)
	}
	if v.IsShort {
		t.Error("4:13 video must not be short")
	}
}

func TestExternalVideo(t *testing.T) {
	pinNow(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	v, err := ExternalVideo(externalFixture(), nil)
	if err != nil {
		t.Fatalf("ExternalVideo: %v", err)
	}

	if v.Source != model.SourceExternal {
		t.Errorf("Source = %q", v.Source)
	}
	if v.Views != 1234567 {
		t.Errorf("Views = %d, want parsed from decimal string", v.Views)
	}
	if v.Duration != "4:13" {
		t.Errorf("Duration = %q, want 4:13", v.Duration)
	}
	if v.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("VideoURL = %q", v.VideoURL)
	}
	// No enrichment: channel keeps snippet name and safe defaults.
	if v.Channel.Name != "External Channel" || v.Channel.Subscribers != 0 {
		t.Errorf("channel defaults wrong: %+v", v.Channel)
	}
	if v.Channel.SubscribersFormatted != "0 subscribers" {
		t.Errorf("SubscribersFormatted = %q", v.Channel.SubscribersFormatted)
	}
}

func TestExternalVideo_ChannelEnrichment(t *testing.T) {
	ch := &youtube.Channel{
		ID: "UCabc",
		Snippet: youtube.ChannelSnippet{
			Title:      "Enriched Name",
			Thumbnails: youtube.Thumbnails{Default: youtube.Thumbnail{URL: "https://img/avatar.jpg"}},
		},
		Statistics: youtube.ChannelStatistics{SubscriberCount: "543000"},
	}

	v, err := ExternalVideo(externalFixture(), ch)
	if err != nil {
		t.Fatalf("ExternalVideo: %v", err)
	}
	if v.Channel.Name != "Enriched Name" {
		t.Errorf("Channel.Name = %q", v.Channel.Name)
	}
	if v.Channel.AvatarURL != "https://img/avatar.jpg" {
		t.Errorf("Channel.AvatarURL = %q", v.Channel.AvatarURL)
	}
	if v.Channel.Subscribers != 543000 {
		t.Errorf("Channel.Subscribers = %d", v.Channel.Subscribers)
	}
}

func TestNormalization_Idempotent(t *testing.T) {
	pinNow(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	first, err := LocalVideo(localFixture())
	if err != nil {
		t.Fatal(err)
	}
	second, err := LocalVideo(localFixture())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalizing the same record twice diverged:\n%+v\n%+v", first, second)
	}
}

func TestIsShortDerivation(t *testing.T) {
	tests := []struct {
		duration string
		want     bool
	}{
		{"PT45S", true},
		{"PT60S", true},
		{"PT61S", false},
		{"PT5M", false},
		{"PT0S", true},
		{"INVALID", true}, // unparseable normalizes to 0:00, which is short
	}

	for _, tt := range tests {
		raw := externalFixture()
		raw.ContentDetails.Duration = tt.duration
		v, err := ExternalVideo(raw, nil)
		if err != nil {
			t.Fatalf("ExternalVideo(%q): %v", tt.duration, err)
		}
		if v.IsShort != tt.want {
			t.Errorf("duration %q: IsShort = %v, want %v", tt.duration, v.IsShort, tt.want)
		}
	}
}

func TestMalformedRecords(t *testing.T) {
	noID := localFixture()
	noID.ID = ""
	if _, err := LocalVideo(noID); !errors.Is(err, ErrMalformed) {
		t.Errorf("missing id: err = %v, want ErrMalformed", err)
	}

	noTitle := externalFixture()
	noTitle.Snippet.Title = ""
	if _, err := ExternalVideo(noTitle, nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("missing title: err = %v, want ErrMalformed", err)
	}
}

func TestMissingOptionalFieldsDefaultSafely(t *testing.T) {
	raw := externalFixture()
	raw.Snippet.Tags = nil
	raw.Snippet.Description = ""
	raw.Statistics = youtube.Statistics{}
	raw.ContentDetails = youtube.ContentDetails{}
	raw.Snippet.PublishedAt = ""

	v, err := ExternalVideo(raw, nil)
	if err != nil {
		t.Fatalf("ExternalVideo: %v", err)
	}
	if v.Tags == nil || len(v.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", v.Tags)
	}
	if v.Views != 0 || v.Likes != 0 || v.CommentCount != 0 {
		t.Errorf("missing counts must default to 0: %+v", v)
	}
	if v.Duration != "0:00" {
		t.Errorf("Duration = %q, want 0:00", v.Duration)
	}
	if v.PublishedAtFormatted != "Just now" {
		t.Errorf("PublishedAtFormatted = %q", v.PublishedAtFormatted)
	}
}

func TestChannels(t *testing.T) {
	local, err := LocalChannel(repository.CatalogChannel{
		ID: "local-channel-1", Name: "Local", Subscribers: 1500, VideoCount: 10, TotalViews: 99,
	})
	if err != nil {
		t.Fatal(err)
	}
	if local.SubscribersFormatted != "1.5K subscribers" || local.Source != model.SourceLocal {
		t.Errorf("unexpected local channel: %+v", local)
	}

	ext, err := ExternalChannel(youtube.Channel{
		ID:         "UCabc",
		Snippet:    youtube.ChannelSnippet{Title: "Ext"},
		Statistics: youtube.ChannelStatistics{SubscriberCount: "2000000", VideoCount: "42", ViewCount: "12345"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ext.Subscribers != 2000000 || ext.VideoCount != 42 || ext.Source != model.SourceExternal {
		t.Errorf("unexpected external channel: %+v", ext)
	}

	if _, err := LocalChannel(repository.CatalogChannel{}); !errors.Is(err, ErrMalformed) {
		t.Errorf("channel without id must be malformed, got %v", err)
	}
}
