// Package normalize maps source-shaped raw records into the canonical video
// and channel shapes. The per-source functions are pure: everything they
// need arrives as an argument, and a malformed record yields an error rather
// than a partial result.
package normalize

import (
	"errors"
	"fmt"
	"time"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/youtube"
)

// ErrMalformed marks a raw record that cannot be normalized. Batch callers
// drop the offending record and continue.
var ErrMalformed = errors.New("malformed record")

// shortMaxSeconds is the duration ceiling for the isShort derivation. The
// flag is always recomputed here; source-supplied short markers are ignored.
// An unparseable duration normalizes to 0 seconds and counts as short.
const shortMaxSeconds = 60

// nowFn is swapped out in tests to pin relative-time output.
var nowFn = time.Now

// LocalVideo normalizes a local catalog row.
func LocalVideo(rec repository.CatalogVideo) (model.Video, error) {
	if rec.ID == "" {
		return model.Video{}, fmt.Errorf("%w: local video without id", ErrMalformed)
	}
	if rec.Title == "" {
		return model.Video{}, fmt.Errorf("%w: local video %s without title", ErrMalformed, rec.ID)
	}

	seconds := ParseDurationSeconds(rec.Duration)
	visibility := model.Visibility(rec.Visibility)
	switch visibility {
	case model.VisibilityPublic, model.VisibilityUnlisted, model.VisibilityPrivate, model.VisibilityScheduled:
	default:
		visibility = model.VisibilityPublic
	}

	return model.Video{
		ID:             rec.ID,
		Title:          rec.Title,
		Description:    rec.Description,
		ThumbnailURL:   rec.ThumbnailURL,
		VideoURL:       rec.VideoURL,
		Views:          nonNegative(rec.Views),
		ViewsFormatted: FormatCount(nonNegative(rec.Views), "views"),
		Likes:          nonNegative(rec.Likes),
		Dislikes:       nonNegative(rec.Dislikes),
		CommentCount:   nonNegative(rec.CommentCount),
		Channel: model.ChannelSummary{
			ID:                   rec.ChannelID,
			Name:                 rec.ChannelName,
			AvatarURL:            rec.ChannelAvatarURL,
			Subscribers:          nonNegative(rec.ChannelSubscribers),
			SubscribersFormatted: FormatCount(nonNegative(rec.ChannelSubscribers), "subscribers"),
			IsVerified:           rec.ChannelVerified,
		},
		Duration:             FormatDuration(seconds),
		PublishedAt:          rec.PublishedAt.UTC().Format(time.RFC3339),
		PublishedAtFormatted: RelativeTime(rec.PublishedAt, nowFn()),
		Category:             rec.Category,
		Tags:                 copyTags(rec.Tags),
		IsLive:               rec.IsLive,
		IsShort:              seconds <= shortMaxSeconds,
		Visibility:           visibility,
		Source:               model.SourceLocal,
	}, nil
}

// ExternalVideo normalizes a platform API video resource. The channel
// argument is the optional enrichment fetch; nil leaves the channel
// sub-object with safe defaults taken from the video snippet.
func ExternalVideo(v youtube.Video, ch *youtube.Channel) (model.Video, error) {
	if v.ID == "" {
		return model.Video{}, fmt.Errorf("%w: external video without id", ErrMalformed)
	}
	if v.Snippet.Title == "" {
		return model.Video{}, fmt.Errorf("%w: external video %s without title", ErrMalformed, v.ID)
	}

	seconds := ParseDurationSeconds(v.ContentDetails.Duration)
	views := ParseCount(v.Statistics.ViewCount)

	channel := model.ChannelSummary{
		ID:                   v.Snippet.ChannelID,
		Name:                 v.Snippet.ChannelTitle,
		SubscribersFormatted: FormatCount(0, "subscribers"),
	}
	if ch != nil {
		subs := ParseCount(ch.Statistics.SubscriberCount)
		channel.Name = ch.Snippet.Title
		channel.AvatarURL = ch.Snippet.Thumbnails.BestURL()
		channel.Subscribers = subs
		channel.SubscribersFormatted = FormatCount(subs, "subscribers")
	}

	publishedAt := ""
	publishedAtFormatted := "Just now"
	if ts, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
		publishedAt = ts.UTC().Format(time.RFC3339)
		publishedAtFormatted = RelativeTime(ts, nowFn())
	}

	return model.Video{
		ID:                   v.ID,
		Title:                v.Snippet.Title,
		Description:          v.Snippet.Description,
		ThumbnailURL:         v.Snippet.Thumbnails.BestURL(),
		VideoURL:             "https://www.youtube.com/watch?v=" + v.ID,
		Views:                views,
		ViewsFormatted:       FormatCount(views, "views"),
		Likes:                ParseCount(v.Statistics.LikeCount),
		Dislikes:             ParseCount(v.Statistics.DislikeCount),
		CommentCount:         ParseCount(v.Statistics.CommentCount),
		Channel:              channel,
		Duration:             FormatDuration(seconds),
		PublishedAt:          publishedAt,
		PublishedAtFormatted: publishedAtFormatted,
		Category:             v.Snippet.CategoryID,
		Tags:                 copyTags(v.Snippet.Tags),
		IsLive:               v.Snippet.LiveBroadcastContent == "live",
		IsShort:              seconds <= shortMaxSeconds,
		Visibility:           model.VisibilityPublic,
		Source:               model.SourceExternal,
	}, nil
}

// LocalChannel normalizes a local catalog channel row.
func LocalChannel(rec repository.CatalogChannel) (model.Channel, error) {
	if rec.ID == "" {
		return model.Channel{}, fmt.Errorf("%w: local channel without id", ErrMalformed)
	}

	subs := nonNegative(rec.Subscribers)
	return model.Channel{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Description:          rec.Description,
		AvatarURL:            rec.AvatarURL,
		BannerURL:            rec.BannerURL,
		Subscribers:          subs,
		SubscribersFormatted: FormatCount(subs, "subscribers"),
		VideoCount:           nonNegative(rec.VideoCount),
		TotalViews:           nonNegative(rec.TotalViews),
		IsVerified:           rec.Verified,
		Source:               model.SourceLocal,
	}, nil
}

// ExternalChannel normalizes a platform API channel resource.
func ExternalChannel(ch youtube.Channel) (model.Channel, error) {
	if ch.ID == "" {
		return model.Channel{}, fmt.Errorf("%w: external channel without id", ErrMalformed)
	}

	subs := ParseCount(ch.Statistics.SubscriberCount)
	return model.Channel{
		ID:                   ch.ID,
		Name:                 ch.Snippet.Title,
		Description:          ch.Snippet.Description,
		AvatarURL:            ch.Snippet.Thumbnails.BestURL(),
		Subscribers:          subs,
		SubscribersFormatted: FormatCount(subs, "subscribers"),
		VideoCount:           ParseCount(ch.Statistics.VideoCount),
		TotalViews:           ParseCount(ch.Statistics.ViewCount),
		IsVerified:           false,
		Source:               model.SourceExternal,
	}, nil
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return append([]string(nil), tags...)
}
