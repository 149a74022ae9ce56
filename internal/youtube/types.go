// Package youtube is a client for the external video platform's Data API.
// The wire types mirror the third-party schema: snippet/statistics/
// contentDetails groups, string-encoded counts, ISO-8601 durations.
package youtube

// Video is a raw video resource as returned by the videos endpoint. It is
// never exposed past the normalizer boundary.
type Video struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	Statistics     Statistics     `json:"statistics"`
	ContentDetails ContentDetails `json:"contentDetails"`
}

// Snippet carries the descriptive part of a video resource.
type Snippet struct {
	PublishedAt          string     `json:"publishedAt"`
	ChannelID            string     `json:"channelId"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Thumbnails           Thumbnails `json:"thumbnails"`
	ChannelTitle         string     `json:"channelTitle"`
	Tags                 []string   `json:"tags"`
	CategoryID           string     `json:"categoryId"`
	LiveBroadcastContent string     `json:"liveBroadcastContent"`
}

// Statistics carries the engagement counters. The API encodes them as
// decimal strings.
type Statistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	DislikeCount string `json:"dislikeCount"`
	CommentCount string `json:"commentCount"`
}

// ContentDetails carries the ISO-8601 duration ("PT#H#M#S").
type ContentDetails struct {
	Duration string `json:"duration"`
}

// Thumbnails holds the available thumbnail renditions.
type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// BestURL prefers the highest-resolution rendition present.
func (t Thumbnails) BestURL() string {
	switch {
	case t.High.URL != "":
		return t.High.URL
	case t.Medium.URL != "":
		return t.Medium.URL
	default:
		return t.Default.URL
	}
}

// Channel is a raw channel resource as returned by the channels endpoint.
type Channel struct {
	ID         string            `json:"id"`
	Snippet    ChannelSnippet    `json:"snippet"`
	Statistics ChannelStatistics `json:"statistics"`
}

// ChannelSnippet carries the descriptive part of a channel resource.
type ChannelSnippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CustomURL   string     `json:"customUrl"`
	Thumbnails  Thumbnails `json:"thumbnails"`
}

// ChannelStatistics carries channel counters, string-encoded like video
// statistics.
type ChannelStatistics struct {
	ViewCount       string `json:"viewCount"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

// Internal response envelopes.

type videoListResponse struct {
	Items []Video `json:"items"`
}

type channelListResponse struct {
	Items []Channel `json:"items"`
}

type searchListResponse struct {
	Items []searchResult `json:"items"`
}

type searchResult struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}
