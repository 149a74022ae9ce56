package model

// Source identifies which backing system a canonical record originated from.
type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// Visibility is the publication state of a video.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityUnlisted  Visibility = "unlisted"
	VisibilityPrivate   Visibility = "private"
	VisibilityScheduled Visibility = "scheduled"
)

// Video is the canonical, source-independent video record. Instances are
// built once by the normalizer and treated as immutable by callers.
type Video struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	ThumbnailURL         string         `json:"thumbnailUrl"`
	VideoURL             string         `json:"videoUrl"`
	Views                int64          `json:"views"`
	ViewsFormatted       string         `json:"viewsFormatted"`
	Likes                int64          `json:"likes"`
	Dislikes             int64          `json:"dislikes"`
	CommentCount         int64          `json:"commentCount"`
	Channel              ChannelSummary `json:"channel"`
	Duration             string         `json:"duration"`    // "m:ss" or "h:mm:ss"
	PublishedAt          string         `json:"publishedAt"` // RFC3339
	PublishedAtFormatted string         `json:"publishedAtFormatted"`
	Category             string         `json:"category"`
	Tags                 []string       `json:"tags"`
	IsLive               bool           `json:"isLive"`
	IsShort              bool           `json:"isShort"`
	Visibility           Visibility     `json:"visibility"`
	Source               Source         `json:"source"`
}

// ChannelSummary is the channel sub-object embedded in a video record.
type ChannelSummary struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	AvatarURL            string `json:"avatarUrl"`
	Subscribers          int64  `json:"subscribers"`
	SubscribersFormatted string `json:"subscribersFormatted"`
	IsVerified           bool   `json:"isVerified"`
}
