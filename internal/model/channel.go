package model

// Channel is the canonical, source-independent channel record.
type Channel struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	AvatarURL            string `json:"avatarUrl"`
	BannerURL            string `json:"bannerUrl"`
	Subscribers          int64  `json:"subscribers"`
	SubscribersFormatted string `json:"subscribersFormatted"`
	VideoCount           int64  `json:"videoCount"`
	TotalViews           int64  `json:"totalViews"`
	IsVerified           bool   `json:"isVerified"`
	Source               Source `json:"source"`
}

// Summary collapses a full channel record into the form embedded in videos.
func (c *Channel) Summary() ChannelSummary {
	return ChannelSummary{
		ID:                   c.ID,
		Name:                 c.Name,
		AvatarURL:            c.AvatarURL,
		Subscribers:          c.Subscribers,
		SubscribersFormatted: c.SubscribersFormatted,
		IsVerified:           c.IsVerified,
	}
}
