package repository

import (
	"context"
	"time"
)

// CatalogVideo is a raw video row from the local catalog, channel fields
// denormalized. It is source-shaped and never leaves the normalizer boundary.
type CatalogVideo struct {
	ID                 string
	Title              string
	Description        string
	ThumbnailURL       string
	VideoURL           string
	Views              int64
	Likes              int64
	Dislikes           int64
	CommentCount       int64
	Duration           string // clock form, e.g. "4:13" or "1:02:03"
	PublishedAt        time.Time
	Category           string
	Tags               []string
	IsLive             bool
	Visibility         string
	ChannelID          string
	ChannelName        string
	ChannelAvatarURL   string
	ChannelSubscribers int64
	ChannelVerified    bool
}

// CatalogChannel is a raw channel row from the local catalog.
type CatalogChannel struct {
	ID          string
	Name        string
	Description string
	AvatarURL   string
	BannerURL   string
	Subscribers int64
	VideoCount  int64
	TotalViews  int64
	Verified    bool
}

// Catalog is the contract the local source adapter consumes. Implementations:
// CatalogRepo (PostgreSQL) and MemCatalog (in-process, used without a
// database and in tests).
type Catalog interface {
	Trending(ctx context.Context, limit int) ([]CatalogVideo, error)
	ByCategory(ctx context.Context, category string, limit int) ([]CatalogVideo, error)
	Search(ctx context.Context, query string, limit int) ([]CatalogVideo, error)
	ByIDs(ctx context.Context, ids []string) ([]CatalogVideo, error)
	ChannelByID(ctx context.Context, id string) (*CatalogChannel, error)
	Counts(ctx context.Context) (videos, channels int64, err error)
}
