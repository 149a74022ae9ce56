package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const videoColumns = `
	v.video_id, v.title, v.description, v.thumbnail_url, v.video_url,
	v.views, v.likes, v.dislikes, v.comment_count,
	v.duration, v.published_at, v.category, v.tags, v.is_live, v.visibility,
	c.channel_id, c.name, c.avatar_url, c.subscribers, c.verified`

const videoFrom = `
	FROM videos v
	JOIN channels c ON c.channel_id = v.channel_id`

// CatalogRepo is the PostgreSQL-backed local catalog.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// Trending returns public videos ordered by view count.
func (r *CatalogRepo) Trending(ctx context.Context, limit int) ([]CatalogVideo, error) {
	query := `SELECT` + videoColumns + videoFrom + `
		WHERE v.visibility = 'public'
		ORDER BY v.views DESC
		LIMIT $1`
	return r.queryVideos(ctx, query, limit)
}

// ByCategory returns public videos in a category, most viewed first.
func (r *CatalogRepo) ByCategory(ctx context.Context, category string, limit int) ([]CatalogVideo, error) {
	query := `SELECT` + videoColumns + videoFrom + `
		WHERE v.visibility = 'public' AND v.category = $1
		ORDER BY v.views DESC
		LIMIT $2`
	return r.queryVideos(ctx, query, category, limit)
}

// Search matches the query against title, description and channel name.
func (r *CatalogRepo) Search(ctx context.Context, query string, limit int) ([]CatalogVideo, error) {
	sql := `SELECT` + videoColumns + videoFrom + `
		WHERE v.visibility = 'public'
		  AND (v.title ILIKE '%' || $1 || '%'
		       OR v.description ILIKE '%' || $1 || '%'
		       OR c.name ILIKE '%' || $1 || '%')
		ORDER BY v.views DESC
		LIMIT $2`
	return r.queryVideos(ctx, sql, query, limit)
}

// ByIDs returns the videos matching the given IDs, in no particular order.
func (r *CatalogRepo) ByIDs(ctx context.Context, ids []string) ([]CatalogVideo, error) {
	if len(ids) == 0 {
		return []CatalogVideo{}, nil
	}
	query := `SELECT` + videoColumns + videoFrom + `
		WHERE v.video_id = ANY($1)`
	return r.queryVideos(ctx, query, ids)
}

// ChannelByID returns a single channel, or nil when none matches.
func (r *CatalogRepo) ChannelByID(ctx context.Context, id string) (*CatalogChannel, error) {
	query := `
		SELECT channel_id, name, description, avatar_url, banner_url,
		       subscribers, video_count, total_views, verified
		FROM channels
		WHERE channel_id = $1`

	var ch CatalogChannel
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.Name, &ch.Description, &ch.AvatarURL, &ch.BannerURL,
		&ch.Subscribers, &ch.VideoCount, &ch.TotalViews, &ch.Verified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// Counts reports catalog sizes for the stats endpoint.
func (r *CatalogRepo) Counts(ctx context.Context) (int64, int64, error) {
	var videos, channels int64
	err := r.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM videos), (SELECT count(*) FROM channels)`,
	).Scan(&videos, &channels)
	if err != nil {
		return 0, 0, err
	}
	return videos, channels, nil
}

func (r *CatalogRepo) queryVideos(ctx context.Context, query string, args ...any) ([]CatalogVideo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []CatalogVideo
	for rows.Next() {
		var v CatalogVideo
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.ThumbnailURL, &v.VideoURL,
			&v.Views, &v.Likes, &v.Dislikes, &v.CommentCount,
			&v.Duration, &v.PublishedAt, &v.Category, &v.Tags, &v.IsLive, &v.Visibility,
			&v.ChannelID, &v.ChannelName, &v.ChannelAvatarURL, &v.ChannelSubscribers, &v.ChannelVerified,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
