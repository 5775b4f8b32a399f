package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clipstream/backend/internal/db"
	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
)

// PostgresStatsRepository assembles dashboard aggregates from the primary tables.
type PostgresStatsRepository struct {
	pool db.Pool
}

// NewPostgresStatsRepository constructs a stats repository backed by PostgreSQL.
func NewPostgresStatsRepository(pool db.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

// ChannelStats aggregates a channel's totals. A channel that exists but has no
// videos reports zeros; ErrNotFound means the channel id does not resolve.
func (r *PostgresStatsRepository) ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error) {
	ctx, span := logging.StartSpan(ctx, "repositories.ChannelStats")
	defer span.End()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	// Anchored on users so a channel with no uploads yet reports zeros;
	// only an unknown channel id is ErrNotFound.
	row := conn.QueryRow(ctx, `
        SELECT (SELECT COUNT(*) FROM videos v WHERE v.owner_id = u.id) AS total_videos,
               (SELECT COALESCE(SUM(v.views), 0) FROM videos v WHERE v.owner_id = u.id) AS total_views,
               (SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = u.id) AS total_likes,
               (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS total_subscribers
        FROM users u
        WHERE u.id = $1
    `, channelID)

	stats := models.ChannelStats{ChannelID: channelID}
	if err := row.Scan(&stats.TotalVideos, &stats.TotalViews, &stats.TotalLikes, &stats.TotalSubscribers); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ChannelStats{}, ErrNotFound
		}
		return models.ChannelStats{}, fmt.Errorf("select channel stats: %w", err)
	}

	return stats, nil
}

// ChannelVideos lists every video owned by the channel, including unpublished ones,
// newest first.
func (r *PostgresStatsRepository) ChannelVideos(ctx context.Context, channelID string) ([]models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "repositories.ChannelVideos")
	defer span.End()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+videoColumns+`
        FROM videos
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `, channelID)
	if err != nil {
		return nil, fmt.Errorf("query channel videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan channel video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel videos: %w", err)
	}

	return videos, nil
}

var _ StatsRepository = (*PostgresStatsRepository)(nil)
