package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clipstream/backend/internal/db"
	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for likes.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Find looks up the like for a (user, target) pair; absence is ErrNotFound.
func (r *PostgresLikeRepository) Find(ctx context.Context, target LikeTarget) (models.Like, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Like{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, COALESCE(video_id::text, ''), COALESCE(comment_id::text, ''), COALESCE(tweet_id::text, ''), liked_by, created_at
        FROM likes
        WHERE liked_by = $1
          AND (video_id = $2 OR comment_id = $3 OR tweet_id = $4)
    `, target.LikedBy, uuidOrNil(target.VideoID), uuidOrNil(target.CommentID), uuidOrNil(target.TweetID))

	var like models.Like
	if err := row.Scan(&like.ID, &like.VideoID, &like.CommentID, &like.TweetID, &like.LikedBy, &like.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Like{}, ErrNotFound
		}
		return models.Like{}, fmt.Errorf("select like: %w", err)
	}
	return like, nil
}

// Create stores a like; duplicates for the same (user, target) pair conflict and a
// missing target surfaces as ErrNotFound.
func (r *PostgresLikeRepository) Create(ctx context.Context, like models.Like) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO likes (id, video_id, comment_id, tweet_id, liked_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, like.ID, uuidOrNil(like.VideoID), uuidOrNil(like.CommentID), uuidOrNil(like.TweetID), like.LikedBy, like.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert like: %w", err)
	}

	return nil
}

// Delete removes a like by id.
func (r *PostgresLikeRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LikedVideos assembles the liked-videos read model: each video the user liked,
// joined to its owner projection, newest like first.
func (r *PostgresLikeRepository) LikedVideos(ctx context.Context, userID string) ([]models.VideoSummary, error) {
	ctx, span := logging.StartSpan(ctx, "repositories.LikedVideos")
	defer span.End()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description,
               v.duration, v.views, v.is_published, v.created_at, v.updated_at,
               u.id, u.username, u.full_name, u.avatar_url
        FROM likes l
        JOIN videos v ON v.id = l.video_id
        JOIN users u ON u.id = v.owner_id
        WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
        ORDER BY l.created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	return scanVideoSummaries(rows)
}

// uuidOrNil maps the empty string onto SQL NULL so absent like targets bind as
// NULL uuids instead of forcing a text comparison against the uuid columns.
func uuidOrNil(id string) any {
	if id == "" {
		return nil
	}
	return id
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
