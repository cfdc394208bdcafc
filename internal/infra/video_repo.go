package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresVideoRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresVideoRepo(pool *pgxpool.Pool) ports.VideoRepository {
	return &PostgresVideoRepo{pool: pool}
}

func (r *PostgresVideoRepo) UpsertChannel(ctx context.Context, c *models.Channel) error {
	query := `
		INSERT INTO channels (channel_id, name, subscribers)
		VALUES ($1, $2, $3)
		ON CONFLICT (channel_id) DO UPDATE
		SET name = EXCLUDED.name, subscribers = EXCLUDED.subscribers
	`
	if _, err := r.pool.Exec(ctx, query, c.ChannelID, c.Name, c.Subscribers); err != nil {
		return fmt.Errorf("upsert channel: %w", err)
	}
	return nil
}

func (r *PostgresVideoRepo) UpsertVideo(ctx context.Context, v *models.Video) error {
	query := `
		INSERT INTO videos (
			video_id, title, description, channel_id, channel_name,
			thumbnail_url, video_url, upload_date, duration_seconds,
			views, likes, comments, subscribers,
			engagement_rate, view_sub_ratio, view_velocity, ctr
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (video_id) DO UPDATE SET
			views = EXCLUDED.views,
			likes = EXCLUDED.likes,
			comments = EXCLUDED.comments,
			subscribers = EXCLUDED.subscribers,
			engagement_rate = EXCLUDED.engagement_rate,
			view_sub_ratio = EXCLUDED.view_sub_ratio,
			view_velocity = EXCLUDED.view_velocity,
			ctr = EXCLUDED.ctr
	`
	_, err := r.pool.Exec(ctx, query,
		v.VideoID, v.Title, v.Description, v.ChannelID, v.ChannelName,
		v.ThumbnailURL, v.VideoURL, v.UploadDate, v.DurationSeconds,
		v.Views, v.Likes, v.Comments, v.Subscribers,
		v.EngagementRate, v.ViewSubRatio, v.ViewVelocity, v.CTR,
	)
	if err != nil {
		return fmt.Errorf("upsert video: %w", err)
	}
	return nil
}

func (r *PostgresVideoRepo) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	query := `
		SELECT video_id, title, description, channel_id, channel_name,
		       thumbnail_url, video_url, upload_date, duration_seconds,
		       views, likes, comments, subscribers,
		       engagement_rate, view_sub_ratio, view_velocity, ctr
		FROM videos
		WHERE video_id = $1
	`
	var v models.Video
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&v.VideoID, &v.Title, &v.Description, &v.ChannelID, &v.ChannelName,
		&v.ThumbnailURL, &v.VideoURL, &v.UploadDate, &v.DurationSeconds,
		&v.Views, &v.Likes, &v.Comments, &v.Subscribers,
		&v.EngagementRate, &v.ViewSubRatio, &v.ViewVelocity, &v.CTR,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &v, nil
}

func (r *PostgresVideoRepo) SaveForUser(ctx context.Context, userID int, videoID string) error {
	query := `
		INSERT INTO user_saved_videos (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET is_deleted = FALSE, saved_at = now()
	`
	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("save video: %w", err)
	}
	return nil
}

func (r *PostgresVideoRepo) ListSaved(ctx context.Context, userID int) ([]models.Video, error) {
	query := `
		SELECT v.video_id, v.title, v.description, v.channel_id, v.channel_name,
		       v.thumbnail_url, v.video_url, v.upload_date, v.duration_seconds,
		       v.views, v.likes, v.comments, v.subscribers,
		       v.engagement_rate, v.view_sub_ratio, v.view_velocity, v.ctr
		FROM videos v
		JOIN user_saved_videos s ON s.video_id = v.video_id
		WHERE s.user_id = $1 AND s.is_deleted = FALSE
		ORDER BY s.saved_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	defer rows.Close()

	var out []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(
			&v.VideoID, &v.Title, &v.Description, &v.ChannelID, &v.ChannelName,
			&v.ThumbnailURL, &v.VideoURL, &v.UploadDate, &v.DurationSeconds,
			&v.Views, &v.Likes, &v.Comments, &v.Subscribers,
			&v.EngagementRate, &v.ViewSubRatio, &v.ViewVelocity, &v.CTR,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// UnsaveForUser is a soft delete; the video row itself stays.
func (r *PostgresVideoRepo) UnsaveForUser(ctx context.Context, userID int, videoID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_saved_videos
		SET is_deleted = TRUE
		WHERE user_id = $1 AND video_id = $2 AND is_deleted = FALSE
	`, userID, videoID)
	if err != nil {
		return fmt.Errorf("unsave video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
