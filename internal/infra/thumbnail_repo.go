package infra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresThumbnailRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresThumbnailRepo(pool *pgxpool.Pool) ports.ThumbnailRepository {
	return &PostgresThumbnailRepo{pool: pool}
}

func (r *PostgresThumbnailRepo) InsertThumbnail(ctx context.Context, t *models.Thumbnail) (*models.Thumbnail, error) {
	analysis, err := json.Marshal(t.Analysis)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}

	query := `
		INSERT INTO thumbnails (video_id, title, url, saved_path, keyword, analysis, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		t.VideoID, t.Title, t.URL, t.SavedPath, t.Keyword, analysis, t.UserID,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert thumbnail: %w", err)
	}
	return t, nil
}

// SearchThumbnails filters a user's stored thumbnails. Text and emotion
// filters match inside the analysis jsonb.
func (r *PostgresThumbnailRepo) SearchThumbnails(ctx context.Context, userID int, f ports.ThumbnailFilter) ([]models.Thumbnail, error) {
	query := `
		SELECT id, video_id, title, url, saved_path, keyword, analysis, user_id, created_at
		FROM thumbnails
		WHERE user_id = $1
		  AND ($2 = '' OR keyword = $2)
		  AND ($3 = '' OR analysis->>'emotion' = $3)
		  AND COALESCE((analysis->>'faces')::int, 0) >= $4
		  AND ($5 = '' OR analysis->>'text_value' ILIKE '%' || $5 || '%')
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, f.Keyword, f.Emotion, f.MinFaces, f.Text)
	if err != nil {
		return nil, fmt.Errorf("search thumbnails: %w", err)
	}
	defer rows.Close()

	var out []models.Thumbnail
	for rows.Next() {
		var (
			t   models.Thumbnail
			raw []byte
		)
		if err := rows.Scan(&t.ID, &t.VideoID, &t.Title, &t.URL, &t.SavedPath, &t.Keyword, &raw, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &t.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
