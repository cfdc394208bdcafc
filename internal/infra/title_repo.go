package infra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTitleRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTitleRepo(pool *pgxpool.Pool) ports.TitleRepository {
	return &PostgresTitleRepo{pool: pool}
}

func (r *PostgresTitleRepo) InsertTitleBatch(ctx context.Context, b *models.TitleBatch) (*models.TitleBatch, error) {
	query := `
		INSERT INTO generated_titles (user_id, topic, titles)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	titles, err := json.Marshal(b.Titles)
	if err != nil {
		return nil, fmt.Errorf("marshal titles: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, b.UserID, b.Topic, titles).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert title batch: %w", err)
	}
	return b, nil
}

func (r *PostgresTitleRepo) ListTitles(ctx context.Context, userID int) ([]models.TitleBatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, topic, titles, is_deleted, created_at
		FROM generated_titles
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var out []models.TitleBatch
	for rows.Next() {
		var (
			b   models.TitleBatch
			raw []byte
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Topic, &raw, &b.IsDeleted, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &b.Titles); err != nil {
			return nil, fmt.Errorf("decode titles: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
