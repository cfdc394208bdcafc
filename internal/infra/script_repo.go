package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresScriptRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresScriptRepo(pool *pgxpool.Pool) ports.ScriptRepository {
	return &PostgresScriptRepo{pool: pool}
}

func (r *PostgresScriptRepo) InsertScript(ctx context.Context, s *models.Script) (*models.Script, error) {
	query := `
		INSERT INTO scripts (user_id, input_title, mode, tone, style, transcript, generated_script, source_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	links, err := json.Marshal(s.SourceLinks)
	if err != nil {
		return nil, fmt.Errorf("marshal source links: %w", err)
	}

	row := r.pool.QueryRow(ctx, query,
		s.UserID, s.InputTitle, s.Mode, s.Tone, s.Style, s.Transcript, s.Generated, links,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert script: %w", err)
	}
	return s, nil
}

func (r *PostgresScriptRepo) ListScripts(ctx context.Context, userID int) ([]models.Script, error) {
	return r.queryScripts(ctx, `WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresScriptRepo) ListScriptsByTitle(ctx context.Context, userID int, inputTitle string) ([]models.Script, error) {
	return r.queryScripts(ctx, `WHERE user_id = $1 AND input_title = $2`, userID, inputTitle)
}

func (r *PostgresScriptRepo) queryScripts(ctx context.Context, tail string, args ...any) ([]models.Script, error) {
	query := `
		SELECT id, user_id, input_title, mode, tone, style, transcript, generated_script, source_links, created_at
		FROM scripts ` + tail

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scripts: %w", err)
	}
	defer rows.Close()

	var out []models.Script
	for rows.Next() {
		var (
			s   models.Script
			raw []byte
		)
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.InputTitle, &s.Mode, &s.Tone, &s.Style,
			&s.Transcript, &s.Generated, &raw, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &s.SourceLinks); err != nil {
			return nil, fmt.Errorf("decode source links: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresScriptRepo) GetScript(ctx context.Context, userID, id int) (*models.Script, error) {
	query := `
		SELECT id, user_id, input_title, mode, tone, style, transcript, generated_script, source_links, created_at
		FROM scripts
		WHERE id = $1 AND user_id = $2
	`
	var (
		s   models.Script
		raw []byte
	)
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&s.ID, &s.UserID, &s.InputTitle, &s.Mode, &s.Tone, &s.Style,
		&s.Transcript, &s.Generated, &raw, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get script: %w", err)
	}
	if err := json.Unmarshal(raw, &s.SourceLinks); err != nil {
		return nil, fmt.Errorf("decode source links: %w", err)
	}
	return &s, nil
}

func (r *PostgresScriptRepo) InsertRemixedScript(ctx context.Context, s *models.RemixedScript) (*models.RemixedScript, error) {
	query := `
		INSERT INTO remixed_scripts (user_id, video_url, mode, tone, style, transcript, remixed_script)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		s.UserID, s.VideoURL, s.Mode, s.Tone, s.Style, s.Transcript, s.Remixed,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert remixed script: %w", err)
	}
	return s, nil
}
