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

type PostgresWorkspaceRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkspaceRepo(pool *pgxpool.Pool) ports.WorkspaceRepository {
	return &PostgresWorkspaceRepo{pool: pool}
}

func (r *PostgresWorkspaceRepo) InsertProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO projects (user_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query, p.UserID, p.Name).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (r *PostgresWorkspaceRepo) RenameProject(ctx context.Context, userID, id int, name string) error {
	return r.touch(ctx, `
		UPDATE projects SET name = $3, updated_at = now()
		WHERE id = $2 AND user_id = $1 AND is_deleted = FALSE
	`, userID, id, name)
}

func (r *PostgresWorkspaceRepo) SoftDeleteProject(ctx context.Context, userID, id int) error {
	return r.touch(ctx, `
		UPDATE projects SET is_deleted = TRUE, updated_at = now()
		WHERE id = $2 AND user_id = $1 AND is_deleted = FALSE
	`, userID, id)
}

func (r *PostgresWorkspaceRepo) ListProjects(ctx context.Context, userID int) ([]models.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, is_deleted, created_at, updated_at
		FROM projects
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresWorkspaceRepo) InsertGroup(ctx context.Context, g *models.Group) (*models.Group, error) {
	query := `
		INSERT INTO groups (project_id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query, g.ProjectID, g.UserID, g.Name).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}
	return g, nil
}

func (r *PostgresWorkspaceRepo) GetGroup(ctx context.Context, userID, id int) (*models.Group, error) {
	var g models.Group
	err := r.pool.QueryRow(ctx, `
		SELECT id, project_id, user_id, name, is_deleted, created_at, updated_at
		FROM groups
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`, id, userID).Scan(&g.ID, &g.ProjectID, &g.UserID, &g.Name, &g.IsDeleted, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (r *PostgresWorkspaceRepo) GetGroups(ctx context.Context, userID int, ids []int) ([]models.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, user_id, name, is_deleted, created_at, updated_at
		FROM groups
		WHERE user_id = $1 AND id = ANY($2) AND is_deleted = FALSE
	`, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}
	defer rows.Close()

	var out []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.UserID, &g.Name, &g.IsDeleted, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresWorkspaceRepo) RenameGroup(ctx context.Context, userID, id int, name string) error {
	return r.touch(ctx, `
		UPDATE groups SET name = $3, updated_at = now()
		WHERE id = $2 AND user_id = $1 AND is_deleted = FALSE
	`, userID, id, name)
}

func (r *PostgresWorkspaceRepo) SoftDeleteGroup(ctx context.Context, userID, id int) error {
	return r.touch(ctx, `
		UPDATE groups SET is_deleted = TRUE, updated_at = now()
		WHERE id = $2 AND user_id = $1 AND is_deleted = FALSE
	`, userID, id)
}

func (r *PostgresWorkspaceRepo) InsertDocument(ctx context.Context, d *models.Document) (*models.Document, error) {
	query := `
		INSERT INTO documents (group_id, filename, content, tone, style)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, d.GroupID, d.Filename, d.Content, d.Tone, d.Style).Scan(&d.ID, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return d, nil
}

func (r *PostgresWorkspaceRepo) ListDocuments(ctx context.Context, groupID int) ([]models.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, filename, content, tone, style, is_deleted, created_at
		FROM documents
		WHERE group_id = $1 AND is_deleted = FALSE
		ORDER BY id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.GroupID, &d.Filename, &d.Content, &d.Tone, &d.Style, &d.IsDeleted, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresWorkspaceRepo) InsertGroupVideo(ctx context.Context, v *models.GroupVideo) (*models.GroupVideo, error) {
	query := `
		INSERT INTO group_videos (group_id, url, transcript, tone, style)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, v.GroupID, v.URL, v.Transcript, v.Tone, v.Style).Scan(&v.ID, &v.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert group video: %w", err)
	}
	return v, nil
}

func (r *PostgresWorkspaceRepo) ListGroupVideos(ctx context.Context, groupID int) ([]models.GroupVideo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, url, transcript, tone, style, is_deleted, created_at
		FROM group_videos
		WHERE group_id = $1 AND is_deleted = FALSE
		ORDER BY id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group videos: %w", err)
	}
	defer rows.Close()

	var out []models.GroupVideo
	for rows.Next() {
		var v models.GroupVideo
		if err := rows.Scan(&v.ID, &v.GroupID, &v.URL, &v.Transcript, &v.Tone, &v.Style, &v.IsDeleted, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresWorkspaceRepo) touch(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
