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

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) ports.UserRepository {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) InsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at
	`
	row := r.pool.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role)
	if err := row.Scan(&user.ID, &user.IsActive, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return r.getUser(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, `WHERE username = $1`, username)
}

func (r *PostgresUserRepo) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, is_active, is_deleted, created_at
		FROM users ` + where

	var u models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.IsDeleted,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) SetUserActive(ctx context.Context, userID int, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $1 WHERE id = $2`,
		active, userID,
	)
	return err
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, password_hash, role, is_active, is_deleted, created_at
		FROM users
		WHERE is_deleted = FALSE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.IsDeleted, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepo) InsertLogin(ctx context.Context, userID int) (*models.LoginRecord, error) {
	query := `
		INSERT INTO user_login_history (user_id)
		VALUES ($1)
		RETURNING id, login_time
	`
	rec := models.LoginRecord{UserID: userID}
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&rec.ID, &rec.LoginTime); err != nil {
		return nil, fmt.Errorf("insert login: %w", err)
	}
	return &rec, nil
}

// CloseLastLogin stamps logout_time on the most recent open session.
func (r *PostgresUserRepo) CloseLastLogin(ctx context.Context, userID int) error {
	query := `
		UPDATE user_login_history
		SET logout_time = now()
		WHERE id = (
			SELECT id FROM user_login_history
			WHERE user_id = $1 AND logout_time IS NULL
			ORDER BY login_time DESC
			LIMIT 1
		)
	`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

func (r *PostgresUserRepo) ListLogins(ctx context.Context, userID int) ([]models.LoginRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, login_time, logout_time
		FROM user_login_history
		WHERE user_id = $1
		ORDER BY login_time DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list logins: %w", err)
	}
	defer rows.Close()

	var recs []models.LoginRecord
	for rows.Next() {
		var rec models.LoginRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.LoginTime, &rec.LogoutTime); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
