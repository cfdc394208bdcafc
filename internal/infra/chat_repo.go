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

type PostgresChatRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresChatRepo(pool *pgxpool.Pool) ports.ChatRepository {
	return &PostgresChatRepo{pool: pool}
}

// InsertSession creates a session and links it to its knowledge groups in one
// transaction, so a failed link never leaves an orphan session behind.
func (r *PostgresChatRepo) InsertSession(ctx context.Context, name string, groupIDs []int) (*models.ChatSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	s := &models.ChatSession{Name: name, GroupIDs: groupIDs}
	err = tx.QueryRow(ctx, `
		INSERT INTO chat_sessions (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, name).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	for _, gid := range groupIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat_session_group (chat_session_id, group_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, s.ID, gid); err != nil {
			return nil, fmt.Errorf("link group %d: %w", gid, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s, nil
}

// GetSession returns a session only if at least one of its groups belongs to
// the user. Sessions themselves carry no owner column; the groups do.
func (r *PostgresChatRepo) GetSession(ctx context.Context, userID, id int) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.pool.QueryRow(ctx, `
		SELECT DISTINCT s.id, s.name, s.is_deleted, s.created_at, s.updated_at
		FROM chat_sessions s
		JOIN chat_session_group sg ON sg.chat_session_id = s.id
		JOIN groups g ON g.id = sg.group_id
		WHERE s.id = $1 AND g.user_id = $2 AND s.is_deleted = FALSE
	`, id, userID).Scan(&s.ID, &s.Name, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	s.GroupIDs, err = r.sessionGroupIDs(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresChatRepo) ListSessions(ctx context.Context, userID int) ([]models.ChatSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT s.id, s.name, s.is_deleted, s.created_at, s.updated_at
		FROM chat_sessions s
		JOIN chat_session_group sg ON sg.chat_session_id = s.id
		JOIN groups g ON g.id = sg.group_id
		WHERE g.user_id = $1 AND s.is_deleted = FALSE
		ORDER BY s.updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []models.ChatSession
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.ID, &s.Name, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].GroupIDs, err = r.sessionGroupIDs(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresChatRepo) sessionGroupIDs(ctx context.Context, sessionID int) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT group_id FROM chat_session_group WHERE chat_session_id = $1 ORDER BY group_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session groups: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresChatRepo) SoftDeleteSession(ctx context.Context, userID, id int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE chat_sessions SET is_deleted = TRUE, updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE AND EXISTS (
			SELECT 1 FROM chat_session_group sg
			JOIN groups g ON g.id = sg.group_id
			WHERE sg.chat_session_id = chat_sessions.id AND g.user_id = $2
		)
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepo) InsertConversation(ctx context.Context, c *models.Conversation) (*models.Conversation, error) {
	query := `
		INSERT INTO chat_conversations (chat_session_id, name, instruction_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, c.SessionID, c.Name, c.InstructionID).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}
	return c, nil
}

// GetConversationGroups resolves the knowledge groups behind a conversation
// through its session.
func (r *PostgresChatRepo) GetConversationGroups(ctx context.Context, conversationID int) ([]models.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.project_id, g.user_id, g.name, g.is_deleted, g.created_at, g.updated_at
		FROM chat_conversations c
		JOIN chat_session_group sg ON sg.chat_session_id = c.chat_session_id
		JOIN groups g ON g.id = sg.group_id
		WHERE c.id = $1 AND g.is_deleted = FALSE
		ORDER BY g.id
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation groups: %w", err)
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

func (r *PostgresChatRepo) InsertMessage(ctx context.Context, m *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (conversation_id, user_id, query, response)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, m.ConversationID, m.UserID, m.Query, m.Response).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *PostgresChatRepo) ListMessages(ctx context.Context, conversationID int) ([]models.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, user_id, query, response, is_deleted, created_at
		FROM chat_messages
		WHERE conversation_id = $1 AND is_deleted = FALSE
		ORDER BY created_at
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Query, &m.Response, &m.IsDeleted, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresChatRepo) InsertInstruction(ctx context.Context, in *models.Instruction) (*models.Instruction, error) {
	query := `
		INSERT INTO instructions (user_id, name, content, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query, in.UserID, in.Name, in.Content, in.IsActive).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert instruction: %w", err)
	}
	return in, nil
}

func (r *PostgresChatRepo) UpdateInstruction(ctx context.Context, in *models.Instruction) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE instructions
		SET name = $3, content = $4, is_active = $5, updated_at = now()
		WHERE id = $2 AND user_id = $1 AND is_deleted = FALSE
	`, in.UserID, in.ID, in.Name, in.Content, in.IsActive)
	if err != nil {
		return fmt.Errorf("update instruction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepo) SoftDeleteInstruction(ctx context.Context, userID, id int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE instructions SET is_deleted = TRUE, updated_at = now()
		WHERE id = $2 AND user_id = $1 AND is_deleted = FALSE
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete instruction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepo) ListInstructions(ctx context.Context, userID int, activeOnly bool) ([]models.Instruction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, content, is_active, is_deleted, created_at, updated_at
		FROM instructions
		WHERE user_id = $1 AND is_deleted = FALSE AND ($2 = FALSE OR is_active = TRUE)
		ORDER BY created_at
	`, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list instructions: %w", err)
	}
	defer rows.Close()

	var out []models.Instruction
	for rows.Next() {
		var in models.Instruction
		if err := rows.Scan(&in.ID, &in.UserID, &in.Name, &in.Content, &in.IsActive, &in.IsDeleted, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
