package models

import "time"

type ChatSession struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	GroupIDs  []int     `db:"-"` // via chat_session_group
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Conversation struct {
	ID            int       `db:"id"`
	SessionID     int       `db:"chat_session_id"`
	Name          string    `db:"name"`
	InstructionID *int      `db:"instruction_id"`
	IsDeleted     bool      `db:"is_deleted"`
	CreatedAt     time.Time `db:"created_at"`
}

type ChatMessage struct {
	ID             int       `db:"id"`
	ConversationID int       `db:"conversation_id"`
	UserID         int       `db:"user_id"`
	Query          string    `db:"query"`
	Response       string    `db:"response"`
	IsDeleted      bool      `db:"is_deleted"`
	CreatedAt      time.Time `db:"created_at"`
}

// Instruction is a user-defined prompt fragment; active ones are injected
// into every chat prompt.
type Instruction struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Name      string    `db:"name"`
	Content   string    `db:"content"`
	IsActive  bool      `db:"is_active"`
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
