package models

import "time"

// TitleBatch is one generation run: the topic (or video URL) and the
// suggestions that came back.
type TitleBatch struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Topic     string    `db:"topic"`
	Titles    []string  `db:"titles"` // jsonb
	CreatedAt time.Time `db:"created_at"`
	IsDeleted bool      `db:"is_deleted"`
}
