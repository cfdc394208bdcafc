package models

import "time"

type Project struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Name      string    `db:"name"`
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Group struct {
	ID        int       `db:"id"`
	ProjectID int       `db:"project_id"`
	UserID    int       `db:"user_id"`
	Name      string    `db:"name"`
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Document struct {
	ID        int       `db:"id"`
	GroupID   int       `db:"group_id"`
	Filename  string    `db:"filename"`
	Content   string    `db:"content"`
	Tone      string    `db:"tone"`
	Style     string    `db:"style"`
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
}

// GroupVideo is a reference video attached to a group: its transcript plus
// the tone/style the model read out of it.
type GroupVideo struct {
	ID         int       `db:"id"`
	GroupID    int       `db:"group_id"`
	URL        string    `db:"url"`
	Transcript string    `db:"transcript"`
	Tone       string    `db:"tone"`
	Style      string    `db:"style"`
	IsDeleted  bool      `db:"is_deleted"`
	CreatedAt  time.Time `db:"created_at"`
}
