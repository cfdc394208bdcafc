package models

import "time"

type Script struct {
	ID           int       `db:"id"`
	UserID       int       `db:"user_id"`
	InputTitle   string    `db:"input_title"` // the idea or title the user searched with
	Mode         string    `db:"mode"`        // Short-form / Long-form / Storytelling
	Tone         string    `db:"tone"`
	Style        string    `db:"style"`
	Transcript   string    `db:"transcript"` // combined source transcripts
	Generated    string    `db:"generated_script"`
	SourceLinks  []string  `db:"source_links"`
	CreatedAt    time.Time `db:"created_at"`
}

type RemixedScript struct {
	ID         int       `db:"id"`
	UserID     int       `db:"user_id"`
	VideoURL   string    `db:"video_url"`
	Mode       string    `db:"mode"`
	Tone       string    `db:"tone"`
	Style      string    `db:"style"`
	Transcript string    `db:"transcript"`
	Remixed    string    `db:"remixed_script"`
	CreatedAt  time.Time `db:"created_at"`
}
