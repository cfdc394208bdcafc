package models

import "time"

// Analysis is the validator verdict for a single image.
type Analysis struct {
	Clarity      float64  `json:"clarity"`
	PredictedCTR float64  `json:"predicted_ctr"`
	TextFound    bool     `json:"text_found"`
	TextValue    string   `json:"text_value,omitempty"` // read by the vision model, empty without one
	TextDensity  float64  `json:"text_density"`
	Faces        int      `json:"faces"`
	Emotion      string   `json:"emotion,omitempty"`
	Palette      []string `json:"palette"` // hex colors, dominant first
}

type Thumbnail struct {
	ID        int       `db:"id"`
	VideoID   string    `db:"video_id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	SavedPath string    `db:"saved_path"`
	Keyword   string    `db:"keyword"`
	UserID    int       `db:"user_id"`
	Analysis  Analysis  `db:"analysis"` // jsonb
	CreatedAt time.Time `db:"created_at"`
}
