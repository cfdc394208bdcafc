package models

import "time"

type Channel struct {
	ChannelID   string    `db:"channel_id"`
	Name        string    `db:"name"`
	Subscribers int64     `db:"subscribers"`
	CreatedAt   time.Time `db:"created_at"`
}

type Video struct {
	VideoID         string    `db:"video_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	ChannelID       string    `db:"channel_id"`
	ChannelName     string    `db:"channel_name"`
	ThumbnailURL    string    `db:"thumbnail_url"`
	VideoURL        string    `db:"video_url"`
	UploadDate      time.Time `db:"upload_date"`
	DurationSeconds int       `db:"duration_seconds"`
	Views           int64     `db:"views"`
	Likes           int64     `db:"likes"`
	Comments        int64     `db:"comments"`
	Subscribers     int64     `db:"subscribers"`

	// derived, see domain/engagement.go
	EngagementRate float64 `db:"engagement_rate"`
	ViewSubRatio   float64 `db:"view_sub_ratio"`
	ViewVelocity   float64 `db:"view_velocity"`
	CTR            float64 `db:"ctr"`
}

type SavedVideo struct {
	UserID    int       `db:"user_id"`
	VideoID   string    `db:"video_id"`
	Folder    string    `db:"folder_name"`
	SavedAt   time.Time `db:"saved_at"`
	IsDeleted bool      `db:"is_deleted"`
}
