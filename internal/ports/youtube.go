package ports

import "context"

// SearchResult is one hit from the YouTube search endpoint, before stats
// are joined in.
type SearchResult struct {
	VideoID      string
	Title        string
	ChannelID    string
	ChannelName  string
	ThumbnailURL string
	UploadDate   string // RFC3339 as returned by the API
}

// VideoStats is the statistics+contentDetails slice for one video.
type VideoStats struct {
	VideoID         string
	Title           string
	Description     string
	ChannelID       string
	ChannelName     string
	ThumbnailURL    string
	UploadDate      string
	Views           int64
	Likes           int64
	Comments        int64
	DurationSeconds int
}

type SearchOptions struct {
	MaxResults     int
	PublishedAfter string // RFC3339, empty = no filter
	Duration       string // "short", "medium", "long" or empty
}

type YouTubeClient interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
	Stats(ctx context.Context, videoIDs []string) ([]VideoStats, error)
	ChannelSubscribers(ctx context.Context, channelIDs []string) (map[string]int64, error)
	VideoByID(ctx context.Context, videoID string) (*VideoStats, error)

	// Transcript fetches the caption track text for a video, if any.
	Transcript(ctx context.Context, videoID string) (string, error)
}
