package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

const searchCacheTTL = 10 * time.Minute

var ErrVideoNotFound = errors.New("video not found")

// IdeaSearchParams are the viral-idea search filters.
type IdeaSearchParams struct {
	Query            string
	MaxResults       int
	DurationCategory string // "short", "medium", "long" or empty
	MinViews         int64
	MinSubscribers   int64
	UploadWindow     string // "today", "this week", "this month", "this year"
}

type IdeaService struct {
	repo    ports.VideoRepository
	youtube ports.YouTubeClient
	cache   ports.Cache // nil disables caching
	now     func() time.Time
}

func NewIdeaService(repo ports.VideoRepository, youtube ports.YouTubeClient, cache ports.Cache) *IdeaService {
	return &IdeaService{
		repo:    repo,
		youtube: youtube,
		cache:   cache,
		now:     time.Now,
	}
}

// Search runs a filtered YouTube search, scores every hit and returns them
// ranked by view:subscriber ratio, velocity and engagement. Shorts are
// excluded. Results are persisted and cached.
func (s *IdeaService) Search(ctx context.Context, p IdeaSearchParams) ([]models.Video, error) {
	if p.MaxResults <= 0 {
		p.MaxResults = 10
	}

	cacheKey := fmt.Sprintf("ideas:%s:%d:%s:%d:%d:%s",
		p.Query, p.MaxResults, p.DurationCategory, p.MinViews, p.MinSubscribers, p.UploadWindow)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	opts := ports.SearchOptions{
		MaxResults: p.MaxResults,
		Duration:   p.DurationCategory,
	}
	if after := publishedAfter(p.UploadWindow, s.now()); after != "" {
		opts.PublishedAfter = after
	}

	results, err := s.youtube.Search(ctx, p.Query, opts)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	var ids, channelIDs []string
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Title), "shorts") {
			continue
		}
		ids = append(ids, r.VideoID)
		channelIDs = append(channelIDs, r.ChannelID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	stats, err := s.youtube.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	subs, err := s.youtube.ChannelSubscribers(ctx, dedupe(channelIDs))
	if err != nil {
		return nil, fmt.Errorf("fetch channels: %w", err)
	}

	var videos []models.Video
	for _, v := range stats {
		if v.DurationSeconds == 0 {
			continue
		}
		class := DurationClass(v.DurationSeconds)
		if p.DurationCategory != "" && class != p.DurationCategory {
			continue
		}
		if p.MinViews > 0 && v.Views < p.MinViews {
			continue
		}
		if p.MinSubscribers > 0 && subs[v.ChannelID] < p.MinSubscribers {
			continue
		}

		videos = append(videos, s.score(v, subs[v.ChannelID]))
	}

	sort.Slice(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if a.ViewSubRatio != b.ViewSubRatio {
			return a.ViewSubRatio > b.ViewSubRatio
		}
		if a.ViewVelocity != b.ViewVelocity {
			return a.ViewVelocity > b.ViewVelocity
		}
		return a.EngagementRate > b.EngagementRate
	})

	s.persist(ctx, videos, subs)
	s.toCache(ctx, cacheKey, videos)
	return videos, nil
}

// VideoByID fetches and scores a single video.
func (s *IdeaService) VideoByID(ctx context.Context, videoID string) (*models.Video, error) {
	v, err := s.youtube.VideoByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch video: %w", err)
	}
	if v == nil {
		return nil, ErrVideoNotFound
	}

	subs, err := s.youtube.ChannelSubscribers(ctx, []string{v.ChannelID})
	if err != nil {
		return nil, fmt.Errorf("fetch channel: %w", err)
	}

	video := s.score(*v, subs[v.ChannelID])
	return &video, nil
}

// Save persists the video (with fresh stats) and bookmarks it for the user.
// Re-saving a soft-deleted bookmark revives it.
func (s *IdeaService) Save(ctx context.Context, userID int, videoID string) error {
	video, err := s.VideoByID(ctx, videoID)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertChannel(ctx, &models.Channel{
		ChannelID:   video.ChannelID,
		Name:        video.ChannelName,
		Subscribers: video.Subscribers,
	}); err != nil {
		return err
	}
	if err := s.repo.UpsertVideo(ctx, video); err != nil {
		return err
	}
	return s.repo.SaveForUser(ctx, userID, videoID)
}

func (s *IdeaService) ListSaved(ctx context.Context, userID int) ([]models.Video, error) {
	return s.repo.ListSaved(ctx, userID)
}

func (s *IdeaService) Unsave(ctx context.Context, userID int, videoID string) error {
	return s.repo.UnsaveForUser(ctx, userID, videoID)
}

func (s *IdeaService) score(v ports.VideoStats, subscribers int64) models.Video {
	uploaded, _ := time.Parse(time.RFC3339, v.UploadDate)
	return models.Video{
		VideoID:         v.VideoID,
		Title:           v.Title,
		Description:     v.Description,
		ChannelID:       v.ChannelID,
		ChannelName:     v.ChannelName,
		ThumbnailURL:    v.ThumbnailURL,
		VideoURL:        "https://www.youtube.com/watch?v=" + v.VideoID,
		UploadDate:      uploaded,
		DurationSeconds: v.DurationSeconds,
		Views:           v.Views,
		Likes:           v.Likes,
		Comments:        v.Comments,
		Subscribers:     subscribers,
		EngagementRate:  EngagementRate(v.Views, v.Likes, v.Comments),
		ViewSubRatio:    ViewSubRatio(v.Views, subscribers),
		ViewVelocity:    ViewVelocity(v.Views, uploaded, s.now()),
		CTR:             CTR(v.Likes, v.Views),
	}
}

func (s *IdeaService) persist(ctx context.Context, videos []models.Video, subs map[string]int64) {
	for _, v := range videos {
		if err := s.repo.UpsertChannel(ctx, &models.Channel{
			ChannelID:   v.ChannelID,
			Name:        v.ChannelName,
			Subscribers: subs[v.ChannelID],
		}); err != nil {
			log.Printf("[IDEAS][PERSIST][FAIL] channel=%s err=%v", v.ChannelID, err)
			continue
		}
		if err := s.repo.UpsertVideo(ctx, &v); err != nil {
			log.Printf("[IDEAS][PERSIST][FAIL] video=%s err=%v", v.VideoID, err)
		}
	}
}

func (s *IdeaService) fromCache(ctx context.Context, key string) ([]models.Video, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var videos []models.Video
	if err := json.Unmarshal(raw, &videos); err != nil {
		return nil, false
	}
	return videos, true
}

func (s *IdeaService) toCache(ctx context.Context, key string, videos []models.Video) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(videos)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, searchCacheTTL); err != nil {
		log.Printf("[IDEAS][CACHE][FAIL] key=%s err=%v", key, err)
	}
}

// publishedAfter maps an upload window to an RFC3339 cutoff.
func publishedAfter(window string, now time.Time) string {
	var d time.Duration
	switch window {
	case "today":
		d = 24 * time.Hour
	case "this week":
		d = 7 * 24 * time.Hour
	case "this month":
		d = 30 * 24 * time.Hour
	case "this year":
		d = 365 * 24 * time.Hour
	default:
		return ""
	}
	return now.Add(-d).UTC().Format(time.RFC3339)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
