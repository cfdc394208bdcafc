package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

type fakeYouTube struct {
	searchResults []ports.SearchResult
	stats         []ports.VideoStats
	subscribers   map[string]int64
	transcripts   map[string]string
}

func (f *fakeYouTube) Search(_ context.Context, _ string, _ ports.SearchOptions) ([]ports.SearchResult, error) {
	return f.searchResults, nil
}

func (f *fakeYouTube) Stats(_ context.Context, ids []string) ([]ports.VideoStats, error) {
	var out []ports.VideoStats
	for _, v := range f.stats {
		for _, id := range ids {
			if v.VideoID == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func (f *fakeYouTube) ChannelSubscribers(_ context.Context, _ []string) (map[string]int64, error) {
	return f.subscribers, nil
}

func (f *fakeYouTube) VideoByID(_ context.Context, id string) (*ports.VideoStats, error) {
	for _, v := range f.stats {
		if v.VideoID == id {
			return &v, nil
		}
	}
	return nil, nil
}

func (f *fakeYouTube) Transcript(_ context.Context, id string) (string, error) {
	return f.transcripts[id], nil
}

type fakeVideoRepo struct {
	videos   map[string]*models.Video
	channels map[string]*models.Channel
	saved    map[string]bool
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos:   map[string]*models.Video{},
		channels: map[string]*models.Channel{},
		saved:    map[string]bool{},
	}
}

func (f *fakeVideoRepo) UpsertChannel(_ context.Context, c *models.Channel) error {
	f.channels[c.ChannelID] = c
	return nil
}

func (f *fakeVideoRepo) UpsertVideo(_ context.Context, v *models.Video) error {
	f.videos[v.VideoID] = v
	return nil
}

func (f *fakeVideoRepo) GetVideo(_ context.Context, id string) (*models.Video, error) {
	return f.videos[id], nil
}

func (f *fakeVideoRepo) SaveForUser(_ context.Context, _ int, videoID string) error {
	f.saved[videoID] = true
	return nil
}

func (f *fakeVideoRepo) ListSaved(_ context.Context, _ int) ([]models.Video, error) {
	var out []models.Video
	for id := range f.saved {
		if v := f.videos[id]; v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) UnsaveForUser(_ context.Context, _ int, videoID string) error {
	delete(f.saved, videoID)
	return nil
}

func ideaFixture() *fakeYouTube {
	upload := time.Now().AddDate(0, 0, -10).UTC().Format(time.RFC3339)
	return &fakeYouTube{
		searchResults: []ports.SearchResult{
			{VideoID: "vid00000001", Title: "Deep dive", ChannelID: "ch1"},
			{VideoID: "vid00000002", Title: "Best Shorts compilation", ChannelID: "ch2"},
			{VideoID: "vid00000003", Title: "Viral breakout", ChannelID: "ch3"},
			{VideoID: "vid00000004", Title: "Livestream replay", ChannelID: "ch1"},
		},
		stats: []ports.VideoStats{
			{VideoID: "vid00000001", Title: "Deep dive", ChannelID: "ch1", Views: 50000, Likes: 2000, Comments: 300, DurationSeconds: 600, UploadDate: upload},
			{VideoID: "vid00000003", Title: "Viral breakout", ChannelID: "ch3", Views: 900000, Likes: 40000, Comments: 5000, DurationSeconds: 480, UploadDate: upload},
			{VideoID: "vid00000004", Title: "Livestream replay", ChannelID: "ch1", Views: 1000, Likes: 10, Comments: 1, DurationSeconds: 0, UploadDate: upload},
		},
		subscribers: map[string]int64{"ch1": 100000, "ch3": 20000},
	}
}

func TestIdeaSearchRanksAndFilters(t *testing.T) {
	yt := ideaFixture()
	svc := NewIdeaService(newFakeVideoRepo(), yt, nil)

	videos, err := svc.Search(context.Background(), IdeaSearchParams{Query: "growth"})
	require.NoError(t, err)

	// shorts title and zero-duration video are excluded
	require.Len(t, videos, 2)
	// vid3 has 45 views per subscriber, vid1 has 0.5
	assert.Equal(t, "vid00000003", videos[0].VideoID)
	assert.Equal(t, "vid00000001", videos[1].VideoID)

	assert.Equal(t, 45.0, videos[0].ViewSubRatio)
	assert.Equal(t, 5.0, videos[0].EngagementRate)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid00000003", videos[0].VideoURL)
}

func TestIdeaSearchMinFilters(t *testing.T) {
	yt := ideaFixture()
	svc := NewIdeaService(newFakeVideoRepo(), yt, nil)
	ctx := context.Background()

	videos, err := svc.Search(ctx, IdeaSearchParams{Query: "growth", MinViews: 100000})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "vid00000003", videos[0].VideoID)

	videos, err = svc.Search(ctx, IdeaSearchParams{Query: "growth", MinSubscribers: 50000})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "vid00000001", videos[0].VideoID)
}

func TestIdeaSearchDurationFilter(t *testing.T) {
	svc := NewIdeaService(newFakeVideoRepo(), ideaFixture(), nil)

	videos, err := svc.Search(context.Background(), IdeaSearchParams{Query: "growth", DurationCategory: "medium"})
	require.NoError(t, err)
	require.Len(t, videos, 2)
}

func TestIdeaSearchPersists(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewIdeaService(repo, ideaFixture(), nil)

	_, err := svc.Search(context.Background(), IdeaSearchParams{Query: "growth"})
	require.NoError(t, err)

	assert.Contains(t, repo.videos, "vid00000001")
	assert.Contains(t, repo.videos, "vid00000003")
	assert.Contains(t, repo.channels, "ch1")
}

func TestVideoByIDNotFound(t *testing.T) {
	svc := NewIdeaService(newFakeVideoRepo(), ideaFixture(), nil)

	_, err := svc.VideoByID(context.Background(), "missing0000")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestSaveAndUnsave(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewIdeaService(repo, ideaFixture(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, 7, "vid00000001"))
	saved, err := svc.ListSaved(ctx, 7)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	require.NoError(t, svc.Unsave(ctx, 7, "vid00000001"))
	saved, err = svc.ListSaved(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestPublishedAfterWindows(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		window string
		want   string
	}{
		{"today", "2026-06-14T00:00:00Z"},
		{"this week", "2026-06-08T00:00:00Z"},
		{"this month", "2026-05-16T00:00:00Z"},
		{"this year", "2025-06-15T00:00:00Z"},
		{"", ""},
		{"whenever", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, publishedAfter(tt.window, now), "window=%q", tt.window)
	}
}
