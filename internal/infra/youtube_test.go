package infra

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/showrunner/internal/ports"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P0D", 0},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseISODuration(tt.in), "input=%q", tt.in)
	}
}

func newTestYouTube(handler http.Handler) (*YouTubeAPIClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &YouTubeAPIClient{
		apiKey:  "test-key",
		baseURL: srv.URL,
		textURL: srv.URL + "/timedtext",
		client:  srv.Client(),
	}, srv
}

func TestYouTubeSearch(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "cats", q.Get("q"))
		assert.Equal(t, "5", q.Get("maxResults"))
		assert.Equal(t, "short", q.Get("videoDuration"))

		fmt.Fprint(w, `{"items":[
			{"id":{"videoId":"abc12345678"},"snippet":{"title":"Cat video","channelId":"ch1","channelTitle":"Cats Inc","publishedAt":"2026-01-02T03:04:05Z","thumbnails":{"high":{"url":"http://img/1.jpg"}}}},
			{"id":{},"snippet":{"title":"channel result skipped"}}
		]}`)
	}))
	defer srv.Close()

	results, err := client.Search(context.Background(), "cats", ports.SearchOptions{MaxResults: 5, Duration: "short"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "abc12345678", results[0].VideoID)
	assert.Equal(t, "Cats Inc", results[0].ChannelName)
	assert.Equal(t, "http://img/1.jpg", results[0].ThumbnailURL)
	assert.Equal(t, "2026-01-02T03:04:05Z", results[0].UploadDate)
}

func TestYouTubeStats(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "snippet,statistics,contentDetails", r.URL.Query().Get("part"))
		assert.Equal(t, "v1,v2", r.URL.Query().Get("id"))

		fmt.Fprint(w, `{"items":[
			{"id":"v1","snippet":{"title":"First"},"statistics":{"viewCount":"1000","likeCount":"50","commentCount":"7"},"contentDetails":{"duration":"PT4M13S"}},
			{"id":"v2","snippet":{"title":"Second"},"statistics":{"viewCount":"notanumber"},"contentDetails":{"duration":"PT1H"}}
		]}`)
	}))
	defer srv.Close()

	stats, err := client.Stats(context.Background(), []string{"v1", "v2"})
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(1000), stats[0].Views)
	assert.Equal(t, int64(50), stats[0].Likes)
	assert.Equal(t, 253, stats[0].DurationSeconds)
	assert.Equal(t, int64(0), stats[1].Views)
	assert.Equal(t, 3600, stats[1].DurationSeconds)
}

func TestYouTubeChannelSubscribers(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/channels", r.URL.Path)
		fmt.Fprint(w, `{"items":[{"id":"ch1","statistics":{"subscriberCount":"12345"}}]}`)
	}))
	defer srv.Close()

	subs, err := client.ChannelSubscribers(context.Background(), []string{"ch1"})
	require.NoError(t, err)
	assert.Equal(t, int64(12345), subs["ch1"])
}

func TestYouTubeVideoByIDMissing(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	v, err := client.VideoByID(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestYouTubeAPIError(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	_, err := client.Search(context.Background(), "cats", ports.SearchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTranscript(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/timedtext", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		assert.Equal(t, "abc12345678", r.URL.Query().Get("v"))

		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?><transcript><text start="0" dur="2">Hello &amp; welcome</text><text start="2" dur="3">to the show</text></transcript>`)
	}))
	defer srv.Close()

	text, err := client.Transcript(context.Background(), "abc12345678")
	require.NoError(t, err)
	assert.Equal(t, "Hello & welcome to the show", text)
}

func TestTranscriptNoCaptions(t *testing.T) {
	client, srv := newTestYouTube(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// the timedtext endpoint returns an empty 200 body for caption-less videos
	}))
	defer srv.Close()

	_, err := client.Transcript(context.Background(), "nocaps00000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no captions")
}
