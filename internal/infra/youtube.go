package infra

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Vovarama1992/showrunner/internal/ports"
)

const (
	youtubeAPIBase = "https://www.googleapis.com/youtube/v3"
	timedTextBase  = "https://video.google.com/timedtext"
	maxIDsPerBatch = 50
	defaultMaxHits = 10
)

type YouTubeAPIClient struct {
	apiKey  string
	baseURL string
	textURL string
	client  *http.Client
}

func NewYouTubeAPIClient(apiKey string) ports.YouTubeClient {
	return &YouTubeAPIClient{
		apiKey:  apiKey,
		baseURL: youtubeAPIBase,
		textURL: timedTextBase,
		client:  http.DefaultClient,
	}
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

type ytSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnails   struct {
		High struct {
			URL string `json:"url"`
		} `json:"high"`
	} `json:"thumbnails"`
}

type ytVideosResponse struct {
	Items []struct {
		ID         string    `json:"id"`
		Snippet    ytSnippet `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type ytChannelsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (c *YouTubeAPIClient) Search(ctx context.Context, query string, opts ports.SearchOptions) ([]ports.SearchResult, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxHits
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", query)
	q.Set("maxResults", strconv.Itoa(opts.MaxResults))
	if opts.PublishedAfter != "" {
		q.Set("publishedAfter", opts.PublishedAfter)
	}
	if opts.Duration != "" {
		q.Set("videoDuration", opts.Duration)
	}

	var parsed ytSearchResponse
	if err := c.get(ctx, "/search", q, &parsed); err != nil {
		return nil, err
	}

	var out []ports.SearchResult
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		out = append(out, ports.SearchResult{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelName:  item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
			UploadDate:   item.Snippet.PublishedAt,
		})
	}
	return out, nil
}

func (c *YouTubeAPIClient) Stats(ctx context.Context, videoIDs []string) ([]ports.VideoStats, error) {
	var out []ports.VideoStats
	for start := 0; start < len(videoIDs); start += maxIDsPerBatch {
		end := start + maxIDsPerBatch
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		q := url.Values{}
		q.Set("part", "snippet,statistics,contentDetails")
		q.Set("id", strings.Join(videoIDs[start:end], ","))

		var parsed ytVideosResponse
		if err := c.get(ctx, "/videos", q, &parsed); err != nil {
			return nil, err
		}

		for _, item := range parsed.Items {
			out = append(out, ports.VideoStats{
				VideoID:         item.ID,
				Title:           item.Snippet.Title,
				Description:     item.Snippet.Description,
				ChannelID:       item.Snippet.ChannelID,
				ChannelName:     item.Snippet.ChannelTitle,
				ThumbnailURL:    item.Snippet.Thumbnails.High.URL,
				UploadDate:      item.Snippet.PublishedAt,
				Views:           parseCount(item.Statistics.ViewCount),
				Likes:           parseCount(item.Statistics.LikeCount),
				Comments:        parseCount(item.Statistics.CommentCount),
				DurationSeconds: ParseISODuration(item.ContentDetails.Duration),
			})
		}
	}
	return out, nil
}

func (c *YouTubeAPIClient) ChannelSubscribers(ctx context.Context, channelIDs []string) (map[string]int64, error) {
	subs := make(map[string]int64, len(channelIDs))
	for start := 0; start < len(channelIDs); start += maxIDsPerBatch {
		end := start + maxIDsPerBatch
		if end > len(channelIDs) {
			end = len(channelIDs)
		}

		q := url.Values{}
		q.Set("part", "statistics")
		q.Set("id", strings.Join(channelIDs[start:end], ","))

		var parsed ytChannelsResponse
		if err := c.get(ctx, "/channels", q, &parsed); err != nil {
			return nil, err
		}
		for _, item := range parsed.Items {
			subs[item.ID] = parseCount(item.Statistics.SubscriberCount)
		}
	}
	return subs, nil
}

func (c *YouTubeAPIClient) VideoByID(ctx context.Context, videoID string) (*ports.VideoStats, error) {
	stats, err := c.Stats(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// Transcript pulls the English caption track through the public timedtext
// endpoint. Videos without captions come back as an empty document.
func (c *YouTubeAPIClient) Transcript(ctx context.Context, videoID string) (string, error) {
	u := c.textURL + "?lang=en&v=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("timedtext request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("timedtext http %d", resp.StatusCode)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("no captions for %s", videoID)
	}

	var doc timedText
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse captions: %w", err)
	}
	if len(doc.Texts) == 0 {
		return "", fmt.Errorf("no captions for %s", videoID)
	}

	var b strings.Builder
	for i, t := range doc.Texts {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(html.UnescapeString(t.Value))
	}
	return b.String(), nil
}

func (c *YouTubeAPIClient) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("youtube request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return fmt.Errorf("youtube http %d: %s", resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// ParseISODuration converts an ISO-8601 video duration (PT#H#M#S) to seconds.
// Malformed input parses as 0.
func ParseISODuration(d string) int {
	d = strings.TrimPrefix(d, "PT")
	var total, num int
	for _, r := range d {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'H':
			total += num * 3600
			num = 0
		case r == 'M':
			total += num * 60
			num = 0
		case r == 'S':
			total += num
			num = 0
		default:
			num = 0
		}
	}
	return total
}
