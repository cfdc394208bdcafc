package domain

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

// ThumbnailPreview is one scored search hit before the user stores it.
type ThumbnailPreview struct {
	VideoID      string           `json:"video_id"`
	Title        string           `json:"title"`
	ThumbnailURL string           `json:"thumbnail_url"`
	Analysis     *models.Analysis `json:"analysis"`
}

type ThumbnailService struct {
	repo     ports.ThumbnailRepository
	youtube  ports.YouTubeClient
	analyzer ports.ImageAnalyzer
	llm      ports.LLMService
	client   *http.Client
	dir      string
}

func NewThumbnailService(
	repo ports.ThumbnailRepository,
	youtube ports.YouTubeClient,
	analyzer ports.ImageAnalyzer,
	llm ports.LLMService,
	dir string,
) *ThumbnailService {
	return &ThumbnailService{
		repo:     repo,
		youtube:  youtube,
		analyzer: analyzer,
		llm:      llm,
		client:   http.DefaultClient,
		dir:      dir,
	}
}

// Preview searches YouTube for a keyword and scores each candidate thumbnail.
// Downloads and analysis run concurrently; a failed candidate is skipped, not
// fatal.
func (s *ThumbnailService) Preview(ctx context.Context, keyword string) ([]ThumbnailPreview, error) {
	results, err := s.youtube.Search(ctx, keyword, ports.SearchOptions{MaxResults: 10})
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	var mu sync.Mutex
	out := make([]ThumbnailPreview, 0, len(results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, r := range results {
		g.Go(func() error {
			data, err := s.download(gctx, r.ThumbnailURL)
			if err != nil {
				log.Printf("[THUMB][SKIP] video=%s err=%v", r.VideoID, err)
				return nil
			}
			analysis, err := s.analyze(gctx, data)
			if err != nil {
				log.Printf("[THUMB][SKIP] video=%s err=%v", r.VideoID, err)
				return nil
			}
			mu.Lock()
			out = append(out, ThumbnailPreview{
				VideoID:      r.VideoID,
				Title:        r.Title,
				ThumbnailURL: r.ThumbnailURL,
				Analysis:     analysis,
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// Store downloads and persists thumbnails for the given video IDs.
func (s *ThumbnailService) Store(ctx context.Context, userID int, videoIDs []string, keyword string) ([]models.Thumbnail, error) {
	stats, err := s.youtube.Stats(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch videos: %w", err)
	}

	var saved []models.Thumbnail
	for _, v := range stats {
		data, err := s.download(ctx, v.ThumbnailURL)
		if err != nil {
			log.Printf("[THUMB][STORE][SKIP] video=%s err=%v", v.VideoID, err)
			continue
		}
		analysis, err := s.analyze(ctx, data)
		if err != nil {
			log.Printf("[THUMB][STORE][SKIP] video=%s err=%v", v.VideoID, err)
			continue
		}

		path, err := s.saveFile(v.VideoID, data)
		if err != nil {
			return nil, err
		}

		t, err := s.repo.InsertThumbnail(ctx, &models.Thumbnail{
			VideoID:   v.VideoID,
			Title:     v.Title,
			URL:       v.ThumbnailURL,
			SavedPath: path,
			Keyword:   keyword,
			UserID:    userID,
			Analysis:  *analysis,
		})
		if err != nil {
			return nil, fmt.Errorf("store thumbnail: %w", err)
		}
		saved = append(saved, *t)
	}
	return saved, nil
}

func (s *ThumbnailService) Search(ctx context.Context, userID int, f ports.ThumbnailFilter) ([]models.Thumbnail, error) {
	return s.repo.SearchThumbnails(ctx, userID, f)
}

// Validate scores an uploaded image without persisting anything.
func (s *ThumbnailService) Validate(ctx context.Context, data []byte) (*models.Analysis, error) {
	return s.analyze(ctx, data)
}

// GenerateConcept asks the vision model for a redesigned thumbnail concept
// based on an input image and prompt.
func (s *ThumbnailService) GenerateConcept(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	out, err := s.llm.GenerateWithImage(ctx, fmt.Sprintf(thumbnailConceptPrompt, prompt), image, mimeType)
	if err != nil {
		return "", fmt.Errorf("generate concept: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// analyze runs the local heuristics and, when faces are present, lets the
// vision model fill in emotion and overlaid text.
func (s *ThumbnailService) analyze(ctx context.Context, data []byte) (*models.Analysis, error) {
	analysis, err := s.analyzer.Analyze(data)
	if err != nil {
		return nil, err
	}

	if analysis.Faces > 0 && s.llm != nil {
		out, err := s.llm.GenerateWithImage(ctx, emotionPrompt, data, "image/jpeg")
		if err != nil {
			log.Printf("[THUMB][EMOTION][SKIP] err=%v", err)
			return analysis, nil
		}
		emotion, text := parseEmotionReply(out)
		analysis.Emotion = emotion
		if text != "" {
			analysis.TextValue = text
			analysis.TextFound = true
		}
	}
	return analysis, nil
}

func parseEmotionReply(reply string) (emotion, text string) {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "emotion:"):
			emotion = strings.ToLower(strings.TrimSpace(line[len("emotion:"):]))
		case strings.HasPrefix(lower, "text:"):
			text = strings.TrimSpace(line[len("text:"):])
		}
	}
	return emotion, text
}

func (s *ThumbnailService) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("thumbnail http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *ThumbnailService) saveFile(videoID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create thumbnail dir: %w", err)
	}
	path := filepath.Join(s.dir, videoID+".jpg")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return path, nil
}
