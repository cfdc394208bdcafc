package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

var ErrNoTitles = errors.New("failed to generate titles")

var numberingPattern = regexp.MustCompile(`^\d+[\.\)]?\s*`)

type TitleService struct {
	repo    ports.TitleRepository
	youtube ports.YouTubeClient
	llm     ports.LLMService
}

func NewTitleService(repo ports.TitleRepository, youtube ports.YouTubeClient, llm ports.LLMService) *TitleService {
	return &TitleService{repo: repo, youtube: youtube, llm: llm}
}

// Generate produces viral title suggestions for a topic or a YouTube URL.
// URLs are resolved to the video's own title and description first.
func (s *TitleService) Generate(ctx context.Context, userID int, input string) (*models.TitleBatch, error) {
	topic, description := input, ""

	if IsYouTubeURL(input) {
		videoID := ExtractVideoID(input)
		if videoID == "" {
			return nil, fmt.Errorf("invalid YouTube URL")
		}
		video, err := s.youtube.VideoByID(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("fetch video metadata: %w", err)
		}
		if video == nil {
			return nil, fmt.Errorf("video not found")
		}
		topic, description = video.Title, video.Description
	}

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(titlesPrompt, topic, description))
	if err != nil {
		return nil, fmt.Errorf("generate titles: %w", err)
	}

	titles := ParseTitles(raw)
	if len(titles) == 0 {
		return nil, ErrNoTitles
	}

	batch, err := s.repo.InsertTitleBatch(ctx, &models.TitleBatch{
		UserID: userID,
		Topic:  input,
		Titles: titles,
	})
	if err != nil {
		return nil, fmt.Errorf("store titles: %w", err)
	}
	return batch, nil
}

func (s *TitleService) List(ctx context.Context, userID int) ([]models.TitleBatch, error) {
	return s.repo.ListTitles(ctx, userID)
}

// ParseTitles splits model output into clean titles, dropping list numbering.
// At most six are kept.
func ParseTitles(raw string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		title := numberingPattern.ReplaceAllString(strings.TrimSpace(line), "")
		title = strings.Trim(title, `"*`)
		if title == "" {
			continue
		}
		out = append(out, title)
		if len(out) == 6 {
			break
		}
	}
	return out
}

func IsYouTubeURL(input string) bool {
	return strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be")
}
