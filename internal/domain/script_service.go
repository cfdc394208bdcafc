package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

var (
	ErrNotEnoughTranscripts = errors.New("insufficient transcripts extracted, try a different idea or title")
	ErrScriptRefused        = errors.New("script generation failed, try modifying the input")
	ErrBadAudioFormat       = errors.New("only .mp3 or .wav files are allowed")
	ErrScriptNotFound       = errors.New("script not found")
)

var (
	videoIDPattern   = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
	timestampPattern = regexp.MustCompile(`\(\d{1,2}:\d{2} - \d{1,2}:\d{2}\)`)
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	parenPattern     = regexp.MustCompile(`\(.*?\)`)
	blankPattern     = regexp.MustCompile(`\n+`)
)

type ScriptService struct {
	repo    ports.ScriptRepository
	youtube ports.YouTubeClient
	llm     ports.LLMService
	stt     ports.STTService
	toneDir string
}

func NewScriptService(
	repo ports.ScriptRepository,
	youtube ports.YouTubeClient,
	llm ports.LLMService,
	stt ports.STTService,
	toneDir string,
) *ScriptService {
	return &ScriptService{
		repo:    repo,
		youtube: youtube,
		llm:     llm,
		stt:     stt,
		toneDir: toneDir,
	}
}

// Generate builds a script from an idea or title: it collects transcripts of
// top matching videos, reads their tone and style, and expands them with the
// model. At least three usable transcripts are required.
func (s *ScriptService) Generate(ctx context.Context, userID int, query, mode string) (*models.Script, error) {
	results, err := s.youtube.Search(ctx, query, ports.SearchOptions{MaxResults: 5})
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	var (
		transcripts []string
		links       []string
	)
	for _, r := range results {
		if len(transcripts) >= 3 {
			break
		}
		transcript, err := s.youtube.Transcript(ctx, r.VideoID)
		if err != nil || transcript == "" {
			log.Printf("[SCRIPT][TRANSCRIPT][SKIP] video=%s err=%v", r.VideoID, err)
			continue
		}
		transcripts = append(transcripts, transcript)
		links = append(links, "https://www.youtube.com/watch?v="+r.VideoID)
	}
	if len(transcripts) < 3 {
		return nil, ErrNotEnoughTranscripts
	}

	combined := strings.Join(transcripts, "\n")

	// past scripts for the same query feed back into the reference content
	past, err := s.repo.ListScriptsByTitle(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("list past scripts: %w", err)
	}
	reference := combined
	for _, p := range past {
		reference += "\n\n" + p.Generated
	}

	tone, style := s.analyzeStyle(ctx, combined)

	generated, err := s.generateScript(ctx, reference, mode, tone, style)
	if err != nil {
		return nil, err
	}

	script, err := s.repo.InsertScript(ctx, &models.Script{
		UserID:      userID,
		InputTitle:  query,
		Mode:        mode,
		Tone:        tone,
		Style:       style,
		Transcript:  combined,
		Generated:   generated,
		SourceLinks: links,
	})
	if err != nil {
		return nil, fmt.Errorf("store script: %w", err)
	}
	return script, nil
}

// Remix rewrites a single video into a new script.
func (s *ScriptService) Remix(ctx context.Context, userID int, videoURL, mode string) (*models.RemixedScript, error) {
	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("invalid YouTube URL")
	}

	transcript, err := s.youtube.Transcript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	tone, style := s.analyzeStyle(ctx, transcript)

	remixed, err := s.generateScript(ctx, transcript, mode, tone, style)
	if err != nil {
		return nil, err
	}

	out, err := s.repo.InsertRemixedScript(ctx, &models.RemixedScript{
		UserID:     userID,
		VideoURL:   videoURL,
		Mode:       mode,
		Tone:       tone,
		Style:      style,
		Transcript: transcript,
		Remixed:    remixed,
	})
	if err != nil {
		return nil, fmt.Errorf("store remixed script: %w", err)
	}
	return out, nil
}

func (s *ScriptService) List(ctx context.Context, userID int) ([]models.Script, error) {
	return s.repo.ListScripts(ctx, userID)
}

func (s *ScriptService) Get(ctx context.Context, userID, id int) (*models.Script, error) {
	script, err := s.repo.GetScript(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if script == nil {
		return nil, ErrScriptNotFound
	}
	return script, nil
}

// SpeechToText transcribes an uploaded WAV recording.
func (s *ScriptService) SpeechToText(ctx context.Context, wav []byte) (string, error) {
	pcm, _, err := ExtractPCM(wav)
	if err != nil {
		return "", err
	}
	text, err := s.stt.Recognize(ctx, pcm)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// StoreVoiceTone saves a user's voice sample as 16kHz mono WAV named
// user_<id>.wav. MP3 input goes through ffmpeg.
func (s *ScriptService) StoreVoiceTone(ctx context.Context, userID int, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".mp3" && ext != ".wav" {
		return "", ErrBadAudioFormat
	}

	if err := os.MkdirAll(s.toneDir, 0755); err != nil {
		return "", fmt.Errorf("create tone dir: %w", err)
	}
	dest := filepath.Join(s.toneDir, fmt.Sprintf("user_%d.wav", userID))

	if ext == ".wav" {
		if _, _, err := ExtractPCM(data); err != nil {
			return "", err
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return "", fmt.Errorf("save voice tone: %w", err)
		}
		return dest, nil
	}

	tmp := filepath.Join(s.toneDir, fmt.Sprintf("temp_%d.mp3", userID))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	defer os.Remove(tmp)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", tmp,
		"-ac", "1", "-ar", "16000", "-sample_fmt", "s16",
		dest,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("[VOICE-TONE][FFMPEG][FAIL] user=%d out=%s", userID, out)
		return "", fmt.Errorf("convert mp3 to wav: %w", err)
	}
	return dest, nil
}

func (s *ScriptService) generateScript(ctx context.Context, content, mode, tone, style string) (string, error) {
	raw, err := s.llm.Generate(ctx, fmt.Sprintf(scriptPrompt, mode, tone, style, content))
	if err != nil {
		return "", fmt.Errorf("generate script: %w", err)
	}

	formatted := FormatScript(raw)
	if strings.Contains(formatted, refusalMarker) {
		return "", ErrScriptRefused
	}
	return formatted, nil
}

func (s *ScriptService) analyzeStyle(ctx context.Context, transcript string) (tone, style string) {
	return analyzeToneStyle(ctx, s.llm, transcript)
}

// analyzeToneStyle reads tone and style out of a transcript, defaulting to
// Casual when the model answer is unusable.
func analyzeToneStyle(ctx context.Context, llm ports.LLMService, transcript string) (tone, style string) {
	tone, style = "Casual", "Casual"

	out, err := llm.Generate(ctx, fmt.Sprintf(styleAnalysisPrompt, transcript))
	if err != nil {
		log.Printf("[STYLE][FALLBACK] err=%v", err)
		return tone, style
	}
	if t, st := ParseStyleReply(out); t != "" && st != "" {
		return t, st
	}
	return tone, style
}

// ParseStyleReply extracts the "- Style:" and "- Tone:" lines of an analysis.
func ParseStyleReply(reply string) (tone, style string) {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "style:"):
			style = strings.TrimSpace(line[len("style:"):])
		case strings.HasPrefix(lower, "tone:"):
			tone = strings.TrimSpace(line[len("tone:"):])
		}
	}
	return tone, style
}

// FormatScript strips timestamps, markdown bold and stage directions from a
// generated script.
func FormatScript(raw string) string {
	out := timestampPattern.ReplaceAllString(raw, "")
	out = boldPattern.ReplaceAllString(out, "$1")
	out = parenPattern.ReplaceAllString(out, "")
	out = blankPattern.ReplaceAllString(out, "\n")
	return strings.TrimSpace(out)
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
func ExtractVideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
