package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/gorilla/websocket"
)

const voskChunkSize = 8000 // 0.25s of 16kHz s16le audio

// VoskSTTService streams PCM to a vosk-server over websocket. The server
// owns the acoustic model (vosk-model-small-en-us-0.15).
type VoskSTTService struct {
	serverURL string
	dialer    *websocket.Dialer
}

func NewVoskSTTService(serverURL string) ports.STTService {
	return &VoskSTTService{
		serverURL: serverURL,
		dialer:    websocket.DefaultDialer,
	}
}

type voskResult struct {
	Text    string `json:"text"`
	Partial string `json:"partial"`
}

func (s *VoskSTTService) Recognize(ctx context.Context, pcm []byte) (string, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.serverURL, nil)
	if err != nil {
		return "", fmt.Errorf("dial vosk: %w", err)
	}
	defer conn.Close()

	cfg := `{"config": {"sample_rate": 16000}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(cfg)); err != nil {
		return "", fmt.Errorf("send config: %w", err)
	}

	var parts []string
	for start := 0; start < len(pcm); start += voskChunkSize {
		end := start + voskChunkSize
		if end > len(pcm) {
			end = len(pcm)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, pcm[start:end]); err != nil {
			return "", fmt.Errorf("send audio: %w", err)
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("read result: %w", err)
		}
		var res voskResult
		if err := json.Unmarshal(raw, &res); err != nil {
			continue
		}
		if res.Text != "" {
			parts = append(parts, res.Text)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"eof": 1}`)); err != nil {
		return "", fmt.Errorf("send eof: %w", err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("read final result: %w", err)
	}
	var final voskResult
	if err := json.Unmarshal(raw, &final); err == nil && final.Text != "" {
		parts = append(parts, final.Text)
	}

	return strings.Join(parts, " "), nil
}
