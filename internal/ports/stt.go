package ports

import "context"

type STTService interface {
	// Recognize transcribes 16kHz mono s16le PCM.
	Recognize(ctx context.Context, pcm []byte) (string, error)
}
