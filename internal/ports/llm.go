package ports

import "context"

// LLMService is the text-generation surface of the model provider.
type LLMService interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithImage sends a prompt together with inline image bytes.
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// EmbeddingService turns text into vectors for the knowledge store.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
