package ports

import "github.com/Vovarama1992/showrunner/internal/models"

// ImageAnalyzer scores raw image bytes. Implemented in domain/vision.
type ImageAnalyzer interface {
	Analyze(data []byte) (*models.Analysis, error)
}
