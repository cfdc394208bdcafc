package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictCTR(t *testing.T) {
	tests := []struct {
		name    string
		hasText bool
		hasFace bool
		clarity float64
		want    float64
	}{
		{"everything going for it", true, true, 500, 1},
		{"nothing going for it", false, false, 10, 0},
		{"face only", false, true, 10, 0.4},
		{"text and sharp, no face", true, false, 200, 0.6},
		{"clarity exactly at threshold counts as blurry", true, true, 100, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PredictCTR(tt.hasText, tt.hasFace, tt.clarity), 1e-9)
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalyzeFlatImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{30, 60, 200, 255})
		}
	}

	a := NewAnalyzer()
	analysis, err := a.Analyze(encodePNG(t, img))
	require.NoError(t, err)

	assert.Zero(t, analysis.Clarity)
	assert.False(t, analysis.TextFound)
	assert.Zero(t, analysis.Faces)
	require.Len(t, analysis.Palette, 1)
	assert.Equal(t, "#1e3cc8", analysis.Palette[0])
	assert.InDelta(t, 0.0, analysis.PredictedCTR, 1e-9)
}

func TestAnalyzeCheckerboardIsBusy(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}

	a := NewAnalyzer()
	analysis, err := a.Analyze(encodePNG(t, img))
	require.NoError(t, err)

	assert.Greater(t, analysis.Clarity, 100.0)
	assert.True(t, analysis.TextFound)
}

func TestAnalyzeSkinRegionCountsAsFace(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{30, 60, 200, 255})
		}
	}
	// a 40x40 skin-tone block, well above the 1% region floor
	for y := 20; y < 60; y++ {
		for x := 40; x < 80; x++ {
			img.Set(x, y, color.RGBA{220, 170, 140, 255})
		}
	}

	a := NewAnalyzer()
	analysis, err := a.Analyze(encodePNG(t, img))
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.Faces)
}

func TestAnalyzeRejectsGarbage(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.Analyze([]byte("not an image"))
	assert.Error(t, err)
}
