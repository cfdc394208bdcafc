package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		views    int64
		likes    int64
		comments int64
		want     float64
	}{
		{"typical video", 10000, 500, 100, 6},
		{"rounding to two decimals", 30000, 500, 123, 2.08},
		{"zero views", 0, 500, 100, 0},
		{"no engagement", 10000, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EngagementRate(tt.views, tt.likes, tt.comments))
		})
	}
}

func TestViewSubRatio(t *testing.T) {
	tests := []struct {
		name        string
		views       int64
		subscribers int64
		want        float64
	}{
		{"viral outlier", 1000000, 10000, 100},
		{"under one view per sub", 500, 1000, 0.5},
		{"zero subscribers", 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewSubRatio(tt.views, tt.subscribers))
		})
	}
}

func TestViewVelocity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		views  int64
		upload time.Time
		want   float64
	}{
		{"ten days old", 10000, now.AddDate(0, 0, -10), 1000},
		{"uploaded today counts as one day", 5000, now.Add(-2 * time.Hour), 5000},
		{"zero upload date", 5000, time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewVelocity(tt.views, tt.upload, now))
		})
	}
}

func TestCTR(t *testing.T) {
	assert.Equal(t, 5.0, CTR(500, 10000))
	assert.Equal(t, 0.0, CTR(500, 0))
	assert.Equal(t, 3.33, CTR(100, 3000))
}

func TestDurationClass(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, ""},
		{-5, ""},
		{120, "short"},
		{239, "short"},
		{240, "medium"},
		{1200, "medium"},
		{1201, "long"},
		{3600, "long"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationClass(tt.seconds), "seconds=%d", tt.seconds)
	}
}
