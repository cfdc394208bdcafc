package domain

import (
	"math"
	"time"
)

// Engagement math for the idea finder. All ratios come back rounded to two
// decimals; zero denominators yield 0 instead of an error.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EngagementRate is (likes+comments)/views as a percentage.
func EngagementRate(views, likes, comments int64) float64 {
	if views <= 0 {
		return 0
	}
	return round2(float64(likes+comments) / float64(views) * 100)
}

// ViewSubRatio is views per subscriber.
func ViewSubRatio(views, subscribers int64) float64 {
	if subscribers <= 0 {
		return 0
	}
	return round2(float64(views) / float64(subscribers))
}

// ViewVelocity is views per day since upload, counting at least one day.
func ViewVelocity(views int64, uploadDate, now time.Time) float64 {
	if uploadDate.IsZero() {
		return 0
	}
	days := int(now.Sub(uploadDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return round2(float64(views) / float64(days))
}

// CTR treats likes as clicks and views as impressions, as a percentage.
func CTR(likes, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return round2(float64(likes) / float64(views) * 100)
}

// DurationClass buckets a video length the way the search filter does.
// Zero-length videos have no class and are dropped by callers.
func DurationClass(seconds int) string {
	switch {
	case seconds <= 0:
		return ""
	case seconds < 240:
		return "short"
	case seconds <= 1200:
		return "medium"
	default:
		return "long"
	}
}
