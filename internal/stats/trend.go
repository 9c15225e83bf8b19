package stats

import (
	"sort"
	"time"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// Bounds for the trend window, inclusive.
const (
	MinTrendDays = 1
	MaxTrendDays = 365
)

// ValidateTrendDays rejects a window outside [MinTrendDays, MaxTrendDays].
// Out-of-range values are a caller error, never silently clamped.
func ValidateTrendDays(days int) error {
	if days < MinTrendDays || days > MaxTrendDays {
		return domain.ErrInvalidDays
	}
	return nil
}

// TrendWindow returns the [now-days, now] range on the scheduled-start
// dimension.
func TrendWindow(days int, now time.Time) domain.DateRange {
	start := now.AddDate(0, 0, -days)
	return domain.DateRange{Start: &start, End: &now}
}

// BuildTrends buckets meeting outcomes by their scheduled start date (UTC
// calendar day) and returns one point per day in ascending date order. Days
// with no meetings produce no entry; the series is sparse and callers
// needing a dense series fill gaps themselves.
func BuildTrends(meetings []domain.MeetingOutcome) []domain.TrendPoint {
	buckets := make(map[string]*domain.TrendPoint)

	for i := range meetings {
		m := &meetings[i]
		key := m.StartTime.UTC().Format("2006-01-02")
		point, ok := buckets[key]
		if !ok {
			point = &domain.TrendPoint{Date: key}
			buckets[key] = point
		}
		point.Bokningar++
		switch m.Status {
		case domain.StatusCompleted:
			point.Genomforda++
		case domain.StatusNoShow:
			point.Noshows++
		}
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	result := make([]domain.TrendPoint, 0, len(dates))
	for _, d := range dates {
		result = append(result, *buckets[d])
	}
	return result
}
