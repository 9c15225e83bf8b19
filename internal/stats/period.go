package stats

import (
	"time"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// PeriodRange maps a named period to calendar boundaries relative to now:
// today is the current calendar day, week runs Monday through Sunday, month
// is the current calendar month. total has no bounds and returns nil.
// Boundaries are computed in now's location.
func PeriodRange(p domain.StatsPeriod, now time.Time) *domain.DateRange {
	switch p {
	case domain.PeriodToday:
		start := startOfDay(now)
		end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &domain.DateRange{Start: &start, End: &end}
	case domain.PeriodWeek:
		start := startOfWeek(now)
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		return &domain.DateRange{Start: &start, End: &end}
	case domain.PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return &domain.DateRange{Start: &start, End: &end}
	default:
		return nil
	}
}

// EffectiveRange returns the explicit custom range when both bounds are
// supplied, otherwise the named period's range. A custom range always takes
// precedence over the period name.
func EffectiveRange(p domain.StatsPeriod, customStart, customEnd *time.Time, now time.Time) *domain.DateRange {
	if customStart != nil && customEnd != nil {
		return &domain.DateRange{Start: customStart, End: customEnd}
	}
	return PeriodRange(p, now)
}

// ValidateDateRange rejects a pair where start is after end. Single open
// bounds are always valid.
func ValidateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return startOfDay(t).AddDate(0, 0, -offset)
}
