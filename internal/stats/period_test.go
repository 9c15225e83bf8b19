package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/stats"
)

// 2026-08-19 is a Wednesday.
var wednesday = time.Date(2026, time.August, 19, 14, 30, 0, 0, time.UTC)

func TestPeriodRange_Today(t *testing.T) {
	r := stats.PeriodRange(domain.PeriodToday, wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, 19, r.End.Day())
	assert.Equal(t, 23, r.End.Hour())
}

func TestPeriodRange_WeekStartsMonday(t *testing.T) {
	r := stats.PeriodRange(domain.PeriodWeek, wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Monday, r.Start.Weekday())
	assert.Equal(t, time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Sunday, r.End.Weekday())
	assert.Equal(t, 23, r.End.Day())
}

func TestPeriodRange_WeekOnSunday_StillPreviousMonday(t *testing.T) {
	sunday := time.Date(2026, time.August, 23, 9, 0, 0, 0, time.UTC)
	r := stats.PeriodRange(domain.PeriodWeek, sunday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC), *r.Start)
}

func TestPeriodRange_Month(t *testing.T) {
	r := stats.PeriodRange(domain.PeriodMonth, wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.August, r.End.Month())
	assert.Equal(t, 31, r.End.Day())
}

func TestPeriodRange_Total_Unbounded(t *testing.T) {
	assert.Nil(t, stats.PeriodRange(domain.PeriodTotal, wednesday))
}

func TestEffectiveRange_CustomOverridesPeriod(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

	r := stats.EffectiveRange(domain.PeriodToday, &start, &end, wednesday)
	require.NotNil(t, r)
	assert.Equal(t, start, *r.Start)
	assert.Equal(t, end, *r.End)
}

func TestEffectiveRange_SingleBoundFallsBackToPeriod(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := stats.EffectiveRange(domain.PeriodMonth, &start, nil, wednesday)
	require.NotNil(t, r)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), *r.Start)
}

func TestValidateDateRange(t *testing.T) {
	early := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, stats.ValidateDateRange(&early, &late))
	assert.NoError(t, stats.ValidateDateRange(&early, &early))
	assert.NoError(t, stats.ValidateDateRange(nil, &late))
	assert.NoError(t, stats.ValidateDateRange(&early, nil))
	assert.ErrorIs(t, stats.ValidateDateRange(&late, &early), domain.ErrInvalidDateRange)
}
