package stats

// Rates computes the show rate and no-show rate for a cohort. The
// denominator is attended-or-missed (completed + noShow), not total
// bookings: canceled and rescheduled meetings measure booking churn, not
// attendance behavior, and are excluded. Both rates are 0 when the
// denominator is 0.
func Rates(completed, noShow int) (showRate, noShowRate float64) {
	attended := completed + noShow
	if attended == 0 {
		return 0, 0
	}
	return float64(completed) / float64(attended), float64(noShow) / float64(attended)
}

// QualitySample is one cohort's quality average together with its sample
// size, the unit of the count-weighted team mean.
type QualitySample struct {
	Avg   float64
	Count int
}

// WeightedQuality computes the count-weighted mean quality over several
// cohorts: sum(avg_i * count_i) / sum(count_i). An unweighted mean of
// per-cohort averages misrepresents cohorts of different size and is never
// used. Returns nil when the combined sample is empty.
func WeightedQuality(samples []QualitySample) *float64 {
	var sum float64
	var n int
	for _, s := range samples {
		if s.Count <= 0 {
			continue
		}
		sum += s.Avg * float64(s.Count)
		n += s.Count
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// qualityAverage computes the arithmetic mean of the given scores.
// Returns nil and 0 for an empty sample; "no data" is distinct from a true
// zero rating.
func qualityAverage(scores []int) (*float64, int) {
	if len(scores) == 0 {
		return nil, 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return &avg, len(scores)
}
