package domain

import "github.com/google/uuid"

// UserSummary is the slim user projection embedded in statistics responses.
type UserSummary struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	Role     UserRole  `db:"role" json:"role"`
	IsActive bool      `db:"is_active" json:"is_active"`
}

// RoleBreakdown holds per-status counts and attendance rates for one
// participant role. ShowRate and NoShowRate are exact fractions in [0,1]
// over attended-or-missed meetings (completed + no-show); canceled and
// rescheduled meetings are excluded from the denominator.
type RoleBreakdown struct {
	Total       int     `json:"total"`
	Completed   int     `json:"completed"`
	NoShow      int     `json:"noShow"`
	Canceled    int     `json:"canceled"`
	Rescheduled int     `json:"rescheduled"`
	ShowRate    float64 `json:"showRate"`
	NoShowRate  float64 `json:"noShowRate"`
}

// SellerBreakdown extends RoleBreakdown with the quality average, which is
// only meaningful for the seller role. AvgQualityScore is nil, not zero,
// when no completed meeting carries a score.
type SellerBreakdown struct {
	RoleBreakdown
	AvgQualityScore   *float64 `json:"avgQualityScore"`
	QualityScoreCount int      `json:"qualityScoreCount"`
}

// CombinedCounts sums booker-role and seller-role counts per status. A user
// who is both booker and seller on the same meeting is counted once per
// role, so the meeting appears twice here.
type CombinedCounts struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	NoShow      int `json:"noShow"`
	Canceled    int `json:"canceled"`
	Rescheduled int `json:"rescheduled"`
}

// PersonStats is the derived per-user statistics structure.
type PersonStats struct {
	User     UserSummary     `json:"user"`
	AsBooker RoleBreakdown   `json:"asBooker"`
	AsSeller SellerBreakdown `json:"asSeller"`
	Combined CombinedCounts  `json:"combined"`
}

// PeriodStats is the derived statistics structure for one calendar period.
// The *_bokningar counts are computed against the booking timestamp; the
// status breakdown and rates against the scheduled start timestamp.
// Field names follow the established reporting vocabulary.
type PeriodStats struct {
	Period             StatsPeriod `json:"period"`
	UserID             *uuid.UUID  `json:"user_id"`
	DagensBokningar    int         `json:"dagens_bokningar"`
	VeckansBokningar   int         `json:"veckans_bokningar"`
	ManadensBokningar  int         `json:"manadens_bokningar"`
	TotalBokningar     int         `json:"total_bokningar"`
	Avbokningar        int         `json:"avbokningar"`
	Ombokningar        int         `json:"ombokningar"`
	Noshows            int         `json:"noshows"`
	Genomforda         int         `json:"genomforda"`
	ShowRate           float64     `json:"show_rate"`
	NoShowRate         float64     `json:"no_show_rate"`
	KvalitetGenomsnitt *float64    `json:"kvalitet_genomsnitt"`
	KvalitetAntal      int         `json:"kvalitet_antal"`
}

// TrendPoint is one calendar day's outcome counts, keyed by ISO date.
type TrendPoint struct {
	Date       string `json:"date"`
	Bokningar  int    `json:"bokningar"`
	Genomforda int    `json:"genomforda"`
	Noshows    int    `json:"noshows"`
}

// StatsOverview bundles the per-period stats and the 30-day trend series.
type StatsOverview struct {
	Today  *PeriodStats `json:"today"`
	Week   *PeriodStats `json:"week"`
	Month  *PeriodStats `json:"month"`
	Total  *PeriodStats `json:"total"`
	Trends []TrendPoint `json:"trends"`
}

// DetailedPersonStats pairs a user with their period stats, for the
// detailed per-user listing.
type DetailedPersonStats struct {
	UserID   uuid.UUID    `json:"userId"`
	UserName string       `json:"userName"`
	Stats    *PeriodStats `json:"stats"`
}

// PersonalSnapshot is the requester's own slice of a TeamComparison.
type PersonalSnapshot struct {
	TotalMeetings int      `json:"totalMeetings"`
	Completed     int      `json:"completed"`
	NoShows       int      `json:"noShows"`
	ShowRate      float64  `json:"showRate"`
	Quality       *float64 `json:"quality"`
}

// TeamAverage holds team-wide aggregates normalized per active user.
// TotalMeetings is the team total divided by the active user count
// (rounded); Quality is the count-weighted team average.
type TeamAverage struct {
	TotalMeetings int      `json:"totalMeetings"`
	ShowRate      float64  `json:"showRate"`
	Quality       *float64 `json:"quality"`
}

// TeamComparison lets an individual see their standing against the team
// without exposing any single peer's raw numbers.
type TeamComparison struct {
	Personal    PersonalSnapshot `json:"personal"`
	TeamAverage TeamAverage      `json:"teamAverage"`
	ActiveUsers int              `json:"activeUsers"`
}

// StatusTally is the raw status-breakdown row produced by the repository.
type StatusTally struct {
	Total       int `db:"total"`
	Completed   int `db:"completed"`
	NoShow      int `db:"no_show"`
	Canceled    int `db:"canceled"`
	Rescheduled int `db:"rescheduled"`
}

// QualityAggregate is the raw quality-average row produced by the
// repository. Avg is nil when no scored completed meetings match.
type QualityAggregate struct {
	Avg   *float64 `db:"avg"`
	Count int      `db:"cnt"`
}
