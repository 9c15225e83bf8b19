package stats

import (
	"math"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// BuildComparison merges a user's month stats with the team-wide month
// stats into a relative-performance view. The team stats must come from the
// explicit no-restriction path; this function only shapes them.
//
// The team's total meetings are normalized by the active user count
// (rounded integer division) so an individual compares against a per-person
// average, never against any single peer's raw numbers. The team quality
// average is computed over the union of all scored meetings, which makes it
// count-weighted by construction.
func BuildComparison(personal, team *domain.PeriodStats, activeUsers int) *domain.TeamComparison {
	personalShow, _ := Rates(personal.Genomforda, personal.Noshows)
	teamShow, _ := Rates(team.Genomforda, team.Noshows)

	avgMeetings := 0
	if activeUsers > 0 {
		avgMeetings = int(math.Round(float64(team.ManadensBokningar) / float64(activeUsers)))
	}

	return &domain.TeamComparison{
		Personal: domain.PersonalSnapshot{
			TotalMeetings: personal.ManadensBokningar,
			Completed:     personal.Genomforda,
			NoShows:       personal.Noshows,
			ShowRate:      personalShow,
			Quality:       personal.KvalitetGenomsnitt,
		},
		TeamAverage: domain.TeamAverage{
			TotalMeetings: avgMeetings,
			ShowRate:      teamShow,
			Quality:       team.KvalitetGenomsnitt,
		},
		ActiveUsers: activeUsers,
	}
}
