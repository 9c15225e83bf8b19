package stats

import (
	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// AggregatePersons computes per-person statistics for a set of users from
// two broad meeting sets: every meeting where any of the users is a booker,
// and every meeting where any of them is a seller. The caller fetches both
// sets with two repository queries and this function partitions them in
// memory, which keeps the query count constant regardless of how many users
// are aggregated.
//
// Combined totals sum the booker-role and seller-role counts per status
// without deduplication: a user who is both booker and seller on the same
// meeting counts once in each role and therefore twice in combined.
//
// roleFilter drops users with zero meetings in the requested role;
// domain.RoleBoth keeps everyone.
func AggregatePersons(users []domain.UserSummary, asBooker, asSeller []domain.MeetingOutcome, roleFilter domain.ParticipantRole) []domain.PersonStats {
	result := make([]domain.PersonStats, 0, len(users))

	for _, u := range users {
		var bookerTally domain.CombinedCounts
		for i := range asBooker {
			if asBooker[i].HasBooker(u.ID) {
				tallyOutcome(&bookerTally, &asBooker[i])
			}
		}

		var sellerTally domain.CombinedCounts
		var scores []int
		for i := range asSeller {
			m := &asSeller[i]
			if !m.HasSeller(u.ID) {
				continue
			}
			tallyOutcome(&sellerTally, m)
			if m.Status == domain.StatusCompleted && m.QualityScore != nil {
				scores = append(scores, *m.QualityScore)
			}
		}

		avgQuality, qualityCount := qualityAverage(scores)

		ps := domain.PersonStats{
			User:     u,
			AsBooker: breakdown(bookerTally),
			AsSeller: domain.SellerBreakdown{
				RoleBreakdown:     breakdown(sellerTally),
				AvgQualityScore:   avgQuality,
				QualityScoreCount: qualityCount,
			},
			Combined: domain.CombinedCounts{
				Total:       bookerTally.Total + sellerTally.Total,
				Completed:   bookerTally.Completed + sellerTally.Completed,
				NoShow:      bookerTally.NoShow + sellerTally.NoShow,
				Canceled:    bookerTally.Canceled + sellerTally.Canceled,
				Rescheduled: bookerTally.Rescheduled + sellerTally.Rescheduled,
			},
		}

		switch roleFilter {
		case domain.RoleBooker:
			if ps.AsBooker.Total == 0 {
				continue
			}
		case domain.RoleSeller:
			if ps.AsSeller.Total == 0 {
				continue
			}
		}

		result = append(result, ps)
	}

	return result
}

func tallyOutcome(t *domain.CombinedCounts, m *domain.MeetingOutcome) {
	t.Total++
	switch m.Status {
	case domain.StatusCompleted:
		t.Completed++
	case domain.StatusNoShow:
		t.NoShow++
	case domain.StatusCanceled:
		t.Canceled++
	case domain.StatusRescheduled:
		t.Rescheduled++
	}
}

func breakdown(t domain.CombinedCounts) domain.RoleBreakdown {
	show, noShow := Rates(t.Completed, t.NoShow)
	return domain.RoleBreakdown{
		Total:       t.Total,
		Completed:   t.Completed,
		NoShow:      t.NoShow,
		Canceled:    t.Canceled,
		Rescheduled: t.Rescheduled,
		ShowRate:    show,
		NoShowRate:  noShow,
	}
}
