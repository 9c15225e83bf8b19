// Package stats holds the pure computation core of the statistics engine:
// ownership predicates, rate math, per-person aggregation, calendar period
// ranges, trend bucketing, and the team comparison. Nothing in this package
// performs I/O.
package stats

import (
	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// VisibilityFor translates a requester identity into the meeting-visibility
// predicate applied to every statistics query.
//
// ADMIN and MANAGER see everything unless they ask for a specific user.
// USER always resolves to their own id; any targetUserID is ignored here
// and must be rejected at the calling boundary when it names someone else.
// Pure and total: never fails.
func VisibilityFor(requesterID uuid.UUID, role domain.UserRole, targetUserID *uuid.UUID) domain.MeetingVisibility {
	if role == domain.RoleAdmin || role == domain.RoleManager {
		if targetUserID != nil {
			id := *targetUserID
			return domain.MeetingVisibility{UserID: &id}
		}
		return domain.MeetingVisibility{}
	}

	id := requesterID
	return domain.MeetingVisibility{UserID: &id}
}
