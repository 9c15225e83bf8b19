package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// StatsRepository provides the aggregate queries the statistics engine
// consumes. Every method applies the visibility predicate: a meeting is
// visible to a restricted requester when they appear as legacy owner/booker
// or as a booker/seller assignment.
//
// CountBookings counts on the booking timestamp; all other methods work on
// the scheduled start timestamp. These are distinct temporal dimensions: a
// meeting booked today for next month counts toward today's bookings but
// not toward today's status breakdown.
type StatsRepository interface {
	CountBookings(ctx context.Context, vis domain.MeetingVisibility, bookingRange *domain.DateRange) (int, error)
	StatusTally(ctx context.Context, vis domain.MeetingVisibility, startRange *domain.DateRange) (*domain.StatusTally, error)
	QualityAverage(ctx context.Context, vis domain.MeetingVisibility, startRange *domain.DateRange) (*domain.QualityAggregate, error)
	// OutcomesInRange returns the normalized outcome projection of every
	// visible meeting starting within the range, for trend bucketing.
	OutcomesInRange(ctx context.Context, vis domain.MeetingVisibility, startRange domain.DateRange) ([]domain.MeetingOutcome, error)
	// OutcomesByParticipants returns every meeting where any of the given
	// users appears in the given role. One call per role replaces one query
	// per user per role; the person aggregator partitions the result in
	// memory.
	OutcomesByParticipants(ctx context.Context, role domain.ParticipantRole, userIDs []uuid.UUID, startRange *domain.DateRange) ([]domain.MeetingOutcome, error)
}

// StatsCache is a best-effort cache for assembled overview responses.
// Implementations must treat failures as misses; the engine never depends
// on the cache for correctness.
type StatsCache interface {
	GetOverview(ctx context.Context, key string) (*domain.StatsOverview, bool)
	SetOverview(ctx context.Context, key string, overview *domain.StatsOverview)
}
