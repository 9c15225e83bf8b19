package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

// rangeClause appends >= / <= conditions on the given column for the
// non-nil bounds of the range.
func rangeClause(column string, dateRange *domain.DateRange, conditions []string, args []interface{}) ([]string, []interface{}) {
	if dateRange == nil {
		return conditions, args
	}
	if dateRange.Start != nil {
		args = append(args, *dateRange.Start)
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if dateRange.End != nil {
		args = append(args, *dateRange.End)
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", column, len(args)))
	}
	return conditions, args
}

func whereOf(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func (r *statsRepo) CountBookings(ctx context.Context, vis domain.MeetingVisibility, bookingRange *domain.DateRange) (int, error) {
	conditions := []string{}
	args := []interface{}{}
	if vc, vargs := visibilityClause(vis, args); vc != "" {
		conditions = append(conditions, vc)
		args = vargs
	}
	conditions, args = rangeClause("m.booking_date", bookingRange, conditions, args)

	var count int
	query := "SELECT COUNT(*) FROM meetings m" + whereOf(conditions)
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("statsRepo.CountBookings: %w", err)
	}
	return count, nil
}

func (r *statsRepo) StatusTally(ctx context.Context, vis domain.MeetingVisibility, startRange *domain.DateRange) (*domain.StatusTally, error) {
	conditions := []string{}
	args := []interface{}{}
	if vc, vargs := visibilityClause(vis, args); vc != "" {
		conditions = append(conditions, vc)
		args = vargs
	}
	conditions, args = rangeClause("m.start_time", startRange, conditions, args)

	query := `SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN m.status = 'COMPLETED' THEN 1 END) AS completed,
			COUNT(CASE WHEN m.status = 'NO_SHOW' THEN 1 END) AS no_show,
			COUNT(CASE WHEN m.status = 'CANCELED' THEN 1 END) AS canceled,
			COUNT(CASE WHEN m.status = 'RESCHEDULED' THEN 1 END) AS rescheduled
		FROM meetings m` + whereOf(conditions)

	var tally domain.StatusTally
	if err := r.db.GetContext(ctx, &tally, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.StatusTally: %w", err)
	}
	return &tally, nil
}

func (r *statsRepo) QualityAverage(ctx context.Context, vis domain.MeetingVisibility, startRange *domain.DateRange) (*domain.QualityAggregate, error) {
	conditions := []string{"m.status = 'COMPLETED'", "m.quality_score IS NOT NULL"}
	args := []interface{}{}
	if vc, vargs := visibilityClause(vis, args); vc != "" {
		conditions = append(conditions, vc)
		args = vargs
	}
	conditions, args = rangeClause("m.start_time", startRange, conditions, args)

	query := `SELECT AVG(m.quality_score) AS avg, COUNT(m.quality_score) AS cnt
		FROM meetings m` + whereOf(conditions)

	var agg domain.QualityAggregate
	if err := r.db.GetContext(ctx, &agg, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.QualityAverage: %w", err)
	}
	return &agg, nil
}

// outcomeRow is the flat meeting projection fetched before participant
// normalization.
type outcomeRow struct {
	ID           uuid.UUID            `db:"id"`
	Status       domain.MeetingStatus `db:"status"`
	QualityScore *int                 `db:"quality_score"`
	StartTime    time.Time            `db:"start_time"`
	BookingDate  time.Time            `db:"booking_date"`
	BookerID     *uuid.UUID           `db:"booker_id"`
	OwnerID      *uuid.UUID           `db:"owner_id"`
}

const outcomeColumns = "m.id, m.status, m.quality_score, m.start_time, m.booking_date, m.booker_id, m.owner_id"

func (r *statsRepo) OutcomesInRange(ctx context.Context, vis domain.MeetingVisibility, startRange domain.DateRange) ([]domain.MeetingOutcome, error) {
	conditions := []string{}
	args := []interface{}{}
	if vc, vargs := visibilityClause(vis, args); vc != "" {
		conditions = append(conditions, vc)
		args = vargs
	}
	conditions, args = rangeClause("m.start_time", &startRange, conditions, args)

	query := fmt.Sprintf("SELECT %s FROM meetings m%s ORDER BY m.start_time ASC",
		outcomeColumns, whereOf(conditions))

	var rows []outcomeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.OutcomesInRange: %w", err)
	}
	outcomes, err := r.normalizeOutcomes(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.OutcomesInRange: %w", err)
	}
	return outcomes, nil
}

func (r *statsRepo) OutcomesByParticipants(ctx context.Context, role domain.ParticipantRole, userIDs []uuid.UUID, startRange *domain.DateRange) ([]domain.MeetingOutcome, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var participantClauses []string
	if role == domain.RoleBooker || role == domain.RoleBoth {
		participantClauses = append(participantClauses,
			"m.booker_id IN (?)",
			"EXISTS (SELECT 1 FROM meeting_bookers mb WHERE mb.meeting_id = m.id AND mb.user_id IN (?))")
	}
	if role == domain.RoleSeller || role == domain.RoleBoth {
		participantClauses = append(participantClauses,
			"m.owner_id IN (?)",
			"EXISTS (SELECT 1 FROM meeting_sellers ms WHERE ms.meeting_id = m.id AND ms.user_id IN (?))")
	}

	conditions := []string{"(" + strings.Join(participantClauses, " OR ") + ")"}
	inArgs := make([]interface{}, len(participantClauses))
	for i := range inArgs {
		inArgs[i] = userIDs
	}
	if startRange != nil {
		if startRange.Start != nil {
			conditions = append(conditions, "m.start_time >= ?")
			inArgs = append(inArgs, *startRange.Start)
		}
		if startRange.End != nil {
			conditions = append(conditions, "m.start_time <= ?")
			inArgs = append(inArgs, *startRange.End)
		}
	}

	raw := fmt.Sprintf("SELECT %s FROM meetings m WHERE %s ORDER BY m.start_time ASC",
		outcomeColumns, strings.Join(conditions, " AND "))
	query, args, err := sqlx.In(raw, inArgs...)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.OutcomesByParticipants in-clause: %w", err)
	}

	var rows []outcomeRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("statsRepo.OutcomesByParticipants: %w", err)
	}
	outcomes, err := r.normalizeOutcomes(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.OutcomesByParticipants: %w", err)
	}
	return outcomes, nil
}

// participantRef is one (meeting, user) junction row.
type participantRef struct {
	MeetingID uuid.UUID `db:"meeting_id"`
	UserID    uuid.UUID `db:"user_id"`
}

// normalizeOutcomes builds the participant sets for each meeting: the union
// of the legacy single-id columns and the junction rows, deduplicated. The
// aggregators then see one shape regardless of which schema populated the
// meeting.
func (r *statsRepo) normalizeOutcomes(ctx context.Context, rows []outcomeRow) ([]domain.MeetingOutcome, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	bookerRefs, err := r.participantRefs(ctx, "meeting_bookers", ids)
	if err != nil {
		return nil, err
	}
	sellerRefs, err := r.participantRefs(ctx, "meeting_sellers", ids)
	if err != nil {
		return nil, err
	}

	outcomes := make([]domain.MeetingOutcome, len(rows))
	for i, row := range rows {
		outcomes[i] = domain.MeetingOutcome{
			ID:           row.ID,
			Status:       row.Status,
			QualityScore: row.QualityScore,
			StartTime:    row.StartTime,
			BookingDate:  row.BookingDate,
			BookerIDs:    mergeParticipants(row.BookerID, bookerRefs[row.ID]),
			SellerIDs:    mergeParticipants(row.OwnerID, sellerRefs[row.ID]),
		}
	}
	return outcomes, nil
}

func (r *statsRepo) participantRefs(ctx context.Context, table string, meetingIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	query, args, err := sqlx.In(fmt.Sprintf(
		"SELECT meeting_id, user_id FROM %s WHERE meeting_id IN (?)", table), meetingIDs)
	if err != nil {
		return nil, fmt.Errorf("participantRefs %s in-clause: %w", table, err)
	}
	var refs []participantRef
	if err := r.db.SelectContext(ctx, &refs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("participantRefs %s: %w", table, err)
	}
	byMeeting := make(map[uuid.UUID][]uuid.UUID, len(refs))
	for _, ref := range refs {
		byMeeting[ref.MeetingID] = append(byMeeting[ref.MeetingID], ref.UserID)
	}
	return byMeeting, nil
}

func mergeParticipants(legacy *uuid.UUID, junction []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(junction)+1)
	var merged []uuid.UUID
	if legacy != nil {
		seen[*legacy] = struct{}{}
		merged = append(merged, *legacy)
	}
	for _, id := range junction {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged
}
