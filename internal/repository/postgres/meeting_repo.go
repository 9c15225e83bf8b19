package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/port"
)

type meetingRepo struct {
	db *sqlx.DB
}

// NewMeetingRepo creates a new PostgreSQL-backed MeetingRepository.
func NewMeetingRepo(db *sqlx.DB) port.MeetingRepository {
	return &meetingRepo{db: db}
}

// visibilityClause returns a WHERE fragment restricting rows to meetings the
// given user participates in, either through the legacy single-id columns or
// through the junction tables. It appends the user id to args and returns the
// updated arg slice. An unrestricted predicate yields no fragment.
func visibilityClause(vis domain.MeetingVisibility, args []interface{}) (string, []interface{}) {
	if vis.Unrestricted() {
		return "", args
	}
	args = append(args, *vis.UserID)
	n := len(args)
	clause := fmt.Sprintf(`(m.booker_id = $%d OR m.owner_id = $%d
		OR EXISTS (SELECT 1 FROM meeting_bookers mb WHERE mb.meeting_id = m.id AND mb.user_id = $%d)
		OR EXISTS (SELECT 1 FROM meeting_sellers ms WHERE ms.meeting_id = m.id AND ms.user_id = $%d))`,
		n, n, n, n)
	return clause, args
}

func (r *meetingRepo) Create(ctx context.Context, meeting *domain.Meeting) error {
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	now := time.Now().UTC()
	meeting.CreatedAt = now
	meeting.LastUpdated = now
	if meeting.Status == "" {
		meeting.Status = domain.StatusBooked
	}
	mirrorParticipants(meeting)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("meetingRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO meetings (id, booking_date, start_time, end_time, subject, organizer_email,
			booker_id, booker_name, owner_id, owner_name, status, status_reason, quality_score, notes,
			created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = tx.ExecContext(ctx, query,
		meeting.ID, meeting.BookingDate, meeting.StartTime, meeting.EndTime,
		meeting.Subject, meeting.OrganizerEmail,
		meeting.BookerID, meeting.BookerName, meeting.OwnerID, meeting.OwnerName,
		meeting.Status, meeting.StatusReason, meeting.QualityScore, meeting.Notes,
		meeting.CreatedAt, meeting.LastUpdated)
	if err != nil {
		return fmt.Errorf("meetingRepo.Create: %w", err)
	}

	if err := insertParticipants(ctx, tx, meeting.ID, meeting.Bookers, meeting.Sellers); err != nil {
		return fmt.Errorf("meetingRepo.Create participants: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("meetingRepo.Create commit: %w", err)
	}
	return nil
}

func (r *meetingRepo) GetByID(ctx context.Context, meetingID uuid.UUID) (*domain.Meeting, error) {
	var meeting domain.Meeting
	err := r.db.GetContext(ctx, &meeting,
		"SELECT * FROM meetings WHERE id = $1", meetingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("meetingRepo.GetByID: %w", err)
	}

	if err := r.attachParticipants(ctx, []*domain.Meeting{&meeting}); err != nil {
		return nil, fmt.Errorf("meetingRepo.GetByID: %w", err)
	}
	return &meeting, nil
}

func (r *meetingRepo) List(ctx context.Context, filter domain.MeetingFilter) ([]domain.Meeting, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if vc, vargs := visibilityClause(filter.Visibility, args); vc != "" {
		conditions = append(conditions, vc)
		args = vargs
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("m.status = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("m.start_time >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("m.start_time <= $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(m.subject ILIKE $%d OR m.booker_name ILIKE $%d OR m.owner_name ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM meetings m" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("meetingRepo.List count: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	listQuery := fmt.Sprintf("SELECT m.* FROM meetings m%s ORDER BY m.start_time DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var meetings []domain.Meeting
	if err := r.db.SelectContext(ctx, &meetings, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("meetingRepo.List: %w", err)
	}

	refs := make([]*domain.Meeting, len(meetings))
	for i := range meetings {
		refs[i] = &meetings[i]
	}
	if err := r.attachParticipants(ctx, refs); err != nil {
		return nil, 0, fmt.Errorf("meetingRepo.List: %w", err)
	}
	return meetings, total, nil
}

func (r *meetingRepo) Update(ctx context.Context, meeting *domain.Meeting) error {
	meeting.LastUpdated = time.Now().UTC()
	query := `UPDATE meetings SET booking_date = $1, start_time = $2, end_time = $3, subject = $4,
			organizer_email = $5, status = $6, status_reason = $7, quality_score = $8, notes = $9,
			last_updated = $10
		WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		meeting.BookingDate, meeting.StartTime, meeting.EndTime, meeting.Subject,
		meeting.OrganizerEmail, meeting.Status, meeting.StatusReason, meeting.QualityScore,
		meeting.Notes, meeting.LastUpdated, meeting.ID)
	if err != nil {
		return fmt.Errorf("meetingRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetingRepo) ReplaceParticipants(ctx context.Context, meetingID uuid.UUID, bookers, sellers []domain.MeetingParticipant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("meetingRepo.ReplaceParticipants begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"meeting_bookers", "meeting_sellers"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE meeting_id = $1", table), meetingID); err != nil {
			return fmt.Errorf("meetingRepo.ReplaceParticipants clear %s: %w", table, err)
		}
	}

	if err := insertParticipants(ctx, tx, meetingID, bookers, sellers); err != nil {
		return fmt.Errorf("meetingRepo.ReplaceParticipants: %w", err)
	}

	// Mirror the first of each set into the legacy single-id columns so
	// pre-junction consumers keep working.
	var bookerID, ownerID *uuid.UUID
	var bookerName, ownerName string
	if len(bookers) > 0 {
		bookerID = &bookers[0].UserID
		bookerName = bookers[0].UserName
	}
	if len(sellers) > 0 {
		ownerID = &sellers[0].UserID
		ownerName = sellers[0].UserName
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE meetings SET booker_id = $1, booker_name = $2, owner_id = $3, owner_name = $4,
			last_updated = $5 WHERE id = $6`,
		bookerID, bookerName, ownerID, ownerName, time.Now().UTC(), meetingID)
	if err != nil {
		return fmt.Errorf("meetingRepo.ReplaceParticipants mirror: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("meetingRepo.ReplaceParticipants commit: %w", err)
	}
	return nil
}

func (r *meetingRepo) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status domain.MeetingStatus, reason *domain.StatusReason, qualityScore *int, notes *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET status = $1, status_reason = $2, quality_score = $3, notes = $4,
			last_updated = $5 WHERE id = $6`,
		status, reason, qualityScore, notes, time.Now().UTC(), meetingID)
	if err != nil {
		return fmt.Errorf("meetingRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetingRepo) Delete(ctx context.Context, meetingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM meetings WHERE id = $1", meetingID)
	if err != nil {
		return fmt.Errorf("meetingRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sqlx.Tx, meetingID uuid.UUID, bookers, sellers []domain.MeetingParticipant) error {
	now := time.Now().UTC()
	for _, p := range bookers {
		assignedAt := p.AssignedAt
		if assignedAt.IsZero() {
			assignedAt = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meeting_bookers (meeting_id, user_id, user_name, assigned_at)
				VALUES ($1, $2, $3, $4) ON CONFLICT (meeting_id, user_id) DO NOTHING`,
			meetingID, p.UserID, p.UserName, assignedAt); err != nil {
			return fmt.Errorf("insert booker: %w", err)
		}
	}
	for _, p := range sellers {
		assignedAt := p.AssignedAt
		if assignedAt.IsZero() {
			assignedAt = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meeting_sellers (meeting_id, user_id, user_name, assigned_at)
				VALUES ($1, $2, $3, $4) ON CONFLICT (meeting_id, user_id) DO NOTHING`,
			meetingID, p.UserID, p.UserName, assignedAt); err != nil {
			return fmt.Errorf("insert seller: %w", err)
		}
	}
	return nil
}

// mirrorParticipants copies the first booker/seller assignment into the
// legacy single-id columns when those are unset.
func mirrorParticipants(meeting *domain.Meeting) {
	if meeting.BookerID == nil && len(meeting.Bookers) > 0 {
		meeting.BookerID = &meeting.Bookers[0].UserID
		meeting.BookerName = meeting.Bookers[0].UserName
	}
	if meeting.OwnerID == nil && len(meeting.Sellers) > 0 {
		meeting.OwnerID = &meeting.Sellers[0].UserID
		meeting.OwnerName = meeting.Sellers[0].UserName
	}
}

func (r *meetingRepo) attachParticipants(ctx context.Context, meetings []*domain.Meeting) error {
	if len(meetings) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(meetings))
	byID := make(map[uuid.UUID]*domain.Meeting, len(meetings))
	for i, m := range meetings {
		ids[i] = m.ID
		byID[m.ID] = m
	}

	for _, spec := range []struct {
		table  string
		assign func(m *domain.Meeting, p domain.MeetingParticipant)
	}{
		{"meeting_bookers", func(m *domain.Meeting, p domain.MeetingParticipant) { m.Bookers = append(m.Bookers, p) }},
		{"meeting_sellers", func(m *domain.Meeting, p domain.MeetingParticipant) { m.Sellers = append(m.Sellers, p) }},
	} {
		query, args, err := sqlx.In(fmt.Sprintf(
			"SELECT meeting_id, user_id, user_name, assigned_at FROM %s WHERE meeting_id IN (?) ORDER BY assigned_at ASC",
			spec.table), ids)
		if err != nil {
			return fmt.Errorf("attach %s in-clause: %w", spec.table, err)
		}
		var rows []domain.MeetingParticipant
		if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
			return fmt.Errorf("attach %s: %w", spec.table, err)
		}
		for _, p := range rows {
			if m, ok := byID[p.MeetingID]; ok {
				spec.assign(m, p)
			}
		}
	}
	return nil
}
