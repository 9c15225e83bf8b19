package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a person who can book or conduct meetings.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Meeting represents a scheduled engagement between the booking
// organization and a counterpart.
//
// BookerID/OwnerID are the legacy single-owner columns kept for backward
// compatibility; they mirror the first assigned booker and seller. The
// authoritative participant sets live in the meeting_bookers and
// meeting_sellers junction tables.
type Meeting struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	BookingDate    time.Time     `db:"booking_date" json:"booking_date"`
	StartTime      time.Time     `db:"start_time" json:"start_time"`
	EndTime        time.Time     `db:"end_time" json:"end_time"`
	Subject        *string       `db:"subject" json:"subject"`
	OrganizerEmail string        `db:"organizer_email" json:"organizer_email"`
	BookerID       *uuid.UUID    `db:"booker_id" json:"booker_id"`
	BookerName     string        `db:"booker_name" json:"booker_name"`
	OwnerID        *uuid.UUID    `db:"owner_id" json:"owner_id"`
	OwnerName      string        `db:"owner_name" json:"owner_name"`
	Status         MeetingStatus `db:"status" json:"status"`
	StatusReason   *StatusReason `db:"status_reason" json:"status_reason"`
	QualityScore   *int          `db:"quality_score" json:"quality_score"`
	Notes          *string       `db:"notes" json:"notes"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	LastUpdated    time.Time     `db:"last_updated" json:"last_updated"`

	Bookers []MeetingParticipant `db:"-" json:"bookers,omitempty"`
	Sellers []MeetingParticipant `db:"-" json:"sellers,omitempty"`
}

// MeetingParticipant is one booker or seller assignment on a meeting.
// UserName is a denormalized snapshot taken at assignment time.
type MeetingParticipant struct {
	MeetingID  uuid.UUID `db:"meeting_id" json:"meeting_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	UserName   string    `db:"user_name" json:"user_name"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}

// MeetingVisibility is the declarative predicate produced by the ownership
// filter. A nil UserID means the requester may see every meeting; otherwise
// only meetings where that user appears as legacy owner/booker or as a
// booker/seller assignment are visible.
type MeetingVisibility struct {
	UserID *uuid.UUID
}

// Unrestricted reports whether the predicate matches all meetings.
func (v MeetingVisibility) Unrestricted() bool {
	return v.UserID == nil
}

// DateRange bounds a query on one temporal dimension. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// MeetingFilter holds the criteria for listing meetings.
type MeetingFilter struct {
	Visibility MeetingVisibility
	Status     *MeetingStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Query      string
	Limit      int
	Offset     int
}

// MeetingOutcome is the narrow projection of a meeting the aggregators
// consume. BookerIDs and SellerIDs are the normalized participant sets:
// the union of the legacy single-id columns and the junction-table
// assignments, computed once by the repository so every aggregator sees one
// shape regardless of which schema populated the row.
type MeetingOutcome struct {
	ID           uuid.UUID
	Status       MeetingStatus
	QualityScore *int
	StartTime    time.Time
	BookingDate  time.Time
	BookerIDs    []uuid.UUID
	SellerIDs    []uuid.UUID
}

// HasBooker reports whether userID is in the normalized booker set.
func (m *MeetingOutcome) HasBooker(userID uuid.UUID) bool {
	for _, id := range m.BookerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasSeller reports whether userID is in the normalized seller set.
func (m *MeetingOutcome) HasSeller(userID uuid.UUID) bool {
	for _, id := range m.SellerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
