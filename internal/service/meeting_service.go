package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/port"
	"github.com/stratforsr-sys/bokningsstatistik/internal/stats"
)

// ParticipantInput names one booker or seller assignment.
type ParticipantInput struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	UserName string    `json:"user_name" binding:"required"`
}

// CreateMeetingInput is the DTO for creating a meeting.
type CreateMeetingInput struct {
	BookingDate    *time.Time         `json:"booking_date"`
	StartTime      time.Time          `json:"start_time" binding:"required"`
	EndTime        time.Time          `json:"end_time" binding:"required"`
	Subject        *string            `json:"subject"`
	OrganizerEmail string             `json:"organizer_email" binding:"required,email"`
	Bookers        []ParticipantInput `json:"bookers"`
	Sellers        []ParticipantInput `json:"sellers"`
	Notes          *string            `json:"notes"`
}

// UpdateMeetingInput is the DTO for updating meeting details.
type UpdateMeetingInput struct {
	BookingDate    *time.Time `json:"booking_date"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Subject        *string    `json:"subject"`
	OrganizerEmail *string    `json:"organizer_email"`
	Notes          *string    `json:"notes"`
}

// UpdateStatusInput is the DTO for meeting status transitions.
type UpdateStatusInput struct {
	Status       domain.MeetingStatus `json:"status" binding:"required"`
	StatusReason *domain.StatusReason `json:"status_reason"`
	QualityScore *int                 `json:"quality_score"`
	Notes        *string              `json:"notes"`
}

// ListMeetingsInput carries the list filters alongside the requester
// identity used for the ownership check.
type ListMeetingsInput struct {
	Status    *domain.MeetingStatus
	StartDate *time.Time
	EndDate   *time.Time
	Query     string
	Limit     int
	Offset    int
}

// MeetingService defines the meeting management contract. Every read is
// scoped through the ownership filter: a USER only ever sees meetings they
// participate in.
type MeetingService interface {
	Create(ctx context.Context, input CreateMeetingInput) (*domain.Meeting, error)
	GetByID(ctx context.Context, requester Requester, meetingID uuid.UUID) (*domain.Meeting, error)
	List(ctx context.Context, requester Requester, input ListMeetingsInput) ([]domain.Meeting, int, error)
	Update(ctx context.Context, meetingID uuid.UUID, input UpdateMeetingInput) (*domain.Meeting, error)
	ReplaceParticipants(ctx context.Context, meetingID uuid.UUID, bookers, sellers []ParticipantInput) (*domain.Meeting, error)
	UpdateStatus(ctx context.Context, meetingID uuid.UUID, input UpdateStatusInput) (*domain.Meeting, error)
	// Delete soft-deletes by default: the meeting transitions to CANCELED
	// and stays visible to statistics. With hardDelete the row is removed.
	Delete(ctx context.Context, meetingID uuid.UUID, hardDelete bool) error
}

type meetingService struct {
	repo port.MeetingRepository
}

// NewMeetingService creates a new MeetingService implementation.
func NewMeetingService(repo port.MeetingRepository) MeetingService {
	return &meetingService{repo: repo}
}

func (s *meetingService) Create(ctx context.Context, input CreateMeetingInput) (*domain.Meeting, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, domain.ErrInvalidTimeOrder
	}
	if len(input.Bookers) == 0 && len(input.Sellers) == 0 {
		return nil, domain.ErrNoParticipants
	}

	bookingDate := time.Now().UTC()
	if input.BookingDate != nil {
		bookingDate = *input.BookingDate
	}

	meeting := &domain.Meeting{
		BookingDate:    bookingDate,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Subject:        input.Subject,
		OrganizerEmail: input.OrganizerEmail,
		Status:         domain.StatusBooked,
		Notes:          input.Notes,
		Bookers:        toParticipants(uuid.Nil, input.Bookers),
		Sellers:        toParticipants(uuid.Nil, input.Sellers),
	}

	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, meeting.ID)
}

func (s *meetingService) GetByID(ctx context.Context, requester Requester, meetingID uuid.UUID) (*domain.Meeting, error) {
	meeting, err := s.repo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	vis := stats.VisibilityFor(requester.ID, requester.Role, nil)
	if !vis.Unrestricted() && !participates(meeting, *vis.UserID) {
		return nil, domain.ErrForbidden
	}
	return meeting, nil
}

func (s *meetingService) List(ctx context.Context, requester Requester, input ListMeetingsInput) ([]domain.Meeting, int, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	filter := domain.MeetingFilter{
		Visibility: stats.VisibilityFor(requester.ID, requester.Role, nil),
		Status:     input.Status,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Query:      input.Query,
		Limit:      limit,
		Offset:     input.Offset,
	}
	return s.repo.List(ctx, filter)
}

func (s *meetingService) Update(ctx context.Context, meetingID uuid.UUID, input UpdateMeetingInput) (*domain.Meeting, error) {
	meeting, err := s.repo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if input.BookingDate != nil {
		meeting.BookingDate = *input.BookingDate
	}
	if input.StartTime != nil {
		meeting.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		meeting.EndTime = *input.EndTime
	}
	if !meeting.EndTime.After(meeting.StartTime) {
		return nil, domain.ErrInvalidTimeOrder
	}
	if input.Subject != nil {
		meeting.Subject = input.Subject
	}
	if input.OrganizerEmail != nil {
		meeting.OrganizerEmail = *input.OrganizerEmail
	}
	if input.Notes != nil {
		meeting.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, meetingID)
}

func (s *meetingService) ReplaceParticipants(ctx context.Context, meetingID uuid.UUID, bookers, sellers []ParticipantInput) (*domain.Meeting, error) {
	if len(bookers) == 0 && len(sellers) == 0 {
		return nil, domain.ErrNoParticipants
	}
	err := s.repo.ReplaceParticipants(ctx, meetingID,
		toParticipants(meetingID, bookers), toParticipants(meetingID, sellers))
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, meetingID)
}

func (s *meetingService) UpdateStatus(ctx context.Context, meetingID uuid.UUID, input UpdateStatusInput) (*domain.Meeting, error) {
	if !domain.IsValidMeetingStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	// A quality score is only meaningful on a completed meeting; on any
	// other status it is cleared rather than stored.
	qualityScore := input.QualityScore
	if input.Status == domain.StatusCompleted {
		if qualityScore != nil && (*qualityScore < 1 || *qualityScore > 5) {
			return nil, domain.ErrInvalidQualityScore
		}
	} else {
		if qualityScore != nil {
			return nil, domain.ErrQualityNotCompleted
		}
		qualityScore = nil
	}

	err := s.repo.UpdateStatus(ctx, meetingID, input.Status, input.StatusReason, qualityScore, input.Notes)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, meetingID)
}

func (s *meetingService) Delete(ctx context.Context, meetingID uuid.UUID, hardDelete bool) error {
	if hardDelete {
		return s.repo.Delete(ctx, meetingID)
	}
	reason := domain.ReasonOther
	return s.repo.UpdateStatus(ctx, meetingID, domain.StatusCanceled, &reason, nil, nil)
}

func toParticipants(meetingID uuid.UUID, inputs []ParticipantInput) []domain.MeetingParticipant {
	participants := make([]domain.MeetingParticipant, len(inputs))
	for i, in := range inputs {
		participants[i] = domain.MeetingParticipant{
			MeetingID: meetingID,
			UserID:    in.UserID,
			UserName:  in.UserName,
		}
	}
	return participants
}

func participates(meeting *domain.Meeting, userID uuid.UUID) bool {
	if meeting.BookerID != nil && *meeting.BookerID == userID {
		return true
	}
	if meeting.OwnerID != nil && *meeting.OwnerID == userID {
		return true
	}
	for _, p := range meeting.Bookers {
		if p.UserID == userID {
			return true
		}
	}
	for _, p := range meeting.Sellers {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
