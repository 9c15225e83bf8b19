package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	// ListSummaries returns slim user rows ordered by name. With a nil ids
	// slice it returns all users, paginated.
	ListSummaries(ctx context.Context, ids []uuid.UUID, offset, limit int) ([]domain.UserSummary, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, userID uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
}

// MeetingRepository defines the contract for meeting persistence, including
// the booker/seller participant assignments.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	GetByID(ctx context.Context, meetingID uuid.UUID) (*domain.Meeting, error)
	List(ctx context.Context, filter domain.MeetingFilter) ([]domain.Meeting, int, error)
	Update(ctx context.Context, meeting *domain.Meeting) error
	// ReplaceParticipants rewrites the booker/seller assignments and mirrors
	// the first of each into the legacy single-id columns.
	ReplaceParticipants(ctx context.Context, meetingID uuid.UUID, bookers, sellers []domain.MeetingParticipant) error
	UpdateStatus(ctx context.Context, meetingID uuid.UUID, status domain.MeetingStatus, reason *domain.StatusReason, qualityScore *int, notes *string) error
	Delete(ctx context.Context, meetingID uuid.UUID) error
}
