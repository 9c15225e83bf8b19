package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// MockMeetingRepo is a mock implementation of port.MeetingRepository.
type MockMeetingRepo struct {
	mock.Mock
}

func (m *MockMeetingRepo) Create(ctx context.Context, meeting *domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepo) GetByID(ctx context.Context, meetingID uuid.UUID) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *MockMeetingRepo) List(ctx context.Context, filter domain.MeetingFilter) ([]domain.Meeting, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Meeting), args.Int(1), args.Error(2)
}

func (m *MockMeetingRepo) Update(ctx context.Context, meeting *domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepo) ReplaceParticipants(ctx context.Context, meetingID uuid.UUID, bookers, sellers []domain.MeetingParticipant) error {
	args := m.Called(ctx, meetingID, bookers, sellers)
	return args.Error(0)
}

func (m *MockMeetingRepo) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status domain.MeetingStatus, reason *domain.StatusReason, qualityScore *int, notes *string) error {
	args := m.Called(ctx, meetingID, status, reason, qualityScore, notes)
	return args.Error(0)
}

func (m *MockMeetingRepo) Delete(ctx context.Context, meetingID uuid.UUID) error {
	args := m.Called(ctx, meetingID)
	return args.Error(0)
}
