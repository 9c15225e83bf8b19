package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) CountBookings(ctx context.Context, vis domain.MeetingVisibility, bookingRange *domain.DateRange) (int, error) {
	args := m.Called(ctx, vis, bookingRange)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepo) StatusTally(ctx context.Context, vis domain.MeetingVisibility, startRange *domain.DateRange) (*domain.StatusTally, error) {
	args := m.Called(ctx, vis, startRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusTally), args.Error(1)
}

func (m *MockStatsRepo) QualityAverage(ctx context.Context, vis domain.MeetingVisibility, startRange *domain.DateRange) (*domain.QualityAggregate, error) {
	args := m.Called(ctx, vis, startRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityAggregate), args.Error(1)
}

func (m *MockStatsRepo) OutcomesInRange(ctx context.Context, vis domain.MeetingVisibility, startRange domain.DateRange) ([]domain.MeetingOutcome, error) {
	args := m.Called(ctx, vis, startRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MeetingOutcome), args.Error(1)
}

func (m *MockStatsRepo) OutcomesByParticipants(ctx context.Context, role domain.ParticipantRole, userIDs []uuid.UUID, startRange *domain.DateRange) ([]domain.MeetingOutcome, error) {
	args := m.Called(ctx, role, userIDs, startRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MeetingOutcome), args.Error(1)
}
