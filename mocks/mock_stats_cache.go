package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
)

// MockStatsCache is a mock implementation of port.StatsCache.
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) GetOverview(ctx context.Context, key string) (*domain.StatsOverview, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.StatsOverview), args.Bool(1)
}

func (m *MockStatsCache) SetOverview(ctx context.Context, key string, overview *domain.StatsOverview) {
	m.Called(ctx, key, overview)
}
