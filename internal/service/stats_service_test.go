package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/service"
	"github.com/stratforsr-sys/bokningsstatistik/mocks"
)

func setupStats() (*mocks.MockStatsRepo, *mocks.MockUserRepo, *mocks.MockStatsCache, service.StatsService) {
	statsRepo := new(mocks.MockStatsRepo)
	userRepo := new(mocks.MockUserRepo)
	statsCache := new(mocks.MockStatsCache)
	svc := service.NewStatsService(statsRepo, userRepo, statsCache)
	return statsRepo, userRepo, statsCache, svc
}

func restrictedTo(userID uuid.UUID) interface{} {
	return mock.MatchedBy(func(vis domain.MeetingVisibility) bool {
		return vis.UserID != nil && *vis.UserID == userID
	})
}

func unrestricted() interface{} {
	return mock.MatchedBy(func(vis domain.MeetingVisibility) bool {
		return vis.Unrestricted()
	})
}

func TestSummary_UserCannotNameForeignTarget(t *testing.T) {
	statsRepo, _, _, svc := setupStats()

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleUser}
	foreign := uuid.New()

	_, err := svc.Summary(context.Background(), requester, domain.PeriodMonth, &foreign, nil, nil)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	statsRepo.AssertNotCalled(t, "CountBookings", mock.Anything, mock.Anything, mock.Anything)
	statsRepo.AssertNotCalled(t, "StatusTally", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummary_UserNamingOwnIDIsAllowed(t *testing.T) {
	statsRepo, _, _, svc := setupStats()

	userID := uuid.New()
	requester := service.Requester{ID: userID, Role: domain.RoleUser}

	statsRepo.On("CountBookings", mock.Anything, restrictedTo(userID), mock.Anything).Return(3, nil)
	statsRepo.On("StatusTally", mock.Anything, restrictedTo(userID), mock.Anything).
		Return(&domain.StatusTally{Total: 3, Completed: 2, NoShow: 1}, nil)
	statsRepo.On("QualityAverage", mock.Anything, restrictedTo(userID), mock.Anything).
		Return(&domain.QualityAggregate{}, nil)

	summary, err := svc.Summary(context.Background(), requester, domain.PeriodMonth, &userID, nil, nil)

	require.NoError(t, err)
	require.NotNil(t, summary.UserID)
	assert.Equal(t, userID, *summary.UserID)
	assert.Equal(t, 2, summary.Genomforda)
	assert.InDelta(t, 2.0/3.0, summary.ShowRate, 1e-9)
}

func TestSummary_InvalidPeriod(t *testing.T) {
	_, _, _, svc := setupStats()

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleAdmin}
	_, err := svc.Summary(context.Background(), requester, "quarter", nil, nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestSummary_InvalidCustomRange(t *testing.T) {
	_, _, _, svc := setupStats()

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleAdmin}
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)

	_, err := svc.Summary(context.Background(), requester, domain.PeriodMonth, nil, &start, &end)

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestSummary_RepoErrorPropagates(t *testing.T) {
	statsRepo, _, _, svc := setupStats()

	boom := errors.New("connection reset")
	statsRepo.On("CountBookings", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	statsRepo.On("StatusTally", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	statsRepo.On("QualityAverage", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.QualityAggregate{}, nil)

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleAdmin}
	_, err := svc.Summary(context.Background(), requester, domain.PeriodWeek, nil, nil, nil)

	assert.ErrorIs(t, err, boom)
}

func TestSummary_AdminWithoutTargetSeesEverything(t *testing.T) {
	statsRepo, _, _, svc := setupStats()

	avg := 4.2
	statsRepo.On("CountBookings", mock.Anything, unrestricted(), mock.Anything).Return(10, nil)
	statsRepo.On("StatusTally", mock.Anything, unrestricted(), mock.Anything).
		Return(&domain.StatusTally{Total: 10, Completed: 6, NoShow: 2, Canceled: 1, Rescheduled: 1}, nil)
	statsRepo.On("QualityAverage", mock.Anything, unrestricted(), mock.Anything).
		Return(&domain.QualityAggregate{Avg: &avg, Count: 5}, nil)

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleAdmin}
	summary, err := svc.Summary(context.Background(), requester, domain.PeriodMonth, nil, nil, nil)

	require.NoError(t, err)
	assert.Nil(t, summary.UserID)
	assert.Equal(t, 10, summary.ManadensBokningar)
	assert.Equal(t, 6, summary.Genomforda)
	assert.Equal(t, 2, summary.Noshows)
	assert.Equal(t, 1, summary.Avbokningar)
	assert.Equal(t, 1, summary.Ombokningar)
	assert.InDelta(t, 0.75, summary.ShowRate, 1e-9)
	require.NotNil(t, summary.KvalitetGenomsnitt)
	assert.InDelta(t, 4.2, *summary.KvalitetGenomsnitt, 1e-9)
	assert.Equal(t, 5, summary.KvalitetAntal)
}

func TestOverview_CacheHitSkipsRepository(t *testing.T) {
	statsRepo, _, statsCache, svc := setupStats()

	userID := uuid.New()
	cached := &domain.StatsOverview{Total: &domain.PeriodStats{TotalBokningar: 42}}
	statsCache.On("GetOverview", mock.Anything, "stats:overview:"+userID.String()).Return(cached, true)

	requester := service.Requester{ID: userID, Role: domain.RoleUser}
	overview, err := svc.Overview(context.Background(), requester, nil)

	require.NoError(t, err)
	assert.Equal(t, 42, overview.Total.TotalBokningar)
	statsRepo.AssertNotCalled(t, "CountBookings", mock.Anything, mock.Anything, mock.Anything)
}

func TestOverview_AssemblesAllPeriodsAndTrends(t *testing.T) {
	statsRepo, _, statsCache, svc := setupStats()

	statsCache.On("GetOverview", mock.Anything, "stats:overview:all").Return(nil, false)
	statsCache.On("SetOverview", mock.Anything, "stats:overview:all", mock.AnythingOfType("*domain.StatsOverview")).Return()

	statsRepo.On("CountBookings", mock.Anything, mock.Anything, mock.Anything).Return(7, nil)
	statsRepo.On("StatusTally", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.StatusTally{Total: 7, Completed: 4, NoShow: 1}, nil)
	statsRepo.On("QualityAverage", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.QualityAggregate{}, nil)
	statsRepo.On("OutcomesInRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.MeetingOutcome{
			{ID: uuid.New(), Status: domain.StatusCompleted, StartTime: time.Now().UTC()},
		}, nil)

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleManager}
	overview, err := svc.Overview(context.Background(), requester, nil)

	require.NoError(t, err)
	require.NotNil(t, overview.Today)
	require.NotNil(t, overview.Week)
	require.NotNil(t, overview.Month)
	require.NotNil(t, overview.Total)
	assert.Equal(t, domain.PeriodToday, overview.Today.Period)
	assert.Equal(t, domain.PeriodTotal, overview.Total.Period)
	assert.Len(t, overview.Trends, 1)
	assert.Equal(t, 1, overview.Trends[0].Genomforda)
	statsCache.AssertCalled(t, "SetOverview", mock.Anything, "stats:overview:all", mock.AnythingOfType("*domain.StatsOverview"))
}

func TestTrends_InvalidDaysRejectedBeforeRepository(t *testing.T) {
	statsRepo, _, _, svc := setupStats()

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleAdmin}
	for _, days := range []int{0, -5, 366, 1000} {
		_, err := svc.Trends(context.Background(), requester, days, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidDays, "days=%d", days)
	}
	statsRepo.AssertNotCalled(t, "OutcomesInRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrends_UserScopedToOwnMeetings(t *testing.T) {
	statsRepo, _, _, svc := setupStats()

	userID := uuid.New()
	statsRepo.On("OutcomesInRange", mock.Anything, restrictedTo(userID), mock.Anything).
		Return([]domain.MeetingOutcome{}, nil)

	requester := service.Requester{ID: userID, Role: domain.RoleUser}
	trends, err := svc.Trends(context.Background(), requester, 30, nil)

	require.NoError(t, err)
	assert.Empty(t, trends)
	statsRepo.AssertExpectations(t)
}

func TestByPerson_BatchesTwoQueriesAcrossUsers(t *testing.T) {
	statsRepo, userRepo, _, svc := setupStats()

	alice := domain.UserSummary{ID: uuid.New(), Name: "Alice", IsActive: true}
	bob := domain.UserSummary{ID: uuid.New(), Name: "Bob", IsActive: true}
	userRepo.On("ListSummaries", mock.Anything, []uuid.UUID(nil), 0, 100).
		Return([]domain.UserSummary{alice, bob}, nil)

	start := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	bookerOutcomes := []domain.MeetingOutcome{
		{ID: uuid.New(), Status: domain.StatusCompleted, StartTime: start, BookerIDs: []uuid.UUID{alice.ID}},
		{ID: uuid.New(), Status: domain.StatusNoShow, StartTime: start, BookerIDs: []uuid.UUID{alice.ID}},
	}
	sellerOutcomes := []domain.MeetingOutcome{
		{ID: uuid.New(), Status: domain.StatusCompleted, QualityScore: intPtr(4), StartTime: start, SellerIDs: []uuid.UUID{bob.ID}},
	}
	statsRepo.On("OutcomesByParticipants", mock.Anything, domain.RoleBooker, []uuid.UUID{alice.ID, bob.ID}, mock.Anything).
		Return(bookerOutcomes, nil).Once()
	statsRepo.On("OutcomesByParticipants", mock.Anything, domain.RoleSeller, []uuid.UUID{alice.ID, bob.ID}, mock.Anything).
		Return(sellerOutcomes, nil).Once()

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleUser}
	persons, err := svc.ByPerson(context.Background(), requester, service.ByPersonInput{Period: domain.PeriodMonth})

	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, 2, persons[0].AsBooker.Total)
	assert.Equal(t, 1, persons[0].AsBooker.Completed)
	assert.Equal(t, 1, persons[1].AsSeller.Total)
	require.NotNil(t, persons[1].AsSeller.AvgQualityScore)
	assert.InDelta(t, 4.0, *persons[1].AsSeller.AvgQualityScore, 1e-9)
	statsRepo.AssertExpectations(t)
}

func TestByPerson_InvalidRoleFilter(t *testing.T) {
	_, _, _, svc := setupStats()

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleAdmin}
	_, err := svc.ByPerson(context.Background(), requester, service.ByPersonInput{
		Period:     domain.PeriodMonth,
		RoleFilter: "organizer",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestDetailed_OneEntryPerUser(t *testing.T) {
	statsRepo, userRepo, _, svc := setupStats()

	alice := domain.UserSummary{ID: uuid.New(), Name: "Alice"}
	bob := domain.UserSummary{ID: uuid.New(), Name: "Bob"}
	userRepo.On("ListSummaries", mock.Anything, []uuid.UUID(nil), 0, 100).
		Return([]domain.UserSummary{alice, bob}, nil)

	statsRepo.On("CountBookings", mock.Anything, restrictedTo(alice.ID), mock.Anything).Return(5, nil)
	statsRepo.On("CountBookings", mock.Anything, restrictedTo(bob.ID), mock.Anything).Return(2, nil)
	statsRepo.On("StatusTally", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.StatusTally{}, nil)
	statsRepo.On("QualityAverage", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.QualityAggregate{}, nil)

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleManager}
	detailed, err := svc.Detailed(context.Background(), requester, domain.PeriodMonth)

	require.NoError(t, err)
	require.Len(t, detailed, 2)
	assert.Equal(t, "Alice", detailed[0].UserName)
	assert.Equal(t, 5, detailed[0].Stats.TotalBokningar)
	assert.Equal(t, "Bob", detailed[1].UserName)
	assert.Equal(t, 2, detailed[1].Stats.TotalBokningar)
	require.NotNil(t, detailed[0].Stats.UserID)
	assert.Equal(t, alice.ID, *detailed[0].Stats.UserID)
}

func TestComparison_PersonalAgainstTeamAverage(t *testing.T) {
	statsRepo, userRepo, _, svc := setupStats()

	userID := uuid.New()
	personalAvg := 4.0
	teamAvg := 3.5

	statsRepo.On("CountBookings", mock.Anything, restrictedTo(userID), mock.Anything).Return(8, nil)
	statsRepo.On("StatusTally", mock.Anything, restrictedTo(userID), mock.Anything).
		Return(&domain.StatusTally{Total: 8, Completed: 6, NoShow: 2}, nil)
	statsRepo.On("QualityAverage", mock.Anything, restrictedTo(userID), mock.Anything).
		Return(&domain.QualityAggregate{Avg: &personalAvg, Count: 4}, nil)

	statsRepo.On("CountBookings", mock.Anything, unrestricted(), mock.Anything).Return(40, nil)
	statsRepo.On("StatusTally", mock.Anything, unrestricted(), mock.Anything).
		Return(&domain.StatusTally{Total: 40, Completed: 24, NoShow: 8}, nil)
	statsRepo.On("QualityAverage", mock.Anything, unrestricted(), mock.Anything).
		Return(&domain.QualityAggregate{Avg: &teamAvg, Count: 16}, nil)

	userRepo.On("CountActive", mock.Anything).Return(4, nil)

	requester := service.Requester{ID: userID, Role: domain.RoleUser}
	comparison, err := svc.Comparison(context.Background(), requester)

	require.NoError(t, err)
	assert.Equal(t, 8, comparison.Personal.TotalMeetings)
	assert.Equal(t, 6, comparison.Personal.Completed)
	assert.Equal(t, 2, comparison.Personal.NoShows)
	assert.InDelta(t, 0.75, comparison.Personal.ShowRate, 1e-9)
	assert.Equal(t, 10, comparison.TeamAverage.TotalMeetings)
	assert.InDelta(t, 0.75, comparison.TeamAverage.ShowRate, 1e-9)
	require.NotNil(t, comparison.TeamAverage.Quality)
	assert.InDelta(t, 3.5, *comparison.TeamAverage.Quality, 1e-9)
	assert.Equal(t, 4, comparison.ActiveUsers)
}

func intPtr(v int) *int { return &v }
