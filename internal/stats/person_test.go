package stats_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/stats"
)

func intPtr(v int) *int { return &v }

func summary(name string) domain.UserSummary {
	return domain.UserSummary{ID: uuid.New(), Name: name, Email: name + "@example.se", Role: domain.RoleUser, IsActive: true}
}

func sellerOutcome(userID uuid.UUID, status domain.MeetingStatus, score *int) domain.MeetingOutcome {
	return domain.MeetingOutcome{
		ID:           uuid.New(),
		Status:       status,
		QualityScore: score,
		SellerIDs:    []uuid.UUID{userID},
	}
}

func TestAggregatePersons_SellerScenario(t *testing.T) {
	userA := summary("anna")
	asSeller := []domain.MeetingOutcome{
		sellerOutcome(userA.ID, domain.StatusCompleted, intPtr(4)),
		sellerOutcome(userA.ID, domain.StatusCompleted, intPtr(2)),
		sellerOutcome(userA.ID, domain.StatusNoShow, nil),
	}

	result := stats.AggregatePersons([]domain.UserSummary{userA}, nil, asSeller, domain.RoleBoth)
	require.Len(t, result, 1)

	s := result[0].AsSeller
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.NoShow)
	assert.InDelta(t, 2.0/3.0, s.ShowRate, 1e-12)
	require.NotNil(t, s.AvgQualityScore)
	assert.InDelta(t, 3.0, *s.AvgQualityScore, 1e-12)
	assert.Equal(t, 2, s.QualityScoreCount)
}

func TestAggregatePersons_ZeroMeetings_RatesZeroQualityNil(t *testing.T) {
	u := summary("bertil")

	result := stats.AggregatePersons([]domain.UserSummary{u}, nil, nil, domain.RoleBoth)
	require.Len(t, result, 1)

	assert.Equal(t, 0.0, result[0].AsBooker.ShowRate)
	assert.Equal(t, 0.0, result[0].AsSeller.ShowRate)
	assert.Nil(t, result[0].AsSeller.AvgQualityScore)
	assert.Equal(t, 0, result[0].AsSeller.QualityScoreCount)
}

func TestAggregatePersons_CombinedDoubleCountsDualRole(t *testing.T) {
	u := summary("cecilia")

	// Same meeting id on both sides: u booked it and conducts it.
	meetingID := uuid.New()
	asBooker := []domain.MeetingOutcome{{
		ID: meetingID, Status: domain.StatusCompleted, BookerIDs: []uuid.UUID{u.ID},
	}}
	asSeller := []domain.MeetingOutcome{{
		ID: meetingID, Status: domain.StatusCompleted, SellerIDs: []uuid.UUID{u.ID},
	}}

	result := stats.AggregatePersons([]domain.UserSummary{u}, asBooker, asSeller, domain.RoleBoth)
	require.Len(t, result, 1)

	assert.Equal(t, 1, result[0].AsBooker.Total)
	assert.Equal(t, 1, result[0].AsSeller.Total)
	assert.Equal(t, result[0].AsBooker.Total+result[0].AsSeller.Total, result[0].Combined.Total)
	assert.Equal(t, 2, result[0].Combined.Total)
	assert.Equal(t, 2, result[0].Combined.Completed)
}

func TestAggregatePersons_QualityOnlyFromCompletedSellerMeetings(t *testing.T) {
	u := summary("david")
	asSeller := []domain.MeetingOutcome{
		// No-show with a stray score must not enter the average.
		sellerOutcome(u.ID, domain.StatusNoShow, intPtr(5)),
		sellerOutcome(u.ID, domain.StatusCompleted, nil),
	}

	result := stats.AggregatePersons([]domain.UserSummary{u}, nil, asSeller, domain.RoleBoth)
	require.Len(t, result, 1)
	assert.Nil(t, result[0].AsSeller.AvgQualityScore)
	assert.Equal(t, 0, result[0].AsSeller.QualityScoreCount)
}

func TestAggregatePersons_RoleFilterDropsZeroUsers(t *testing.T) {
	seller := summary("erika")
	idle := summary("fredrik")

	asSeller := []domain.MeetingOutcome{sellerOutcome(seller.ID, domain.StatusCompleted, nil)}
	users := []domain.UserSummary{seller, idle}

	both := stats.AggregatePersons(users, nil, asSeller, domain.RoleBoth)
	assert.Len(t, both, 2)

	onlySellers := stats.AggregatePersons(users, nil, asSeller, domain.RoleSeller)
	require.Len(t, onlySellers, 1)
	assert.Equal(t, seller.ID, onlySellers[0].User.ID)

	onlyBookers := stats.AggregatePersons(users, nil, asSeller, domain.RoleBooker)
	assert.Empty(t, onlyBookers)
}

func TestAggregatePersons_PartitionsSharedMeetingSet(t *testing.T) {
	u1 := summary("greta")
	u2 := summary("henrik")

	// One broad query result covering both users; each user only sees
	// their own slice.
	shared := []domain.MeetingOutcome{
		sellerOutcome(u1.ID, domain.StatusCompleted, intPtr(5)),
		sellerOutcome(u2.ID, domain.StatusNoShow, nil),
		{ID: uuid.New(), Status: domain.StatusCompleted, QualityScore: intPtr(3), SellerIDs: []uuid.UUID{u1.ID, u2.ID}},
	}

	result := stats.AggregatePersons([]domain.UserSummary{u1, u2}, nil, shared, domain.RoleBoth)
	require.Len(t, result, 2)

	assert.Equal(t, 2, result[0].AsSeller.Total)
	assert.Equal(t, 2, result[0].AsSeller.QualityScoreCount)
	require.NotNil(t, result[0].AsSeller.AvgQualityScore)
	assert.InDelta(t, 4.0, *result[0].AsSeller.AvgQualityScore, 1e-12)

	assert.Equal(t, 2, result[1].AsSeller.Total)
	assert.Equal(t, 1, result[1].AsSeller.NoShow)
	assert.Equal(t, 1, result[1].AsSeller.QualityScoreCount)
}
