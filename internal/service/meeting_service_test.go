package service_test

import (
	"context"
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

func TestCreateMeeting_RejectsEndBeforeStart(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), service.CreateMeetingInput{
		StartTime:      start,
		EndTime:        start.Add(-time.Hour),
		OrganizerEmail: "booker@example.com",
		Bookers:        []service.ParticipantInput{{UserID: uuid.New(), UserName: "Booker"}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTimeOrder)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMeeting_RequiresParticipants(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), service.CreateMeetingInput{
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		OrganizerEmail: "booker@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrNoParticipants)
}

func TestUpdateStatus_QualityRequiresCompleted(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	score := 4
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), service.UpdateStatusInput{
		Status:       domain.StatusNoShow,
		QualityScore: &score,
	})

	assert.ErrorIs(t, err, domain.ErrQualityNotCompleted)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_QualityBounds(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	for _, score := range []int{0, 6, -1} {
		s := score
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), service.UpdateStatusInput{
			Status:       domain.StatusCompleted,
			QualityScore: &s,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQualityScore, "score=%d", score)
	}
}

func TestUpdateStatus_CompletedWithValidScore(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	meetingID := uuid.New()
	score := 5
	updated := &domain.Meeting{ID: meetingID, Status: domain.StatusCompleted, QualityScore: &score}

	repo.On("UpdateStatus", mock.Anything, meetingID, domain.StatusCompleted, (*domain.StatusReason)(nil), &score, (*string)(nil)).Return(nil)
	repo.On("GetByID", mock.Anything, meetingID).Return(updated, nil)

	meeting, err := svc.UpdateStatus(context.Background(), meetingID, service.UpdateStatusInput{
		Status:       domain.StatusCompleted,
		QualityScore: &score,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, meeting.Status)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), service.UpdateStatusInput{
		Status: "POSTPONED",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDelete_SoftDeleteCancels(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	meetingID := uuid.New()
	reason := domain.ReasonOther
	repo.On("UpdateStatus", mock.Anything, meetingID, domain.StatusCanceled, &reason, (*int)(nil), (*string)(nil)).Return(nil)

	err := svc.Delete(context.Background(), meetingID, false)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestDelete_HardDeleteRemovesRow(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	meetingID := uuid.New()
	repo.On("Delete", mock.Anything, meetingID).Return(nil)

	err := svc.Delete(context.Background(), meetingID, true)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetMeeting_UserCannotSeeForeignMeeting(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	meetingID := uuid.New()
	otherUser := uuid.New()
	meeting := &domain.Meeting{
		ID:       meetingID,
		BookerID: &otherUser,
	}
	repo.On("GetByID", mock.Anything, meetingID).Return(meeting, nil)

	requester := service.Requester{ID: uuid.New(), Role: domain.RoleUser}
	_, err := svc.GetByID(context.Background(), requester, meetingID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetMeeting_JunctionAssignmentGrantsAccess(t *testing.T) {
	repo := new(mocks.MockMeetingRepo)
	svc := service.NewMeetingService(repo)

	meetingID := uuid.New()
	userID := uuid.New()
	meeting := &domain.Meeting{
		ID:      meetingID,
		Sellers: []domain.MeetingParticipant{{MeetingID: meetingID, UserID: userID, UserName: "Seller"}},
	}
	repo.On("GetByID", mock.Anything, meetingID).Return(meeting, nil)

	requester := service.Requester{ID: userID, Role: domain.RoleUser}
	got, err := svc.GetByID(context.Background(), requester, meetingID)

	require.NoError(t, err)
	assert.Equal(t, meetingID, got.ID)
}
