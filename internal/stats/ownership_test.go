package stats_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/stats"
)

func TestVisibilityFor_AdminNoTarget_Unrestricted(t *testing.T) {
	vis := stats.VisibilityFor(uuid.New(), domain.RoleAdmin, nil)
	assert.True(t, vis.Unrestricted())
}

func TestVisibilityFor_ManagerNoTarget_Unrestricted(t *testing.T) {
	vis := stats.VisibilityFor(uuid.New(), domain.RoleManager, nil)
	assert.True(t, vis.Unrestricted())
}

func TestVisibilityFor_AdminWithTarget_RestrictedToTarget(t *testing.T) {
	target := uuid.New()
	vis := stats.VisibilityFor(uuid.New(), domain.RoleAdmin, &target)
	require.NotNil(t, vis.UserID)
	assert.Equal(t, target, *vis.UserID)
}

func TestVisibilityFor_UserIgnoresTarget(t *testing.T) {
	requester := uuid.New()
	someoneElse := uuid.New()

	withTarget := stats.VisibilityFor(requester, domain.RoleUser, &someoneElse)
	withoutTarget := stats.VisibilityFor(requester, domain.RoleUser, nil)

	require.NotNil(t, withTarget.UserID)
	require.NotNil(t, withoutTarget.UserID)
	assert.Equal(t, requester, *withTarget.UserID)
	assert.Equal(t, requester, *withoutTarget.UserID)
}

func TestVisibilityFor_UserOwnTarget_Restricted(t *testing.T) {
	requester := uuid.New()
	vis := stats.VisibilityFor(requester, domain.RoleUser, &requester)
	require.NotNil(t, vis.UserID)
	assert.Equal(t, requester, *vis.UserID)
}
