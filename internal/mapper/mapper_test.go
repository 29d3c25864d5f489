package mapper

import (
	"testing"

	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/stretchr/testify/require"
)

func TestToOAPISessionCanBalance(t *testing.T) {
	s := entities.Session{ID: "s1", Players: []entities.Player{{Name: "a", SkillLevel: 1}}, Teams: []entities.Team{}}

	got := ToOAPISession(s, 1)
	require.True(t, got.CanBalance)
	require.Equal(t, "s1", got.SessionId)
	require.NotNil(t, got.Teams)

	require.False(t, ToOAPISession(s, 15).CanBalance)
}

func TestToOAPIBalanceResultWarningMessage(t *testing.T) {
	got := ToOAPIBalanceResult(entities.BalanceResult{
		Imbalance: 7,
		Attempts:  1000,
		Warning:   &entities.BalanceWarning{AchievedImbalance: 7, Attempts: 1000},
	})
	require.NotNil(t, got.Warning)
	require.Equal(t, "Best possible difference was 7 after 1000 attempts", got.Warning.Message)

	require.Nil(t, ToOAPIBalanceResult(entities.BalanceResult{Attempts: 3}).Warning)
}

func TestToOAPIViewOmitsEmptySections(t *testing.T) {
	v := ToOAPIView(entities.SharePayload{
		Players:    []entities.Player{{Name: "a", SkillLevel: 50}},
		RosterOnly: true,
	})
	require.Len(t, v.Players, 1)
	require.Nil(t, v.Teams)
	require.True(t, v.RosterOnly)
}
