package balancer

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/good-enough-software/team-builder/internal/entities"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func roster(skills ...int) []entities.Player {
	players := make([]entities.Player, 0, len(skills))
	for i, s := range skills {
		players = append(players, entities.Player{Name: fmt.Sprintf("p%02d", i+1), SkillLevel: s})
	}
	return players
}

func newBalancer(t *testing.T, opts ...Option) *Balancer {
	t.Helper()

	b, err := New(DefaultConfig(), append([]Option{WithRand(seeded(42))}, opts...)...)
	require.NoError(t, err)
	return b
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.ErrorIs(t, Config{RequiredSize: 14, GroupCount: 3, MaxAttempts: 10}.Validate(), entities.ErrInvalidArgument)
	require.ErrorIs(t, Config{RequiredSize: 15, GroupCount: 0, MaxAttempts: 10}.Validate(), entities.ErrInvalidArgument)
	require.ErrorIs(t, Config{RequiredSize: 15, GroupCount: 3}.Validate(), entities.ErrInvalidArgument)

	_, err := New(Config{RequiredSize: 10, GroupCount: 3, MaxAttempts: 1})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestBalanceRejectsWrongSize(t *testing.T) {
	calls := 0
	b := newBalancer(t, WithAttemptObserver(func(Attempt) { calls++ }))

	_, err := b.Balance(roster(50, 50, 50), 10)
	require.ErrorIs(t, err, entities.ErrInvalidInputSize)
	require.Zero(t, calls)
}

func TestBalanceRejectsNegativeThreshold(t *testing.T) {
	b := newBalancer(t)

	_, err := b.Balance(roster(50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50), -1)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestBalancePartitionsRoster(t *testing.T) {
	r := seeded(7)
	for i := 0; i < 50; i++ {
		players := make([]entities.Player, 15)
		for j := range players {
			players[j] = entities.Player{Name: fmt.Sprintf("p%02d", j), SkillLevel: r.IntN(101)}
		}

		b := newBalancer(t)
		res, err := b.Balance(players, r.IntN(60))
		require.NoError(t, err)

		require.Len(t, res.Teams, 3)
		sum := 0
		for _, team := range res.Teams {
			require.Len(t, team.Players, 5)
			sum += team.TotalSkill
		}
		require.Equal(t, entities.TotalSkill(players), sum)
		require.NoError(t, Verify(players, res.Teams))
		require.Equal(t, entities.Imbalance(res.Teams), res.Imbalance)
	}
}

func TestBalanceDoesNotMutateInput(t *testing.T) {
	players := roster(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
	before := append([]entities.Player(nil), players...)

	_, err := newBalancer(t).Balance(players, 0)
	require.NoError(t, err)
	require.Equal(t, before, players)
}

func TestBalanceBestImbalanceNeverIncreases(t *testing.T) {
	var trace []Attempt
	b := newBalancer(t, WithAttemptObserver(func(a Attempt) { trace = append(trace, a) }))

	res, err := b.Balance(roster(100, 90, 80, 70, 60, 50, 40, 30, 20, 10, 5, 3, 2, 1, 0), 0)
	require.NoError(t, err)
	require.Len(t, trace, res.Attempts)

	for i, a := range trace {
		require.Equal(t, i+1, a.Number)
		require.LessOrEqual(t, a.BestImbalance, a.Imbalance)
		if i == 0 {
			require.True(t, a.Improved)
			continue
		}
		require.LessOrEqual(t, a.BestImbalance, trace[i-1].BestImbalance)
		require.Equal(t, a.BestImbalance < trace[i-1].BestImbalance, a.Improved)
	}
	require.Equal(t, trace[len(trace)-1].BestImbalance, res.Imbalance)
}

func TestBalanceStopsAtFirstAttemptWithinThreshold(t *testing.T) {
	const threshold = 40

	var trace []Attempt
	b := newBalancer(t, WithAttemptObserver(func(a Attempt) { trace = append(trace, a) }))

	res, err := b.Balance(roster(100, 100, 100, 100, 100, 0, 0, 0, 0, 0, 90, 10, 80, 20, 50), threshold)
	require.NoError(t, err)
	require.Nil(t, res.Warning)
	require.LessOrEqual(t, res.Imbalance, threshold)

	last := trace[len(trace)-1]
	require.LessOrEqual(t, last.Imbalance, threshold)
	for _, a := range trace[:len(trace)-1] {
		require.Greater(t, a.Imbalance, threshold)
	}
}

func TestBalanceIdenticalRatingsExitImmediately(t *testing.T) {
	b := newBalancer(t)

	res, err := b.Balance(roster(50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50), 0)
	require.NoError(t, err)
	require.Equal(t, 0, res.Imbalance)
	require.Equal(t, 1, res.Attempts)
	require.Nil(t, res.Warning)
	for _, team := range res.Teams {
		require.Equal(t, 250, team.TotalSkill)
	}
}

func TestBalanceMixedRatingsReachesEvenSplit(t *testing.T) {
	// 750 total: every team can hold one 100, one 0 and three 50s.
	b := newBalancer(t)

	res, err := b.BalanceN(roster(100, 100, 100, 0, 0, 0, 50, 50, 50, 50, 50, 50, 50, 50, 50), 0, 1000)
	require.NoError(t, err)
	require.Equal(t, 0, res.Imbalance)
	require.Nil(t, res.Warning)
	for _, team := range res.Teams {
		require.Equal(t, 250, team.TotalSkill)
	}
}

func TestBalanceUnreachableThresholdWarns(t *testing.T) {
	// 751 total: some team always holds one point more.
	b := newBalancer(t)

	res, err := b.BalanceN(roster(51, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50), 0, 1000)
	require.NoError(t, err)
	require.Equal(t, 1000, res.Attempts)
	require.Equal(t, 1, res.Imbalance)
	require.Equal(t, &entities.BalanceWarning{AchievedImbalance: 1, Attempts: 1000}, res.Warning)
}

func TestBalanceMaxThresholdWithAdversarialRoster(t *testing.T) {
	const threshold = 200

	var trace []Attempt
	b := newBalancer(t, WithAttemptObserver(func(a Attempt) { trace = append(trace, a) }))

	// The worst possible deal is 500 apart, so the threshold is not met trivially.
	players := roster(100, 100, 100, 100, 100, 0, 0, 0, 0, 0, 50, 50, 50, 50, 50)
	res, err := b.Balance(players, threshold)
	require.NoError(t, err)
	require.Nil(t, res.Warning)
	require.LessOrEqual(t, res.Imbalance, threshold)
	require.Equal(t, len(trace), res.Attempts)
	for _, a := range trace[:len(trace)-1] {
		require.Greater(t, a.Imbalance, threshold)
	}

	worst := []entities.Team{
		{Players: players[:5], TotalSkill: 500},
		{Players: players[5:10], TotalSkill: 0},
		{Players: players[10:], TotalSkill: 250},
	}
	require.Equal(t, 500, entities.Imbalance(worst))
	require.Greater(t, entities.Imbalance(worst), threshold)
}

func TestBalanceBudgetOverride(t *testing.T) {
	b := newBalancer(t)

	res, err := b.BalanceN(roster(51, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50), 0, 7)
	require.NoError(t, err)
	require.Equal(t, 7, res.Attempts)
	require.NotNil(t, res.Warning)

	res, err = b.BalanceN(roster(51, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50), 0, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().MaxAttempts, res.Attempts)
}

func TestBalanceSameSeedSameResult(t *testing.T) {
	players := roster(100, 90, 80, 70, 60, 50, 40, 30, 20, 10, 5, 3, 2, 1, 0)

	b1, err := New(DefaultConfig(), WithRand(seeded(99)))
	require.NoError(t, err)
	b2, err := New(DefaultConfig(), WithRand(seeded(99)))
	require.NoError(t, err)

	r1, err := b1.Balance(players, 5)
	require.NoError(t, err)
	r2, err := b2.Balance(players, 5)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}

func TestBalanceCustomGroupCount(t *testing.T) {
	b, err := New(Config{RequiredSize: 8, GroupCount: 4, MaxAttempts: 200}, WithRand(seeded(3)))
	require.NoError(t, err)

	players := roster(10, 20, 30, 40, 50, 60, 70, 80)
	res, err := b.Balance(players, 0)
	require.NoError(t, err)
	require.Len(t, res.Teams, 4)
	for _, team := range res.Teams {
		require.Len(t, team.Players, 2)
	}
	require.NoError(t, Verify(players, res.Teams))
}

func TestVerify(t *testing.T) {
	players := roster(10, 20, 30, 40)
	ok := []entities.Team{
		{Players: []entities.Player{players[0], players[3]}, TotalSkill: 50},
		{Players: []entities.Player{players[1], players[2]}, TotalSkill: 50},
	}
	require.NoError(t, Verify(players, ok))

	require.ErrorIs(t, Verify(players, nil), ErrNoTeams)

	missing := []entities.Team{{Players: []entities.Player{players[0]}, TotalSkill: 10}}
	require.ErrorContains(t, Verify(players, missing), "not assigned")

	dup := []entities.Team{
		{Players: []entities.Player{players[0], players[0]}, TotalSkill: 20},
		{Players: []entities.Player{players[1], players[2], players[3]}, TotalSkill: 90},
	}
	require.ErrorContains(t, Verify(players, dup), "unexpected player")

	wrongTotal := []entities.Team{
		{Players: []entities.Player{players[0], players[3]}, TotalSkill: 51},
		{Players: []entities.Player{players[1], players[2]}, TotalSkill: 50},
	}
	require.ErrorContains(t, Verify(players, wrongTotal), "total skill")
}

func TestVerifyGroupingEnforcesShape(t *testing.T) {
	b, err := New(Config{RequiredSize: 4, GroupCount: 2, MaxAttempts: 10})
	require.NoError(t, err)

	players := roster(10, 20, 30, 40)
	require.NoError(t, b.VerifyGrouping(players, []entities.Team{
		{Players: []entities.Player{players[0], players[3]}, TotalSkill: 50},
		{Players: []entities.Player{players[1], players[2]}, TotalSkill: 50},
	}))

	tests := map[string]struct {
		players []entities.Player
		teams   []entities.Team
	}{
		"short roster": {
			players: players[:2],
			teams: []entities.Team{
				{Players: []entities.Player{players[0]}, TotalSkill: 10},
				{Players: []entities.Player{players[1]}, TotalSkill: 20},
			},
		},
		"unequal teams": {
			players: players,
			teams: []entities.Team{
				{Players: []entities.Player{players[0]}, TotalSkill: 10},
				{Players: []entities.Player{players[1], players[2], players[3]}, TotalSkill: 90},
			},
		},
		"wrong team count": {
			players: players,
			teams:   []entities.Team{{Players: players, TotalSkill: 100}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, b.VerifyGrouping(tt.players, tt.teams), entities.ErrInvalidInputSize)
		})
	}
}

func TestAttemptImprovedIgnoresTies(t *testing.T) {
	var trace []Attempt
	b := newBalancer(t, WithAttemptObserver(func(a Attempt) { trace = append(trace, a) }))

	// one 51 among 50s: every split has imbalance 1, so only the first attempt improves
	players := roster(51, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50)
	res, err := b.BalanceN(players, 0, 20)
	require.NoError(t, err)
	require.Equal(t, 20, res.Attempts)

	improved := 0
	for _, a := range trace {
		require.Equal(t, a.BestImbalance, a.Imbalance)
		if a.Improved {
			improved++
		}
	}
	require.Equal(t, 1, improved)
}
