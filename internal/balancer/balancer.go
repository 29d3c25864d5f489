// Package balancer splits a roster into equal-sized teams with a bounded randomized search.
//
// Each attempt shuffles the roster, deals it round-robin into the configured number of
// teams and measures the spread between the strongest and weakest team. The best split
// is kept; the search stops early once the spread is within the requested threshold.
// The result is the best split found within the budget, not a proven optimum.
package balancer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// Config sizes the roster, the grouping and the default attempt budget.
type Config struct {
	RequiredSize int
	GroupCount   int
	MaxAttempts  int
}

// DefaultConfig returns the three teams of five setup with a budget of 1000 attempts.
func DefaultConfig() Config {
	return Config{RequiredSize: 15, GroupCount: 3, MaxAttempts: 1000}
}

// Validate checks that the roster divides evenly into groups.
func (c Config) Validate() error {
	if c.RequiredSize <= 0 || c.GroupCount <= 0 || c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: required size, group count and max attempts must be positive", entities.ErrInvalidArgument)
	}
	if c.RequiredSize%c.GroupCount != 0 {
		return fmt.Errorf("%w: required size %d is not divisible by group count %d",
			entities.ErrInvalidArgument, c.RequiredSize, c.GroupCount)
	}
	return nil
}

// Attempt describes one randomized trial.
type Attempt struct {
	Number        int
	Imbalance     int
	BestImbalance int
	// Improved is set when this attempt became the new best.
	Improved bool
}

// Option configures a Balancer.
type Option func(*Balancer)

// WithRand sets the random source. Tests pass a seeded generator to replay a search.
func WithRand(rng *rand.Rand) Option {
	return func(b *Balancer) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithAttemptObserver registers a callback invoked after every attempt.
func WithAttemptObserver(fn func(Attempt)) Option {
	return func(b *Balancer) {
		b.observe = fn
	}
}

// Balancer is safe for concurrent use; calls are serialized on the random source.
type Balancer struct {
	cfg     Config
	observe func(Attempt)

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a Balancer for the given configuration.
func New(cfg Config, opts ...Option) (*Balancer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Balancer{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Config returns the balancer configuration.
func (b *Balancer) Config() Config {
	return b.cfg
}

// Balance splits players using the configured attempt budget.
func (b *Balancer) Balance(players []entities.Player, maxImbalance int) (entities.BalanceResult, error) {
	return b.BalanceN(players, maxImbalance, b.cfg.MaxAttempts)
}

// BalanceN splits players trying at most maxAttempts random deals. A non-positive
// maxAttempts falls back to the configured budget.
//
// When no deal reaches maxImbalance the best one is still returned, with a warning
// carrying the achieved imbalance and the number of attempts made.
func (b *Balancer) BalanceN(players []entities.Player, maxImbalance, maxAttempts int) (entities.BalanceResult, error) {
	if len(players) != b.cfg.RequiredSize {
		return entities.BalanceResult{}, fmt.Errorf("%w: got %d players, need %d",
			entities.ErrInvalidInputSize, len(players), b.cfg.RequiredSize)
	}
	if maxImbalance < 0 {
		return entities.BalanceResult{}, fmt.Errorf("%w: max imbalance must not be negative", entities.ErrInvalidArgument)
	}
	if maxAttempts <= 0 {
		maxAttempts = b.cfg.MaxAttempts
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	work := make([]entities.Player, len(players))
	copy(work, players)

	var (
		best          []entities.Team
		bestImbalance int
		attempts      int
	)
	for attempts < maxAttempts {
		attempts++

		b.shuffle(work)
		teams := deal(work, b.cfg.GroupCount)
		imbalance := entities.Imbalance(teams)

		improved := best == nil || imbalance < bestImbalance
		if improved {
			best, bestImbalance = teams, imbalance
		}
		if b.observe != nil {
			b.observe(Attempt{Number: attempts, Imbalance: imbalance, BestImbalance: bestImbalance, Improved: improved})
		}
		if imbalance <= maxImbalance {
			break
		}
	}

	for i := range best {
		b.shuffle(best[i].Players)
	}

	res := entities.BalanceResult{
		Teams:     best,
		Imbalance: bestImbalance,
		Attempts:  attempts,
	}
	if bestImbalance > maxImbalance {
		res.Warning = &entities.BalanceWarning{AchievedImbalance: bestImbalance, Attempts: attempts}
	}
	return res, nil
}

// shuffle permutes players in place. rand.Shuffle is a Fisher-Yates shuffle.
func (b *Balancer) shuffle(players []entities.Player) {
	b.rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
}

// deal hands player i to team i mod groups.
func deal(players []entities.Player, groups int) []entities.Team {
	teams := make([]entities.Team, groups)
	size := len(players) / groups
	for i := range teams {
		teams[i].Players = make([]entities.Player, 0, size)
	}
	for i, p := range players {
		t := &teams[i%groups]
		t.Players = append(t.Players, p)
		t.TotalSkill += p.SkillLevel
	}
	return teams
}

// ErrNoTeams is returned by Verify for an empty grouping.
var ErrNoTeams = errors.New("grouping has no teams")

// Verify checks that teams partition players exactly and that totals are consistent.
func Verify(players []entities.Player, teams []entities.Team) error {
	if len(teams) == 0 {
		return ErrNoTeams
	}
	remaining := make(map[entities.Player]int, len(players))
	for _, p := range players {
		remaining[p]++
	}
	for i, t := range teams {
		if got := entities.TotalSkill(t.Players); got != t.TotalSkill {
			return fmt.Errorf("team %d: total skill %d, members sum to %d", i+1, t.TotalSkill, got)
		}
		for _, p := range t.Players {
			if remaining[p] == 0 {
				return fmt.Errorf("team %d: unexpected player %q", i+1, p.Name)
			}
			remaining[p]--
		}
	}
	for p, n := range remaining {
		if n > 0 {
			return fmt.Errorf("player %q is not assigned", p.Name)
		}
	}
	return nil
}

// VerifyGrouping checks teams against the configured shape: a full roster, GroupCount
// teams of RequiredSize/GroupCount players each, forming a partition with consistent totals.
func (b *Balancer) VerifyGrouping(players []entities.Player, teams []entities.Team) error {
	if len(players) != b.cfg.RequiredSize {
		return fmt.Errorf("%w: roster has %d players, need %d", entities.ErrInvalidInputSize, len(players), b.cfg.RequiredSize)
	}
	if len(teams) != b.cfg.GroupCount {
		return fmt.Errorf("%w: %d teams, need %d", entities.ErrInvalidInputSize, len(teams), b.cfg.GroupCount)
	}
	size := b.cfg.RequiredSize / b.cfg.GroupCount
	for i, t := range teams {
		if len(t.Players) != size {
			return fmt.Errorf("%w: team %d has %d players, need %d", entities.ErrInvalidInputSize, i+1, len(t.Players), size)
		}
	}
	return Verify(players, teams)
}
