package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// namePool feeds synthetic players.
var namePool = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey",
	"Sam", "Jamie", "Riley", "Avery", "Quinn",
	"Charlie", "Drew", "Parker", "Blake", "Cameron",
}

// AddPlayer appends a player with the default skill level.
func (u *Usecase) AddPlayer(ctx context.Context, id, name string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}

	return u.mutate(ctx, id, func(s *entities.Session) error {
		if len(s.Players) >= u.RequiredSize() {
			return fmt.Errorf("%w: roster already has %d players", entities.ErrRosterFull, len(s.Players))
		}
		s.Players = append(s.Players, entities.Player{Name: name, SkillLevel: entities.DefaultSkill})
		s.ClearTeams()
		u.log.Infow("player added", "session_id", id, "name", name, "players", len(s.Players))
		return nil
	})
}

// FillRoster tops the roster up with synthetic players of random skill.
func (u *Usecase) FillRoster(ctx context.Context, id string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.mutate(ctx, id, func(s *entities.Session) error {
		missing := u.RequiredSize() - len(s.Players)
		if missing <= 0 {
			return nil
		}
		s.Players = append(s.Players, u.syntheticPlayers(s.Players, missing)...)
		s.ClearTeams()
		u.log.Infow("roster filled", "session_id", id, "added", missing)
		return nil
	})
}

// UpdateSkill sets the skill level of the player at index. An existing grouping is kept,
// with the player's rating and the team total updated in place.
func (u *Usecase) UpdateSkill(ctx context.Context, id string, index, skill int) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if skill < entities.MinSkill || skill > entities.MaxSkill {
		return nil, fmt.Errorf("%w: skill_level must be within [%d, %d]", entities.ErrInvalidArgument, entities.MinSkill, entities.MaxSkill)
	}

	return u.mutate(ctx, id, func(s *entities.Session) error {
		if index < 0 || index >= len(s.Players) {
			return fmt.Errorf("%w: index %d", entities.ErrPlayerNotFound, index)
		}
		prev := s.Players[index]
		s.Players[index].SkillLevel = skill
		resyncTeams(s.Teams, prev, skill)
		return nil
	})
}

// RemovePlayer drops the player at index.
func (u *Usecase) RemovePlayer(ctx context.Context, id string, index int) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.mutate(ctx, id, func(s *entities.Session) error {
		if index < 0 || index >= len(s.Players) {
			return fmt.Errorf("%w: index %d", entities.ErrPlayerNotFound, index)
		}
		s.Players = slices.Delete(s.Players, index, index+1)
		s.ClearTeams()
		return nil
	})
}

// Reset empties the roster and the grouping.
func (u *Usecase) Reset(ctx context.Context, id string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.mutate(ctx, id, func(s *entities.Session) error {
		s.Players = []entities.Player{}
		s.ClearTeams()
		u.log.Infow("session reset", "session_id", id)
		return nil
	})
}

// syntheticPlayers picks n names not yet on the roster, each with a skill in [MinSkill, MaxSkill].
func (u *Usecase) syntheticPlayers(existing []entities.Player, n int) []entities.Player {
	used := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		used[p.Name] = struct{}{}
	}
	available := make([]string, 0, len(namePool))
	for _, name := range namePool {
		if _, ok := used[name]; !ok {
			available = append(available, name)
		}
	}

	u.randMu.Lock()
	defer u.randMu.Unlock()

	u.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	players := make([]entities.Player, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Player %d", len(existing)+i+1)
		if i < len(available) {
			name = available[i]
		}
		players = append(players, entities.Player{
			Name:       name,
			SkillLevel: entities.MinSkill + u.rng.IntN(entities.MaxSkill-entities.MinSkill+1),
		})
	}
	return players
}

// resyncTeams rewrites the first team entry equal to prev with the new skill.
func resyncTeams(teams []entities.Team, prev entities.Player, skill int) {
	for i := range teams {
		for j, p := range teams[i].Players {
			if p != prev {
				continue
			}
			teams[i].Players[j].SkillLevel = skill
			teams[i].TotalSkill += skill - prev.SkillLevel
			return
		}
	}
}
