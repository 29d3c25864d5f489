// Package state encodes session state as JSON values stored under fixed keys.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// Fixed keys of the persisted session values.
const (
	PlayersKey = "soccerPlayers"
	TeamsKey   = "soccerTeams"
)

// Keys lists every key written for a session, in write order.
var Keys = []string{PlayersKey, TeamsKey}

// Encode returns the JSON value of every key for the given session.
func Encode(s entities.Session) (map[string][]byte, error) {
	players := s.Players
	if players == nil {
		players = []entities.Player{}
	}
	teams := s.Teams
	if teams == nil {
		teams = []entities.Team{}
	}

	p, err := json.Marshal(players)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", PlayersKey, err)
	}
	t, err := json.Marshal(teams)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", TeamsKey, err)
	}
	return map[string][]byte{PlayersKey: p, TeamsKey: t}, nil
}

// Decode fills the session from stored key values. Missing keys decode as empty.
func Decode(s *entities.Session, values map[string][]byte) error {
	s.Players = []entities.Player{}
	s.Teams = []entities.Team{}

	if raw, ok := values[PlayersKey]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Players); err != nil {
			return fmt.Errorf("decode %s: %w", PlayersKey, err)
		}
	}
	if raw, ok := values[TeamsKey]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Teams); err != nil {
			return fmt.Errorf("decode %s: %w", TeamsKey, err)
		}
	}
	return nil
}
