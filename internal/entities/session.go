// Package entities contains core business entities.
package entities

import "time"

// Session owns one roster and the grouping last computed for it.
type Session struct {
	ID        string    `json:"id"`
	Players   []Player  `json:"players"`
	Teams     []Team    `json:"teams"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClearTeams drops the derived grouping.
func (s *Session) ClearTeams() {
	s.Teams = []Team{}
}
