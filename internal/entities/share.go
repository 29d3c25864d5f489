// Package entities contains core business entities.
package entities

import "time"

// ShareFormat selects how a view link is encoded.
type ShareFormat string

const (
	// ShareFormatJSON packs the payload as percent-encoded JSON under a data parameter.
	ShareFormatJSON ShareFormat = "json"
	// ShareFormatFlat lists players as name=skill or teams as teamN=a,b,c.
	ShareFormatFlat ShareFormat = "flat"
)

// ShareOptions controls what a view link carries.
type ShareOptions struct {
	Format        ShareFormat
	IncludeSkills bool
	RosterOnly    bool
	Shorten       bool
}

// SharePayload is the read-only document reconstructed from a view link.
type SharePayload struct {
	Players          []Player  `json:"players,omitempty"`
	Teams            []Team    `json:"teams,omitempty"`
	IncludeSkills    bool      `json:"includeSkills"`
	Timestamp        time.Time `json:"timestamp"`
	ShowBackButton   bool      `json:"showBackButton"`
	ShowCalculations bool      `json:"showCalculations"`
	RosterOnly       bool      `json:"rosterOnly"`
}

// Roster returns the shared players, flattening teams when no roster was shared.
func (p SharePayload) Roster() []Player {
	if len(p.Players) > 0 {
		return p.Players
	}
	players := make([]Player, 0)
	for _, t := range p.Teams {
		players = append(players, t.Players...)
	}
	return players
}

// ShareLink is a view link, shortened when requested and possible.
type ShareLink struct {
	URL     string `json:"url"`
	LongURL string `json:"long_url"`
}
