// Package share encodes rosters and groupings into view links and decodes them back.
//
// Two encodings are understood. The JSON form carries the whole payload as a
// percent-encoded document under a data parameter:
//
//	https://host/#/view?data=%7B%22teams%22%3A...
//
// The flat form lists one parameter per team or per player:
//
//	https://host/#/view?team1=Alex,Sam&team2=Quinn,Drew
//	https://host/#/view?Alex=70&Sam=40
package share

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/good-enough-software/team-builder/internal/entities"
)

const (
	viewRoute  = "#/view"
	dataParam  = "data"
	teamPrefix = "team"
)

// Limits bound what a decoded link may contain.
type Limits struct {
	MaxPlayers int
	MaxTeams   int
}

// Codec builds and parses view links rooted at a base URL.
type Codec struct {
	baseURL string
	limits  Limits
	now     func() time.Time
}

// NewCodec constructs a Codec.
func NewCodec(baseURL string, limits Limits) *Codec {
	return &Codec{
		baseURL: strings.TrimRight(baseURL, "/"),
		limits:  limits,
		now:     time.Now,
	}
}

type wirePlayer struct {
	Name       string `json:"name"`
	SkillLevel *int   `json:"skillLevel,omitempty"`
}

type wireTeam struct {
	Players    []wirePlayer `json:"players"`
	TotalSkill *int         `json:"totalSkill,omitempty"`
}

type wirePayload struct {
	Players          []wirePlayer `json:"players,omitempty"`
	Teams            []wireTeam   `json:"teams,omitempty"`
	IncludeSkills    bool         `json:"includeSkills"`
	Timestamp        time.Time    `json:"timestamp"`
	ShowBackButton   bool         `json:"showBackButton"`
	ShowCalculations bool         `json:"showCalculations"`
	RosterOnly       bool         `json:"rosterOnly"`
}

// Payload assembles the document shared for a roster or a grouping.
func (c *Codec) Payload(players []entities.Player, teams []entities.Team, opts entities.ShareOptions) entities.SharePayload {
	p := entities.SharePayload{
		IncludeSkills:    opts.IncludeSkills,
		Timestamp:        c.now().UTC(),
		ShowBackButton:   !opts.IncludeSkills,
		ShowCalculations: opts.IncludeSkills,
		RosterOnly:       opts.RosterOnly,
	}
	if opts.RosterOnly {
		p.Players = players
	} else {
		p.Teams = teams
	}
	return p
}

// Encode renders a payload as a view link in the requested format.
func (c *Codec) Encode(p entities.SharePayload, format entities.ShareFormat) (string, error) {
	switch format {
	case entities.ShareFormatJSON, "":
		return c.encodeJSON(p)
	case entities.ShareFormatFlat:
		return c.encodeFlat(p), nil
	default:
		return "", fmt.Errorf("%w: unknown share format %q", entities.ErrInvalidArgument, format)
	}
}

func (c *Codec) encodeJSON(p entities.SharePayload) (string, error) {
	w := wirePayload{
		IncludeSkills:    p.IncludeSkills,
		Timestamp:        p.Timestamp,
		ShowBackButton:   p.ShowBackButton,
		ShowCalculations: p.ShowCalculations,
		RosterOnly:       p.RosterOnly,
	}
	if p.RosterOnly {
		w.Players = toWirePlayers(p.Players, true)
		if w.Players == nil {
			w.Players = []wirePlayer{}
		}
	} else {
		w.Teams = make([]wireTeam, 0, len(p.Teams))
		for _, t := range p.Teams {
			wt := wireTeam{Players: toWirePlayers(t.Players, p.IncludeSkills)}
			if p.IncludeSkills {
				total := t.TotalSkill
				wt.TotalSkill = &total
			}
			w.Teams = append(w.Teams, wt)
		}
	}

	raw, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}
	return c.baseURL + "/" + viewRoute + "?" + dataParam + "=" + escapeComponent(string(raw)), nil
}

func (c *Codec) encodeFlat(p entities.SharePayload) string {
	parts := make([]string, 0)
	if p.RosterOnly {
		for _, pl := range p.Players {
			parts = append(parts, escapeComponent(pl.Name)+"="+strconv.Itoa(pl.SkillLevel))
		}
	} else {
		for i, t := range p.Teams {
			names := make([]string, 0, len(t.Players))
			for _, pl := range t.Players {
				names = append(names, escapeComponent(pl.Name))
			}
			parts = append(parts, teamPrefix+strconv.Itoa(i+1)+"="+strings.Join(names, ","))
		}
	}
	return c.baseURL + "/" + viewRoute + "?" + strings.Join(parts, "&")
}

func toWirePlayers(players []entities.Player, withSkill bool) []wirePlayer {
	if players == nil {
		return nil
	}
	out := make([]wirePlayer, 0, len(players))
	for _, p := range players {
		wp := wirePlayer{Name: p.Name}
		if withSkill {
			skill := p.SkillLevel
			wp.SkillLevel = &skill
		}
		out = append(out, wp)
	}
	return out
}

// Decode parses a view link. It accepts a full URL, a fragment such as
// "#/view?data=..." or a bare query string.
func (c *Codec) Decode(link string) (entities.SharePayload, error) {
	query := extractQuery(link)
	if query == "" {
		return entities.SharePayload{}, fmt.Errorf("%w: no view parameters", entities.ErrInvalidShareData)
	}

	var (
		p   entities.SharePayload
		err error
	)
	if data, ok := lookupParam(query, dataParam); ok {
		p, err = decodeJSON(data)
	} else {
		p, err = decodeFlat(query)
	}
	if err != nil {
		return entities.SharePayload{}, err
	}
	if err := c.validate(p); err != nil {
		return entities.SharePayload{}, err
	}
	return p, nil
}

func decodeJSON(data string) (entities.SharePayload, error) {
	raw, err := url.PathUnescape(data)
	if err != nil {
		return entities.SharePayload{}, fmt.Errorf("%w: %v", entities.ErrInvalidShareData, err)
	}

	var w wirePayload
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return entities.SharePayload{}, fmt.Errorf("%w: %v", entities.ErrInvalidShareData, err)
	}

	p := entities.SharePayload{
		IncludeSkills:    w.IncludeSkills,
		Timestamp:        w.Timestamp,
		ShowBackButton:   w.ShowBackButton,
		ShowCalculations: w.ShowCalculations,
		RosterOnly:       w.RosterOnly,
		Players:          fromWirePlayers(w.Players),
	}
	for _, wt := range w.Teams {
		t := entities.Team{Players: fromWirePlayers(wt.Players)}
		t.TotalSkill = entities.TotalSkill(t.Players)
		p.Teams = append(p.Teams, t)
	}
	return p, nil
}

func fromWirePlayers(in []wirePlayer) []entities.Player {
	if in == nil {
		return nil
	}
	out := make([]entities.Player, 0, len(in))
	for _, wp := range in {
		skill := entities.DefaultSkill
		if wp.SkillLevel != nil {
			skill = *wp.SkillLevel
		}
		out = append(out, entities.Player{Name: strings.TrimSpace(wp.Name), SkillLevel: skill})
	}
	return out
}

func decodeFlat(query string) (entities.SharePayload, error) {
	var (
		teams   = map[int]entities.Team{}
		maxTeam int
		players []entities.Player
	)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		name, err := url.PathUnescape(key)
		if err != nil {
			return entities.SharePayload{}, fmt.Errorf("%w: %v", entities.ErrInvalidShareData, err)
		}

		if n, ok := teamNumber(name); ok {
			team := entities.Team{Players: []entities.Player{}}
			for _, raw := range strings.Split(value, ",") {
				member, err := url.PathUnescape(strings.TrimSpace(raw))
				if err != nil {
					return entities.SharePayload{}, fmt.Errorf("%w: %v", entities.ErrInvalidShareData, err)
				}
				if member = strings.TrimSpace(member); member == "" {
					continue
				}
				team.Players = append(team.Players, entities.Player{Name: member, SkillLevel: entities.DefaultSkill})
			}
			team.TotalSkill = entities.TotalSkill(team.Players)
			teams[n] = team
			if n > maxTeam {
				maxTeam = n
			}
			continue
		}

		skill, err := strconv.Atoi(value)
		if err != nil {
			return entities.SharePayload{}, fmt.Errorf("%w: skill of %q: %v", entities.ErrInvalidShareData, name, err)
		}
		players = append(players, entities.Player{Name: strings.TrimSpace(name), SkillLevel: skill})
	}

	p := entities.SharePayload{ShowBackButton: true}
	if len(teams) > 0 {
		for i := 1; i <= maxTeam; i++ {
			t, ok := teams[i]
			if !ok {
				return entities.SharePayload{}, fmt.Errorf("%w: %s%d missing", entities.ErrInvalidShareData, teamPrefix, i)
			}
			p.Teams = append(p.Teams, t)
		}
		return p, nil
	}
	if len(players) == 0 {
		return entities.SharePayload{}, fmt.Errorf("%w: no players or teams", entities.ErrInvalidShareData)
	}
	p.Players = players
	p.RosterOnly = true
	p.IncludeSkills = true
	return p, nil
}

func teamNumber(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, teamPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (c *Codec) validate(p entities.SharePayload) error {
	if len(p.Players) == 0 && len(p.Teams) == 0 {
		return fmt.Errorf("%w: no players or teams", entities.ErrInvalidShareData)
	}
	if c.limits.MaxTeams > 0 && len(p.Teams) > c.limits.MaxTeams {
		return fmt.Errorf("%w: %d teams, at most %d", entities.ErrInvalidShareData, len(p.Teams), c.limits.MaxTeams)
	}
	roster := p.Roster()
	if c.limits.MaxPlayers > 0 && len(roster) > c.limits.MaxPlayers {
		return fmt.Errorf("%w: %d players, at most %d", entities.ErrInvalidShareData, len(roster), c.limits.MaxPlayers)
	}
	for _, pl := range roster {
		if pl.Name == "" {
			return fmt.Errorf("%w: player without name", entities.ErrInvalidShareData)
		}
		if pl.SkillLevel < entities.MinSkill || pl.SkillLevel > entities.MaxSkill {
			return fmt.Errorf("%w: skill of %q out of range", entities.ErrInvalidShareData, pl.Name)
		}
	}
	return nil
}

// extractQuery returns the raw view query of a link, preferring the fragment.
func extractQuery(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.Index(link, "#"); i >= 0 {
		link = link[i+1:]
	}
	if i := strings.Index(link, "?"); i >= 0 {
		return link[i+1:]
	}
	if strings.Contains(link, "=") {
		return link
	}
	return ""
}

func lookupParam(query, name string) (string, bool) {
	for _, pair := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == name {
			return value, true
		}
	}
	return "", false
}

// escapeComponent escapes like JavaScript's encodeURIComponent, so links stay readable by
// the browser viewer: spaces become %20 rather than "+".
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
