// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"fmt"

	"github.com/good-enough-software/team-builder/internal/entities"
	api "github.com/good-enough-software/team-builder/internal/oapi"
)

// ToOAPIPlayers maps a roster to transport models.
func ToOAPIPlayers(players []entities.Player) []api.Player {
	out := make([]api.Player, 0, len(players))
	for _, p := range players {
		out = append(out, api.Player{Name: p.Name, SkillLevel: p.SkillLevel})
	}
	return out
}

// ToOAPITeams maps teams to transport models.
func ToOAPITeams(teams []entities.Team) []api.Team {
	out := make([]api.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, api.Team{Players: ToOAPIPlayers(t.Players), TotalSkill: t.TotalSkill})
	}
	return out
}

// ToOAPISession maps entities.Session to transport model.
func ToOAPISession(s entities.Session, requiredSize int) api.Session {
	return api.Session{
		SessionId:    s.ID,
		Players:      ToOAPIPlayers(s.Players),
		Teams:        ToOAPITeams(s.Teams),
		RequiredSize: requiredSize,
		CanBalance:   len(s.Players) == requiredSize,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToOAPIBalanceResult maps a balance outcome, rendering the warning text shown to users.
func ToOAPIBalanceResult(r entities.BalanceResult) api.BalanceResult {
	out := api.BalanceResult{
		Teams:     ToOAPITeams(r.Teams),
		Imbalance: r.Imbalance,
		Attempts:  r.Attempts,
	}
	if r.Warning != nil {
		out.Warning = &api.BalanceWarning{
			AchievedImbalance: r.Warning.AchievedImbalance,
			Attempts:          r.Warning.Attempts,
			Message: fmt.Sprintf("Best possible difference was %d after %d attempts",
				r.Warning.AchievedImbalance, r.Warning.Attempts),
		}
	}
	return out
}

// ToOAPIShareLink maps a produced link.
func ToOAPIShareLink(l entities.ShareLink) api.ShareLink {
	return api.ShareLink{Url: l.URL, LongUrl: l.LongURL}
}

// ToOAPIView maps a decoded view document.
func ToOAPIView(p entities.SharePayload) api.View {
	v := api.View{
		IncludeSkills:    p.IncludeSkills,
		Timestamp:        p.Timestamp,
		ShowBackButton:   p.ShowBackButton,
		ShowCalculations: p.ShowCalculations,
		RosterOnly:       p.RosterOnly,
	}
	if len(p.Players) > 0 {
		v.Players = ToOAPIPlayers(p.Players)
	}
	if len(p.Teams) > 0 {
		v.Teams = ToOAPITeams(p.Teams)
	}
	return v
}

// FromOAPIShareRequest builds share options from a request body.
func FromOAPIShareRequest(body api.PostShareJSONRequestBody) entities.ShareOptions {
	return entities.ShareOptions{
		Format:        entities.ShareFormat(body.Format),
		IncludeSkills: body.IncludeSkills,
		RosterOnly:    body.RosterOnly,
		Shorten:       body.Shorten,
	}
}
