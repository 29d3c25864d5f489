// Package entities contains core business entities.
package entities

// Skill bounds of a player rating.
const (
	MinSkill     = 0
	MaxSkill     = 100
	DefaultSkill = 50
)

// Player is a named, rated participant of a roster.
type Player struct {
	Name       string `json:"name"`
	SkillLevel int    `json:"skillLevel"`
}

// TotalSkill sums ratings of the given players.
func TotalSkill(players []Player) int {
	total := 0
	for _, p := range players {
		total += p.SkillLevel
	}
	return total
}
