package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImbalance(t *testing.T) {
	require.Equal(t, 0, Imbalance(nil))
	require.Equal(t, 30, Imbalance([]Team{{TotalSkill: 250}, {TotalSkill: 220}, {TotalSkill: 240}}))
}

func TestSharePayloadRosterFlattensTeams(t *testing.T) {
	p := SharePayload{Teams: []Team{
		{Players: []Player{{Name: "Alex", SkillLevel: 10}}},
		{Players: []Player{{Name: "Sam", SkillLevel: 20}, {Name: "Quinn", SkillLevel: 30}}},
	}}
	require.Equal(t, []Player{{"Alex", 10}, {"Sam", 20}, {"Quinn", 30}}, p.Roster())

	p.Players = []Player{{Name: "Drew", SkillLevel: 40}}
	require.Equal(t, []Player{{"Drew", 40}}, p.Roster())
}
