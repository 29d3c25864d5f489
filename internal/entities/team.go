// Package entities contains core business entities.
package entities

// Team is one group of a balanced split.
type Team struct {
	Players    []Player `json:"players"`
	TotalSkill int      `json:"totalSkill"`
}

// MaxImbalanceLimit is the upper bound of a user supplied imbalance threshold.
const MaxImbalanceLimit = 200

// BalanceWarning reports that the imbalance threshold was not met within the attempt budget.
type BalanceWarning struct {
	AchievedImbalance int `json:"achieved_imbalance"`
	Attempts          int `json:"attempts"`
}

// BalanceResult is the best grouping found by the balancer.
type BalanceResult struct {
	Teams     []Team          `json:"teams"`
	Imbalance int             `json:"imbalance"`
	Attempts  int             `json:"attempts"`
	Warning   *BalanceWarning `json:"warning,omitempty"`
}

// Imbalance returns the spread between the strongest and the weakest team.
func Imbalance(teams []Team) int {
	if len(teams) == 0 {
		return 0
	}
	lo, hi := teams[0].TotalSkill, teams[0].TotalSkill
	for _, t := range teams[1:] {
		if t.TotalSkill < lo {
			lo = t.TotalSkill
		}
		if t.TotalSkill > hi {
			hi = t.TotalSkill
		}
	}
	return hi - lo
}
