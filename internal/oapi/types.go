// Package api defines the HTTP contract of the team builder service.
package api

import "time"

// ErrorResponseErrorCode enumerates machine readable error codes.
type ErrorResponseErrorCode string

const (
	INVALIDARGUMENT  ErrorResponseErrorCode = "INVALID_ARGUMENT"
	NOTFOUND         ErrorResponseErrorCode = "NOT_FOUND"
	ROSTERFULL       ErrorResponseErrorCode = "ROSTER_FULL"
	ROSTERINCOMPLETE ErrorResponseErrorCode = "ROSTER_INCOMPLETE"
	INVALIDSHAREDATA ErrorResponseErrorCode = "INVALID_SHARE_DATA"
	INTERNAL         ErrorResponseErrorCode = "INTERNAL"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error struct {
		Code    ErrorResponseErrorCode `json:"code"`
		Message string                 `json:"message"`
	} `json:"error"`
}

// Player is a rated roster entry.
type Player struct {
	Name       string `json:"name"`
	SkillLevel int    `json:"skill_level"`
}

// Team is one group of a balanced split.
type Team struct {
	Players    []Player `json:"players"`
	TotalSkill int      `json:"total_skill"`
}

// Session is the state of one roster.
type Session struct {
	SessionId    string    `json:"session_id"`
	Players      []Player  `json:"players"`
	Teams        []Team    `json:"teams"`
	RequiredSize int       `json:"required_size"`
	CanBalance   bool      `json:"can_balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BalanceWarning is set when the threshold was not met.
type BalanceWarning struct {
	AchievedImbalance int    `json:"achieved_imbalance"`
	Attempts          int    `json:"attempts"`
	Message           string `json:"message"`
}

// BalanceResult is the response of a balance request.
type BalanceResult struct {
	Teams     []Team          `json:"teams"`
	Imbalance int             `json:"imbalance"`
	Attempts  int             `json:"attempts"`
	Warning   *BalanceWarning `json:"warning,omitempty"`
}

// ShareLink is the response of a share request.
type ShareLink struct {
	Url     string `json:"url"`
	LongUrl string `json:"long_url"`
}

// View is the read-only document behind a view link.
type View struct {
	Players          []Player  `json:"players,omitempty"`
	Teams            []Team    `json:"teams,omitempty"`
	IncludeSkills    bool      `json:"include_skills"`
	Timestamp        time.Time `json:"timestamp"`
	ShowBackButton   bool      `json:"show_back_button"`
	ShowCalculations bool      `json:"show_calculations"`
	RosterOnly       bool      `json:"roster_only"`
}

// PostPlayerJSONRequestBody adds a player.
type PostPlayerJSONRequestBody struct {
	Name string `json:"name"`
}

// PatchPlayerJSONRequestBody sets a skill level.
type PatchPlayerJSONRequestBody struct {
	SkillLevel *int `json:"skill_level"`
}

// PostBalanceJSONRequestBody requests a balanced split.
type PostBalanceJSONRequestBody struct {
	MaxImbalance *int `json:"max_imbalance"`
}

// PostShareJSONRequestBody requests a view link.
type PostShareJSONRequestBody struct {
	IncludeSkills bool   `json:"include_skills"`
	RosterOnly    bool   `json:"roster_only"`
	Format        string `json:"format"`
	Shorten       bool   `json:"shorten"`
}

// PostImportJSONRequestBody imports a view link.
type PostImportJSONRequestBody struct {
	Url string `json:"url"`
}
