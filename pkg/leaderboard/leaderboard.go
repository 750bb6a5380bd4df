// Package leaderboard ranks race entrants by their decayed boost scores.
package leaderboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Timeframe selects which boosts count toward the score.
type Timeframe string

const (
	// TimeframeCurrent scores every boost that is still decaying.
	TimeframeCurrent Timeframe = "current"
	// TimeframeWeekly scores only boosts applied inside the current
	// competition week.
	TimeframeWeekly Timeframe = "weekly"
)

// Valid reports whether t is a known timeframe.
func (t Timeframe) Valid() bool {
	return t == TimeframeCurrent || t == TimeframeWeekly
}

// Entry is one ranked row of a computed leaderboard.
type Entry struct {
	Position         int             `json:"position"`
	PreviousPosition *int            `json:"previous_position,omitempty"`
	TokenID          uuid.UUID       `json:"token_id"`
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	LogoURL          string          `json:"logo_url,omitempty"`
	Score            decimal.Decimal `json:"score"`
	ActiveBoosts     int             `json:"active_boosts"`
	IsTopThree       bool            `json:"is_top_three"`
	HasCrownBadge    bool            `json:"has_crown_badge"`
}
