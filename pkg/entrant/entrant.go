// Package entrant defines the tokens competing in the race.
package entrant

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the review state of a token entrant.
// Only approved entrants are eligible for boosts and leaderboard ranking.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known entrant status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// TokenEntrant is a token registered for the competition.
type TokenEntrant struct {
	ID         uuid.UUID
	Symbol     string
	Name       string
	LogoURL    string
	Blockchain string
	Status     Status
	CreatedAt  time.Time
}

// New creates a TokenEntrant with a fresh id in pending status.
func New(symbol, name, logoURL, blockchain string) *TokenEntrant {
	return &TokenEntrant{
		ID:         uuid.New(),
		Symbol:     symbol,
		Name:       name,
		LogoURL:    logoURL,
		Blockchain: blockchain,
		Status:     StatusPending,
	}
}

// Approved reports whether the entrant may receive boosts.
func (e *TokenEntrant) Approved() bool {
	return e.Status == StatusApproved
}
