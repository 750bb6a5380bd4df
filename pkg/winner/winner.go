// Package winner resolves and records the weekly race winner.
package winner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeeklyWinner records the outcome of one competition week. Exactly one
// row exists per week start date; the latest resolved row carries the
// crown badge until the next week is resolved.
type WeeklyWinner struct {
	ID                   uuid.UUID
	WeekStartDate        time.Time
	TokenID              uuid.UUID
	FinalScore           decimal.Decimal
	ResolvedAt           time.Time
	CrossPromotionActive bool
}

// New creates a WeeklyWinner for the week starting at weekStart.
func New(weekStart time.Time, tokenID uuid.UUID, finalScore decimal.Decimal, resolvedAt time.Time) *WeeklyWinner {
	return &WeeklyWinner{
		ID:            uuid.New(),
		WeekStartDate: weekStart.UTC(),
		TokenID:       tokenID,
		FinalScore:    finalScore,
		ResolvedAt:    resolvedAt.UTC(),
	}
}
