// Package boost holds the boost domain types and the decay arithmetic.
package boost

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackType identifies a purchasable boost pack.
type PackType string

const (
	PackPaddle     PackType = "paddle"
	PackMotor      PackType = "motor"
	PackHelicopter PackType = "helicopter"
)

// Pack describes a boost pack: the points it grants and the window
// over which those points decay to zero.
type Pack struct {
	Type       PackType
	Points     decimal.Decimal
	DecayHours int
}

// The canonical pack table. Points and windows are fixed at purchase
// time and copied onto the boost row, so changing this table never
// rewrites history.
var packs = map[PackType]Pack{
	PackPaddle:     {Type: PackPaddle, Points: decimal.NewFromInt(100), DecayHours: 24},
	PackMotor:      {Type: PackMotor, Points: decimal.NewFromInt(250), DecayHours: 48},
	PackHelicopter: {Type: PackHelicopter, Points: decimal.NewFromInt(500), DecayHours: 72},
}

// PackFor returns the pack definition for the given type.
func PackFor(t PackType) (Pack, bool) {
	p, ok := packs[t]
	return p, ok
}

// Boost is an immutable point grant for a token. Created once when a
// purchase is confirmed, then only read for aggregation.
type Boost struct {
	ID             uuid.UUID
	TokenID        uuid.UUID
	PackType       PackType
	OriginalPoints decimal.Decimal
	AppliedAt      time.Time
	DecayHours     int
	IdempotencyKey string
}

// ExpiresAt returns the instant the boost's contribution reaches zero.
func (b *Boost) ExpiresAt() time.Time {
	return b.AppliedAt.Add(time.Duration(b.DecayHours) * time.Hour)
}

// Validate checks the invariants fixed at creation time. Rows failing
// these checks are excluded from aggregation.
func (b *Boost) Validate() error {
	if !b.OriginalPoints.IsPositive() {
		return fmt.Errorf("boost %s: original points must be positive, got %s", b.ID, b.OriginalPoints)
	}
	if b.DecayHours <= 0 {
		return fmt.Errorf("boost %s: decay hours must be positive, got %d", b.ID, b.DecayHours)
	}
	return nil
}

// New creates a boost for tokenID from the given pack, applied at now.
func New(tokenID uuid.UUID, pack Pack, idempotencyKey string, now time.Time) *Boost {
	return &Boost{
		ID:             uuid.New(),
		TokenID:        tokenID,
		PackType:       pack.Type,
		OriginalPoints: pack.Points,
		AppliedAt:      now.UTC(),
		DecayHours:     pack.DecayHours,
		IdempotencyKey: idempotencyKey,
	}
}
