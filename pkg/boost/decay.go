package boost

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fraction returns the remaining fraction of b's points at now, in [0, 1].
// Decay is linear over the boost's window: 1 at AppliedAt, 0 at ExpiresAt.
// Instants before AppliedAt return 1.
func Fraction(b *Boost, now time.Time) decimal.Decimal {
	if !now.After(b.AppliedAt) {
		return decimal.NewFromInt(1)
	}
	if !now.Before(b.ExpiresAt()) {
		return decimal.Zero
	}

	elapsed := decimal.NewFromInt(int64(now.Sub(b.AppliedAt) / time.Second))
	window := decimal.NewFromInt(int64(b.DecayHours) * 3600)
	return decimal.NewFromInt(1).Sub(elapsed.Div(window))
}

// Remaining returns the decayed point contribution of b at now.
// Non-increasing in now, never negative, exactly zero from ExpiresAt on.
func Remaining(b *Boost, now time.Time) decimal.Decimal {
	return b.OriginalPoints.Mul(Fraction(b, now))
}

// Active reports whether b still contributes points at now.
func Active(b *Boost, now time.Time) bool {
	return now.Before(b.ExpiresAt())
}
