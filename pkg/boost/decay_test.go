package boost

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func paddleAt(appliedAt time.Time) *Boost {
	pack, _ := PackFor(PackPaddle)
	return New(uuid.New(), pack, "k", appliedAt)
}

func TestRemaining_Boundaries(t *testing.T) {
	t0 := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	b := paddleAt(t0)

	if got := Remaining(b, t0); !got.Equal(b.OriginalPoints) {
		t.Fatalf("at applied_at: got %s want %s", got, b.OriginalPoints)
	}
	if got := Remaining(b, t0.Add(-time.Hour)); !got.Equal(b.OriginalPoints) {
		t.Fatalf("before applied_at: got %s want %s", got, b.OriginalPoints)
	}
	if got := Remaining(b, b.ExpiresAt()); !got.IsZero() {
		t.Fatalf("at expiry: got %s want 0", got)
	}
	if got := Remaining(b, b.ExpiresAt().Add(time.Hour)); !got.IsZero() {
		t.Fatalf("past expiry: got %s want 0", got)
	}
}

func TestRemaining_LinearMidpoint(t *testing.T) {
	t0 := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	b := paddleAt(t0)

	got := Remaining(b, t0.Add(12*time.Hour))
	want := decimal.NewFromInt(50)
	if !got.Equal(want) {
		t.Fatalf("halfway through decay: got %s want %s", got, want)
	}

	got = Remaining(b, t0.Add(18*time.Hour))
	want = decimal.NewFromInt(25)
	if !got.Equal(want) {
		t.Fatalf("three quarters through decay: got %s want %s", got, want)
	}
}

func TestRemaining_MonotonicNonIncreasing(t *testing.T) {
	t0 := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	pack, _ := PackFor(PackHelicopter)
	b := New(uuid.New(), pack, "k", t0)

	prev := Remaining(b, t0)
	for step := time.Hour; step <= 80*time.Hour; step += time.Hour {
		cur := Remaining(b, t0.Add(step))
		if cur.GreaterThan(prev) {
			t.Fatalf("remaining increased at +%s: %s > %s", step, cur, prev)
		}
		if cur.IsNegative() {
			t.Fatalf("remaining went negative at +%s: %s", step, cur)
		}
		prev = cur
	}
}

func TestActive(t *testing.T) {
	t0 := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	b := paddleAt(t0)

	if !Active(b, t0.Add(23*time.Hour)) {
		t.Fatal("expected boost active before expiry")
	}
	if Active(b, b.ExpiresAt()) {
		t.Fatal("expected boost inactive at expiry")
	}
}

func TestBoostValidate(t *testing.T) {
	t0 := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	b := paddleAt(t0)
	if err := b.Validate(); err != nil {
		t.Fatalf("valid boost rejected: %v", err)
	}

	b.OriginalPoints = decimal.Zero
	if err := b.Validate(); err == nil {
		t.Fatal("expected zero points to be rejected")
	}

	b = paddleAt(t0)
	b.DecayHours = 0
	if err := b.Validate(); err == nil {
		t.Fatal("expected zero decay window to be rejected")
	}
}
