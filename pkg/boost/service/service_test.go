package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
	"github.com/racetoliberty/boost-engine/pkg/ledgerstore"
)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func approvedEntrant(id uuid.UUID) *entrant.TokenEntrant {
	return &entrant.TokenEntrant{
		ID:     id,
		Symbol: "LIB",
		Name:   "Liberty Token",
		Status: entrant.StatusApproved,
	}
}

func TestBoostService_ApplyBoost(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	tokenID := uuid.New()

	var inserted *boost.Boost
	store := &MockStore{
		GetEntrantFunc: func(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
			return approvedEntrant(id), nil
		},
		InsertBoostFunc: func(ctx context.Context, b *boost.Boost) (bool, error) {
			inserted = b
			return true, nil
		},
	}

	svc := NewService(store, zap.NewNop(), fixedClock(now))

	b, err := svc.ApplyBoost(ctx, tokenID, boost.PackMotor, "purchase-001")
	if err != nil {
		t.Fatalf("ApplyBoost() failed: %v", err)
	}
	if inserted == nil || inserted.ID != b.ID {
		t.Fatal("expected boost to be persisted")
	}
	if !b.OriginalPoints.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected points: got %s want 250", b.OriginalPoints)
	}
	if b.DecayHours != 48 {
		t.Fatalf("unexpected decay window: got %d want 48", b.DecayHours)
	}
	if !b.AppliedAt.Equal(now) {
		t.Fatalf("unexpected applied_at: got %s want %s", b.AppliedAt, now)
	}
}

func TestBoostService_ApplyBoost_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{
		GetEntrantFunc: func(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
			return approvedEntrant(id), nil
		},
		InsertBoostFunc: func(ctx context.Context, b *boost.Boost) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(store, zap.NewNop())

	_, err := svc.ApplyBoost(ctx, uuid.New(), boost.PackPaddle, "purchase-001")
	if err == nil {
		t.Fatal("expected duplicate error, got nil")
	}
	if !errors.Is(err, ErrDuplicatePurchase) {
		t.Fatalf("expected ErrDuplicatePurchase, got %v", err)
	}
	if !apperrors.Is(err, apperrors.CategoryDataConflict) {
		t.Fatalf("expected CategoryDataConflict, got %v", err)
	}
}

func TestBoostService_ApplyBoost_UnknownPackType(t *testing.T) {
	svc := NewService(&MockStore{}, zap.NewNop())

	_, err := svc.ApplyBoost(context.Background(), uuid.New(), boost.PackType("rocket"), "purchase-001")
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !errors.Is(err, ErrUnknownPackType) {
		t.Fatalf("expected ErrUnknownPackType, got %v", err)
	}
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}
}

func TestBoostService_ApplyBoost_EntrantChecks(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{
		GetEntrantFunc: func(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
			return nil, ledgerstore.ErrEntrantNotFound
		},
	}
	svc := NewService(store, zap.NewNop())

	_, err := svc.ApplyBoost(ctx, uuid.New(), boost.PackPaddle, "k")
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound for unknown token, got %v", err)
	}

	store.GetEntrantFunc = func(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
		e := approvedEntrant(id)
		e.Status = entrant.StatusPending
		return e, nil
	}

	_, err = svc.ApplyBoost(ctx, uuid.New(), boost.PackPaddle, "k")
	if !errors.Is(err, ErrEntrantNotApproved) {
		t.Fatalf("expected ErrEntrantNotApproved for pending entrant, got %v", err)
	}

	_, err = svc.ApplyBoost(ctx, uuid.New(), boost.PackPaddle, "")
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError for empty key, got %v", err)
	}
}

func TestBoostService_ReviewEntrant(t *testing.T) {
	ctx := context.Background()

	var gotStatus entrant.Status
	store := &MockStore{
		UpdateEntrantStatusFunc: func(ctx context.Context, id uuid.UUID, status entrant.Status) error {
			gotStatus = status
			return nil
		},
	}
	svc := NewService(store, zap.NewNop())

	if err := svc.ReviewEntrant(ctx, uuid.New(), entrant.StatusApproved); err != nil {
		t.Fatalf("ReviewEntrant() failed: %v", err)
	}
	if gotStatus != entrant.StatusApproved {
		t.Fatalf("unexpected status: got %s want approved", gotStatus)
	}

	err := svc.ReviewEntrant(ctx, uuid.New(), entrant.StatusPending)
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError for pending review, got %v", err)
	}

	store.UpdateEntrantStatusFunc = func(ctx context.Context, id uuid.UUID, status entrant.Status) error {
		return ledgerstore.ErrEntrantNotFound
	}
	err = svc.ReviewEntrant(ctx, uuid.New(), entrant.StatusRejected)
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}

func TestBoostService_ActiveBoosts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	tokenID := uuid.New()

	pack, _ := boost.PackFor(boost.PackHelicopter)
	active := boost.New(tokenID, pack, "k1", now.Add(-time.Hour))

	store := &MockStore{
		ActiveBoostsForTokenFunc: func(ctx context.Context, id uuid.UUID, at time.Time) ([]*boost.Boost, error) {
			if !at.Equal(now) {
				t.Fatalf("unexpected clock value: got %s want %s", at, now)
			}
			return []*boost.Boost{active}, nil
		},
	}
	svc := NewService(store, zap.NewNop(), fixedClock(now))

	boosts, err := svc.ActiveBoosts(ctx, tokenID)
	if err != nil {
		t.Fatalf("ActiveBoosts() failed: %v", err)
	}
	if len(boosts) != 1 || boosts[0].ID != active.ID {
		t.Fatalf("unexpected boosts: %+v", boosts)
	}
}
