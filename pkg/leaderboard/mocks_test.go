package leaderboard

import (
	"context"
	"time"

	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
	"github.com/racetoliberty/boost-engine/pkg/winner"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// MockLedger is a mock implementation of Ledger
type MockLedger struct {
	ListApprovedEntrantsFunc func(ctx context.Context) ([]*entrant.TokenEntrant, error)
	ListActiveBoostsFunc     func(ctx context.Context, now time.Time) ([]*boost.Boost, error)
	ListBoostsAppliedInFunc  func(ctx context.Context, from, to time.Time) ([]*boost.Boost, error)
}

func (m *MockLedger) ListApprovedEntrants(ctx context.Context) ([]*entrant.TokenEntrant, error) {
	if m.ListApprovedEntrantsFunc != nil {
		return m.ListApprovedEntrantsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLedger) ListActiveBoosts(ctx context.Context, now time.Time) ([]*boost.Boost, error) {
	if m.ListActiveBoostsFunc != nil {
		return m.ListActiveBoostsFunc(ctx, now)
	}
	return nil, nil
}

func (m *MockLedger) ListBoostsAppliedIn(ctx context.Context, from, to time.Time) ([]*boost.Boost, error) {
	if m.ListBoostsAppliedInFunc != nil {
		return m.ListBoostsAppliedInFunc(ctx, from, to)
	}
	return nil, nil
}

// MockWinners is a mock implementation of Winners
type MockWinners struct {
	LatestWinnerFunc func(ctx context.Context) (*winner.WeeklyWinner, error)
}

func (m *MockWinners) LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error) {
	if m.LatestWinnerFunc != nil {
		return m.LatestWinnerFunc(ctx)
	}
	return nil, winnerstore.ErrWinnerNotFound
}
