package service

import (
	"context"
	"time"

	"github.com/racetoliberty/boost-engine/pkg/leaderboard"
	"github.com/racetoliberty/boost-engine/pkg/winner"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	InsertWinnerFunc    func(ctx context.Context, w *winner.WeeklyWinner) (bool, error)
	GetWinnerByWeekFunc func(ctx context.Context, weekStart time.Time) (*winner.WeeklyWinner, error)
	LatestWinnerFunc    func(ctx context.Context) (*winner.WeeklyWinner, error)
	ListWinnersFunc     func(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error)
}

func (m *MockStore) InsertWinner(ctx context.Context, w *winner.WeeklyWinner) (bool, error) {
	if m.InsertWinnerFunc != nil {
		return m.InsertWinnerFunc(ctx, w)
	}
	return true, nil
}

func (m *MockStore) GetWinnerByWeek(ctx context.Context, weekStart time.Time) (*winner.WeeklyWinner, error) {
	if m.GetWinnerByWeekFunc != nil {
		return m.GetWinnerByWeekFunc(ctx, weekStart)
	}
	return nil, winnerstore.ErrWinnerNotFound
}

func (m *MockStore) LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error) {
	if m.LatestWinnerFunc != nil {
		return m.LatestWinnerFunc(ctx)
	}
	return nil, winnerstore.ErrWinnerNotFound
}

func (m *MockStore) ListWinners(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error) {
	if m.ListWinnersFunc != nil {
		return m.ListWinnersFunc(ctx, limit)
	}
	return nil, nil
}

// MockLeaderboard is a mock implementation of Leaderboard
type MockLeaderboard struct {
	ComputeWeekFunc func(ctx context.Context, weekStart, now time.Time, opts ...leaderboard.ComputeOption) ([]*leaderboard.Entry, error)
}

func (m *MockLeaderboard) ComputeWeek(ctx context.Context, weekStart, now time.Time, opts ...leaderboard.ComputeOption) ([]*leaderboard.Entry, error) {
	if m.ComputeWeekFunc != nil {
		return m.ComputeWeekFunc(ctx, weekStart, now, opts...)
	}
	return nil, nil
}
