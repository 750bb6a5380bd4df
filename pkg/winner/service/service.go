// Package service implements weekly winner resolution.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/racetoliberty/boost-engine/internal/metrics"
	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/leaderboard"
	"github.com/racetoliberty/boost-engine/pkg/winner"
)

// ErrNoEligibleEntrants is returned when a week resolves against an
// empty leaderboard. Not a fatal condition: the week simply has no
// winner and may be resolved again later.
var ErrNoEligibleEntrants = errors.New("no eligible entrants for week")

// Store is the narrow data-access interface for the resolver.
// Defined here to keep the resolver decoupled from winnerstore implementation details.
type Store interface {
	InsertWinner(ctx context.Context, w *winner.WeeklyWinner) (bool, error)
	GetWinnerByWeek(ctx context.Context, weekStart time.Time) (*winner.WeeklyWinner, error)
	LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error)
	ListWinners(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error)
}

// Leaderboard is the slice of the aggregator the resolver needs.
type Leaderboard interface {
	ComputeWeek(ctx context.Context, weekStart, now time.Time, opts ...leaderboard.ComputeOption) ([]*leaderboard.Entry, error)
}

// Service defines the interface for the weekly winner business logic
type Service interface {
	ResolveWeek(ctx context.Context, weekStart time.Time, now time.Time) (*winner.WeeklyWinner, error)
	ListWinners(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error)
	LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error)
}

type resolverService struct {
	store       Store
	leaderboard Leaderboard
	logger      *zap.Logger
}

// NewService creates a new weekly winner service
func NewService(store Store, lb Leaderboard, logger *zap.Logger) Service {
	return &resolverService{
		store:       store,
		leaderboard: lb,
		logger:      logger,
	}
}

// ResolveWeek crowns the rank-1 token of the week starting at
// weekStart. Resolution is a compare-and-insert on the week key:
// concurrent and repeated resolutions of the same week converge on a
// single WeeklyWinner row, and re-resolving returns the existing
// record instead of erroring.
func (s *resolverService) ResolveWeek(ctx context.Context, weekStart time.Time, now time.Time) (*winner.WeeklyWinner, error) {
	if weekStart.IsZero() {
		// Default to the most recently completed week.
		weekStart = boost.WeekStart(now).AddDate(0, 0, -7)
	} else if !boost.AlignedToWeek(weekStart) {
		return nil, apperrors.ValidationError(nil, "week_start_date must be a week boundary (Monday 00:00 UTC)")
	}

	entries, err := s.leaderboard.ComputeWeek(ctx, weekStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekly leaderboard: %w", err)
	}
	if len(entries) == 0 {
		s.logger.Info("no eligible entrants for week",
			zap.Time("week_start", weekStart),
		)
		return nil, apperrors.ResourceNotFoundError(ErrNoEligibleEntrants, "no eligible entrants for week")
	}

	top := entries[0]
	candidate := winner.New(weekStart, top.TokenID, top.Score, now)

	inserted, err := s.store.InsertWinner(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert weekly winner: %w", err)
	}
	if !inserted {
		metrics.DuplicateOperations.WithLabelValues("resolve_week").Inc()
		existing, err := s.store.GetWinnerByWeek(ctx, weekStart)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing winner: %w", err)
		}
		return existing, nil
	}

	metrics.WeeksResolved.Inc()
	s.logger.Info("week resolved",
		zap.Time("week_start", weekStart),
		zap.String("token_id", top.TokenID.String()),
		zap.String("symbol", top.Symbol),
		zap.String("final_score", top.Score.String()),
	)
	return candidate, nil
}

// ListWinners returns past winners, newest week first.
func (s *resolverService) ListWinners(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error) {
	winners, err := s.store.ListWinners(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}
	return winners, nil
}

// LatestWinner returns the current crown holder.
func (s *resolverService) LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error) {
	return s.store.LatestWinner(ctx)
}
