package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/racetoliberty/boost-engine/internal/metrics"
	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
	"github.com/racetoliberty/boost-engine/pkg/winner"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// Ledger is the narrow data-access interface the aggregator reads from.
// Defined here to keep the aggregator decoupled from ledgerstore implementation details.
type Ledger interface {
	ListApprovedEntrants(ctx context.Context) ([]*entrant.TokenEntrant, error)
	ListActiveBoosts(ctx context.Context, now time.Time) ([]*boost.Boost, error)
	ListBoostsAppliedIn(ctx context.Context, from, to time.Time) ([]*boost.Boost, error)
}

// Winners is the slice of the winner store the aggregator needs for the
// crown badge.
type Winners interface {
	LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error)
}

// Service defines the interface for the leaderboard aggregation logic
type Service interface {
	Compute(ctx context.Context, timeframe Timeframe, now time.Time, opts ...ComputeOption) ([]*Entry, error)
	ComputeWeek(ctx context.Context, weekStart, now time.Time, opts ...ComputeOption) ([]*Entry, error)
}

// ComputeOption customizes a single computation.
type ComputeOption func(*computeOptions)

type computeOptions struct {
	previous []*Entry
}

// WithPrevious supplies the caller's prior computation so entries can
// carry movement information. The aggregator itself retains nothing
// between calls.
func WithPrevious(entries []*Entry) ComputeOption {
	return func(o *computeOptions) {
		o.previous = entries
	}
}

type aggregator struct {
	ledger  Ledger
	winners Winners
	logger  *zap.Logger
}

// NewService creates a new leaderboard aggregator
func NewService(ledger Ledger, winners Winners, logger *zap.Logger) Service {
	return &aggregator{
		ledger:  ledger,
		winners: winners,
		logger:  logger,
	}
}

// Compute builds the leaderboard at now. A pure read over the ledger
// snapshot: any number of concurrent callers get consistent results.
func (a *aggregator) Compute(ctx context.Context, timeframe Timeframe, now time.Time, opts ...ComputeOption) ([]*Entry, error) {
	if !timeframe.Valid() {
		return nil, apperrors.ValidationError(nil, fmt.Sprintf("unknown timeframe %q", timeframe))
	}
	if timeframe == TimeframeWeekly {
		return a.ComputeWeek(ctx, boost.WeekStart(now), now, opts...)
	}

	boosts, err := a.ledger.ListActiveBoosts(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load active boosts: %w", err)
	}
	entries, err := a.rank(ctx, boosts, now, opts)
	if err != nil {
		return nil, err
	}

	metrics.LeaderboardComputations.WithLabelValues(string(TimeframeCurrent)).Inc()
	return entries, nil
}

// ComputeWeek builds the leaderboard for the week starting at weekStart,
// scoring only boosts applied inside that week's window.
func (a *aggregator) ComputeWeek(ctx context.Context, weekStart, now time.Time, opts ...ComputeOption) ([]*Entry, error) {
	weekStart = boost.WeekStart(weekStart)
	boosts, err := a.ledger.ListBoostsAppliedIn(ctx, weekStart, boost.WeekEnd(weekStart))
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly boosts: %w", err)
	}
	entries, err := a.rank(ctx, boosts, now, opts)
	if err != nil {
		return nil, err
	}

	metrics.LeaderboardComputations.WithLabelValues(string(TimeframeWeekly)).Inc()
	return entries, nil
}

func (a *aggregator) rank(ctx context.Context, boosts []*boost.Boost, now time.Time, opts []ComputeOption) ([]*Entry, error) {
	options := &computeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	entrants, err := a.ledger.ListApprovedEntrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entrants: %w", err)
	}
	eligible := make(map[uuid.UUID]*entrant.TokenEntrant, len(entrants))
	for _, e := range entrants {
		eligible[e.ID] = e
	}

	scores := make(map[uuid.UUID]decimal.Decimal, len(eligible))
	counts := make(map[uuid.UUID]int, len(eligible))
	for _, b := range boosts {
		if _, ok := eligible[b.TokenID]; !ok {
			continue
		}
		if err := b.Validate(); err != nil {
			a.logger.Warn("skipping malformed boost row",
				zap.String("boost_id", b.ID.String()),
				zap.Error(err),
			)
			continue
		}
		remaining := boost.Remaining(b, now)
		if !remaining.IsPositive() {
			continue
		}
		scores[b.TokenID] = scores[b.TokenID].Add(remaining)
		counts[b.TokenID]++
	}

	entries := make([]*Entry, 0, len(scores))
	for tokenID, total := range scores {
		e := eligible[tokenID]
		entries = append(entries, &Entry{
			TokenID:      tokenID,
			Symbol:       e.Symbol,
			Name:         e.Name,
			LogoURL:      e.LogoURL,
			Score:        total,
			ActiveBoosts: counts[tokenID],
		})
	}

	// Score descending, token id ascending on ties. String comparison
	// of UUIDs is deterministic and total, which is all that matters.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Score.Equal(entries[j].Score) {
			return entries[i].Score.GreaterThan(entries[j].Score)
		}
		return entries[i].TokenID.String() < entries[j].TokenID.String()
	})

	crownToken := a.crownToken(ctx)
	previous := previousPositions(options.previous)
	for i, e := range entries {
		e.Position = i + 1
		e.IsTopThree = e.Position <= 3
		e.HasCrownBadge = crownToken != nil && *crownToken == e.TokenID
		if prev, ok := previous[e.TokenID]; ok {
			p := prev
			e.PreviousPosition = &p
		}
	}

	return entries, nil
}

// crownToken returns the token holding the crown badge, nil when no
// week has resolved yet. Crown lookup failures degrade to no badge
// rather than failing the whole computation.
func (a *aggregator) crownToken(ctx context.Context) *uuid.UUID {
	latest, err := a.winners.LatestWinner(ctx)
	if err != nil {
		if !errors.Is(err, winnerstore.ErrWinnerNotFound) {
			a.logger.Warn("failed to load latest winner for crown badge", zap.Error(err))
		}
		return nil
	}
	return &latest.TokenID
}

func previousPositions(previous []*Entry) map[uuid.UUID]int {
	if len(previous) == 0 {
		return nil
	}
	positions := make(map[uuid.UUID]int, len(previous))
	for _, e := range previous {
		positions[e.TokenID] = e.Position
	}
	return positions
}
