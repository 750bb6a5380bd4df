// Package winnerstore persists resolved weekly winners.
package winnerstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/racetoliberty/boost-engine/pkg/winner"
)

// ErrWinnerNotFound is returned when a winner lookup finds no matching record.
var ErrWinnerNotFound = errors.New("weekly winner not found")

// Store defines the weekly winner persistence interface.
//
// InsertWinner is a compare-and-insert keyed on the week start date:
// the first resolution of a week wins and every later attempt observes
// inserted=false, so concurrent resolvers cannot crown two winners for
// the same week.
type Store interface {
	InsertWinner(ctx context.Context, w *winner.WeeklyWinner) (inserted bool, err error)
	GetWinner(ctx context.Context, id uuid.UUID) (*winner.WeeklyWinner, error)
	GetWinnerByWeek(ctx context.Context, weekStart time.Time) (*winner.WeeklyWinner, error)
	LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error)
	ListWinners(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error)
	SetCrossPromotionActive(ctx context.Context, weekStart time.Time, active bool) error
}
