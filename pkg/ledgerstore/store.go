// Package ledgerstore persists token entrants and the append-only boost ledger.
package ledgerstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
)

// ErrEntrantNotFound is returned when an entrant lookup finds no matching record.
var ErrEntrantNotFound = errors.New("entrant not found")

// ErrBoostNotFound is returned when a boost lookup finds no matching record.
var ErrBoostNotFound = errors.New("boost not found")

// Store defines the ledger persistence interface.
//
// InsertBoost is the idempotency guard for purchase confirmations: it is
// a compare-and-insert keyed on the boost's idempotency key and reports
// whether the row was actually inserted. Webhook redeliveries that replay
// a key observe inserted=false and must not credit points twice.
type Store interface {
	CreateEntrant(ctx context.Context, e *entrant.TokenEntrant) error
	GetEntrant(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error)
	ListApprovedEntrants(ctx context.Context) ([]*entrant.TokenEntrant, error)
	UpdateEntrantStatus(ctx context.Context, id uuid.UUID, status entrant.Status) error

	InsertBoost(ctx context.Context, b *boost.Boost) (inserted bool, err error)
	GetBoostByIdempotencyKey(ctx context.Context, key string) (*boost.Boost, error)
	ActiveBoostsForToken(ctx context.Context, tokenID uuid.UUID, now time.Time) ([]*boost.Boost, error)
	ListActiveBoosts(ctx context.Context, now time.Time) ([]*boost.Boost, error)
	ListBoostsAppliedIn(ctx context.Context, from, to time.Time) ([]*boost.Boost, error)
}
