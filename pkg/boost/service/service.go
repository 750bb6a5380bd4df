// Package service implements the boost ledger operations: crediting
// boost purchases and reading a token's active boosts.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/racetoliberty/boost-engine/internal/metrics"
	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
	"github.com/racetoliberty/boost-engine/pkg/ledgerstore"
)

var (
	ErrUnknownPackType    = errors.New("unknown pack type")
	ErrEntrantNotApproved = errors.New("entrant not approved for the race")
	ErrDuplicatePurchase  = errors.New("idempotency key already recorded")
)

// Store is the narrow data-access interface for the boost service.
// Defined here to keep the service decoupled from ledgerstore implementation details.
type Store interface {
	GetEntrant(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error)
	CreateEntrant(ctx context.Context, e *entrant.TokenEntrant) error
	UpdateEntrantStatus(ctx context.Context, id uuid.UUID, status entrant.Status) error
	InsertBoost(ctx context.Context, b *boost.Boost) (bool, error)
	ActiveBoostsForToken(ctx context.Context, tokenID uuid.UUID, now time.Time) ([]*boost.Boost, error)
}

// Service defines the interface for the boost ledger business logic
type Service interface {
	RegisterEntrant(ctx context.Context, symbol, name, logoURL, blockchain string) (*entrant.TokenEntrant, error)
	ReviewEntrant(ctx context.Context, id uuid.UUID, status entrant.Status) error
	ApplyBoost(ctx context.Context, tokenID uuid.UUID, packType boost.PackType, idempotencyKey string) (*boost.Boost, error)
	ActiveBoosts(ctx context.Context, tokenID uuid.UUID) ([]*boost.Boost, error)
}

type boostService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures the boost service.
type Option func(*boostService)

// WithClock overrides the service clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *boostService) {
		s.now = now
	}
}

// NewService creates a new boost ledger service
func NewService(store Store, logger *zap.Logger, opts ...Option) Service {
	s := &boostService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterEntrant enrolls a token into the race in pending status.
func (s *boostService) RegisterEntrant(ctx context.Context, symbol, name, logoURL, blockchain string) (*entrant.TokenEntrant, error) {
	if symbol == "" || name == "" {
		return nil, apperrors.ValidationError(nil, "symbol and name are required")
	}

	e := entrant.New(symbol, name, logoURL, blockchain)
	if err := s.store.CreateEntrant(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to register entrant: %w", err)
	}
	return e, nil
}

// ReviewEntrant moves an entrant to approved or rejected.
func (s *boostService) ReviewEntrant(ctx context.Context, id uuid.UUID, status entrant.Status) error {
	if !status.Valid() || status == entrant.StatusPending {
		return apperrors.ValidationError(nil, fmt.Sprintf("cannot review entrant to status %q", status))
	}

	err := s.store.UpdateEntrantStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, ledgerstore.ErrEntrantNotFound) {
			return apperrors.ResourceNotFoundError(err, "entrant not found")
		}
		return fmt.Errorf("failed to review entrant: %w", err)
	}
	return nil
}

// ApplyBoost credits a confirmed pack purchase to the token's ledger.
// The insert is keyed on idempotencyKey: webhook redeliveries of the
// same confirmation get a duplicate error and credit nothing.
func (s *boostService) ApplyBoost(ctx context.Context, tokenID uuid.UUID, packType boost.PackType, idempotencyKey string) (*boost.Boost, error) {
	if idempotencyKey == "" {
		return nil, apperrors.ValidationError(nil, "idempotency key is required")
	}

	pack, ok := boost.PackFor(packType)
	if !ok {
		return nil, apperrors.ValidationError(ErrUnknownPackType, fmt.Sprintf("unknown pack type %q", packType))
	}

	e, err := s.store.GetEntrant(ctx, tokenID)
	if err != nil {
		if errors.Is(err, ledgerstore.ErrEntrantNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "token not found")
		}
		return nil, fmt.Errorf("failed to load entrant: %w", err)
	}
	if !e.Approved() {
		return nil, apperrors.ValidationError(ErrEntrantNotApproved, "token is not approved for the race")
	}

	b := boost.New(tokenID, pack, idempotencyKey, s.now())
	if err := b.Validate(); err != nil {
		return nil, apperrors.ValidationError(err, "invalid boost")
	}

	inserted, err := s.store.InsertBoost(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to insert boost: %w", err)
	}
	if !inserted {
		metrics.DuplicateOperations.WithLabelValues("apply_boost").Inc()
		return nil, apperrors.DuplicateOperationError(ErrDuplicatePurchase, "idempotency key already recorded")
	}

	metrics.BoostsApplied.WithLabelValues(string(packType)).Inc()
	return b, nil
}

// ActiveBoosts returns the token's boosts that still contribute points.
func (s *boostService) ActiveBoosts(ctx context.Context, tokenID uuid.UUID) ([]*boost.Boost, error) {
	boosts, err := s.store.ActiveBoostsForToken(ctx, tokenID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list active boosts: %w", err)
	}
	return boosts, nil
}
