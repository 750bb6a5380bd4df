package ledgerstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the ledger store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) CreateEntrant(ctx context.Context, e *entrant.TokenEntrant) error {
	dao := toEntrantDao(e)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create entrant: %w", err)
	}

	return nil
}

func (s *pgStore) GetEntrant(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
	dao := new(EntrantDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntrantNotFound
		}
		return nil, fmt.Errorf("failed to get entrant: %w", err)
	}

	return toEntrant(dao), nil
}

func (s *pgStore) ListApprovedEntrants(ctx context.Context) ([]*entrant.TokenEntrant, error) {
	var daos []EntrantDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("status = ?", string(entrant.StatusApproved)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved entrants: %w", err)
	}

	entrants := make([]*entrant.TokenEntrant, len(daos))
	for i := range daos {
		entrants[i] = toEntrant(&daos[i])
	}
	return entrants, nil
}

func (s *pgStore) UpdateEntrantStatus(ctx context.Context, id uuid.UUID, status entrant.Status) error {
	res, err := s.db.NewUpdate().
		Model((*EntrantDao)(nil)).
		Set("status = ?", string(status)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update entrant status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEntrantNotFound
	}
	return nil
}

// InsertBoost inserts b unless a row with its idempotency key already
// exists. The conflict target is the unique idempotency_key index, so
// concurrent replays of the same confirmation race safely: exactly one
// caller observes inserted=true.
func (s *pgStore) InsertBoost(ctx context.Context, b *boost.Boost) (bool, error) {
	dao := toBoostDao(b)

	res, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (idempotency_key) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert boost: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) GetBoostByIdempotencyKey(ctx context.Context, key string) (*boost.Boost, error) {
	dao := new(BoostDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("idempotency_key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoostNotFound
		}
		return nil, fmt.Errorf("failed to get boost by idempotency key: %w", err)
	}

	return toBoost(dao)
}

func (s *pgStore) ActiveBoostsForToken(ctx context.Context, tokenID uuid.UUID, now time.Time) ([]*boost.Boost, error) {
	var daos []BoostDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("token_id = ?", tokenID).
		Where("applied_at + make_interval(hours => decay_hours) > ?", now.UTC()).
		Order("applied_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active boosts for token: %w", err)
	}

	return toBoosts(daos), nil
}

func (s *pgStore) ListActiveBoosts(ctx context.Context, now time.Time) ([]*boost.Boost, error) {
	var daos []BoostDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("applied_at + make_interval(hours => decay_hours) > ?", now.UTC()).
		Order("applied_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active boosts: %w", err)
	}

	return toBoosts(daos), nil
}

func (s *pgStore) ListBoostsAppliedIn(ctx context.Context, from, to time.Time) ([]*boost.Boost, error) {
	var daos []BoostDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("applied_at >= ?", from.UTC()).
		Where("applied_at < ?", to.UTC()).
		Order("applied_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boosts in window: %w", err)
	}

	return toBoosts(daos), nil
}

// toBoosts drops rows whose points column does not parse; one corrupt
// row must not take down every list query that touches its window.
func toBoosts(daos []BoostDao) []*boost.Boost {
	boosts := make([]*boost.Boost, 0, len(daos))
	for i := range daos {
		b, err := toBoost(&daos[i])
		if err != nil {
			continue
		}
		boosts = append(boosts, b)
	}
	return boosts
}
