package winnerstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/winner"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the winner store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// InsertWinner inserts w unless the week already has a winner. The
// conflict target is the unique week_start_date index, so exactly one
// concurrent resolver observes inserted=true.
func (s *pgStore) InsertWinner(ctx context.Context, w *winner.WeeklyWinner) (bool, error) {
	dao := toWinnerDao(w)

	res, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (week_start_date) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert weekly winner: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) GetWinner(ctx context.Context, id uuid.UUID) (*winner.WeeklyWinner, error) {
	dao := new(WinnerDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}

	return toWinner(dao)
}

func (s *pgStore) GetWinnerByWeek(ctx context.Context, weekStart time.Time) (*winner.WeeklyWinner, error) {
	dao := new(WinnerDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("week_start_date = ?", weekStart.UTC()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("failed to get weekly winner: %w", err)
	}

	return toWinner(dao)
}

func (s *pgStore) LatestWinner(ctx context.Context) (*winner.WeeklyWinner, error) {
	dao := new(WinnerDao)
	err := s.db.NewSelect().
		Model(dao).
		Order("week_start_date DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("failed to get latest winner: %w", err)
	}

	return toWinner(dao)
}

func (s *pgStore) ListWinners(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error) {
	var daos []WinnerDao
	query := s.db.NewSelect().
		Model(&daos).
		Order("week_start_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly winners: %w", err)
	}

	winners := make([]*winner.WeeklyWinner, len(daos))
	for i := range daos {
		w, err := toWinner(&daos[i])
		if err != nil {
			return nil, fmt.Errorf("winner row %s: %w", daos[i].ID, err)
		}
		winners[i] = w
	}
	return winners, nil
}

func (s *pgStore) SetCrossPromotionActive(ctx context.Context, weekStart time.Time, active bool) error {
	res, err := s.db.NewUpdate().
		Model((*WinnerDao)(nil)).
		Set("cross_promotion_active = ?", active).
		Where("week_start_date = ?", weekStart.UTC()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set cross promotion flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrWinnerNotFound
	}
	return nil
}
