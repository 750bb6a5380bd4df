package dispatchstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/racetoliberty/boost-engine/pkg/dispatch"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the dispatch store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) InsertPromotion(ctx context.Context, p *dispatch.CrossPromotion) (bool, error) {
	dao := toPromotionDao(p)

	res, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert promotion: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) GetPromotion(ctx context.Context, id uuid.UUID) (*dispatch.CrossPromotion, error) {
	dao := new(PromotionDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	return toPromotion(dao), nil
}

func (s *pgStore) ListPromotionsForWeek(ctx context.Context, weekStart time.Time) ([]*dispatch.CrossPromotion, error) {
	var daos []PromotionDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("week_start_date = ?", weekStart.UTC()).
		Order("tier ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions for week: %w", err)
	}

	promotions := make([]*dispatch.CrossPromotion, len(daos))
	for i := range daos {
		promotions[i] = toPromotion(&daos[i])
	}
	return promotions, nil
}

func (s *pgStore) ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error) {
	var daos []PromotionDao
	query := s.db.NewSelect().
		Model(&daos).
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	promotions := make([]*dispatch.CrossPromotion, len(daos))
	for i := range daos {
		promotions[i] = toPromotion(&daos[i])
	}
	return promotions, nil
}

// UpdatePromotionStatus moves a promotion from one status to another.
// The WHERE clause carries the expected current status, so a stale
// caller loses the race and gets ErrInvalidTransition instead of
// clobbering a terminal state.
func (s *pgStore) UpdatePromotionStatus(ctx context.Context, id uuid.UUID, from, to dispatch.PromotionStatus) error {
	if !dispatch.CanTransition(from, to) {
		return ErrInvalidTransition
	}

	res, err := s.db.NewUpdate().
		Model((*PromotionDao)(nil)).
		Set("status = ?", string(to)).
		Where("id = ?", id).
		Where("status = ?", string(from)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update promotion status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		exists, err := s.db.NewSelect().
			Model((*PromotionDao)(nil)).
			Where("id = ?", id).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check promotion exists: %w", err)
		}
		if !exists {
			return ErrPromotionNotFound
		}
		return ErrInvalidTransition
	}
	return nil
}

func (s *pgStore) RecordEngagement(ctx context.Context, id uuid.UUID, metrics dispatch.EngagementMetrics) error {
	res, err := s.db.NewUpdate().
		Model((*PromotionDao)(nil)).
		Set("listens = ?", metrics.Listens).
		Set("click_thrus = ?", metrics.ClickThrus).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record engagement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (s *pgStore) InsertAnnouncement(ctx context.Context, a *dispatch.SocialAnnouncement) error {
	dao := toAnnouncementDao(a)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert announcement: %w", err)
	}
	return nil
}

func (s *pgStore) ListDueAnnouncements(ctx context.Context, now time.Time, limit int) ([]*dispatch.SocialAnnouncement, error) {
	var daos []AnnouncementDao
	query := s.db.NewSelect().
		Model(&daos).
		Where("status = ?", string(dispatch.AnnouncementPending)).
		Where("send_after <= ?", now.UTC()).
		Order("send_after ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list due announcements: %w", err)
	}

	announcements := make([]*dispatch.SocialAnnouncement, len(daos))
	for i := range daos {
		announcements[i] = toAnnouncement(&daos[i])
	}
	return announcements, nil
}

// ClaimAnnouncement flips one announcement from pending to processing.
// The conditional WHERE makes the claim atomic: of any number of
// concurrent sweeps, exactly one observes claimed=true.
func (s *pgStore) ClaimAnnouncement(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*AnnouncementDao)(nil)).
		Set("status = ?", string(dispatch.AnnouncementProcessing)).
		Set("attempts = attempts + 1").
		Where("id = ?", id).
		Where("status = ?", string(dispatch.AnnouncementPending)).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to claim announcement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) FinalizeAnnouncement(ctx context.Context, id uuid.UUID, status dispatch.AnnouncementStatus, sentAt *time.Time, lastError string) error {
	if status != dispatch.AnnouncementSent && status != dispatch.AnnouncementFailed {
		return fmt.Errorf("announcement %s: cannot finalize to %s", id, status)
	}

	q := s.db.NewUpdate().
		Model((*AnnouncementDao)(nil)).
		Set("status = ?", string(status)).
		Set("sent_at = ?", sentAt).
		Set("last_error = ?", lastError).
		Where("id = ?", id).
		Where("status = ?", string(dispatch.AnnouncementProcessing))
	if status == dispatch.AnnouncementSent {
		// Sent announcements carry a zeroed engagement placeholder
		// until platform callbacks report real numbers.
		q = q.Set("listens = 0").Set("click_thrus = 0")
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to finalize announcement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (s *pgStore) ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error) {
	var daos []AnnouncementDao
	query := s.db.NewSelect().
		Model(&daos).
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	announcements := make([]*dispatch.SocialAnnouncement, len(daos))
	for i := range daos {
		announcements[i] = toAnnouncement(&daos[i])
	}
	return announcements, nil
}

func (s *pgStore) GetAnnouncement(ctx context.Context, id uuid.UUID) (*dispatch.SocialAnnouncement, error) {
	dao := new(AnnouncementDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	return toAnnouncement(dao), nil
}
