// Package dispatchstore persists cross-promotion bookings and the
// social announcement queue.
package dispatchstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/racetoliberty/boost-engine/pkg/dispatch"
)

// ErrPromotionNotFound is returned when a promotion lookup finds no matching record.
var ErrPromotionNotFound = errors.New("cross promotion not found")

// ErrAnnouncementNotFound is returned when an announcement lookup finds no matching record.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// ErrInvalidTransition is returned when a promotion status update
// violates the lifecycle.
var ErrInvalidTransition = errors.New("invalid promotion status transition")

// Store defines the dispatch persistence interface.
//
// InsertPromotion is a compare-and-insert on the promotion's
// deterministic id: re-running the scheduler after a crash observes
// inserted=false instead of double-booking an ad slot.
//
// ClaimAnnouncement flips exactly one announcement from pending to
// processing; a false return means another sweep holds it.
type Store interface {
	InsertPromotion(ctx context.Context, p *dispatch.CrossPromotion) (inserted bool, err error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*dispatch.CrossPromotion, error)
	ListPromotionsForWeek(ctx context.Context, weekStart time.Time) ([]*dispatch.CrossPromotion, error)
	ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error)
	UpdatePromotionStatus(ctx context.Context, id uuid.UUID, from, to dispatch.PromotionStatus) error
	RecordEngagement(ctx context.Context, id uuid.UUID, metrics dispatch.EngagementMetrics) error

	InsertAnnouncement(ctx context.Context, a *dispatch.SocialAnnouncement) error
	ListDueAnnouncements(ctx context.Context, now time.Time, limit int) ([]*dispatch.SocialAnnouncement, error)
	ClaimAnnouncement(ctx context.Context, id uuid.UUID) (claimed bool, err error)
	FinalizeAnnouncement(ctx context.Context, id uuid.UUID, status dispatch.AnnouncementStatus, sentAt *time.Time, lastError string) error
	GetAnnouncement(ctx context.Context, id uuid.UUID) (*dispatch.SocialAnnouncement, error)
	ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error)
}
