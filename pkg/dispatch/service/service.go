// Package service implements reward dispatch: podcast cross-promotion
// scheduling for weekly winners and the social announcement queue.
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
	"github.com/racetoliberty/boost-engine/pkg/config"
	"github.com/racetoliberty/boost-engine/pkg/dispatch"
	"github.com/racetoliberty/boost-engine/pkg/dispatchstore"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
	"github.com/racetoliberty/boost-engine/pkg/leaderboard"
	"github.com/racetoliberty/boost-engine/pkg/ledgerstore"
	"github.com/racetoliberty/boost-engine/pkg/winner"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// Store is the narrow persistence slice the dispatcher needs.
type Store interface {
	InsertPromotion(ctx context.Context, p *dispatch.CrossPromotion) (bool, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*dispatch.CrossPromotion, error)
	ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error)
	UpdatePromotionStatus(ctx context.Context, id uuid.UUID, from, to dispatch.PromotionStatus) error
	RecordEngagement(ctx context.Context, id uuid.UUID, m dispatch.EngagementMetrics) error

	InsertAnnouncement(ctx context.Context, a *dispatch.SocialAnnouncement) error
	ListDueAnnouncements(ctx context.Context, now time.Time, limit int) ([]*dispatch.SocialAnnouncement, error)
	ClaimAnnouncement(ctx context.Context, id uuid.UUID) (bool, error)
	FinalizeAnnouncement(ctx context.Context, id uuid.UUID, status dispatch.AnnouncementStatus, sentAt *time.Time, lastError string) error
	ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error)
}

// Winners is the slice of the winner store the dispatcher needs.
type Winners interface {
	GetWinner(ctx context.Context, id uuid.UUID) (*winner.WeeklyWinner, error)
	SetCrossPromotionActive(ctx context.Context, weekStart time.Time, active bool) error
}

// Entrants resolves token ids to their registered symbols for message
// templating.
type Entrants interface {
	GetEntrant(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error)
}

// Leaderboard supplies the current weekly standings when booking
// promotion slots.
type Leaderboard interface {
	Compute(ctx context.Context, timeframe leaderboard.Timeframe, now time.Time, opts ...leaderboard.ComputeOption) ([]*leaderboard.Entry, error)
}

// ProcessResult is the outcome of one announcement in a sweep. One
// failing item never aborts the sweep; each outcome stands alone.
type ProcessResult struct {
	AnnouncementID uuid.UUID                   `json:"announcement_id"`
	Platform       dispatch.Platform           `json:"platform"`
	Status         dispatch.AnnouncementStatus `json:"status"`
	Error          string                      `json:"error,omitempty"`
}

// Service defines the interface for the reward dispatch business logic.
// Nothing here runs its own background loop: announcement sweeps are
// driven by an external scheduler calling these idempotent, re-entrant
// operations.
type Service interface {
	ScheduleCrossPromotion(ctx context.Context, winnerID uuid.UUID, episode string, airAt time.Time) ([]*dispatch.CrossPromotion, error)
	UpdatePromotionStatus(ctx context.Context, id uuid.UUID, to dispatch.PromotionStatus, engagement *dispatch.EngagementMetrics) (*dispatch.CrossPromotion, error)
	ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error)
	ScheduleAnnouncement(ctx context.Context, typ dispatch.AnnouncementType, tokenID uuid.UUID, customMessage string) ([]*dispatch.SocialAnnouncement, error)
	ProcessPending(ctx context.Context, now time.Time) ([]ProcessResult, error)
	ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error)
}

type dispatcher struct {
	store       Store
	winners     Winners
	entrants    Entrants
	leaderboard Leaderboard
	senders     map[dispatch.Platform]dispatch.Sender
	podcast     dispatch.PodcastScheduler
	cfg         config.DispatchConfig
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures the dispatcher.
type Option func(*dispatcher)

// WithClock overrides the dispatcher clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(d *dispatcher) {
		d.now = now
	}
}

// NewService creates a new reward dispatcher
func NewService(
	store Store,
	winners Winners,
	entrants Entrants,
	lb Leaderboard,
	senders map[dispatch.Platform]dispatch.Sender,
	podcast dispatch.PodcastScheduler,
	cfg config.DispatchConfig,
	logger *zap.Logger,
	opts ...Option,
) Service {
	d := &dispatcher{
		store:       store,
		winners:     winners,
		entrants:    entrants,
		leaderboard: lb,
		senders:     senders,
		podcast:     podcast,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ScheduleCrossPromotion books podcast slots for the current weekly
// top-3. Targets are re-queried at scheduling time rather than frozen
// at resolution: scores keep accruing, and the promotion goes to
// whoever is still on the podium. Promotion ids are deterministic per
// (winner, token, tier), so re-invocation creates no duplicate rows.
func (d *dispatcher) ScheduleCrossPromotion(ctx context.Context, winnerID uuid.UUID, episode string, airAt time.Time) ([]*dispatch.CrossPromotion, error) {
	w, err := d.winners.GetWinner(ctx, winnerID)
	if err != nil {
		if errors.Is(err, winnerstore.ErrWinnerNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "weekly winner not found")
		}
		return nil, fmt.Errorf("failed to load winner: %w", err)
	}

	now := d.now()
	if airAt.IsZero() {
		airAt = now.Add(d.cfg.PromotionLeadTime)
	}

	entries, err := d.leaderboard.Compute(ctx, leaderboard.TimeframeWeekly, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute current standings: %w", err)
	}
	if len(entries) == 0 {
		return nil, apperrors.ResourceNotFoundError(nil, "no entrants on the current leaderboard")
	}
	if len(entries) > 3 {
		entries = entries[:3]
	}

	promotions := make([]*dispatch.CrossPromotion, 0, len(entries))
	for _, entry := range entries {
		tier, ok := dispatch.TierForRank(entry.Position)
		if !ok {
			continue
		}
		p := dispatch.NewCrossPromotion(winnerID, w.WeekStartDate, entry.TokenID, tier, episode, airAt)

		inserted, err := d.store.InsertPromotion(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to insert promotion: %w", err)
		}
		if !inserted {
			metrics.DuplicateOperations.WithLabelValues("schedule_promotion").Inc()
			existing, err := d.store.GetPromotion(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load existing promotion: %w", err)
			}
			promotions = append(promotions, existing)
			continue
		}

		if d.podcast != nil {
			if err := d.book(ctx, p); err != nil {
				d.logger.Warn("podcast booking failed, promotion stays scheduled",
					zap.String("promotion_id", p.ID.String()),
					zap.Error(err),
				)
			}
		}

		metrics.PromotionsScheduled.WithLabelValues(string(tier)).Inc()
		promotions = append(promotions, p)
	}

	if err := d.winners.SetCrossPromotionActive(ctx, w.WeekStartDate, true); err != nil {
		return nil, fmt.Errorf("failed to flag winner promotion: %w", err)
	}

	return promotions, nil
}

func (d *dispatcher) book(ctx context.Context, p *dispatch.CrossPromotion) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	return d.podcast.Book(ctx, dispatch.Booking{
		Episode: p.Episode,
		Slot:    p.Slot,
		AirAt:   p.AirAt,
		TokenID: p.TokenID,
	})
}

// UpdatePromotionStatus moves a scheduled promotion to aired or
// cancelled. The aired transition may attach engagement metrics.
// Terminal records are immutable.
func (d *dispatcher) UpdatePromotionStatus(ctx context.Context, id uuid.UUID, to dispatch.PromotionStatus, engagement *dispatch.EngagementMetrics) (*dispatch.CrossPromotion, error) {
	if to != dispatch.PromotionAired && to != dispatch.PromotionCancelled {
		return nil, apperrors.ValidationError(nil, fmt.Sprintf("cannot transition promotion to %q", to))
	}
	if engagement != nil && to != dispatch.PromotionAired {
		return nil, apperrors.ValidationError(nil, "engagement metrics only attach to the aired transition")
	}

	err := d.store.UpdatePromotionStatus(ctx, id, dispatch.PromotionScheduled, to)
	if err != nil {
		switch {
		case errors.Is(err, dispatchstore.ErrPromotionNotFound):
			return nil, apperrors.ResourceNotFoundError(err, "promotion not found")
		case errors.Is(err, dispatchstore.ErrInvalidTransition):
			return nil, apperrors.ValidationError(err, "promotion is not in scheduled state")
		default:
			return nil, fmt.Errorf("failed to update promotion: %w", err)
		}
	}

	if engagement != nil {
		if err := d.store.RecordEngagement(ctx, id, *engagement); err != nil {
			return nil, fmt.Errorf("failed to record engagement: %w", err)
		}
	}

	return d.store.GetPromotion(ctx, id)
}

// ListPromotions returns promotions filtered by status.
func (d *dispatcher) ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error) {
	return d.store.ListPromotions(ctx, status, limit)
}

// ScheduleAnnouncement queues templated messages for both platforms.
// Sends are staggered, Twitter first, to keep the two posts from
// hitting platform rate limits at the same instant.
func (d *dispatcher) ScheduleAnnouncement(ctx context.Context, typ dispatch.AnnouncementType, tokenID uuid.UUID, customMessage string) ([]*dispatch.SocialAnnouncement, error) {
	if typ != dispatch.AnnounceBoostActivated && typ != dispatch.AnnounceWeeklyWinner {
		return nil, apperrors.ValidationError(nil, fmt.Sprintf("unknown announcement type %q", typ))
	}

	e, err := d.entrants.GetEntrant(ctx, tokenID)
	if err != nil {
		if errors.Is(err, ledgerstore.ErrEntrantNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "token not found")
		}
		return nil, fmt.Errorf("failed to load entrant: %w", err)
	}

	now := d.now()
	scheduled := []*dispatch.SocialAnnouncement{
		dispatch.NewAnnouncement(typ, dispatch.PlatformTwitter, tokenID, messageFor(typ, dispatch.PlatformTwitter, e, customMessage), now.Add(d.cfg.TwitterDelay)),
		dispatch.NewAnnouncement(typ, dispatch.PlatformTelegram, tokenID, messageFor(typ, dispatch.PlatformTelegram, e, customMessage), now.Add(d.cfg.TelegramDelay)),
	}

	for _, a := range scheduled {
		if err := d.store.InsertAnnouncement(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to queue %s announcement: %w", a.Platform, err)
		}
	}

	return scheduled, nil
}

func messageFor(typ dispatch.AnnouncementType, platform dispatch.Platform, e *entrant.TokenEntrant, custom string) string {
	if custom != "" {
		return custom
	}

	switch typ {
	case dispatch.AnnounceWeeklyWinner:
		if platform == dispatch.PlatformTelegram {
			return fmt.Sprintf("%s (%s) takes the crown in this week's Race to Liberty. Congratulations to the community!", e.Name, e.Symbol)
		}
		return fmt.Sprintf("$%s wins this week's Race to Liberty! 👑", e.Symbol)
	default:
		if platform == dispatch.PlatformTelegram {
			return fmt.Sprintf("%s (%s) just activated a boost. The Race to Liberty leaderboard is moving!", e.Name, e.Symbol)
		}
		return fmt.Sprintf("$%s just hit the boost button 🚀 Watch the Race to Liberty leaderboard!", e.Symbol)
	}
}

// ProcessPending is the announcement sweep. Each due item is claimed
// with a conditional update before the sender runs, so an overlapping
// sweep cannot dispatch it twice. Sender calls run under a bounded
// timeout; a timeout or failure marks the item failed, never leaves it
// pending. A failing item does not abort the rest of the sweep.
func (d *dispatcher) ProcessPending(ctx context.Context, now time.Time) ([]ProcessResult, error) {
	due, err := d.store.ListDueAnnouncements(ctx, now, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list due announcements: %w", err)
	}

	results := make([]ProcessResult, 0, len(due))
	for _, a := range due {
		claimed, err := d.store.ClaimAnnouncement(ctx, a.ID)
		if err != nil {
			return results, fmt.Errorf("failed to claim announcement %s: %w", a.ID, err)
		}
		if !claimed {
			// Another sweep holds it.
			continue
		}

		results = append(results, d.processOne(ctx, a))
	}

	return results, nil
}

func (d *dispatcher) processOne(ctx context.Context, a *dispatch.SocialAnnouncement) ProcessResult {
	result := ProcessResult{
		AnnouncementID: a.ID,
		Platform:       a.Platform,
	}

	sender, ok := d.senders[a.Platform]
	if !ok {
		result.Status = dispatch.AnnouncementFailed
		result.Error = fmt.Sprintf("no sender configured for platform %s", a.Platform)
		d.finalize(ctx, a, dispatch.AnnouncementFailed, nil, result.Error)
		return result
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	start := d.now()
	ack, err := sender.Send(sendCtx, dispatch.Message{
		Platform: a.Platform,
		TokenID:  a.TokenID,
		Body:     a.Body,
	})
	metrics.DispatchDuration.WithLabelValues(string(a.Platform)).Observe(time.Since(start).Seconds())

	if err != nil {
		errMsg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			errMsg = fmt.Sprintf("send exceeded %s deadline", d.cfg.SendTimeout)
		}
		result.Status = dispatch.AnnouncementFailed
		result.Error = errMsg
		d.finalize(ctx, a, dispatch.AnnouncementFailed, nil, errMsg)
		metrics.AnnouncementsProcessed.WithLabelValues(string(a.Platform), string(dispatch.AnnouncementFailed)).Inc()
		return result
	}

	sentAt := ack.SentAt
	result.Status = dispatch.AnnouncementSent
	d.finalize(ctx, a, dispatch.AnnouncementSent, &sentAt, "")
	metrics.AnnouncementsProcessed.WithLabelValues(string(a.Platform), string(dispatch.AnnouncementSent)).Inc()
	return result
}

func (d *dispatcher) finalize(ctx context.Context, a *dispatch.SocialAnnouncement, status dispatch.AnnouncementStatus, sentAt *time.Time, lastError string) {
	if err := d.store.FinalizeAnnouncement(ctx, a.ID, status, sentAt, lastError); err != nil {
		metrics.ErrorsTotal.WithLabelValues("dispatch", "finalize_announcement").Inc()
		d.logger.Error("failed to finalize announcement",
			zap.String("announcement_id", a.ID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

// ListAnnouncements returns announcements filtered by status.
func (d *dispatcher) ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error) {
	return d.store.ListAnnouncements(ctx, status, limit)
}
