package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/racetoliberty/boost-engine/pkg/dispatch"
)

const serviceName = "DispatchService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the dispatch Service.
// It logs method entry/exit, duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) ScheduleCrossPromotion(ctx context.Context, winnerID uuid.UUID, episode string, airAt time.Time) (promotions []*dispatch.CrossPromotion, err error) {
	start := time.Now()

	ls.logger.Info("ScheduleCrossPromotion started",
		zap.String("service", serviceName),
		zap.String("method", "ScheduleCrossPromotion"),
		zap.String("winner_id", winnerID.String()),
		zap.String("episode", episode),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ScheduleCrossPromotion failed",
				zap.String("service", serviceName),
				zap.String("method", "ScheduleCrossPromotion"),
				zap.String("winner_id", winnerID.String()),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("ScheduleCrossPromotion completed",
				zap.String("service", serviceName),
				zap.String("method", "ScheduleCrossPromotion"),
				zap.String("winner_id", winnerID.String()),
				zap.Int("promotions", len(promotions)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ScheduleCrossPromotion(ctx, winnerID, episode, airAt)
}

func (ls *logService) UpdatePromotionStatus(ctx context.Context, id uuid.UUID, to dispatch.PromotionStatus, engagement *dispatch.EngagementMetrics) (p *dispatch.CrossPromotion, err error) {
	start := time.Now()

	ls.logger.Info("UpdatePromotionStatus started",
		zap.String("service", serviceName),
		zap.String("method", "UpdatePromotionStatus"),
		zap.String("promotion_id", id.String()),
		zap.String("to", string(to)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("UpdatePromotionStatus failed",
				zap.String("service", serviceName),
				zap.String("method", "UpdatePromotionStatus"),
				zap.String("promotion_id", id.String()),
				zap.String("to", string(to)),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("UpdatePromotionStatus completed",
				zap.String("service", serviceName),
				zap.String("method", "UpdatePromotionStatus"),
				zap.String("promotion_id", id.String()),
				zap.String("status", string(p.Status)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.UpdatePromotionStatus(ctx, id, to, engagement)
}

func (ls *logService) ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) (promotions []*dispatch.CrossPromotion, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ListPromotions failed",
				zap.String("service", serviceName),
				zap.String("method", "ListPromotions"),
				zap.String("status", string(status)),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Debug("ListPromotions completed",
				zap.String("service", serviceName),
				zap.String("method", "ListPromotions"),
				zap.String("status", string(status)),
				zap.Int("count", len(promotions)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ListPromotions(ctx, status, limit)
}

func (ls *logService) ScheduleAnnouncement(ctx context.Context, typ dispatch.AnnouncementType, tokenID uuid.UUID, customMessage string) (scheduled []*dispatch.SocialAnnouncement, err error) {
	start := time.Now()

	ls.logger.Info("ScheduleAnnouncement started",
		zap.String("service", serviceName),
		zap.String("method", "ScheduleAnnouncement"),
		zap.String("type", string(typ)),
		zap.String("token_id", tokenID.String()),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ScheduleAnnouncement failed",
				zap.String("service", serviceName),
				zap.String("method", "ScheduleAnnouncement"),
				zap.String("type", string(typ)),
				zap.String("token_id", tokenID.String()),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("ScheduleAnnouncement completed",
				zap.String("service", serviceName),
				zap.String("method", "ScheduleAnnouncement"),
				zap.String("type", string(typ)),
				zap.String("token_id", tokenID.String()),
				zap.Int("queued", len(scheduled)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ScheduleAnnouncement(ctx, typ, tokenID, customMessage)
}

func (ls *logService) ProcessPending(ctx context.Context, now time.Time) (results []ProcessResult, err error) {
	start := time.Now()

	ls.logger.Info("ProcessPending started",
		zap.String("service", serviceName),
		zap.String("method", "ProcessPending"),
		zap.Time("now", now),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ProcessPending failed",
				zap.String("service", serviceName),
				zap.String("method", "ProcessPending"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			sent := 0
			for _, r := range results {
				if r.Status == dispatch.AnnouncementSent {
					sent++
				}
			}
			ls.logger.Info("ProcessPending completed",
				zap.String("service", serviceName),
				zap.String("method", "ProcessPending"),
				zap.Int("processed", len(results)),
				zap.Int("sent", sent),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ProcessPending(ctx, now)
}

func (ls *logService) ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) (announcements []*dispatch.SocialAnnouncement, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ListAnnouncements failed",
				zap.String("service", serviceName),
				zap.String("method", "ListAnnouncements"),
				zap.String("status", string(status)),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Debug("ListAnnouncements completed",
				zap.String("service", serviceName),
				zap.String("method", "ListAnnouncements"),
				zap.String("status", string(status)),
				zap.Int("count", len(announcements)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ListAnnouncements(ctx, status, limit)
}
