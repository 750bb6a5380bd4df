package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
)

const serviceName = "BoostService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the boost Service.
// It logs method entry/exit, duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) RegisterEntrant(ctx context.Context, symbol, name, logoURL, blockchain string) (e *entrant.TokenEntrant, err error) {
	start := time.Now()

	ls.logger.Info("RegisterEntrant started",
		zap.String("service", serviceName),
		zap.String("method", "RegisterEntrant"),
		zap.String("symbol", symbol),
		zap.String("blockchain", blockchain),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("RegisterEntrant failed",
				zap.String("service", serviceName),
				zap.String("method", "RegisterEntrant"),
				zap.String("symbol", symbol),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("RegisterEntrant completed",
				zap.String("service", serviceName),
				zap.String("method", "RegisterEntrant"),
				zap.String("entrant_id", e.ID.String()),
				zap.String("symbol", e.Symbol),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.RegisterEntrant(ctx, symbol, name, logoURL, blockchain)
}

func (ls *logService) ReviewEntrant(ctx context.Context, id uuid.UUID, status entrant.Status) (err error) {
	start := time.Now()

	ls.logger.Info("ReviewEntrant started",
		zap.String("service", serviceName),
		zap.String("method", "ReviewEntrant"),
		zap.String("entrant_id", id.String()),
		zap.String("status", string(status)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ReviewEntrant failed",
				zap.String("service", serviceName),
				zap.String("method", "ReviewEntrant"),
				zap.String("entrant_id", id.String()),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("ReviewEntrant completed",
				zap.String("service", serviceName),
				zap.String("method", "ReviewEntrant"),
				zap.String("entrant_id", id.String()),
				zap.String("status", string(status)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ReviewEntrant(ctx, id, status)
}

func (ls *logService) ApplyBoost(ctx context.Context, tokenID uuid.UUID, packType boost.PackType, idempotencyKey string) (b *boost.Boost, err error) {
	start := time.Now()

	ls.logger.Info("ApplyBoost started",
		zap.String("service", serviceName),
		zap.String("method", "ApplyBoost"),
		zap.String("token_id", tokenID.String()),
		zap.String("pack_type", string(packType)),
		zap.String("idempotency_key", idempotencyKey),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ApplyBoost failed",
				zap.String("service", serviceName),
				zap.String("method", "ApplyBoost"),
				zap.String("token_id", tokenID.String()),
				zap.String("idempotency_key", idempotencyKey),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("ApplyBoost completed",
				zap.String("service", serviceName),
				zap.String("method", "ApplyBoost"),
				zap.String("boost_id", b.ID.String()),
				zap.String("token_id", tokenID.String()),
				zap.String("pack_type", string(packType)),
				zap.String("points", b.OriginalPoints.String()),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ApplyBoost(ctx, tokenID, packType, idempotencyKey)
}

func (ls *logService) ActiveBoosts(ctx context.Context, tokenID uuid.UUID) (boosts []*boost.Boost, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ActiveBoosts failed",
				zap.String("service", serviceName),
				zap.String("method", "ActiveBoosts"),
				zap.String("token_id", tokenID.String()),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Debug("ActiveBoosts completed",
				zap.String("service", serviceName),
				zap.String("method", "ActiveBoosts"),
				zap.String("token_id", tokenID.String()),
				zap.Int("count", len(boosts)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ActiveBoosts(ctx, tokenID)
}
