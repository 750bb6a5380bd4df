package leaderboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	apphttp "github.com/racetoliberty/boost-engine/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the leaderboard on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/leaderboard", apphttp.HandleError(h.get))
}

// get handles HTTP requests
func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	timeframe := Timeframe(r.URL.Query().Get("timeframe"))
	if timeframe == "" {
		timeframe = TimeframeCurrent
	}
	if !timeframe.Valid() {
		return apperrors.ValidationError(nil, "timeframe must be current or weekly")
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apperrors.ValidationError(err, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	entries, err := h.service.Compute(r.Context(), timeframe, time.Now().UTC())
	if err != nil {
		return err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	apphttp.WriteJSON(w, http.StatusOK, entries)
	return nil
}
