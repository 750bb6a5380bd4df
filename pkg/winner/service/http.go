package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	apphttp "github.com/racetoliberty/boost-engine/pkg/app/http"
	"github.com/racetoliberty/boost-engine/pkg/winner"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for weekly winners on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/winners", apphttp.HandleError(h.listWinners))
	r.Get("/winners/latest", apphttp.HandleError(h.latestWinner))
	r.Post("/winners/resolve", apphttp.HandleError(h.resolveWeek))
}

type resolveWeekRequest struct {
	WeekStartDate string `json:"week_start_date,omitempty"`
}

type winnerResponse struct {
	ID                   string    `json:"id"`
	WeekStartDate        time.Time `json:"week_start_date"`
	TokenID              string    `json:"token_id"`
	FinalScore           string    `json:"final_score"`
	ResolvedAt           time.Time `json:"resolved_at"`
	CrossPromotionActive bool      `json:"cross_promotion_active"`
}

func toWinnerResponse(w *winner.WeeklyWinner) *winnerResponse {
	return &winnerResponse{
		ID:                   w.ID.String(),
		WeekStartDate:        w.WeekStartDate,
		TokenID:              w.TokenID.String(),
		FinalScore:           w.FinalScore.String(),
		ResolvedAt:           w.ResolvedAt,
		CrossPromotionActive: w.CrossPromotionActive,
	}
}

// listWinners handles HTTP requests
func (h *HTTP) listWinners(w http.ResponseWriter, r *http.Request) error {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apperrors.ValidationError(err, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	winners, err := h.service.ListWinners(r.Context(), limit)
	if err != nil {
		return err
	}

	resp := make([]*winnerResponse, len(winners))
	for i, win := range winners {
		resp[i] = toWinnerResponse(win)
	}
	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

// latestWinner handles HTTP requests
func (h *HTTP) latestWinner(w http.ResponseWriter, r *http.Request) error {
	latest, err := h.service.LatestWinner(r.Context())
	if err != nil {
		if errors.Is(err, winnerstore.ErrWinnerNotFound) {
			return apperrors.ResourceNotFoundError(err, "no week resolved yet")
		}
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, toWinnerResponse(latest))
	return nil
}

// resolveWeek handles HTTP requests
func (h *HTTP) resolveWeek(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.ValidationError(err, "failed to read request")
	}

	var weekStart time.Time
	if len(body) > 0 {
		var req resolveWeekRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return apperrors.ValidationError(err, "invalid JSON")
		}
		if req.WeekStartDate != "" {
			weekStart, err = time.Parse(time.RFC3339, req.WeekStartDate)
			if err != nil {
				weekStart, err = time.Parse("2006-01-02", req.WeekStartDate)
			}
			if err != nil {
				return apperrors.ValidationError(err, "week_start_date must be RFC3339 or YYYY-MM-DD")
			}
		}
	}

	resolved, err := h.service.ResolveWeek(r.Context(), weekStart, time.Now().UTC())
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, toWinnerResponse(resolved))
	return nil
}
