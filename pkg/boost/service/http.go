package service

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	apphttp "github.com/racetoliberty/boost-engine/pkg/app/http"
	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	logger   *zap.Logger
	validate *validator.Validate
}

// RegisterRoutes registers HTTP endpoints for the boost ledger on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service:  service,
		logger:   logger,
		validate: validator.New(),
	}

	r.Post("/entrants", apphttp.HandleError(h.registerEntrant))
	r.Put("/entrants/{entrantID}/status", apphttp.HandleError(h.reviewEntrant))
	r.Post("/boosts", apphttp.HandleError(h.applyBoost))
	r.Get("/tokens/{tokenID}/boosts", apphttp.HandleError(h.activeBoosts))
}

type registerEntrantRequest struct {
	Symbol     string `json:"symbol" validate:"required,max=20"`
	Name       string `json:"name" validate:"required,max=100"`
	LogoURL    string `json:"logo_url" validate:"omitempty,url,max=500"`
	Blockchain string `json:"blockchain" validate:"required,max=50"`
}

type reviewEntrantRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type applyBoostRequest struct {
	TokenID        string `json:"token_id" validate:"required,uuid4"`
	PackType       string `json:"pack_type" validate:"required,oneof=paddle motor helicopter"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,max=255"`
}

type entrantResponse struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	LogoURL    string    `json:"logo_url,omitempty"`
	Blockchain string    `json:"blockchain"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toEntrantResponse(e *entrant.TokenEntrant) *entrantResponse {
	return &entrantResponse{
		ID:         e.ID.String(),
		Symbol:     e.Symbol,
		Name:       e.Name,
		LogoURL:    e.LogoURL,
		Blockchain: e.Blockchain,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
	}
}

type boostResponse struct {
	BoostID        string    `json:"boost_id"`
	TokenID        string    `json:"token_id"`
	PackType       string    `json:"pack_type"`
	OriginalPoints string    `json:"original_points"`
	AppliedAt      time.Time `json:"applied_at"`
	DecayHours     int       `json:"decay_hours"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func toBoostResponse(b *boost.Boost) *boostResponse {
	return &boostResponse{
		BoostID:        b.ID.String(),
		TokenID:        b.TokenID.String(),
		PackType:       string(b.PackType),
		OriginalPoints: b.OriginalPoints.String(),
		AppliedAt:      b.AppliedAt,
		DecayHours:     b.DecayHours,
		ExpiresAt:      b.ExpiresAt(),
	}
}

// registerEntrant handles HTTP requests
func (h *HTTP) registerEntrant(w http.ResponseWriter, r *http.Request) error {
	var req registerEntrantRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}

	e, err := h.service.RegisterEntrant(r.Context(), req.Symbol, req.Name, req.LogoURL, req.Blockchain)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusCreated, toEntrantResponse(e))
	return nil
}

// reviewEntrant handles HTTP requests
func (h *HTTP) reviewEntrant(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(chi.URLParam(r, "entrantID"))
	if err != nil {
		return apperrors.ValidationError(err, "invalid entrant id")
	}

	var req reviewEntrantRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}

	if err := h.service.ReviewEntrant(r.Context(), id, entrant.Status(req.Status)); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// applyBoost handles HTTP requests
func (h *HTTP) applyBoost(w http.ResponseWriter, r *http.Request) error {
	var req applyBoostRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}

	tokenID, err := uuid.Parse(req.TokenID)
	if err != nil {
		return apperrors.ValidationError(err, "invalid token id")
	}

	b, err := h.service.ApplyBoost(r.Context(), tokenID, boost.PackType(req.PackType), req.IdempotencyKey)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusCreated, toBoostResponse(b))
	return nil
}

// activeBoosts handles HTTP requests
func (h *HTTP) activeBoosts(w http.ResponseWriter, r *http.Request) error {
	tokenID, err := uuid.Parse(chi.URLParam(r, "tokenID"))
	if err != nil {
		return apperrors.ValidationError(err, "invalid token id")
	}

	boosts, err := h.service.ActiveBoosts(r.Context(), tokenID)
	if err != nil {
		return err
	}

	resp := make([]*boostResponse, len(boosts))
	for i, b := range boosts {
		resp[i] = toBoostResponse(b)
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.ValidationError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.ValidationError(err, "invalid JSON")
	}
	if err := h.validate.Struct(v); err != nil {
		return apperrors.ValidationError(err, "invalid request")
	}
	return nil
}
