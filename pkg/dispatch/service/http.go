package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/racetoliberty/boost-engine/pkg/app/errors"
	apphttp "github.com/racetoliberty/boost-engine/pkg/app/http"
	"github.com/racetoliberty/boost-engine/pkg/dispatch"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	logger   *zap.Logger
	validate *validator.Validate
}

// RegisterRoutes registers HTTP endpoints for reward dispatch on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service:  service,
		logger:   logger,
		validate: validator.New(),
	}

	r.Post("/promotions", apphttp.HandleError(h.schedulePromotions))
	r.Get("/promotions", apphttp.HandleError(h.listPromotions))
	r.Put("/promotions/{promotionID}", apphttp.HandleError(h.updatePromotion))

	r.Post("/announcements", apphttp.HandleError(h.scheduleAnnouncement))
	r.Get("/announcements", apphttp.HandleError(h.listAnnouncements))
	r.Put("/announcements/process", apphttp.HandleError(h.processAnnouncements))
}

type schedulePromotionsRequest struct {
	WeeklyWinnerID string `json:"weekly_winner_id" validate:"required,uuid4"`
	PodcastEpisode string `json:"podcast_episode" validate:"omitempty,max=200"`
	ScheduledDate  string `json:"scheduled_date" validate:"omitempty"`
}

type updatePromotionRequest struct {
	Status     string                      `json:"status" validate:"required,oneof=aired cancelled"`
	Engagement *dispatch.EngagementMetrics `json:"engagement_metrics" validate:"omitempty"`
}

type scheduleAnnouncementRequest struct {
	Type          string `json:"type" validate:"required,oneof=boost_activated weekly_winner"`
	TokenID       string `json:"token_id" validate:"required,uuid4"`
	CustomMessage string `json:"custom_message" validate:"omitempty,max=1000"`
}

type promotionResponse struct {
	ID            string                      `json:"id"`
	WinnerID      string                      `json:"weekly_winner_id"`
	WeekStartDate time.Time                   `json:"week_start_date"`
	TokenID       string                      `json:"token_id"`
	Tier          string                      `json:"tier"`
	Slot          string                      `json:"ad_slot"`
	Episode       string                      `json:"podcast_episode,omitempty"`
	AirAt         time.Time                   `json:"scheduled_date"`
	Status        string                      `json:"status"`
	Engagement    *dispatch.EngagementMetrics `json:"engagement_metrics,omitempty"`
}

func toPromotionResponse(p *dispatch.CrossPromotion) *promotionResponse {
	return &promotionResponse{
		ID:            p.ID.String(),
		WinnerID:      p.WinnerID.String(),
		WeekStartDate: p.WeekStartDate,
		TokenID:       p.TokenID.String(),
		Tier:          string(p.Tier),
		Slot:          string(p.Slot),
		Episode:       p.Episode,
		AirAt:         p.AirAt,
		Status:        string(p.Status),
		Engagement:    p.Engagement,
	}
}

type announcementResponse struct {
	ID         string                      `json:"id"`
	Type       string                      `json:"type"`
	Platform   string                      `json:"platform"`
	TokenID    string                      `json:"token_id"`
	Body       string                      `json:"message"`
	SendAfter  time.Time                   `json:"send_after"`
	Status     string                      `json:"status"`
	Attempts   int                         `json:"attempts"`
	LastError  string                      `json:"last_error,omitempty"`
	SentAt     *time.Time                  `json:"sent_at,omitempty"`
	Engagement *dispatch.EngagementMetrics `json:"engagement_metrics,omitempty"`
}

func toAnnouncementResponse(a *dispatch.SocialAnnouncement) *announcementResponse {
	return &announcementResponse{
		ID:         a.ID.String(),
		Type:       string(a.Type),
		Platform:   string(a.Platform),
		TokenID:    a.TokenID.String(),
		Body:       a.Body,
		SendAfter:  a.SendAfter,
		Status:     string(a.Status),
		Attempts:   a.Attempts,
		LastError:  a.LastError,
		SentAt:     a.SentAt,
		Engagement: a.Engagement,
	}
}

// schedulePromotions handles HTTP requests
func (h *HTTP) schedulePromotions(w http.ResponseWriter, r *http.Request) error {
	var req schedulePromotionsRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}

	winnerID, err := uuid.Parse(req.WeeklyWinnerID)
	if err != nil {
		return apperrors.ValidationError(err, "invalid winner id")
	}

	var airAt time.Time
	if req.ScheduledDate != "" {
		airAt, err = parseDate(req.ScheduledDate)
		if err != nil {
			return apperrors.ValidationError(err, "invalid scheduled date")
		}
	}

	promotions, err := h.service.ScheduleCrossPromotion(r.Context(), winnerID, req.PodcastEpisode, airAt)
	if err != nil {
		return err
	}

	resp := make([]*promotionResponse, len(promotions))
	for i, p := range promotions {
		resp[i] = toPromotionResponse(p)
	}

	apphttp.WriteJSON(w, http.StatusCreated, resp)
	return nil
}

// listPromotions handles HTTP requests
func (h *HTTP) listPromotions(w http.ResponseWriter, r *http.Request) error {
	status := dispatch.PromotionStatus(r.URL.Query().Get("status"))
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		return err
	}

	promotions, err := h.service.ListPromotions(r.Context(), status, limit)
	if err != nil {
		return err
	}

	resp := make([]*promotionResponse, len(promotions))
	for i, p := range promotions {
		resp[i] = toPromotionResponse(p)
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

// updatePromotion handles HTTP requests
func (h *HTTP) updatePromotion(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(chi.URLParam(r, "promotionID"))
	if err != nil {
		return apperrors.ValidationError(err, "invalid promotion id")
	}

	var req updatePromotionRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}

	p, err := h.service.UpdatePromotionStatus(r.Context(), id, dispatch.PromotionStatus(req.Status), req.Engagement)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, toPromotionResponse(p))
	return nil
}

// scheduleAnnouncement handles HTTP requests
func (h *HTTP) scheduleAnnouncement(w http.ResponseWriter, r *http.Request) error {
	var req scheduleAnnouncementRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}

	tokenID, err := uuid.Parse(req.TokenID)
	if err != nil {
		return apperrors.ValidationError(err, "invalid token id")
	}

	scheduled, err := h.service.ScheduleAnnouncement(r.Context(), dispatch.AnnouncementType(req.Type), tokenID, req.CustomMessage)
	if err != nil {
		return err
	}

	resp := make([]*announcementResponse, len(scheduled))
	for i, a := range scheduled {
		resp[i] = toAnnouncementResponse(a)
	}

	apphttp.WriteJSON(w, http.StatusCreated, resp)
	return nil
}

// listAnnouncements handles HTTP requests
func (h *HTTP) listAnnouncements(w http.ResponseWriter, r *http.Request) error {
	status := dispatch.AnnouncementStatus(r.URL.Query().Get("status"))
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		return err
	}

	announcements, err := h.service.ListAnnouncements(r.Context(), status, limit)
	if err != nil {
		return err
	}

	resp := make([]*announcementResponse, len(announcements))
	for i, a := range announcements {
		resp[i] = toAnnouncementResponse(a)
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

// processAnnouncements handles HTTP requests
func (h *HTTP) processAnnouncements(w http.ResponseWriter, r *http.Request) error {
	results, err := h.service.ProcessPending(r.Context(), time.Now().UTC())
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, results)
	return nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperrors.ValidationError(err, "invalid limit")
	}
	return limit, nil
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
