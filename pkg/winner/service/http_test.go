package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/racetoliberty/boost-engine/pkg/winner"
)

func newWinnersTestServer(store *MockStore, lb *MockLeaderboard) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(store, lb, zap.NewNop()), zap.NewNop())
	return r
}

func TestWinnersHTTP_LatestWinner_ResponseShape(t *testing.T) {
	weekStart := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	latest := winner.New(weekStart, uuid.New(), decimal.NewFromInt(480), weekStart.AddDate(0, 0, 7))
	latest.CrossPromotionActive = true

	store := &MockStore{
		LatestWinnerFunc: func(ctx context.Context) (*winner.WeeklyWinner, error) {
			return latest, nil
		},
	}
	handler := newWinnersTestServer(store, &MockLeaderboard{})

	req := httptest.NewRequest(http.MethodGet, "/winners/latest", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var got struct {
		ID                   string `json:"id"`
		TokenID              string `json:"token_id"`
		FinalScore           string `json:"final_score"`
		CrossPromotionActive bool   `json:"cross_promotion_active"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.ID != latest.ID.String() {
		t.Fatalf("expected id %q, got %q", latest.ID, got.ID)
	}
	if got.TokenID != latest.TokenID.String() {
		t.Fatalf("expected token_id %q, got %q", latest.TokenID, got.TokenID)
	}
	if got.FinalScore != "480" {
		t.Fatalf("expected final_score %q, got %q", "480", got.FinalScore)
	}
	if !got.CrossPromotionActive {
		t.Fatal("expected cross_promotion_active to be true")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode raw response: %v", err)
	}
	for _, key := range []string{"id", "week_start_date", "token_id", "final_score", "resolved_at"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected response key %q, body: %s", key, rec.Body.String())
		}
	}
}

func TestWinnersHTTP_ListWinners_ResponseShape(t *testing.T) {
	weekStart := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC)
	past := winner.New(weekStart, uuid.New(), decimal.NewFromInt(310), weekStart.AddDate(0, 0, 7))

	store := &MockStore{
		ListWinnersFunc: func(ctx context.Context, limit int) ([]*winner.WeeklyWinner, error) {
			return []*winner.WeeklyWinner{past}, nil
		},
	}
	handler := newWinnersTestServer(store, &MockLeaderboard{})

	req := httptest.NewRequest(http.MethodGet, "/winners", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var got []struct {
		ID         string `json:"id"`
		TokenID    string `json:"token_id"`
		FinalScore string `json:"final_score"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 winner, got %d", len(got))
	}
	if got[0].ID != past.ID.String() {
		t.Fatalf("expected id %q, got %q", past.ID, got[0].ID)
	}
	if got[0].FinalScore != "310" {
		t.Fatalf("expected final_score %q, got %q", "310", got[0].FinalScore)
	}
}
