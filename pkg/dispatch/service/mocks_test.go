package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/racetoliberty/boost-engine/pkg/dispatch"
	"github.com/racetoliberty/boost-engine/pkg/dispatchstore"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
	"github.com/racetoliberty/boost-engine/pkg/leaderboard"
	"github.com/racetoliberty/boost-engine/pkg/ledgerstore"
	"github.com/racetoliberty/boost-engine/pkg/winner"
	"github.com/racetoliberty/boost-engine/pkg/winnerstore"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	InsertPromotionFunc       func(ctx context.Context, p *dispatch.CrossPromotion) (bool, error)
	GetPromotionFunc          func(ctx context.Context, id uuid.UUID) (*dispatch.CrossPromotion, error)
	ListPromotionsFunc        func(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error)
	UpdatePromotionStatusFunc func(ctx context.Context, id uuid.UUID, from, to dispatch.PromotionStatus) error
	RecordEngagementFunc      func(ctx context.Context, id uuid.UUID, m dispatch.EngagementMetrics) error
	InsertAnnouncementFunc    func(ctx context.Context, a *dispatch.SocialAnnouncement) error
	ListDueAnnouncementsFunc  func(ctx context.Context, now time.Time, limit int) ([]*dispatch.SocialAnnouncement, error)
	ClaimAnnouncementFunc     func(ctx context.Context, id uuid.UUID) (bool, error)
	FinalizeAnnouncementFunc  func(ctx context.Context, id uuid.UUID, status dispatch.AnnouncementStatus, sentAt *time.Time, lastError string) error
	ListAnnouncementsFunc     func(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error)
}

func (m *MockStore) InsertPromotion(ctx context.Context, p *dispatch.CrossPromotion) (bool, error) {
	if m.InsertPromotionFunc != nil {
		return m.InsertPromotionFunc(ctx, p)
	}
	return true, nil
}

func (m *MockStore) GetPromotion(ctx context.Context, id uuid.UUID) (*dispatch.CrossPromotion, error) {
	if m.GetPromotionFunc != nil {
		return m.GetPromotionFunc(ctx, id)
	}
	return nil, dispatchstore.ErrPromotionNotFound
}

func (m *MockStore) ListPromotions(ctx context.Context, status dispatch.PromotionStatus, limit int) ([]*dispatch.CrossPromotion, error) {
	if m.ListPromotionsFunc != nil {
		return m.ListPromotionsFunc(ctx, status, limit)
	}
	return nil, nil
}

func (m *MockStore) UpdatePromotionStatus(ctx context.Context, id uuid.UUID, from, to dispatch.PromotionStatus) error {
	if m.UpdatePromotionStatusFunc != nil {
		return m.UpdatePromotionStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *MockStore) RecordEngagement(ctx context.Context, id uuid.UUID, em dispatch.EngagementMetrics) error {
	if m.RecordEngagementFunc != nil {
		return m.RecordEngagementFunc(ctx, id, em)
	}
	return nil
}

func (m *MockStore) InsertAnnouncement(ctx context.Context, a *dispatch.SocialAnnouncement) error {
	if m.InsertAnnouncementFunc != nil {
		return m.InsertAnnouncementFunc(ctx, a)
	}
	return nil
}

func (m *MockStore) ListDueAnnouncements(ctx context.Context, now time.Time, limit int) ([]*dispatch.SocialAnnouncement, error) {
	if m.ListDueAnnouncementsFunc != nil {
		return m.ListDueAnnouncementsFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *MockStore) ClaimAnnouncement(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ClaimAnnouncementFunc != nil {
		return m.ClaimAnnouncementFunc(ctx, id)
	}
	return true, nil
}

func (m *MockStore) FinalizeAnnouncement(ctx context.Context, id uuid.UUID, status dispatch.AnnouncementStatus, sentAt *time.Time, lastError string) error {
	if m.FinalizeAnnouncementFunc != nil {
		return m.FinalizeAnnouncementFunc(ctx, id, status, sentAt, lastError)
	}
	return nil
}

func (m *MockStore) ListAnnouncements(ctx context.Context, status dispatch.AnnouncementStatus, limit int) ([]*dispatch.SocialAnnouncement, error) {
	if m.ListAnnouncementsFunc != nil {
		return m.ListAnnouncementsFunc(ctx, status, limit)
	}
	return nil, nil
}

// MockWinners is a mock implementation of Winners
type MockWinners struct {
	GetWinnerFunc               func(ctx context.Context, id uuid.UUID) (*winner.WeeklyWinner, error)
	SetCrossPromotionActiveFunc func(ctx context.Context, weekStart time.Time, active bool) error
}

func (m *MockWinners) GetWinner(ctx context.Context, id uuid.UUID) (*winner.WeeklyWinner, error) {
	if m.GetWinnerFunc != nil {
		return m.GetWinnerFunc(ctx, id)
	}
	return nil, winnerstore.ErrWinnerNotFound
}

func (m *MockWinners) SetCrossPromotionActive(ctx context.Context, weekStart time.Time, active bool) error {
	if m.SetCrossPromotionActiveFunc != nil {
		return m.SetCrossPromotionActiveFunc(ctx, weekStart, active)
	}
	return nil
}

// MockEntrants is a mock implementation of Entrants
type MockEntrants struct {
	GetEntrantFunc func(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error)
}

func (m *MockEntrants) GetEntrant(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
	if m.GetEntrantFunc != nil {
		return m.GetEntrantFunc(ctx, id)
	}
	return nil, ledgerstore.ErrEntrantNotFound
}

// MockLeaderboard is a mock implementation of Leaderboard
type MockLeaderboard struct {
	ComputeFunc func(ctx context.Context, timeframe leaderboard.Timeframe, now time.Time, opts ...leaderboard.ComputeOption) ([]*leaderboard.Entry, error)
}

func (m *MockLeaderboard) Compute(ctx context.Context, timeframe leaderboard.Timeframe, now time.Time, opts ...leaderboard.ComputeOption) ([]*leaderboard.Entry, error) {
	if m.ComputeFunc != nil {
		return m.ComputeFunc(ctx, timeframe, now, opts...)
	}
	return nil, nil
}

// MockSender is a mock implementation of dispatch.Sender
type MockSender struct {
	SendFunc func(ctx context.Context, msg dispatch.Message) (*dispatch.Ack, error)
}

func (m *MockSender) Send(ctx context.Context, msg dispatch.Message) (*dispatch.Ack, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return &dispatch.Ack{MessageID: uuid.NewString(), SentAt: time.Now().UTC()}, nil
}

// MockPodcastScheduler is a mock implementation of dispatch.PodcastScheduler
type MockPodcastScheduler struct {
	BookFunc func(ctx context.Context, booking dispatch.Booking) error
}

func (m *MockPodcastScheduler) Book(ctx context.Context, booking dispatch.Booking) error {
	if m.BookFunc != nil {
		return m.BookFunc(ctx, booking)
	}
	return nil
}
