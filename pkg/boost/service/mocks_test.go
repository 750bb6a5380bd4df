package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/racetoliberty/boost-engine/pkg/boost"
	"github.com/racetoliberty/boost-engine/pkg/entrant"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	GetEntrantFunc           func(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error)
	CreateEntrantFunc        func(ctx context.Context, e *entrant.TokenEntrant) error
	UpdateEntrantStatusFunc  func(ctx context.Context, id uuid.UUID, status entrant.Status) error
	InsertBoostFunc          func(ctx context.Context, b *boost.Boost) (bool, error)
	ActiveBoostsForTokenFunc func(ctx context.Context, tokenID uuid.UUID, now time.Time) ([]*boost.Boost, error)
}

func (m *MockStore) GetEntrant(ctx context.Context, id uuid.UUID) (*entrant.TokenEntrant, error) {
	if m.GetEntrantFunc != nil {
		return m.GetEntrantFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) CreateEntrant(ctx context.Context, e *entrant.TokenEntrant) error {
	if m.CreateEntrantFunc != nil {
		return m.CreateEntrantFunc(ctx, e)
	}
	return nil
}

func (m *MockStore) UpdateEntrantStatus(ctx context.Context, id uuid.UUID, status entrant.Status) error {
	if m.UpdateEntrantStatusFunc != nil {
		return m.UpdateEntrantStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockStore) InsertBoost(ctx context.Context, b *boost.Boost) (bool, error) {
	if m.InsertBoostFunc != nil {
		return m.InsertBoostFunc(ctx, b)
	}
	return true, nil
}

func (m *MockStore) ActiveBoostsForToken(ctx context.Context, tokenID uuid.UUID, now time.Time) ([]*boost.Boost, error) {
	if m.ActiveBoostsForTokenFunc != nil {
		return m.ActiveBoostsForTokenFunc(ctx, tokenID, now)
	}
	return nil, nil
}
