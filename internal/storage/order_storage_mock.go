package storage

import (
	"context"
	"time"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
)

// MockOrderStorage - exported test double for consumers in other packages.
type MockOrderStorage struct {
	CreateFunc              func(ctx context.Context, order *models.Order) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByMakerIDFunc        func(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.Order, error)
	AppendEventFunc         func(ctx context.Context, event *models.HistoryEvent) error
	GetOverdueOngoingFunc   func(ctx context.Context, now time.Time) ([]*models.Order, error)
	GetRefundsInProcessFunc func(ctx context.Context) ([]*models.Order, error)
}

func (m *MockOrderStorage) Create(ctx context.Context, order *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderStorage) GetByMakerID(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.Order, error) {
	if m.GetByMakerIDFunc != nil {
		return m.GetByMakerIDFunc(ctx, makerID, orderType)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) AppendEvent(ctx context.Context, event *models.HistoryEvent) error {
	if m.AppendEventFunc != nil {
		return m.AppendEventFunc(ctx, event)
	}
	return nil
}

func (m *MockOrderStorage) GetOverdueOngoing(ctx context.Context, now time.Time) ([]*models.Order, error) {
	if m.GetOverdueOngoingFunc != nil {
		return m.GetOverdueOngoingFunc(ctx, now)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) GetRefundsInProcess(ctx context.Context) ([]*models.Order, error) {
	if m.GetRefundsInProcessFunc != nil {
		return m.GetRefundsInProcessFunc(ctx)
	}
	return []*models.Order{}, nil
}
