package storage

import (
	"context"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
)

// MockMakerStorage - exported test double for consumers in other packages.
type MockMakerStorage struct {
	CreateFunc     func(ctx context.Context, maker *models.Maker) error
	GetByLoginFunc func(ctx context.Context, login string) (*models.Maker, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.Maker, error)
}

func (m *MockMakerStorage) Create(ctx context.Context, maker *models.Maker) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, maker)
	}
	return nil
}

func (m *MockMakerStorage) GetByLogin(ctx context.Context, login string) (*models.Maker, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, ErrMakerNotFound
}

func (m *MockMakerStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Maker, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrMakerNotFound
}
