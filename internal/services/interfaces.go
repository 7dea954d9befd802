package services

import (
	"context"
	"time"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
)

// OrderStorage defines the order persistence operations services need.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByMakerID(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.Order, error)
	AppendEvent(ctx context.Context, event *models.HistoryEvent) error
	GetOverdueOngoing(ctx context.Context, now time.Time) ([]*models.Order, error)
	GetRefundsInProcess(ctx context.Context) ([]*models.Order, error)
}

// MakerStorage defines the maker persistence operations services need.
type MakerStorage interface {
	Create(ctx context.Context, maker *models.Maker) error
	GetByLogin(ctx context.Context, login string) (*models.Maker, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Maker, error)
}

// DetailsCache is a best-effort read cache for assembled order details.
// A miss or a cache error always falls through to storage.
type DetailsCache interface {
	GetDetails(ctx context.Context, makerID, orderID uuid.UUID) (*models.OrderDetailsResponse, bool)
	SetDetails(ctx context.Context, makerID, orderID uuid.UUID, details *models.OrderDetailsResponse)
	Invalidate(ctx context.Context, makerID, orderID uuid.UUID)
}
