package services

import (
	"context"
	"testing"
	"time"

	"github.com/feitoo/makerboard/internal/gateway"
	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/google/uuid"
)

type mockGateway struct {
	GetRefundStatusFunc func(ctx context.Context, orderID string) (*gateway.RefundStatusResponse, error)
}

func (m *mockGateway) GetRefundStatus(ctx context.Context, orderID string) (*gateway.RefundStatusResponse, error) {
	return m.GetRefundStatusFunc(ctx, orderID)
}

func TestStatusWorker_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	overdue := storedOrder(uuid.New())

	var appended []*models.HistoryEvent
	store := &storage.MockOrderStorage{
		GetOverdueOngoingFunc: func(ctx context.Context, now time.Time) ([]*models.Order, error) {
			return []*models.Order{overdue}, nil
		},
		AppendEventFunc: func(ctx context.Context, event *models.HistoryEvent) error {
			appended = append(appended, event)
			return nil
		},
	}

	w := NewStatusWorker(store, nil, time.Minute, nil)
	if err := w.markOverdue(ctx); err != nil {
		t.Fatalf("markOverdue() error = %v", err)
	}

	if len(appended) != 1 {
		t.Fatalf("appended %d events, want 1", len(appended))
	}
	if appended[0].Status != models.StatusDelayed {
		t.Errorf("event status = %s, want delayed", appended[0].Status)
	}
	if appended[0].OrderID != overdue.ID {
		t.Errorf("event order id = %s", appended[0].OrderID)
	}
}

func TestStatusWorker_PollRefund(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		current    models.OrderStatus
		gwStatus   string
		gwErr      error
		wantStatus models.OrderStatus
		wantEvent  bool
	}{
		{
			name:       "full refund settles as refunded",
			current:    models.StatusRefundInProcess,
			gwStatus:   gateway.RefundStatusCompleted,
			wantStatus: models.StatusRefunded,
			wantEvent:  true,
		},
		{
			name:       "partial refund settles as partial_refund",
			current:    models.StatusPartialRefundInProcess,
			gwStatus:   gateway.RefundStatusCompleted,
			wantStatus: models.StatusPartialRefund,
			wantEvent:  true,
		},
		{
			name:     "still processing appends nothing",
			current:  models.StatusRefundInProcess,
			gwStatus: gateway.RefundStatusProcessing,
		},
		{
			name:     "failed refund appends nothing",
			current:  models.StatusRefundInProcess,
			gwStatus: gateway.RefundStatusFailed,
		},
		{
			name:    "refund unknown to gateway is retried later",
			current: models.StatusRefundInProcess,
			gwErr:   gateway.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := storedOrder(uuid.New())
			order.Status = tt.current

			var appended *models.HistoryEvent
			store := &storage.MockOrderStorage{
				AppendEventFunc: func(ctx context.Context, event *models.HistoryEvent) error {
					appended = event
					return nil
				},
			}
			gw := &mockGateway{
				GetRefundStatusFunc: func(ctx context.Context, orderID string) (*gateway.RefundStatusResponse, error) {
					if tt.gwErr != nil {
						return nil, tt.gwErr
					}
					return &gateway.RefundStatusResponse{OrderID: orderID, Status: tt.gwStatus}, nil
				},
			}

			w := NewStatusWorker(store, gw, time.Minute, nil)
			if err := w.pollRefund(ctx, order); err != nil {
				t.Fatalf("pollRefund() error = %v", err)
			}

			if tt.wantEvent {
				if appended == nil {
					t.Fatal("expected an appended event")
				}
				if appended.Status != tt.wantStatus {
					t.Errorf("event status = %s, want %s", appended.Status, tt.wantStatus)
				}
			} else if appended != nil {
				t.Errorf("unexpected event appended: %+v", appended)
			}
		})
	}
}
