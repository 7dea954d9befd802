package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/feitoo/makerboard/internal/gateway"
	"github.com/feitoo/makerboard/internal/metrics"
	"github.com/feitoo/makerboard/internal/models"
)

// StatusWorker runs the backend-owned status changes the maker API never
// touches: marking in-production orders delayed once their deadline passes,
// and closing refunds once the payment gateway reports them settled. Every
// change goes through the same append-only event log as the API.
type StatusWorker struct {
	orderStorage OrderStorage
	gateway      gateway.Client
	interval     time.Duration
	logger       *log.Logger
}

// NewStatusWorker creates the worker. gw may be nil; refund polling is then
// skipped and only overdue marking runs.
func NewStatusWorker(orderStorage OrderStorage, gw gateway.Client, interval time.Duration, logger *log.Logger) *StatusWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &StatusWorker{
		orderStorage: orderStorage,
		gateway:      gw,
		interval:     interval,
		logger:       logger,
	}
}

// Start runs the worker in its own goroutine until ctx is done.
func (w *StatusWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		w.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()
}

func (w *StatusWorker) runOnce(ctx context.Context) {
	if err := w.markOverdue(ctx); err != nil {
		w.logger.Printf("status worker: mark overdue error: %v", err)
	}
	if w.gateway != nil {
		if err := w.pollRefunds(ctx); err != nil {
			w.logger.Printf("status worker: poll refunds error: %v", err)
		}
	}
}

// markOverdue appends a delayed event to every on_going order whose
// deadline has passed.
func (w *StatusWorker) markOverdue(ctx context.Context) error {
	orders, err := w.orderStorage.GetOverdueOngoing(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, o := range orders {
		event := &models.HistoryEvent{
			OrderID:   o.ID,
			Status:    models.StatusDelayed,
			EventTime: time.Now(),
		}
		if err := w.orderStorage.AppendEvent(ctx, event); err != nil {
			w.logger.Printf("status worker: mark order %s delayed: %v", o.ID, err)
			continue
		}
		metrics.OverdueOrdersMarkedTotal.Inc()
		w.logger.Printf("order %s marked delayed (deadline was %s)", o.ID, o.Deadline.Format(time.RFC3339))
	}
	return nil
}

// pollRefunds asks the gateway about every order waiting on a refund and
// finalizes the ones it reports settled.
func (w *StatusWorker) pollRefunds(ctx context.Context) error {
	orders, err := w.orderStorage.GetRefundsInProcess(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		if err := w.pollRefund(ctx, o); err != nil {
			w.logger.Printf("status worker: refund poll for order %s: %v", o.ID, err)
		}
	}
	return nil
}

func (w *StatusWorker) pollRefund(ctx context.Context, order *models.Order) error {
	resp, err := w.gateway.GetRefundStatus(ctx, order.ID.String())
	if err != nil {
		var rl gateway.RateLimitError
		if errors.As(err, &rl) {
			w.logger.Printf("gateway rate limited, retrying after %s", rl.RetryAfter)
			time.Sleep(rl.RetryAfter)
			return nil
		}
		if errors.Is(err, gateway.ErrNotFound) {
			// Gateway hasn't seen the refund yet; try again next tick.
			return nil
		}
		return err
	}

	switch resp.Status {
	case gateway.RefundStatusProcessing:
		return nil
	case gateway.RefundStatusCompleted:
		final := models.StatusRefunded
		if order.Status == models.StatusPartialRefundInProcess {
			final = models.StatusPartialRefund
		}
		event := &models.HistoryEvent{
			OrderID:   order.ID,
			Status:    final,
			EventTime: time.Now(),
		}
		if err := w.orderStorage.AppendEvent(ctx, event); err != nil {
			return err
		}
		w.logger.Printf("order %s refund settled as %s", order.ID, final)
		return nil
	case gateway.RefundStatusFailed:
		w.logger.Printf("order %s refund reported failed by gateway", order.ID)
		return nil
	default:
		w.logger.Printf("unknown gateway refund status %q for order %s", resp.Status, order.ID)
		return nil
	}
}
