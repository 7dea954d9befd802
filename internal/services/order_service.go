package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/feitoo/makerboard/internal/lifecycle"
	"github.com/feitoo/makerboard/internal/metrics"
	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/settlement"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderAccessDenied = errors.New("order belongs to another maker")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// settlementEpsilon is the rounding tolerance before an explicit
// intermediary fee counts as diverging from the derived one.
var settlementEpsilon = decimal.RequireFromString("0.01")

// makerTransitions lists the status changes a maker may initiate. Refund
// and dispute statuses are owned by the platform and the payment gateway,
// never set through the maker API except for cancellations.
var makerTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusAwaitingMaker: {models.StatusOnGoing, models.StatusRefundInProcess},
	models.StatusOnGoing:       {models.StatusReady, models.StatusNewDeadline, models.StatusRefundInProcess},
	models.StatusDelayed:       {models.StatusReady, models.StatusNewDeadline, models.StatusRefundInProcess},
	models.StatusNewDeadline:   {models.StatusReady, models.StatusRefundInProcess},
	models.StatusReady:         {models.StatusAwaitingConfirmation},
}

// knownStatuses is the closed set accepted over the API.
var knownStatuses = map[models.OrderStatus]struct{}{
	models.StatusAwaitingPayment:        {},
	models.StatusAwaitingMaker:          {},
	models.StatusOnGoing:                {},
	models.StatusDelayed:                {},
	models.StatusNewDeadline:            {},
	models.StatusReady:                  {},
	models.StatusAwaitingConfirmation:   {},
	models.StatusRefundInAnalysis:       {},
	models.StatusRefundInProcess:        {},
	models.StatusPartialRefundInProcess: {},
	models.StatusPartialRefund:          {},
	models.StatusRefunded:               {},
	models.StatusDone:                   {},
}

// OrderService defines the maker-facing order operations.
type OrderService interface {
	GetMakerOrders(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.OrderPreviewResponse, error)
	GetOrderDetails(ctx context.Context, makerID, orderID uuid.UUID) (*models.OrderDetailsResponse, error)
	UpdateStatus(ctx context.Context, makerID, orderID uuid.UUID, status models.OrderStatus, reason string) error
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	orderStorage OrderStorage
	cache        DetailsCache
	logger       *log.Logger
}

// NewOrderService creates a new order service. cache may be nil when no
// redis is configured.
func NewOrderService(orderStorage OrderStorage, cache DetailsCache, logger *log.Logger) *OrderServiceImpl {
	if logger == nil {
		logger = log.Default()
	}
	return &OrderServiceImpl{
		orderStorage: orderStorage,
		cache:        cache,
		logger:       logger,
	}
}

// GetMakerOrders returns the maker's order list, optionally filtered by type.
func (s *OrderServiceImpl) GetMakerOrders(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.OrderPreviewResponse, error) {
	orders, err := s.orderStorage.GetByMakerID(ctx, makerID, orderType)
	if err != nil {
		return nil, fmt.Errorf("get maker orders: %w", err)
	}

	resp := make([]*models.OrderPreviewResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, &models.OrderPreviewResponse{
			ID:           o.ID.String(),
			CreationTime: o.CreationTime.Format(time.RFC3339),
			Type:         string(o.Type),
			Status:       string(o.Status),
			TotalValue:   toFloat(o.TotalValue),
		})
	}

	return resp, nil
}

// GetOrderDetails assembles the full maker-facing order view: stored fields
// plus the derived timeline, settlement breakdown and deadline sentence.
// Derivations are recomputed from the stored order on every call; the cache
// only shortcuts the assembled response.
func (s *OrderServiceImpl) GetOrderDetails(ctx context.Context, makerID, orderID uuid.UUID) (*models.OrderDetailsResponse, error) {
	if s.cache != nil {
		if details, ok := s.cache.GetDetails(ctx, makerID, orderID); ok {
			metrics.OrderDetailsCacheHitsTotal.Inc()
			return details, nil
		}
	}

	order, err := s.orderStorage.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, storage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.MakerID != makerID {
		return nil, ErrOrderAccessDenied
	}

	breakdown := settlement.Reconcile(order.TotalValue, order.PaymentFee, order.Subtotal, order.IntermediaryFee)
	if !breakdown.Consistent(settlementEpsilon) {
		// The explicit fee wins even when the books don't close; surface
		// the divergence instead of correcting upstream data.
		metrics.SettlementDivergencesTotal.Inc()
		s.logger.Printf("WARNING: settlement divergence for order %s: gross %s != fee %s + commission %s + net %s",
			order.ID, breakdown.GrossTotal, breakdown.ProcessingFee, breakdown.PlatformCommission, breakdown.NetPayout)
	}

	items := make([]models.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderItemResponse{
			Description:             item.Description,
			Quantity:                item.Quantity,
			Price:                   toFloat(item.UnitPrice),
			TotalValue:              toFloat(item.TotalValue),
			EstimatedProductionTime: item.ProductionTimeDays,
			ProductionTimeLabel:     lifecycle.FormatProductionTime(item.ProductionTimeDays),
		})
	}

	details := &models.OrderDetailsResponse{
		ID: order.ID.String(),
		Client: models.ClientResponse{
			Name:  order.ClientName,
			City:  order.ClientCity,
			State: order.ClientState,
		},
		Type:           string(order.Type),
		Status:         string(order.Status),
		StatusInfo:     lifecycle.Describe(order.Status),
		CreationTime:   order.CreationTime.Format(time.RFC3339),
		Deadline:       order.Deadline.Format(time.RFC3339),
		DeadlineNotice: lifecycle.NarrateDeadline(order.Deadline, order.Status),
		Items:          items,
		Timeline:       lifecycle.Reconstruct(order.History, order.Status),
		Settlement: models.SettlementResponse{
			TotalValue:      toFloat(breakdown.GrossTotal),
			PaymentFee:      toFloat(breakdown.ProcessingFee),
			IntermediaryFee: toFloat(breakdown.PlatformCommission),
			Subtotal:        toFloat(breakdown.NetPayout),
		},
	}

	if s.cache != nil {
		s.cache.SetDetails(ctx, makerID, orderID, details)
	}

	return details, nil
}

// UpdateStatus applies a maker-initiated status change by appending to the
// order's event log. The log itself is never rewritten.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, makerID, orderID uuid.UUID, status models.OrderStatus, reason string) error {
	if _, ok := knownStatuses[status]; !ok {
		return ErrUnknownStatus
	}

	order, err := s.orderStorage.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return storage.ErrOrderNotFound
		}
		return fmt.Errorf("get order: %w", err)
	}
	if order.MakerID != makerID {
		return ErrOrderAccessDenied
	}

	if !transitionAllowed(order.Status, status) {
		return ErrInvalidTransition
	}

	event := &models.HistoryEvent{
		OrderID:   order.ID,
		Status:    status,
		EventTime: time.Now(),
		Reason:    reason,
	}
	if err := s.orderStorage.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, makerID, orderID)
	}

	return nil
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range makerTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toFloat(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
