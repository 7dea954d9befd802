package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of lifecycle states the backend emits for an
// order. The same status may legitimately recur in one order's history
// (e.g. refund_in_process reached via different prior paths).
type OrderStatus string

const (
	StatusAwaitingPayment        OrderStatus = "awaiting_payment"
	StatusAwaitingMaker          OrderStatus = "awaiting_maker"
	StatusOnGoing                OrderStatus = "on_going"
	StatusDelayed                OrderStatus = "delayed"
	StatusNewDeadline            OrderStatus = "new_deadline"
	StatusReady                  OrderStatus = "ready"
	StatusAwaitingConfirmation   OrderStatus = "awaiting_confirmation"
	StatusRefundInAnalysis       OrderStatus = "refund_in_analysis"
	StatusRefundInProcess        OrderStatus = "refund_in_process"
	StatusPartialRefundInProcess OrderStatus = "partial_refund_in_process"
	StatusPartialRefund          OrderStatus = "partial_refund"
	StatusRefunded               OrderStatus = "refunded"
	StatusDone                   OrderStatus = "done"
)

// OrderType distinguishes catalog purchases from custom commissions.
type OrderType string

const (
	OrderTypeProduct OrderType = "product"
	OrderTypeCustom  OrderType = "custom"
)

// Order is one marketplace order as stored, with its full event history.
type Order struct {
	ID              uuid.UUID        `db:"id"`
	MakerID         uuid.UUID        `db:"maker_id"`
	ClientName      string           `db:"client_name"`
	ClientCity      string           `db:"client_city"`
	ClientState     string           `db:"client_state"`
	Type            OrderType        `db:"type"`
	Status          OrderStatus      `db:"status"`
	TotalValue      decimal.Decimal  `db:"total_value"`
	PaymentFee      decimal.Decimal  `db:"payment_fee"`
	IntermediaryFee *decimal.Decimal `db:"intermediary_fee"`
	Subtotal        decimal.Decimal  `db:"subtotal"`
	Deadline        time.Time        `db:"deadline"`
	CreationTime    time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`
	History         []HistoryEvent
	Items           []OrderItem
}

// OrderItem is one product or quotation line inside an order.
type OrderItem struct {
	ID                 uuid.UUID       `db:"id"`
	OrderID            uuid.UUID       `db:"order_id"`
	Description        string          `db:"description"`
	Quantity           int             `db:"quantity"`
	UnitPrice          decimal.Decimal `db:"unit_price"`
	TotalValue         decimal.Decimal `db:"total_value"`
	ProductionTimeDays int             `db:"production_time_days"`
}
