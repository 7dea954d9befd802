package models

// EntryEmphasis marks a timeline entry as a resolved past transition or as
// the order's still-open state. At most one entry per timeline is current.
type EntryEmphasis string

const (
	EmphasisCompleted EntryEmphasis = "completed"
	EmphasisCurrent   EntryEmphasis = "current"
)

// TimelineEntry is one narrated line of the order lifecycle, display-ready.
// Derived on every read, never persisted.
type TimelineEntry struct {
	Time           string        `json:"time"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Emphasis       EntryEmphasis `json:"status"`
	HighlightColor string        `json:"circleColor,omitempty"`
}

// StatusInfo is the display metadata for a status: pt-BR label, emphasis
// color and icon kind for the dashboard.
type StatusInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// StatusOption is one value/label pair for the dashboard status filter.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SettlementResponse is the reconciled fee breakdown of an order. The net
// payout is always the upstream subtotal; the intermediary fee is either the
// explicit one or derived from the other three values.
type SettlementResponse struct {
	TotalValue      float64 `json:"totalValue"`
	PaymentFee      float64 `json:"paymentFee"`
	IntermediaryFee float64 `json:"intermediaryFee"`
	Subtotal        float64 `json:"subtotal"`
}

// OrderPreviewResponse is one row of the maker's order list.
type OrderPreviewResponse struct {
	ID           string  `json:"id"`
	CreationTime string  `json:"creationTime"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	TotalValue   float64 `json:"totalValue"`
}

// OrderItemResponse is one order line in the details view.
type OrderItemResponse struct {
	Description             string  `json:"description"`
	Quantity                int     `json:"quantity"`
	Price                   float64 `json:"price"`
	TotalValue              float64 `json:"totalValue"`
	EstimatedProductionTime int     `json:"estimatedProductionTime"`
	ProductionTimeLabel     string  `json:"productionTimeLabel"`
}

// ClientResponse is the client block of the details view.
type ClientResponse struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// OrderDetailsResponse is the full maker-facing order view: stored fields
// plus everything derived from them (timeline, settlement, deadline notice).
type OrderDetailsResponse struct {
	ID             string              `json:"id"`
	Client         ClientResponse      `json:"client"`
	Type           string              `json:"type"`
	Status         string              `json:"status"`
	StatusInfo     StatusInfo          `json:"statusInfo"`
	CreationTime   string              `json:"creationTime"`
	Deadline       string              `json:"deadline"`
	DeadlineNotice string              `json:"deadlineNotice"`
	Items          []OrderItemResponse `json:"items"`
	Timeline       []TimelineEntry     `json:"timeline"`
	Settlement     SettlementResponse  `json:"settlement"`
}

// UpdateStatusRequest - PATCH /api/order payload.
type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
