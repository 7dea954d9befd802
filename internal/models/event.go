package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEvent is one entry of an order's append-only audit trail. Events
// record only which state was entered and when; the meaning of a transition
// is derived later from neighbouring events. Reason is free text supplied on
// maker-initiated cancellations, empty when none was given.
type HistoryEvent struct {
	ID        uuid.UUID   `db:"id"`
	OrderID   uuid.UUID   `db:"order_id"`
	Status    OrderStatus `db:"status"`
	EventTime time.Time   `db:"event_time"`
	Reason    string      `db:"reason"`
}
