package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderStorage defines order persistence. The event log is append-only:
// existing events are never updated or removed.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByMakerID(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.Order, error)
	AppendEvent(ctx context.Context, event *models.HistoryEvent) error
	GetOverdueOngoing(ctx context.Context, now time.Time) ([]*models.Order, error)
	GetRefundsInProcess(ctx context.Context) ([]*models.Order, error)
}

// PostgresOrderStorage implements OrderStorage for PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage creates a new PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// Create inserts an order with its items and the initial history event in a
// single transaction.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	feeVal := sql.NullString{}
	if order.IntermediaryFee != nil {
		feeVal = sql.NullString{Valid: true, String: order.IntermediaryFee.String()}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, maker_id, client_name, client_city, client_state, type, status,
			total_value, payment_fee, intermediary_fee, subtotal, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`,
		order.ID,
		order.MakerID,
		order.ClientName,
		order.ClientCity,
		order.ClientState,
		order.Type,
		order.Status,
		order.TotalValue,
		order.PaymentFee,
		feeVal,
		order.Subtotal,
		order.Deadline,
	).Scan(&order.CreationTime, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, description, quantity, unit_price, total_value, production_time_days)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, item.OrderID, item.Description, item.Quantity, item.UnitPrice, item.TotalValue, item.ProductionTimeDays)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	for i := range order.History {
		e := &order.History[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.OrderID = order.ID
		if err := insertEvent(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID returns an order with its full event history and items.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := scanOrder(s.pool.QueryRow(ctx, selectOrderQuery+` WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	if order.History, err = s.getEvents(ctx, id); err != nil {
		return nil, err
	}
	if order.Items, err = s.getItems(ctx, id); err != nil {
		return nil, err
	}

	return order, nil
}

// GetByMakerID returns a maker's orders newest first, optionally filtered by
// type. History and items are not loaded for list rows.
func (s *PostgresOrderStorage) GetByMakerID(ctx context.Context, makerID uuid.UUID, orderType models.OrderType) ([]*models.Order, error) {
	query := selectOrderQuery + ` WHERE maker_id = $1`
	args := []any{makerID}
	if orderType != "" {
		query += ` AND type = $2`
		args = append(args, orderType)
	}
	query += ` ORDER BY created_at DESC`

	return s.queryOrders(ctx, query, args...)
}

// AppendEvent appends a history event and moves the order's live status to
// the event's status, transactionally.
func (s *PostgresOrderStorage) AppendEvent(ctx context.Context, event *models.HistoryEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.EventTime.IsZero() {
		event.EventTime = time.Now()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, event.Status, event.OrderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetOverdueOngoing returns orders still in production whose deadline has
// passed, oldest deadline first.
func (s *PostgresOrderStorage) GetOverdueOngoing(ctx context.Context, now time.Time) ([]*models.Order, error) {
	query := selectOrderQuery + `
		WHERE status = $1 AND deadline < $2
		ORDER BY deadline ASC`

	return s.queryOrders(ctx, query, models.StatusOnGoing, now)
}

// GetRefundsInProcess returns orders waiting on the payment gateway to
// finish a full or partial refund.
func (s *PostgresOrderStorage) GetRefundsInProcess(ctx context.Context) ([]*models.Order, error) {
	query := selectOrderQuery + `
		WHERE status IN ($1, $2)
		ORDER BY updated_at ASC`

	return s.queryOrders(ctx, query, models.StatusRefundInProcess, models.StatusPartialRefundInProcess)
}

const selectOrderQuery = `
	SELECT id, maker_id, client_name, client_city, client_state, type, status,
		total_value, payment_fee, intermediary_fee, subtotal, deadline, created_at, updated_at
	FROM orders`

func (s *PostgresOrderStorage) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

func (s *PostgresOrderStorage) getEvents(ctx context.Context, orderID uuid.UUID) ([]models.HistoryEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, status, event_time, reason
		FROM order_events
		WHERE order_id = $1
		ORDER BY event_time ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order events: %w", err)
	}
	defer rows.Close()

	var events []models.HistoryEvent
	for rows.Next() {
		var (
			e      models.HistoryEvent
			reason sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.EventTime, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan order event: %w", err)
		}
		e.Reason = reason.String
		events = append(events, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return events, nil
}

func (s *PostgresOrderStorage) getItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, description, quantity, unit_price, total_value, production_time_days
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.TotalValue, &item.ProductionTimeDays)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return items, nil
}

func insertEvent(ctx context.Context, tx pgx.Tx, event *models.HistoryEvent) error {
	reasonVal := sql.NullString{}
	if event.Reason != "" {
		reasonVal = sql.NullString{Valid: true, String: event.Reason}
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO order_events (id, order_id, status, event_time, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.OrderID, event.Status, event.EventTime, reasonVal)
	if err != nil {
		return fmt.Errorf("failed to insert order event: %w", err)
	}
	return nil
}

// scanOrder reads one order row.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		order  models.Order
		feeStr sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.MakerID,
		&order.ClientName,
		&order.ClientCity,
		&order.ClientState,
		&order.Type,
		&order.Status,
		&order.TotalValue,
		&order.PaymentFee,
		&feeStr,
		&order.Subtotal,
		&order.Deadline,
		&order.CreationTime,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if feeStr.Valid {
		if dec, derr := decimal.NewFromString(feeStr.String); derr == nil {
			order.IntermediaryFee = &dec
		}
	}

	return &order, nil
}
