package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
	"github.com/VaishnevSreejeev/canteen-ordering-app/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "services").Logger()

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidStatusTransition reports whether an admin may move an order from
// one status to another. Completed and cancelled are terminal.
func ValidStatusTransition(from, to string) bool {
	switch {
	case from == OrderStatusPending && to == OrderStatusCompleted:
		return true
	case from == OrderStatusPending && to == OrderStatusCancelled:
		return true
	}
	return false
}

// PlaceOrder records an order for studentID from a cart snapshot as one
// transaction: authoritative prices are re-read, the order row inserted,
// and every line's stock reserved with a conditional decrement. Any
// failure rolls the whole thing back, so an order row never exists
// without its decrements and stock is never consumed without an order.
//
// The caller clears its cart only after a nil error; on any error the
// cart must stay as it was so the student can retry.
func PlaceOrder(ctx context.Context, studentID string, lines []models.CartLine) (int64, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return 0, ErrQuantityNotPositive
		}
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Re-read name and price per line from the live menu. The cart's
	// copies are display values only and may be stale.
	type pricedLine struct {
		models.CartLine
		liveName  string
		livePrice int64
	}
	priced := make([]pricedLine, 0, len(lines))
	var total int64
	for _, l := range lines {
		var name string
		var price int64
		err := tx.QueryRow(ctx,
			`SELECT name, price FROM menu_items WHERE id = $1`,
			l.ItemID,
		).Scan(&name, &price)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &ItemRemovedError{Item: l.Name}
		}
		if err != nil {
			return 0, fmt.Errorf("read item %d: %w", l.ItemID, err)
		}
		priced = append(priced, pricedLine{CartLine: l, liveName: name, livePrice: price})
		total += price * int64(l.Quantity)
	}

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (student_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		studentID, total, OrderStatusPending,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, l := range priced {
		ok, err := TryReserve(ctx, tx, l.ItemID, l.Quantity)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, &InsufficientStockError{Item: l.liveName}
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, item_name, quantity, price_at_order)
			VALUES ($1, $2, $3, $4)`,
			orderID, l.liveName, l.Quantity, l.livePrice,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order item %q: %w", l.liveName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	logger.Info().Int64("order_id", orderID).Str("student_id", studentID).
		Int64("total", total).Int("lines", len(priced)).Msg("order placed")
	return orderID, nil
}

// UpdateOrderStatus applies an admin status transition. Invalid
// transitions are rejected without touching the row. Cancelling does not
// restock the reserved quantities.
func UpdateOrderStatus(ctx context.Context, orderID int64, newStatus string) error {
	o, err := GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !ValidStatusTransition(o.Status, newStatus) {
		return fmt.Errorf("cannot move order %d from %s to %s", orderID, o.Status, newStatus)
	}
	ct, err := db.Pool.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		newStatus, orderID, o.Status,
	)
	if err != nil {
		return fmt.Errorf("update order %d status: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		// Another admin moved the order first.
		return fmt.Errorf("order %d is no longer %s", orderID, o.Status)
	}
	logger.Info().Int64("order_id", orderID).Str("status", newStatus).Msg("order status updated")
	return nil
}

// MarkOrderPaid flips the payment flag, an admin-only bookkeeping action.
func MarkOrderPaid(ctx context.Context, orderID int64, paid bool) error {
	ct, err := db.Pool.Exec(ctx,
		`UPDATE orders SET is_paid = $1 WHERE id = $2`,
		paid, orderID,
	)
	if err != nil {
		return fmt.Errorf("mark order %d paid: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

func GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	var o models.Order
	err := db.Pool.QueryRow(ctx, `
		SELECT id, student_id, total_price, status, is_paid, order_date
		FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.StudentID, &o.TotalPrice, &o.Status, &o.IsPaid, &o.OrderDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %d not found", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	items, err := listOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// ListOrdersByStudent returns the student's orders, newest first, with
// line items attached.
func ListOrdersByStudent(ctx context.Context, studentID string) ([]models.Order, error) {
	return listOrders(ctx, `
		SELECT id, student_id, total_price, status, is_paid, order_date
		FROM orders WHERE student_id = $1
		ORDER BY order_date DESC`,
		studentID,
	)
}

// ListAllOrders returns every order, newest first, for the staff
// dashboard.
func ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return listOrders(ctx, `
		SELECT id, student_id, total_price, status, is_paid, order_date
		FROM orders
		ORDER BY order_date DESC`,
	)
}

func listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.StudentID, &o.TotalPrice, &o.Status, &o.IsPaid, &o.OrderDate); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func listOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, order_id, item_name, quantity, price_at_order
		FROM order_items WHERE order_id = $1
		ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemName, &it.Quantity, &it.PriceAtOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetDailyStats aggregates orders for one date (YYYY-MM-DD).
func GetDailyStats(ctx context.Context, date string) (*models.DailyStats, error) {
	var s models.DailyStats
	err := db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*)::int,
			COALESCE(SUM(total_price), 0)::bigint,
			COUNT(*) FILTER (WHERE is_paid)::int
		FROM orders
		WHERE order_date::date = $1::date`,
		date,
	).Scan(&s.OrdersCount, &s.Revenue, &s.PaidCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
