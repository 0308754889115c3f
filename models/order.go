package models

import "time"

// Order is a row from the orders table. TotalPrice is computed by the
// placement engine from authoritative menu prices, never client input.
type Order struct {
	ID         int64       `json:"id"`
	StudentID  string      `json:"student_id"`
	TotalPrice int64       `json:"total_price"`
	Status     string      `json:"status"`
	IsPaid     bool        `json:"is_paid"`
	OrderDate  time.Time   `json:"order_date"`
	Items      []OrderItem `json:"items"`
}

// OrderItem snapshots name and price at order time so later menu edits
// or deletions cannot alter order history.
type OrderItem struct {
	ID           int64  `json:"id"`
	OrderID      int64  `json:"order_id"`
	ItemName     string `json:"item_name"`
	Quantity     int    `json:"quantity"`
	PriceAtOrder int64  `json:"price_at_order"`
}

// CartLine is one (item, quantity) pair handed from a cart snapshot to
// the placement engine. Name and Price are display copies from add-time;
// the engine re-reads the live row at checkout.
type CartLine struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type DailyStats struct {
	OrdersCount int   `json:"orders_count"`
	Revenue     int64 `json:"revenue"`
	PaidCount   int   `json:"paid_count"`
}
