package services

import (
	"errors"
	"fmt"
)

// Validation failures are rejected before any storage access.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrQuantityNotPositive = errors.New("quantity must be at least 1")
)

// InsufficientStockError means the conditional decrement for Item found
// less stock than requested; nothing was committed.
type InsufficientStockError struct {
	Item string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q", e.Item)
}

// ItemRemovedError means an item in the cart no longer exists in the
// menu at checkout time; nothing was committed.
type ItemRemovedError struct {
	Item string
}

func (e *ItemRemovedError) Error() string {
	return fmt.Sprintf("item %q is no longer on the menu", e.Item)
}
