package services

import (
	"sort"

	"github.com/VaishnevSreejeev/canteen-ordering-app/models"
)

// Cart accumulates a student's selections for one session. It is a plain
// in-memory value owned by the caller (the web layer keeps one per
// session) and holds no authority over real stock: Add checks only the
// stock snapshot it is given, and the placement engine re-validates
// every line against the live store at commit time.
type Cart struct {
	lines map[int64]models.CartLine
}

func NewCart() *Cart {
	return &Cart{lines: make(map[int64]models.CartLine)}
}

// Add merges quantity into any existing line for the item. The item's
// DailyQuantity is treated as the last known stock: a merge that would
// exceed it is rejected with InsufficientStockError and the cart is left
// unchanged.
func (c *Cart) Add(item *models.MenuItem, quantity int) error {
	if quantity < 1 {
		return ErrQuantityNotPositive
	}
	if item == nil || !item.IsAvailable {
		name := ""
		if item != nil {
			name = item.Name
		}
		return &ItemRemovedError{Item: name}
	}
	merged := quantity
	if existing, ok := c.lines[item.ID]; ok {
		merged += existing.Quantity
	}
	if merged > item.DailyQuantity {
		return &InsufficientStockError{Item: item.Name}
	}
	c.lines[item.ID] = models.CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: merged,
	}
	return nil
}

// Remove deletes the line for itemID, no-op if absent.
func (c *Cart) Remove(itemID int64) {
	delete(c.lines, itemID)
}

func (c *Cart) Clear() {
	c.lines = make(map[int64]models.CartLine)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Snapshot returns the cart lines in item-id order. The slice is a copy,
// safe to hand to the placement engine while the session keeps mutating
// the cart.
func (c *Cart) Snapshot() []models.CartLine {
	lines := make([]models.CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines
}

// Total sums price*quantity over the cart for display. Advisory, like
// the prices it is computed from.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}
