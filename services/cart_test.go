package services

import (
	"errors"
	"testing"

	"github.com/VaishnevSreejeev/canteen-ordering-app/models"
)

func chai(stock int) *models.MenuItem {
	return &models.MenuItem{ID: 1, Name: "Chai", Category: models.CategoryDrink, Price: 1500, DailyQuantity: stock, IsAvailable: true}
}

func meals(stock int) *models.MenuItem {
	return &models.MenuItem{ID: 2, Name: "Meals", Category: models.CategoryFood, Price: 6000, DailyQuantity: stock, IsAvailable: true}
}

func TestCartAddMergesQuantities(t *testing.T) {
	c := NewCart()
	if err := c.Add(chai(10), 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := c.Add(chai(10), 3); err != nil {
		t.Fatalf("second add: %v", err)
	}
	lines := c.Snapshot()
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1 merged line", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", lines[0].Quantity)
	}
}

func TestCartAddRejectsOverStock(t *testing.T) {
	c := NewCart()
	if err := c.Add(chai(5), 3); err != nil {
		t.Fatalf("add within stock: %v", err)
	}
	err := c.Add(chai(5), 3)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if insufficient.Item != "Chai" {
		t.Errorf("offending item = %q, want Chai", insufficient.Item)
	}
	// Rejected add must not mutate the cart.
	if got := c.Snapshot()[0].Quantity; got != 3 {
		t.Errorf("quantity after rejected add = %d, want 3", got)
	}
}

func TestCartAddValidation(t *testing.T) {
	c := NewCart()
	if err := c.Add(chai(5), 0); !errors.Is(err, ErrQuantityNotPositive) {
		t.Errorf("Add qty 0: err = %v, want ErrQuantityNotPositive", err)
	}
	if err := c.Add(chai(5), -1); !errors.Is(err, ErrQuantityNotPositive) {
		t.Errorf("Add qty -1: err = %v, want ErrQuantityNotPositive", err)
	}
	unavailable := chai(5)
	unavailable.IsAvailable = false
	var removed *ItemRemovedError
	if err := c.Add(unavailable, 1); !errors.As(err, &removed) {
		t.Errorf("Add unavailable: err = %v, want ItemRemovedError", err)
	}
	if err := c.Add(nil, 1); !errors.As(err, &removed) {
		t.Errorf("Add nil item: err = %v, want ItemRemovedError", err)
	}
	if c.Len() != 0 {
		t.Errorf("cart len after rejected adds = %d, want 0", c.Len())
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	c := NewCart()
	_ = c.Add(chai(10), 1)
	_ = c.Add(meals(10), 2)

	c.Remove(chai(10).ID)
	if c.Len() != 1 {
		t.Errorf("len after remove = %d, want 1", c.Len())
	}
	c.Remove(999) // absent id is a no-op
	if c.Len() != 1 {
		t.Errorf("len after removing absent id = %d, want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", c.Len())
	}
	if len(c.Snapshot()) != 0 {
		t.Error("snapshot of cleared cart should be empty")
	}
}

func TestCartSnapshotIsStableAndDetached(t *testing.T) {
	c := NewCart()
	_ = c.Add(meals(10), 2)
	_ = c.Add(chai(10), 1)

	first := c.Snapshot()
	second := c.Snapshot()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("snapshot lengths = %d, %d, want 2, 2", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("snapshots differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].ItemID > first[1].ItemID {
		t.Error("snapshot should be ordered by item id")
	}

	// Mutating the cart must not change an already-taken snapshot.
	c.Clear()
	if len(first) != 2 {
		t.Error("snapshot changed after cart mutation")
	}
}

func TestCartTotal(t *testing.T) {
	c := NewCart()
	_ = c.Add(chai(10), 2)  // 2 * 1500
	_ = c.Add(meals(10), 1) // 1 * 6000
	if got := c.Total(); got != 9000 {
		t.Errorf("Total() = %d, want 9000", got)
	}
}
