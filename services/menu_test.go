package services

import (
	"context"
	"testing"

	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
)

// Input validation happens before any storage access; these run without
// a DB pool.
func TestAddMenuItemValidation(t *testing.T) {
	if db.Pool != nil {
		t.Skip("validation-only test expects no DB pool")
	}
	ctx := context.Background()

	tests := []struct {
		name       string
		itemName   string
		category   string
		price      int64
		dailyLimit int
	}{
		{"bad category", "Chai", "beverage", 1500, 10},
		{"empty name", "", "drink", 1500, 10},
		{"negative price", "Chai", "drink", -1, 10},
		{"negative limit", "Chai", "drink", 1500, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AddMenuItem(ctx, tt.itemName, tt.category, tt.price, tt.dailyLimit); err == nil {
				t.Errorf("AddMenuItem(%q, %q, %d, %d) = nil error, want rejection",
					tt.itemName, tt.category, tt.price, tt.dailyLimit)
			}
		})
	}
}

func TestUpdateMenuItemPriceValidation(t *testing.T) {
	if db.Pool != nil {
		t.Skip("validation-only test expects no DB pool")
	}
	if err := UpdateMenuItemPrice(context.Background(), 1, -100); err == nil {
		t.Error("negative price should be rejected")
	}
}
