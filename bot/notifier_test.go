package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/VaishnevSreejeev/canteen-ordering-app/models"
)

func TestFormatOrderMessage(t *testing.T) {
	o := &models.Order{
		ID:         42,
		StudentID:  "CS21B001",
		TotalPrice: 9000,
		Status:     "pending",
		OrderDate:  time.Now(),
		Items: []models.OrderItem{
			{ItemName: "Chai", Quantity: 2, PriceAtOrder: 1500},
			{ItemName: "Meals", Quantity: 1, PriceAtOrder: 6000},
		},
	}
	msg := FormatOrderMessage(o)
	for _, want := range []string{"#42", "CS21B001", "Chai", "Meals", "9000"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.Contains(msg, "2 x Chai") {
		t.Errorf("message should show quantity per line:\n%s", msg)
	}
}
