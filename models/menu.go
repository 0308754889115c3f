package models

// MenuItem's Price is in minor units. DailyQuantity is the portions left
// today and is never negative; the daily reset restores it to DailyLimit.
type MenuItem struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	DailyQuantity int    `json:"daily_quantity"`
	DailyLimit    int    `json:"daily_limit"`
	IsAvailable   bool   `json:"is_available"`
}

const (
	CategoryFood    = "food"
	CategoryDrink   = "drink"
	CategoryDessert = "dessert"
)
