package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
	"github.com/VaishnevSreejeev/canteen-ordering-app/models"

	"github.com/jackc/pgx/v5"
)

// Menu administration. These run outside the placement engine's
// transaction; the engine tolerates items changing or disappearing
// under it by snapshotting at checkout.

func ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, category, price, daily_quantity, daily_limit, is_available
		FROM menu_items
		ORDER BY category, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Price,
			&it.DailyQuantity, &it.DailyLimit, &it.IsAvailable); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var it models.MenuItem
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, category, price, daily_quantity, daily_limit, is_available
		FROM menu_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.Category, &it.Price,
		&it.DailyQuantity, &it.DailyLimit, &it.IsAvailable)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &ItemRemovedError{Item: fmt.Sprintf("item %d", id)}
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func AddMenuItem(ctx context.Context, name, category string, price int64, dailyLimit int) (int64, error) {
	if category != models.CategoryFood && category != models.CategoryDrink && category != models.CategoryDessert {
		return 0, fmt.Errorf("invalid category: %s", category)
	}
	if name == "" {
		return 0, fmt.Errorf("name is required")
	}
	if price < 0 {
		return 0, fmt.Errorf("price must be >= 0")
	}
	if dailyLimit < 0 {
		return 0, fmt.Errorf("daily limit must be >= 0")
	}

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, category, price, daily_quantity, daily_limit)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`,
		name, category, price, dailyLimit,
	).Scan(&id)
	return id, err
}

func UpdateMenuItemPrice(ctx context.Context, id int64, price int64) error {
	if price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	_, err := db.Pool.Exec(ctx,
		`UPDATE menu_items SET price = $1, updated_at = now() WHERE id = $2`,
		price, id,
	)
	return err
}

func SetMenuItemAvailability(ctx context.Context, id int64, available bool) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE menu_items SET is_available = $1, updated_at = now() WHERE id = $2`,
		available, id,
	)
	return err
}

func DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}

// ResetDailyStock restores every item's daily_quantity to its
// daily_limit. The canteen runs this once each morning.
func ResetDailyStock(ctx context.Context) (int64, error) {
	ct, err := db.Pool.Exec(ctx,
		`UPDATE menu_items SET daily_quantity = daily_limit, updated_at = now()`,
	)
	if err != nil {
		return 0, fmt.Errorf("reset daily stock: %w", err)
	}
	return ct.RowsAffected(), nil
}
