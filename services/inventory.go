package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TryReserve decrements daily_quantity for itemID by quantity inside the
// caller's transaction, but only if enough stock remains. The check and
// the decrement are one UPDATE so two concurrent reservations for the
// same item serialize at the row: RowsAffected()==0 means the stock was
// already gone (or the item is unavailable) and nothing was changed.
//
// Returns (false, nil) when the reservation lost; any error is a storage
// failure and the caller must abort its transaction.
func TryReserve(ctx context.Context, tx pgx.Tx, itemID int64, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrQuantityNotPositive
	}
	ct, err := tx.Exec(ctx, `
		UPDATE menu_items
		SET daily_quantity = daily_quantity - $2, updated_at = now()
		WHERE id = $1 AND is_available AND daily_quantity >= $2`,
		itemID, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("reserve stock for item %d: %w", itemID, err)
	}
	return ct.RowsAffected() == 1, nil
}
