package services

import (
	"context"
	"time"

	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
	"github.com/VaishnevSreejeev/canteen-ordering-app/models"
)

// RetryPolicy re-runs read-only queries that hit short-lived lock
// contention. It never belongs on a write path: a failed write must
// surface to the caller, because the state it was computed from (the
// cart, the stock) may have moved on.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Sleep       func(time.Duration) // nil means time.Sleep; tests inject a fake
}

func NewRetryPolicy(maxAttempts int, backoff time.Duration) RetryPolicy {
	return RetryPolicy{MaxAttempts: maxAttempts, Backoff: backoff}
}

// Do runs fn up to MaxAttempts times, sleeping Backoff between attempts,
// retrying only errors db.IsTransient accepts. Non-transient errors
// propagate immediately. On exhaustion it returns the last error; the
// typed wrappers below pair that with an empty collection so dashboards
// degrade instead of breaking.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			sleep(p.Backoff)
		}
		err = fn(ctx)
		if err == nil || !db.IsTransient(err) {
			return err
		}
	}
	return err
}

// ListOrdersByStudentRetry is ListOrdersByStudent behind the retry
// policy. When contention does not clear within the allowed attempts the
// caller gets an empty history plus the error, never a nil-slice panic
// or a raw lock error page.
func ListOrdersByStudentRetry(ctx context.Context, p RetryPolicy, studentID string) ([]models.Order, error) {
	var orders []models.Order
	err := p.Do(ctx, func(ctx context.Context) error {
		var e error
		orders, e = ListOrdersByStudent(ctx, studentID)
		return e
	})
	if err != nil {
		return []models.Order{}, err
	}
	return orders, nil
}

// ListAllOrdersRetry wraps the staff dashboard query the same way.
func ListAllOrdersRetry(ctx context.Context, p RetryPolicy) ([]models.Order, error) {
	var orders []models.Order
	err := p.Do(ctx, func(ctx context.Context) error {
		var e error
		orders, e = ListAllOrders(ctx)
		return e
	})
	if err != nil {
		return []models.Order{}, err
	}
	return orders, nil
}
