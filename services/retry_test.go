package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func lockError() error {
	return &pgconn.PgError{Code: "55P03", Message: "lock not available"}
}

// fakeSleep records requested backoffs instead of sleeping.
type fakeSleep struct {
	slept []time.Duration
}

func (f *fakeSleep) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
}

// scriptedOp fails with the queued errors, then succeeds.
func scriptedOp(faults ...error) (func(context.Context) error, *int) {
	calls := 0
	return func(context.Context) error {
		calls++
		if calls <= len(faults) {
			return faults[calls-1]
		}
		return nil
	}, &calls
}

func TestRetrySucceedsWhenFaultClears(t *testing.T) {
	sleeper := &fakeSleep{}
	p := RetryPolicy{MaxAttempts: 3, Backoff: 100 * time.Millisecond, Sleep: sleeper.sleep}
	op, calls := scriptedOp(lockError(), lockError())

	if err := p.Do(context.Background(), op); err != nil {
		t.Fatalf("Do: %v, want nil after fault clears", err)
	}
	if *calls != 3 {
		t.Errorf("calls = %d, want 3", *calls)
	}
	if len(sleeper.slept) != 2 {
		t.Fatalf("sleeps = %d, want 2 (between attempts only)", len(sleeper.slept))
	}
	for _, d := range sleeper.slept {
		if d != 100*time.Millisecond {
			t.Errorf("backoff = %v, want 100ms", d)
		}
	}
}

func TestRetryExhaustsOnPersistentContention(t *testing.T) {
	sleeper := &fakeSleep{}
	p := RetryPolicy{MaxAttempts: 3, Backoff: 100 * time.Millisecond, Sleep: sleeper.sleep}
	op, calls := scriptedOp(lockError(), lockError(), lockError(), lockError())

	err := p.Do(context.Background(), op)
	if err == nil {
		t.Fatal("Do: nil, want last transient error after exhaustion")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "55P03" {
		t.Errorf("err = %v, want the underlying lock error", err)
	}
	if *calls != 3 {
		t.Errorf("calls = %d, want exactly MaxAttempts", *calls)
	}
}

func TestRetryDoesNotRetryNonTransient(t *testing.T) {
	sleeper := &fakeSleep{}
	p := RetryPolicy{MaxAttempts: 3, Backoff: 100 * time.Millisecond, Sleep: sleeper.sleep}
	fatal := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	op, calls := scriptedOp(fatal)

	err := p.Do(context.Background(), op)
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42P01" {
		t.Fatalf("err = %v, want the fatal error unchanged", err)
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on non-transient)", *calls)
	}
	if len(sleeper.slept) != 0 {
		t.Errorf("sleeps = %d, want 0", len(sleeper.slept))
	}
}

func TestRetryZeroAttemptsStillRunsOnce(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 0, Backoff: time.Millisecond, Sleep: func(time.Duration) {}}
	op, calls := scriptedOp()
	if err := p.Do(context.Background(), op); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}
}
