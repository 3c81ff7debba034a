package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/wandwbot/wandw/wandw/database/models"
)

// Mutable is the slice of a repository the retry protocol needs.
type Mutable[T models.Entity] interface {
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, item T) error
}

// RetryPolicy bounds the conflict-retry loop. The delay doubles per attempt
// up to MaxDelay, with jitter so colliding writers spread out.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 64,
	BaseDelay:   2 * time.Millisecond,
	MaxDelay:    250 * time.Millisecond,
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if d <= 0 || d > p.MaxDelay {
		d = p.MaxDelay
	}
	return time.Duration(rand.Int63n(int64(d)) + 1)
}

// Mutate reads the entity, applies the transformation and conditionally
// writes it back, retrying from a fresh read on version conflict. The abort
// predicate is evaluated against every read: once it holds, the precondition
// that motivated the mutation no longer does, and the operation is abandoned
// as a benign no-op. The returned bool reports whether the write landed.
//
// ErrNotFound from the first read is the caller's problem; an entity that
// vanishes mid-retry counts as abandonment, not failure.
func Mutate[T models.Entity](ctx context.Context, repo Mutable[T], id string, abort func(T) bool, apply func(T)) (bool, error) {
	item, err := repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return MutateFrom(ctx, repo, item, abort, apply)
}

// MutateFrom is Mutate starting from an already-read copy, as the periodic
// loops do when fanning out over a scan.
func MutateFrom[T models.Entity](ctx context.Context, repo Mutable[T], item T, abort func(T) bool, apply func(T)) (bool, error) {
	policy := DefaultRetryPolicy
	for attempt := 0; ; attempt++ {
		if abort != nil && abort(item) {
			return false, nil
		}
		apply(item)

		err := repo.Update(ctx, item)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return false, err
		}
		if attempt+1 >= policy.MaxAttempts {
			return false, fmt.Errorf("mutation of %q gave up after %d attempts: %w", item.EntityID(), policy.MaxAttempts, err)
		}

		select {
		case <-time.After(policy.delay(attempt)):
		case <-ctx.Done():
			return false, ctx.Err()
		}

		item, err = repo.Get(ctx, item.EntityID())
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}
