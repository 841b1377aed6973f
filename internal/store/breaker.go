package store

import (
	"context"
	"errors"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// BreakerStore decorates a ProductStore with a circuit breaker.
// ErrProductNotFound is a regular outcome and never counts as a failure.
type BreakerStore struct {
	next ProductStore
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next with a circuit breaker configured from cfg.
func NewBreakerStore(next ProductStore, cfg config.CircuitBreakerConfig) *BreakerStore {
	st := gobreaker.Settings{
		Name:        "catalog-store-cb",
		MaxRequests: 3,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures ||
				(counts.TotalSuccesses+counts.TotalFailures > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(counts.TotalSuccesses+counts.TotalFailures)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, perrors.ErrProductNotFound) || errors.Is(err, context.Canceled)
		},
	}
	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](st),
	}
}

// State reports the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) FindByID(ctx context.Context, id int64) (*db.Product, error) {
	return execute(b.cb, func() (*db.Product, error) { return b.next.FindByID(ctx, id) })
}

func (b *BreakerStore) FindAll(ctx context.Context, offset, limit int32) ([]db.Product, error) {
	return execute(b.cb, func() ([]db.Product, error) { return b.next.FindAll(ctx, offset, limit) })
}

func (b *BreakerStore) Create(ctx context.Context, name, description string, stock int32, price float64) (*db.Product, error) {
	return execute(b.cb, func() (*db.Product, error) { return b.next.Create(ctx, name, description, stock, price) })
}

func (b *BreakerStore) Update(ctx context.Context, id int64, params UpdateParams) (*db.Product, error) {
	return execute(b.cb, func() (*db.Product, error) { return b.next.Update(ctx, id, params) })
}

func (b *BreakerStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	return execute(b.cb, func() (int64, error) { return b.next.DeleteByID(ctx, id) })
}

// execute runs fn through cb and restores the typed result.
func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
