package store

import (
	"context"
	"errors"
	"testing"
	"time"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore returns err from every call and counts invocations.
type failingStore struct {
	err   error
	calls int
}

func (f *failingStore) FindByID(_ context.Context, _ int64) (*db.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) FindAll(_ context.Context, _, _ int32) ([]db.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) Create(_ context.Context, _, _ string, _ int32, _ float64) (*db.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) Update(_ context.Context, _ int64, _ UpdateParams) (*db.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) DeleteByID(_ context.Context, _ int64) (int64, error) {
	f.calls++
	return 0, f.err
}

var breakerCfg = config.CircuitBreakerConfig{
	Enabled:             true,
	ConsecutiveFailures: 2,
	ErrorRatePercent:    50,
	OpenTimeout:         time.Minute,
}

func Test_BreakerStore_PassesThrough(t *testing.T) {
	// given
	ctx := context.Background()
	b := NewBreakerStore(NewInMemoryStore(), breakerCfg)

	// when
	created, err := b.Create(ctx, "Lamp", "Desk lamp", 1, 10)
	require.NoError(t, err)
	found, err := b.FindByID(ctx, created.ID)
	require.NoError(t, err)
	list, err := b.FindAll(ctx, 0, 10)
	require.NoError(t, err)
	updated, err := b.Update(ctx, created.ID, UpdateParams{Price: ptr(12.0)})
	require.NoError(t, err)
	deleted, err := b.DeleteByID(ctx, created.ID)
	require.NoError(t, err)

	// then
	assert.Equal(t, created, found)
	assert.Len(t, list, 1)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, created.ID, deleted)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func Test_BreakerStore_NotFoundDoesNotTrip(t *testing.T) {
	// given
	inner := &failingStore{err: perrors.ErrProductNotFound}
	b := NewBreakerStore(inner, breakerCfg)

	// when
	for range 10 {
		_, err := b.FindByID(context.Background(), 1)
		require.ErrorIs(t, err, perrors.ErrProductNotFound)
	}

	// then
	assert.Equal(t, 10, inner.calls)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func Test_BreakerStore_OpensOnStorageFailures(t *testing.T) {
	// given
	ErrDown := errors.New("connection refused")
	inner := &failingStore{err: ErrDown}
	b := NewBreakerStore(inner, breakerCfg)

	// when
	for range 3 {
		_, err := b.FindAll(context.Background(), 0, 10)
		require.ErrorIs(t, err, ErrDown)
	}
	_, err := b.FindAll(context.Background(), 0, 10)

	// then
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.calls, "open breaker must not reach the store")
	assert.Equal(t, gobreaker.StateOpen, b.State())
}
