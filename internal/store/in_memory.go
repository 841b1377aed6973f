package store

import (
	"context"
	"slices"
	"sync"
	"time"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
)

// InMemoryStore implements ProductStore using an in-memory map.
// IDs are assigned from a monotonically increasing counter and never reused.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]db.Product
	nextID   int64
}

// NewInMemoryStore creates a new, empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]db.Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*db.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll returns a page of products ordered by ID.
func (s *InMemoryStore) FindAll(_ context.Context, offset, limit int32) ([]db.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	list := make([]db.Product, 0)
	if offset < 0 || int(offset) >= len(ids) || limit <= 0 {
		return list, nil
	}
	end := min(int(offset)+int(limit), len(ids))
	for _, id := range ids[offset:end] {
		list = append(list, s.products[id])
	}
	return list, nil
}

// Create creates a new product and returns it.
func (s *InMemoryStore) Create(_ context.Context, name, description string, stock int32, price float64) (*db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	product := db.Product{
		ID:          s.nextID,
		Name:        name,
		Description: description,
		Stock:       stock,
		Price:       price,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// Update applies the non-nil fields of params to an existing product.
func (s *InMemoryStore) Update(_ context.Context, id int64, params UpdateParams) (*db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	now := time.Now().UTC()
	p.UpdatedAt = &now
	s.products[id] = p

	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemoryStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return 0, perrors.ErrProductNotFound
	}
	delete(s.products, id)
	return id, nil
}
