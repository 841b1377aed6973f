// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/abgdnv/gocatalog/internal/store/db"
)

// UpdateParams holds the optional fields of a partial update.
// A nil field keeps the stored value.
type UpdateParams struct {
	Name        *string
	Description *string
	Stock       *int32
	Price       *float64
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Product, error)

	// FindAll returns a page of products ordered by ID.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context, offset, limit int32) ([]db.Product, error)

	// Create adds a new product and returns it with its assigned ID.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, name, description string, stock int32, price float64) (*db.Product, error)

	// Update applies the non-nil fields of params to an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, params UpdateParams) (*db.Product, error)

	// DeleteByID removes a product by its ID and returns the removed ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}
