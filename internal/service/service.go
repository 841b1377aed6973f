// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns a page of products ordered by ID.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context, offset, limit int32) ([]ProductDto, error)

	// Create adds a new product to the catalog.
	// Returns ErrCreateProduct if the store yields no product.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update applies the provided fields to an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns the removed ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository     store.ProductStore
	createdCounter metric.Int64Counter
	updatedCounter metric.Int64Counter
	deletedCounter metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	meter := otel.Meter("catalog-service")
	return &Service{
		repository:     repo,
		createdCounter: mustCounter(meter, "catalog_products_created", "Total number of created products"),
		updatedCounter: mustCounter(meter, "catalog_products_updated", "Total number of updated products"),
		deletedCounter: mustCounter(meter, "catalog_products_deleted", "Total number of deleted products"),
	}
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Pointer fields distinguish an absent value from a zero value.
type ProductCreateDto struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Stock       *int32   `json:"stock"       validate:"required"`
	Price       *float64 `json:"price"       validate:"required,min=1"`
}

// ProductUpdateDto represents a partial update. Nil fields are left untouched.
type ProductUpdateDto struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Stock       *int32   `json:"stock,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,min=1"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Stock       int32   `json:"stock"`
	Price       float64 `json:"price"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.ID == 0 {
		return nil, perrors.ErrProductNotFound
	}
	return toDto(product), nil
}

// FindAll retrieves a page of products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context, offset, limit int32) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns ErrCreateProduct if the store does not yield a product with an ID.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, product.Name, product.Description, deref(product.Stock), deref(product.Price))
	if err != nil {
		return nil, err
	}
	if p == nil || p.ID == 0 {
		return nil, perrors.ErrCreateProduct
	}
	s.createdCounter.Add(ctx, 1)
	return toDto(p), nil
}

// Update applies the non-nil fields of product and returns the stored result.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, id, store.UpdateParams{
		Name:        product.Name,
		Description: product.Description,
		Stock:       product.Stock,
		Price:       product.Price,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.ID == 0 {
		return nil, perrors.ErrProductNotFound
	}
	s.updatedCounter.Add(ctx, 1)
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, perrors.ErrProductNotFound
	}
	s.deletedCounter.Add(ctx, 1)
	return deleted, nil
}

// toDto converts a db.Product to a ProductDto.
func toDto(product *db.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Stock:       product.Stock,
		Price:       product.Price,
	}
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
