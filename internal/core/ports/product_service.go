package ports

import (
	"context"

	"github.com/mvs/product-catalog/internal/core/domain"
)

// CreateProductInput carries all data needed to create a product. ID is
// optional: when empty the service generates a UUID.
type CreateProductInput struct {
	ID       string
	Name     string
	Category string
	Price    float64
	// Actor is the authenticated username performing the mutation,
	// recorded in the audit trail.
	Actor string
}

// UpdateProductInput fully replaces the product identified by ID. There are
// no partial-field updates.
type UpdateProductInput struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Actor    string
}

// ProductService defines the CRUD use-cases over the catalog.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, actor string) error
}
