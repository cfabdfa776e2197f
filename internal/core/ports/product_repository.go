package ports

import (
	"context"

	"github.com/mvs/product-catalog/internal/core/domain"
)

// ProductRepository defines persistence operations for products, keyed by the
// product's UUID string.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Update fully replaces the stored document. Returns
	// domain.ErrProductNotFound when no document matches the id.
	Update(ctx context.Context, p *domain.Product) error
	// Delete removes the document. Returns domain.ErrProductNotFound when
	// nothing was deleted.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.Product, error)
}
