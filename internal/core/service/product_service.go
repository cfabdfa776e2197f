package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/ports"
)

// ProductCache abstracts the read-through cache in front of the repository.
// A miss is reported as (nil, nil). All cache failures are best-effort: the
// service logs them and falls through to the repository.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

// ProductService implements CRUD over the catalog. Mutations emit change
// events for the audit trail after the write has succeeded.
type ProductService struct {
	repo     ports.ProductRepository
	cache    ProductCache
	recorder ports.ChangeRecorder
	logger   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ProductCache, recorder ports.ChangeRecorder, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, recorder: recorder, logger: logger}
}

// Create stores a new product. A client-supplied UUID is honored; otherwise
// one is generated server-side.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	product := &domain.Product{
		ID:       id,
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to create product")
		return nil, err
	}

	s.record(domain.ChangeEvent{ProductID: id, Action: domain.ActionCreated, Actor: input.Actor})
	s.logger.Info().Str("product_id", id).Str("category", product.Category).Msg("product created")
	return product, nil
}

// GetByID serves from the cache when possible, falling back to the repository
// and repopulating the cache on a miss.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("cache read failed, falling back to store")
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("cache write failed")
	}
	return product, nil
}

func (s *ProductService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListAll(ctx)
}

// Update fully replaces the stored product. There are no partial-field
// updates and no versioning.
func (s *ProductService) Update(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:       input.ID,
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, input.ID); err != nil {
		s.logger.Warn().Err(err).Str("product_id", input.ID).Msg("cache invalidation failed")
	}

	s.record(domain.ChangeEvent{ProductID: input.ID, Action: domain.ActionUpdated, Actor: input.Actor})
	s.logger.Info().Str("product_id", input.ID).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("cache invalidation failed")
	}

	s.record(domain.ChangeEvent{ProductID: id, Action: domain.ActionDeleted, Actor: actor})
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) record(event domain.ChangeEvent) {
	event.Timestamp = time.Now().UTC()
	s.recorder.Enqueue(event)
}
