package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	failWith error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if r.failWith != nil {
		return r.failWith
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type stubCache struct {
	entries     map[string]*domain.Product
	invalidated []string
	failWith    error
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.Product)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.Product, error) {
	if c.failWith != nil {
		return nil, c.failWith
	}
	return c.entries[id], nil
}

func (c *stubCache) Set(_ context.Context, p *domain.Product) error {
	if c.failWith != nil {
		return c.failWith
	}
	clone := *p
	c.entries[p.ID] = &clone
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

type stubRecorder struct {
	events []domain.ChangeEvent
}

func (r *stubRecorder) Enqueue(event domain.ChangeEvent) {
	r.events = append(r.events, event)
}

func newProductService() (*ProductService, *stubProductRepo, *stubCache, *stubRecorder) {
	repo := newStubProductRepo()
	cache := newStubCache()
	recorder := &stubRecorder{}
	return NewProductService(repo, cache, recorder, zerolog.Nop()), repo, cache, recorder
}

func TestProductService_Create_GeneratesUUID(t *testing.T) {
	svc, repo, _, recorder := newProductService()

	product, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:     "MacBook Pro",
		Category: "Laptop",
		Price:    8000,
		Actor:    "admin",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(product.ID); err != nil {
		t.Fatalf("expected generated UUID, got %q", product.ID)
	}
	if _, ok := repo.products[product.ID]; !ok {
		t.Fatalf("product not persisted")
	}

	if len(recorder.events) != 1 {
		t.Fatalf("expected 1 change event, got %d", len(recorder.events))
	}
	event := recorder.events[0]
	if event.Action != domain.ActionCreated || event.ProductID != product.ID || event.Actor != "admin" {
		t.Fatalf("unexpected change event: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Fatalf("change event missing timestamp")
	}
}

func TestProductService_Create_HonorsClientID(t *testing.T) {
	svc, _, _, _ := newProductService()

	id := "f03f8643-d547-435c-a980-d9c013c86de4"
	product, err := svc.Create(context.Background(), ports.CreateProductInput{
		ID:       id,
		Name:     "Iphone13 Pro",
		Category: "Mobile Phone",
		Price:    1000,
		Actor:    "admin",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID != id {
		t.Fatalf("expected client-supplied id %q, got %q", id, product.ID)
	}
}

func TestProductService_GetByID_CacheMissThenHit(t *testing.T) {
	svc, repo, cache, _ := newProductService()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Monitor", Category: "Display", Price: 300}

	product, err := svc.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if product.Name != "Monitor" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if cache.entries["p1"] == nil {
		t.Fatalf("expected cache to be populated on miss")
	}

	// Remove from repo: a second read must be served from cache.
	delete(repo.products, "p1")
	if _, err := svc.GetByID(context.Background(), "p1"); err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
}

func TestProductService_GetByID_CacheFailureFallsThrough(t *testing.T) {
	svc, repo, cache, _ := newProductService()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Monitor", Category: "Display", Price: 300}
	cache.failWith = errors.New("redis down")

	product, err := svc.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("expected store fallback, got %v", err)
	}
	if product.ID != "p1" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	svc, _, _, _ := newProductService()

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Update_ReplacesAndInvalidates(t *testing.T) {
	svc, repo, cache, recorder := newProductService()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Old", Category: "Misc", Price: 1}

	product, err := svc.Update(context.Background(), ports.UpdateProductInput{
		ID:       "p1",
		Name:     "New",
		Category: "Gadgets",
		Price:    42,
		Actor:    "admin",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if product.Name != "New" || repo.products["p1"].Price != 42 {
		t.Fatalf("replacement not applied: %+v", repo.products["p1"])
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "p1" {
		t.Fatalf("expected cache invalidation for p1, got %v", cache.invalidated)
	}
	if len(recorder.events) != 1 || recorder.events[0].Action != domain.ActionUpdated {
		t.Fatalf("expected updated change event, got %+v", recorder.events)
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, _, _, recorder := newProductService()

	_, err := svc.Update(context.Background(), ports.UpdateProductInput{ID: "missing", Name: "X", Category: "Y", Price: 1})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(recorder.events) != 0 {
		t.Fatalf("no change event expected on failed update")
	}
}

func TestProductService_Delete(t *testing.T) {
	svc, repo, cache, recorder := newProductService()
	repo.products["p1"] = &domain.Product{ID: "p1", Name: "Old", Category: "Misc", Price: 1}

	if err := svc.Delete(context.Background(), "p1", "admin"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.products["p1"]; ok {
		t.Fatalf("product not removed")
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("expected cache invalidation")
	}
	if len(recorder.events) != 1 || recorder.events[0].Action != domain.ActionDeleted {
		t.Fatalf("expected deleted change event, got %+v", recorder.events)
	}
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc, _, _, _ := newProductService()

	if err := svc.Delete(context.Background(), "missing", "admin"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
