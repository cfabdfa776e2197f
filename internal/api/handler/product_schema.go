package handler

import "github.com/mvs/product-catalog/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// createProductRequest creates a product. ID is optional; when present it must
// be a valid UUID, otherwise the server generates one.
type createProductRequest struct {
	ID       string  `json:"id,omitempty" validate:"omitempty,uuid4"`
	Name     string  `json:"name"         validate:"required"`
	Category string  `json:"category"     validate:"required"`
	Price    float64 `json:"price"        validate:"required,gt=0"`
}

// updateProductRequest fully replaces the product at the path id. A body id,
// if present, is ignored in favour of the path parameter.
type updateProductRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
}

type productResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
	}
}

func toProductListResponse(products []*domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}
