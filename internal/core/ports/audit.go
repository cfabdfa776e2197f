package ports

import (
	"context"

	"github.com/mvs/product-catalog/internal/core/domain"
)

// AuditService persists product change events.
type AuditService interface {
	Process(ctx context.Context, event domain.ChangeEvent) error
}

// AuditRepository handles change-event persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.ChangeEvent) error
}

// ChangeRecorder is the interface the product service uses to hand off change
// events for asynchronous processing. Enqueue must not block the request path
// beyond the dispatcher's channel buffer.
type ChangeRecorder interface {
	Enqueue(event domain.ChangeEvent)
}
