package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists change events to the
// audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single change event. Failures are reported to the caller
// (the dispatcher), which logs and counts them; they never reach a client.
func (s *auditService) Process(ctx context.Context, event domain.ChangeEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record change event: %w", err)
	}

	s.log.Debug().
		Str("product_id", event.ProductID).
		Str("action", string(event.Action)).
		Str("actor", event.Actor).
		Msg("change event recorded")
	return nil
}
