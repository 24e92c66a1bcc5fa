package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/repository"
)

// AuditService appends entries to the action log. Writes are best-effort:
// a failed write is logged and swallowed, never blocking the operation
// that triggered it.
type AuditService interface {
	Record(ctx context.Context, usuario, accion string)
}

type auditService struct {
	repo   repository.AuditLogRepository
	clock  func() time.Time
	logger zerolog.Logger
}

// NewAuditService constructs the audit writer.
func NewAuditService(repo repository.AuditLogRepository, clock func() time.Time, logger zerolog.Logger) AuditService {
	if clock == nil {
		clock = time.Now
	}

	return &auditService{
		repo:   repo,
		clock:  clock,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, usuario, accion string) {
	entry := models.AuditLog{
		Fecha:   s.clock(),
		Usuario: usuario,
		Accion:  accion,
	}

	if err := s.repo.Append(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Str("usuario", usuario).Str("accion", accion).Msg("failed to write audit entry")
	}
}
