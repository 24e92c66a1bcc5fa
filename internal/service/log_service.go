package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/repository"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 200
)

// LogService serves the admin audit-log views.
type LogService interface {
	List(ctx context.Context, query dto.LogQuery) ([]models.AuditLog, int64, error)
	Purge(ctx context.Context, actor string) (int64, error)
}

type logService struct {
	repo   repository.AuditLogRepository
	audit  AuditService
	logger zerolog.Logger
}

// NewLogService constructs the audit-log query surface.
func NewLogService(repo repository.AuditLogRepository, audit AuditService, logger zerolog.Logger) LogService {
	return &logService{
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("component", "log_service").Logger(),
	}
}

func (s *logService) List(ctx context.Context, query dto.LogQuery) ([]models.AuditLog, int64, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultLogPageSize
	}
	if pageSize > maxLogPageSize {
		pageSize = maxLogPageSize
	}

	return s.repo.List(ctx, page, pageSize, strings.TrimSpace(query.Search))
}

func (s *logService) Purge(ctx context.Context, actor string) (int64, error) {
	removed, err := s.repo.Purge(ctx)
	if err != nil {
		return 0, err
	}

	s.audit.Record(ctx, actor, fmt.Sprintf("Limpió el registro de acciones (%d entradas)", removed))
	s.logger.Info().Int64("removed", removed).Str("actor", actor).Msg("audit log purged")

	return removed, nil
}
