package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/muniempleo/intake-api/internal/models"
)

// AuditLogRepository appends and queries the append-only action log.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, page, pageSize int, search string) ([]models.AuditLog, int64, error)
	Purge(ctx context.Context) (int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs a repository backed by GORM.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) List(ctx context.Context, page, pageSize int, search string) ([]models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("usuario LIKE ? OR accion LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	err := query.
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *auditLogRepository) Purge(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
