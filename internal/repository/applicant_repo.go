package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/muniempleo/intake-api/internal/models"
)

// ClaimFilter narrows applicant listings by claim state.
type ClaimFilter int

const (
	FilterAll ClaimFilter = iota
	FilterPending
	FilterClaimed
)

// ApplicantRepository persists applicant records. The claim update is the
// only synchronization primitive for applicant ownership: a single
// conditional UPDATE guarded by the row still being unclaimed.
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	FindByID(ctx context.Context, id uint) (*models.Applicant, error)
	FindByDocument(ctx context.Context, tipoDocumento, numeroDocumento string) (*models.Applicant, error)
	ListAfter(ctx context.Context, afterID uint, filter ClaimFilter) ([]models.Applicant, error)
	ListPending(ctx context.Context) ([]models.Applicant, error)
	ListClaimed(ctx context.Context) ([]models.Applicant, error)
	Claim(ctx context.Context, id uint, username string, at time.Time) (int64, error)
	UpdateUnclaimed(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) error
	CountBySexo(ctx context.Context, claimed bool, sexo string) (int64, error)
	CountByArea(ctx context.Context) (map[string]int64, error)
}

type applicantRepository struct {
	db *gorm.DB
}

// NewApplicantRepository constructs a repository backed by GORM.
func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepository) FindByID(ctx context.Context, id uint) (*models.Applicant, error) {
	var applicant models.Applicant
	err := r.db.WithContext(ctx).First(&applicant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) FindByDocument(ctx context.Context, tipoDocumento, numeroDocumento string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := r.db.WithContext(ctx).
		Where("tipo_documento = ? AND numero_documento = ?", tipoDocumento, numeroDocumento).
		First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) ListAfter(ctx context.Context, afterID uint, filter ClaimFilter) ([]models.Applicant, error) {
	query := r.db.WithContext(ctx).Where("id > ?", afterID)
	switch filter {
	case FilterPending:
		query = query.Where("usuario_atendio IS NULL")
	case FilterClaimed:
		query = query.Where("usuario_atendio IS NOT NULL")
	}

	var applicants []models.Applicant
	if err := query.Order("id ASC").Find(&applicants).Error; err != nil {
		return nil, err
	}
	return applicants, nil
}

func (r *applicantRepository) ListPending(ctx context.Context) ([]models.Applicant, error) {
	var applicants []models.Applicant
	err := r.db.WithContext(ctx).
		Where("usuario_atendio IS NULL").
		Order("created_at DESC").
		Find(&applicants).Error
	if err != nil {
		return nil, err
	}
	return applicants, nil
}

func (r *applicantRepository) ListClaimed(ctx context.Context) ([]models.Applicant, error) {
	var applicants []models.Applicant
	err := r.db.WithContext(ctx).
		Where("usuario_atendio IS NOT NULL").
		Order("fecha_atencion DESC").
		Find(&applicants).Error
	if err != nil {
		return nil, err
	}
	return applicants, nil
}

func (r *applicantRepository) Claim(ctx context.Context, id uint, username string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Applicant{}).
		Where("id = ? AND usuario_atendio IS NULL", id).
		Updates(map[string]interface{}{
			"usuario_atendio": username,
			"fecha_atencion":  at,
		})
	return result.RowsAffected, result.Error
}

func (r *applicantRepository) UpdateUnclaimed(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Applicant{}).
		Where("id = ? AND usuario_atendio IS NULL", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *applicantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Applicant{}, id).Error
}

func (r *applicantRepository) CountBySexo(ctx context.Context, claimed bool, sexo string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Applicant{}).Where("sexo = ?", sexo)
	if claimed {
		query = query.Where("usuario_atendio IS NOT NULL")
	} else {
		query = query.Where("usuario_atendio IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *applicantRepository) CountByArea(ctx context.Context) (map[string]int64, error) {
	type areaCount struct {
		Area  string
		Total int64
	}

	var rows []areaCount
	err := r.db.WithContext(ctx).
		Model(&models.Applicant{}).
		Select("area, COUNT(*) as total").
		Where("area IS NOT NULL AND area <> ''").
		Group("area").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Area] = row.Total
	}
	return counts, nil
}
