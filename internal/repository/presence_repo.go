package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/muniempleo/intake-api/internal/models"
)

// PresenceRepository records per-account heartbeats. Stale rows are never
// evicted; reads filter by recency.
type PresenceRepository interface {
	Upsert(ctx context.Context, username string, at time.Time) error
	ListActiveSince(ctx context.Context, since time.Time) ([]string, error)
}

type presenceRepository struct {
	db *gorm.DB
}

// NewPresenceRepository constructs a repository backed by GORM.
func NewPresenceRepository(db *gorm.DB) PresenceRepository {
	return &presenceRepository{db: db}
}

func (r *presenceRepository) Upsert(ctx context.Context, username string, at time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen"}),
		}).
		Create(&models.Presence{Username: username, LastSeen: at}).Error
}

// ListActiveSince joins presence against active staff accounts so a
// deactivated account never shows as online.
func (r *presenceRepository) ListActiveSince(ctx context.Context, since time.Time) ([]string, error) {
	var usernames []string
	err := r.db.WithContext(ctx).
		Model(&models.Presence{}).
		Joins("JOIN usuarios ON usuarios.username = presencia.username AND usuarios.activo = 1").
		Where("presencia.last_seen >= ?", since).
		Order("presencia.username ASC").
		Pluck("presencia.username", &usernames).Error
	if err != nil {
		return nil, err
	}
	return usernames, nil
}
