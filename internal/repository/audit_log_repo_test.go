package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muniempleo/intake-api/internal/models"
)

func TestAuditLogPaginationAndSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, &models.AuditLog{
			Fecha:   base.Add(time.Duration(i) * time.Minute),
			Usuario: "maria",
			Accion:  fmt.Sprintf("Recibió a POSTULANTE %d", i),
		}))
	}
	require.NoError(t, repo.Append(ctx, &models.AuditLog{
		Fecha:   base.Add(time.Hour),
		Usuario: "admin",
		Accion:  "Cerró la convocatoria",
	}))

	entries, total, err := repo.List(ctx, 1, 4, "")
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.Len(t, entries, 4)
	// Newest first.
	require.Equal(t, "Cerró la convocatoria", entries[0].Accion)

	entries, total, err = repo.List(ctx, 2, 4, "")
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.Len(t, entries, 2)

	entries, total, err = repo.List(ctx, 1, 50, "admin")
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	require.Equal(t, "admin", entries[0].Usuario)

	entries, total, err = repo.List(ctx, 1, 50, "convocatoria")
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
}

func TestAuditLogPurge(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, &models.AuditLog{
			Fecha:   time.Now(),
			Usuario: "maria",
			Accion:  "Inicio de sesión",
		}))
	}

	deleted, err := repo.Purge(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)

	_, total, err := repo.List(ctx, 1, 50, "")
	require.NoError(t, err)
	require.Zero(t, total)
}
