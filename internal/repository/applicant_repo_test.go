package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicantClaimIsConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	applicant := newApplicant("44556677")
	require.NoError(t, repo.Create(ctx, applicant))

	at := time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)
	rows, err := repo.Claim(ctx, applicant.ID, "maria", at)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// The row is already owned, so a second claim must not touch it.
	rows, err = repo.Claim(ctx, applicant.ID, "jose", at.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	stored, err := repo.FindByID(ctx, applicant.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.UsuarioAtendio)
	require.Equal(t, "maria", *stored.UsuarioAtendio)
	require.NotNil(t, stored.FechaAtencion)
}

func TestApplicantClaimMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)

	rows, err := repo.Claim(context.Background(), 9999, "maria", time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)
}

func TestApplicantUpdateUnclaimedSkipsClaimedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	applicant := newApplicant("44556677")
	require.NoError(t, repo.Create(ctx, applicant))

	rows, err := repo.UpdateUnclaimed(ctx, applicant.ID, map[string]interface{}{"celular": "911222333"})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	_, err = repo.Claim(ctx, applicant.ID, "maria", time.Now())
	require.NoError(t, err)

	rows, err = repo.UpdateUnclaimed(ctx, applicant.ID, map[string]interface{}{"celular": "955666777"})
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	stored, err := repo.FindByID(ctx, applicant.ID)
	require.NoError(t, err)
	require.Equal(t, "911222333", stored.Celular)
}

func TestApplicantFindByDocument(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newApplicant("44556677")))

	found, err := repo.FindByDocument(ctx, "DNI", "44556677")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "ROSA", found.Nombres)

	missing, err := repo.FindByDocument(ctx, "DNI", "00000000")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestApplicantDocumentUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newApplicant("44556677")))
	require.Error(t, repo.Create(ctx, newApplicant("44556677")))
}

func TestApplicantListAfterFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	first := newApplicant("11111111")
	second := newApplicant("22222222")
	third := newApplicant("33333333")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))

	_, err := repo.Claim(ctx, second.ID, "maria", time.Now())
	require.NoError(t, err)

	all, err := repo.ListAfter(ctx, first.ID, FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, third.ID, all[1].ID)

	pending, err := repo.ListAfter(ctx, 0, FilterPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	claimed, err := repo.ListAfter(ctx, 0, FilterClaimed)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, second.ID, claimed[0].ID)
}

func TestApplicantCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	rosa := newApplicant("11111111")
	carla := newApplicant("22222222")
	pedro := newApplicant("33333333")
	pedro.Nombres = "PEDRO"
	pedro.Sexo = "Masculino"
	pedro.Area = "Seguridad"

	require.NoError(t, repo.Create(ctx, rosa))
	require.NoError(t, repo.Create(ctx, carla))
	require.NoError(t, repo.Create(ctx, pedro))

	_, err := repo.Claim(ctx, carla.ID, "maria", time.Now())
	require.NoError(t, err)

	pendingF, err := repo.CountBySexo(ctx, false, "Femenino")
	require.NoError(t, err)
	require.Equal(t, int64(1), pendingF)

	claimedF, err := repo.CountBySexo(ctx, true, "Femenino")
	require.NoError(t, err)
	require.Equal(t, int64(1), claimedF)

	pendingM, err := repo.CountBySexo(ctx, false, "Masculino")
	require.NoError(t, err)
	require.Equal(t, int64(1), pendingM)

	byArea, err := repo.CountByArea(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), byArea["Logística"])
	require.Equal(t, int64(1), byArea["Seguridad"])
}

func TestApplicantDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ctx := context.Background()

	applicant := newApplicant("44556677")
	require.NoError(t, repo.Create(ctx, applicant))
	require.NoError(t, repo.Delete(ctx, applicant.ID))

	stored, err := repo.FindByID(ctx, applicant.ID)
	require.NoError(t, err)
	require.Nil(t, stored)
}
