package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/muniempleo/intake-api/internal/repository"
)

func newExportFixture(t *testing.T) (ExportService, repository.ApplicantRepository, *fakeClock) {
	t.Helper()

	db := newTestDB(t)
	applicants := repository.NewApplicantRepository(db)
	clock := newFakeClock()

	return NewExportService(applicants, clock.Now, nopLogger()), applicants, clock
}

func TestClaimedCSVContainsOnlyClaimedRows(t *testing.T) {
	svc, applicants, _ := newExportFixture(t)
	ctx := context.Background()

	claimed := newApplicant("11111111")
	pending := newApplicant("22222222")
	require.NoError(t, applicants.Create(ctx, claimed))
	require.NoError(t, applicants.Create(ctx, pending))

	claimedAt := time.Date(2026, 3, 9, 11, 30, 0, 0, time.UTC)
	_, err := applicants.Claim(ctx, claimed.ID, "maria", claimedAt)
	require.NoError(t, err)

	payload, filename, err := svc.ClaimedCSV(ctx)
	require.NoError(t, err)
	require.Equal(t, "postulantes_20260309_100000.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "ID", records[0][0])
	require.Equal(t, "Fecha Atención", records[0][16])
	require.Equal(t, "11111111", records[1][6])
	require.Equal(t, "maria", records[1][15])
	require.Equal(t, "2026-03-09 11:30:00", records[1][16])
}

func TestClaimedCSVEmpty(t *testing.T) {
	svc, _, _ := newExportFixture(t)

	payload, _, err := svc.ClaimedCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestClaimedXLSXRoundTrip(t *testing.T) {
	svc, applicants, _ := newExportFixture(t)
	ctx := context.Background()

	applicant := newApplicant("11111111")
	require.NoError(t, applicants.Create(ctx, applicant))
	_, err := applicants.Claim(ctx, applicant.ID, "maria", time.Now())
	require.NoError(t, err)

	payload, filename, err := svc.ClaimedXLSX(ctx)
	require.NoError(t, err)
	require.Equal(t, "postulantes_20260309_100000.xlsx", filename)

	file, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows("Postulantes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Apellidos", rows[0][3])
	require.Equal(t, "QUISPE HUAMAN", rows[1][3])
	require.Equal(t, "maria", rows[1][15])
}
