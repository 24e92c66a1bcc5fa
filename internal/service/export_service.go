package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/repository"
)

var exportHeaders = []string{
	"ID", "Área", "Convocatoria", "Apellidos", "Nombres", "Tipo Doc", "N° Doc",
	"Fecha Nacimiento", "Sexo", "Celular", "Correo", "FF.AA.",
	"Discapacidad", "Tipo Discapacidad", "Fecha Registro",
	"Usuario Atendió", "Fecha Atención",
}

// ExportService produces report files over the claimed applicants,
// ordered by claim time descending.
type ExportService interface {
	ClaimedCSV(ctx context.Context) ([]byte, string, error)
	ClaimedXLSX(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	applicants repository.ApplicantRepository
	clock      func() time.Time
	logger     zerolog.Logger
}

// NewExportService constructs the report writer.
func NewExportService(applicants repository.ApplicantRepository, clock func() time.Time, logger zerolog.Logger) ExportService {
	if clock == nil {
		clock = time.Now
	}

	return &exportService{
		applicants: applicants,
		clock:      clock,
		logger:     logger.With().Str("component", "export_service").Logger(),
	}
}

func (s *exportService) ClaimedCSV(ctx context.Context) ([]byte, string, error) {
	applicants, err := s.applicants.ListClaimed(ctx)
	if err != nil {
		return nil, "", err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, "", err
	}
	for _, applicant := range applicants {
		if err := writer.Write(exportRow(applicant)); err != nil {
			return nil, "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	return buffer.Bytes(), s.filename("csv"), nil
}

func (s *exportService) ClaimedXLSX(ctx context.Context) ([]byte, string, error) {
	applicants, err := s.applicants.ListClaimed(ctx)
	if err != nil {
		return nil, "", err
	}

	file := excelize.NewFile()
	const sheet = "Postulantes"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"003F8F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
		if err := file.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, "", err
		}
	}

	widths := make([]int, len(exportHeaders))
	for col, header := range exportHeaders {
		widths[col] = len(header)
	}

	for rowIndex, applicant := range applicants {
		for col, value := range exportRow(applicant) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return nil, "", err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, "", err
		}
		if err := file.SetColWidth(sheet, name, name, float64(width+2)); err != nil {
			return nil, "", err
		}
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, "", err
	}

	return buffer.Bytes(), s.filename("xlsx"), nil
}

func (s *exportService) filename(extension string) string {
	return fmt.Sprintf("postulantes_%s.%s", s.clock().Format("20060102_150405"), extension)
}

func exportRow(applicant models.Applicant) []string {
	claimant := ""
	if applicant.UsuarioAtendio != nil {
		claimant = *applicant.UsuarioAtendio
	}
	claimedAt := ""
	if applicant.FechaAtencion != nil {
		claimedAt = applicant.FechaAtencion.Format("2006-01-02 15:04:05")
	}

	return []string{
		fmt.Sprintf("%d", applicant.ID),
		applicant.Area,
		applicant.Convocatoria,
		applicant.Apellidos,
		applicant.Nombres,
		applicant.TipoDocumento,
		applicant.NumeroDocumento,
		applicant.FechaNacimiento,
		applicant.Sexo,
		applicant.Celular,
		applicant.Correo,
		applicant.FuerzasArmadas,
		applicant.TieneDiscapacidad,
		applicant.TipoDiscapacidad,
		applicant.CreatedAt.Format("2006-01-02 15:04:05"),
		claimant,
		claimedAt,
	}
}
