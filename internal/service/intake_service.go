package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/observability"
	"github.com/muniempleo/intake-api/internal/repository"
)

// IntakeClosedError rejects public submissions while the convocatoria is
// toggled off.
type IntakeClosedError struct{}

func (e *IntakeClosedError) Error() string { return "La convocatoria se encuentra cerrada" }

// DuplicateError rejects a submission whose identity document already
// exists, naming the convocatoria it is registered in.
type DuplicateError struct {
	TipoDocumento   string
	NumeroDocumento string
	Convocatoria    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("El %s %s ya está registrado en: %s", e.TipoDocumento, e.NumeroDocumento, e.Convocatoria)
}

// IntakeService handles public applicant submissions and lookups.
type IntakeService interface {
	Submit(ctx context.Context, req dto.SubmitRequest) (*models.Applicant, error)
	Verify(ctx context.Context, req dto.VerifyRequest) (dto.VerifyResult, error)
	IntakeOpen(ctx context.Context) (bool, error)
	SetIntakeOpen(ctx context.Context, open bool, actor string) error
}

type intakeService struct {
	applicants repository.ApplicantRepository
	settings   repository.SettingRepository
	audit      AuditService
	validator  *validator.Validate
	clock      func() time.Time
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewIntakeService constructs the public intake workflow.
func NewIntakeService(applicants repository.ApplicantRepository, settings repository.SettingRepository, audit AuditService, validate *validator.Validate, clock func() time.Time, logger zerolog.Logger) IntakeService {
	if clock == nil {
		clock = time.Now
	}

	return &intakeService{
		applicants: applicants,
		settings:   settings,
		audit:      audit,
		validator:  validate,
		clock:      clock,
		logger:     logger.With().Str("component", "intake_service").Logger(),
		tracer:     otel.Tracer("github.com/muniempleo/intake-api/internal/service/intake"),
	}
}

func (s *intakeService) Submit(ctx context.Context, req dto.SubmitRequest) (*models.Applicant, error) {
	ctx, span := s.tracer.Start(ctx, "intake.submit")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		observability.IntakeSubmissions().WithLabelValues("invalid").Inc()
		return nil, err
	}

	open, err := s.IntakeOpen(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !open {
		span.SetStatus(codes.Error, "intake closed")
		observability.IntakeSubmissions().WithLabelValues("closed").Inc()
		return nil, &IntakeClosedError{}
	}

	tipoDocumento := strings.TrimSpace(req.TipoDocumento)
	numeroDocumento := strings.TrimSpace(req.NumeroDocumento)
	span.SetAttributes(attribute.String("applicant.documento", tipoDocumento+" "+numeroDocumento))

	existing, err := s.applicants.FindByDocument(ctx, tipoDocumento, numeroDocumento)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if existing != nil {
		span.SetStatus(codes.Error, "duplicate document")
		observability.IntakeSubmissions().WithLabelValues("duplicate").Inc()
		return nil, &DuplicateError{
			TipoDocumento:   tipoDocumento,
			NumeroDocumento: numeroDocumento,
			Convocatoria:    existing.Convocatoria,
		}
	}

	applicant := models.Applicant{
		CreatedAt:         s.clock(),
		Area:              strings.TrimSpace(req.Area),
		Convocatoria:      strings.TrimSpace(req.Convocatoria),
		Apellidos:         strings.ToUpper(strings.TrimSpace(req.Apellidos)),
		Nombres:           strings.ToUpper(strings.TrimSpace(req.Nombres)),
		TipoDocumento:     tipoDocumento,
		NumeroDocumento:   numeroDocumento,
		FechaNacimiento:   strings.TrimSpace(req.FechaNacimiento),
		Sexo:              strings.TrimSpace(req.Sexo),
		Celular:           strings.TrimSpace(req.Celular),
		Correo:            strings.TrimSpace(req.Correo),
		FuerzasArmadas:    strings.TrimSpace(req.FuerzasArmadas),
		TieneDiscapacidad: strings.TrimSpace(req.TieneDiscapacidad),
		TipoDiscapacidad:  strings.TrimSpace(req.TipoDiscapacidad),
	}

	if err := s.applicants.Create(ctx, &applicant); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.IntakeSubmissions().WithLabelValues("error").Inc()
		return nil, err
	}

	observability.IntakeSubmissions().WithLabelValues("accepted").Inc()
	s.logger.Info().
		Str("documento", tipoDocumento+" "+numeroDocumento).
		Str("convocatoria", applicant.Convocatoria).
		Msg("applicant registered")
	span.SetStatus(codes.Ok, "registered")

	return &applicant, nil
}

func (s *intakeService) Verify(ctx context.Context, req dto.VerifyRequest) (dto.VerifyResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.VerifyResult{}, err
	}

	applicant, err := s.applicants.FindByDocument(ctx, strings.TrimSpace(req.TipoDocumento), strings.TrimSpace(req.NumeroDocumento))
	if err != nil {
		return dto.VerifyResult{}, err
	}
	if applicant == nil {
		return dto.VerifyResult{Existe: false}, nil
	}

	return dto.VerifyResult{
		Existe:        true,
		Convocatoria:  applicant.Convocatoria,
		Area:          applicant.Area,
		Apellidos:     applicant.Apellidos,
		Nombres:       applicant.Nombres,
		FechaRegistro: applicant.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// IntakeOpen defaults to open when the flag was never written.
func (s *intakeService) IntakeOpen(ctx context.Context) (bool, error) {
	valor, found, err := s.settings.Get(ctx, models.SettingIntakeOpen)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}
	return valor == "1", nil
}

func (s *intakeService) SetIntakeOpen(ctx context.Context, open bool, actor string) error {
	valor := "0"
	accion := "Cerró la convocatoria"
	if open {
		valor = "1"
		accion = "Abrió la convocatoria"
	}

	if err := s.settings.Set(ctx, models.SettingIntakeOpen, valor); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, accion)
	s.logger.Info().Bool("activa", open).Str("actor", actor).Msg("intake toggled")

	return nil
}
