package service

import (
	"context"
	"errors"
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
	"github.com/muniempleo/intake-api/internal/observability"
	"github.com/muniempleo/intake-api/internal/repository"
)

// ErrApplicantNotFound means the targeted applicant id does not exist.
var ErrApplicantNotFound = errors.New("postulante no encontrado")

// ConflictError reports a claim or edit that lost the race: the row is
// already owned by another staff member. Losing the race is an expected
// outcome under concurrency, not a fault.
type ConflictError struct {
	Claimant string
}

func (e *ConflictError) Error() string {
	if e.Claimant == "" {
		return "el postulante ya fue atendido"
	}
	return fmt.Sprintf("el postulante ya fue atendido por %s", e.Claimant)
}

// ClaimService assigns applicants to staff members. The conditional update
// in the repository is the sole synchronization point: for any applicant,
// at most one non-null claimant is ever observed.
type ClaimService interface {
	Claim(ctx context.Context, id uint, username string) (string, error)
	Edit(ctx context.Context, req dto.EditRequest, actor string) error
	Delete(ctx context.Context, id uint, actor string) error
}

type claimService struct {
	applicants repository.ApplicantRepository
	audit      AuditService
	validator  *validator.Validate
	clock      func() time.Time
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewClaimService constructs the claim workflow.
func NewClaimService(applicants repository.ApplicantRepository, audit AuditService, validate *validator.Validate, clock func() time.Time, logger zerolog.Logger) ClaimService {
	if clock == nil {
		clock = time.Now
	}

	return &claimService{
		applicants: applicants,
		audit:      audit,
		validator:  validate,
		clock:      clock,
		logger:     logger.With().Str("component", "claim_service").Logger(),
		tracer:     otel.Tracer("github.com/muniempleo/intake-api/internal/service/claim"),
	}
}

// Claim performs the single conditional update. Zero rows affected means
// either the id never existed or another staff member won the race; the
// follow-up read distinguishes the two.
func (s *claimService) Claim(ctx context.Context, id uint, username string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "claim.receive")
	defer span.End()
	span.SetAttributes(attribute.Int("applicant.id", int(id)), attribute.String("claim.usuario", username))

	affected, err := s.applicants.Claim(ctx, id, username, s.clock())
	if err != nil {
		span.RecordError(err)
		observability.ClaimAttempts().WithLabelValues("error").Inc()
		return "", err
	}

	if affected == 0 {
		applicant, err := s.applicants.FindByID(ctx, id)
		if err != nil {
			span.RecordError(err)
			observability.ClaimAttempts().WithLabelValues("error").Inc()
			return "", err
		}
		if applicant == nil {
			span.SetStatus(codes.Error, "not found")
			observability.ClaimAttempts().WithLabelValues("not_found").Inc()
			return "", ErrApplicantNotFound
		}

		claimant := ""
		if applicant.UsuarioAtendio != nil {
			claimant = *applicant.UsuarioAtendio
		}
		span.SetStatus(codes.Error, "lost claim race")
		observability.ClaimAttempts().WithLabelValues("conflict").Inc()
		return "", &ConflictError{Claimant: claimant}
	}

	applicant, err := s.applicants.FindByID(ctx, id)
	if err != nil || applicant == nil {
		// The claim itself succeeded; the display name is only for logging.
		s.audit.Record(ctx, username, fmt.Sprintf("Recibió al postulante ID %d", id))
		observability.ClaimAttempts().WithLabelValues("success").Inc()
		span.SetStatus(codes.Ok, "claimed")
		return "", nil
	}

	displayName := fmt.Sprintf("%s, %s", applicant.Apellidos, applicant.Nombres)
	s.audit.Record(ctx, username, fmt.Sprintf("Recibió a %s", displayName))
	observability.ClaimAttempts().WithLabelValues("success").Inc()
	s.logger.Info().Uint("id", id).Str("usuario", username).Msg("applicant claimed")
	span.SetStatus(codes.Ok, "claimed")

	return displayName, nil
}

// Edit mutates biographical fields only while the row is unclaimed. Zero
// rows affected on an existing row means it may have just been claimed.
func (s *claimService) Edit(ctx context.Context, req dto.EditRequest, actor string) error {
	ctx, span := s.tracer.Start(ctx, "claim.edit")
	defer span.End()
	span.SetAttributes(attribute.Int("applicant.id", int(req.ID)))

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		return err
	}

	fields := map[string]interface{}{
		"area":               strings.TrimSpace(req.Area),
		"convocatoria":       strings.TrimSpace(req.Convocatoria),
		"apellidos":          strings.ToUpper(strings.TrimSpace(req.Apellidos)),
		"nombres":            strings.ToUpper(strings.TrimSpace(req.Nombres)),
		"fecha_nacimiento":   strings.TrimSpace(req.FechaNacimiento),
		"sexo":               strings.TrimSpace(req.Sexo),
		"celular":            strings.TrimSpace(req.Celular),
		"correo":             strings.TrimSpace(req.Correo),
		"fuerzas_armadas":    strings.TrimSpace(req.FuerzasArmadas),
		"tiene_discapacidad": strings.TrimSpace(req.TieneDiscapacidad),
		"tipo_discapacidad":  strings.TrimSpace(req.TipoDiscapacidad),
	}

	affected, err := s.applicants.UpdateUnclaimed(ctx, req.ID, fields)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if affected == 0 {
		applicant, err := s.applicants.FindByID(ctx, req.ID)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if applicant == nil {
			span.SetStatus(codes.Error, "not found")
			return ErrApplicantNotFound
		}

		claimant := ""
		if applicant.UsuarioAtendio != nil {
			claimant = *applicant.UsuarioAtendio
		}
		span.SetStatus(codes.Error, "row already claimed")
		return &ConflictError{Claimant: claimant}
	}

	s.audit.Record(ctx, actor, fmt.Sprintf("Editó al postulante ID %d", req.ID))
	span.SetStatus(codes.Ok, "edited")

	return nil
}

// Delete is unconditional: claimed or not, last writer wins.
func (s *claimService) Delete(ctx context.Context, id uint, actor string) error {
	applicant, err := s.applicants.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.applicants.Delete(ctx, id); err != nil {
		return err
	}

	if applicant != nil {
		s.audit.Record(ctx, actor, fmt.Sprintf("Eliminó a %s, %s", applicant.Apellidos, applicant.Nombres))
	} else {
		s.audit.Record(ctx, actor, fmt.Sprintf("Eliminó al postulante ID %d", id))
	}

	s.logger.Info().Uint("id", id).Str("actor", actor).Msg("applicant deleted")

	return nil
}
