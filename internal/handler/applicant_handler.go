package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/repository"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// ApplicantHandler serves the staff-facing applicant listings and the
// claim/edit/delete workflow.
type ApplicantHandler struct {
	applicants repository.ApplicantRepository
	claims     service.ClaimService
	logger     zerolog.Logger
}

// NewApplicantHandler constructs the applicant endpoints.
func NewApplicantHandler(applicants repository.ApplicantRepository, claims service.ClaimService, logger zerolog.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		applicants: applicants,
		claims:     claims,
		logger:     logger.With().Str("component", "applicant_handler").Logger(),
	}
}

// New lists every applicant with id greater than after_id. Admin polling.
func (h *ApplicantHandler) New(c *fiber.Ctx) error {
	return h.listAfter(c, repository.FilterAll)
}

// PendingNew lists unclaimed applicants after the cursor. Staff polling.
func (h *ApplicantHandler) PendingNew(c *fiber.Ctx) error {
	return h.listAfter(c, repository.FilterPending)
}

// ClaimedNew lists claimed applicants after the cursor. Admin polling.
func (h *ApplicantHandler) ClaimedNew(c *fiber.Ctx) error {
	return h.listAfter(c, repository.FilterClaimed)
}

func (h *ApplicantHandler) listAfter(c *fiber.Ctx, filter repository.ClaimFilter) error {
	afterID, err := strconv.ParseUint(c.Query("after_id", "0"), 10, 64)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "after_id inválido")
	}

	items, err := h.applicants.ListAfter(c.Context(), uint(afterID), filter)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"items": items})
}

// Pending lists every unclaimed applicant, newest first.
func (h *ApplicantHandler) Pending(c *fiber.Ctx) error {
	items, err := h.applicants.ListPending(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"items": items})
}

// Claim receives an applicant for the authenticated staff member.
func (h *ApplicantHandler) Claim(c *fiber.Ctx) error {
	var payload dto.ClaimRequest
	if err := c.BodyParser(&payload); err != nil || payload.ID == 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "ID no proporcionado")
	}

	principal, _ := middleware.Principal(c)
	displayName, err := h.claims.Claim(c.Context(), payload.ID, principal.Username)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"postulante": displayName})
}

// Edit updates an applicant's fields while it is still unclaimed.
func (h *ApplicantHandler) Edit(c *fiber.Ctx) error {
	var payload dto.EditRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Completa todos los campos")
	}
	if payload.ID == 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "ID no proporcionado")
	}

	principal, _ := middleware.Principal(c)
	if err := h.claims.Edit(c.Context(), payload, principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}

// Delete removes an applicant, claimed or not.
func (h *ApplicantHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	principal, _ := middleware.Principal(c)
	if err := h.claims.Delete(c.Context(), uint(id), principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}
