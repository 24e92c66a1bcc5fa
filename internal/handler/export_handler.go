package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/service"
)

// ExportHandler serves the claimed-applicant report downloads.
type ExportHandler struct {
	service service.ExportService
	logger  zerolog.Logger
}

// NewExportHandler constructs the export endpoints.
func NewExportHandler(service service.ExportService, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With().Str("component", "export_handler").Logger(),
	}
}

// CSV streams the claimed applicants as a CSV attachment.
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	payload, filename, err := h.service.ClaimedCSV(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))

	return c.Send(payload)
}

// Excel streams the claimed applicants as a styled XLSX attachment.
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	payload, filename, err := h.service.ClaimedXLSX(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))

	return c.Send(payload)
}
