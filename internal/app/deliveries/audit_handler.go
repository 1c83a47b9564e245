package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/middlewares"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/internal/app/services"
)

type AuditHandler struct {
	auditService   *services.AuditService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAuditHandler(auditService *services.AuditService, authMiddleware *middlewares.AuthMiddleware) *AuditHandler {
	return &AuditHandler{
		auditService:   auditService,
		authMiddleware: authMiddleware,
	}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/audit-logs", h.authMiddleware.AuthConnect, h.GetAuditLogs)
}

// GetAuditLogs lists audit entries for admins, optionally narrowed to one record.
func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if !services.Can(actor, services.CapabilityViewAuditLog, nil) {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("Audit log is restricted to administrators"))
	}

	if recordId := c.Query("record_id"); recordId != "" {
		recordUUID, err := uuid.Parse(recordId)
		if err != nil {
			return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid record ID format"))
		}
		logs, err := h.auditService.GetAuditLogsForRecord(c.UserContext(), recordUUID)
		if err != nil {
			return pkg.ErrorResponse(c, err)
		}
		return pkg.SuccessResponse(c, logs)
	}

	var pagination models.PaginationRequest
	if err := c.QueryParser(&pagination); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid pagination parameters"))
	}

	logs, err := h.auditService.GetAuditLogs(c.UserContext(), &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, logs)
}
