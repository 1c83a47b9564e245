package deliveries

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/middlewares"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/internal/app/services"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/safatanc/gsalt-deals/pkg/ratelimit"
)

// RedemptionCodeHandler exposes issuance to customers and verification to venue operators.
type RedemptionCodeHandler struct {
	verificationService *services.VerificationService
	pendingService      *services.PendingRedemptionService
	validator           *infrastructures.Validator
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewRedemptionCodeHandler(
	verificationService *services.VerificationService,
	pendingService *services.PendingRedemptionService,
	validator *infrastructures.Validator,
	authMiddleware *middlewares.AuthMiddleware,
	rateLimitMiddleware *middlewares.RateLimitMiddleware,
) *RedemptionCodeHandler {
	return &RedemptionCodeHandler{
		verificationService: verificationService,
		pendingService:      pendingService,
		validator:           validator,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *RedemptionCodeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/redemption-codes/me", h.authMiddleware.AuthConnect, h.GetMyRedemptionCodes)

	codeGroup := router.Group("/offers/:id/redemption-codes", h.authMiddleware.AuthConnect)
	codeGroup.Post("/", h.rateLimitMiddleware.LimitByActor("issue", ratelimit.IssueLimit), h.IssueRedemptionCode)
	codeGroup.Post("/verify", h.rateLimitMiddleware.LimitByActor("verify", ratelimit.AuthenticatedAPILimit), h.VerifyRedemptionCode)
}

func (h *RedemptionCodeHandler) IssueRedemptionCode(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.verificationService.IssueRedemptionCode(c.UserContext(), c.Params("id"), actor.ID.String())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.IssueResponse(c, result)
}

func (h *RedemptionCodeHandler) VerifyRedemptionCode(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.verificationService.VerifyRedemptionCode(c.UserContext(), c.Params("id"), req.Code, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.VerifyResponse(c, result)
}

func (h *RedemptionCodeHandler) GetMyRedemptionCodes(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var pagination models.PaginationRequest
	if err := c.QueryParser(&pagination); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid pagination parameters"))
	}
	pagination.Normalize()

	codes, err := h.pendingService.GetPendingRedemptionsByUser(c.UserContext(), actor.ID, pagination.Limit, pagination.Offset())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	now := time.Now().UTC()
	responses := make([]models.PendingRedemptionResponse, 0, len(codes))
	for i := range codes {
		responses = append(responses, models.NewPendingRedemptionResponse(&codes[i], now))
	}

	return pkg.SuccessResponse(c, responses)
}
