package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/middlewares"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/internal/app/services"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/safatanc/gsalt-deals/pkg/ratelimit"
)

type RedemptionHandler struct {
	verificationService *services.VerificationService
	offerService        *services.OfferService
	ledgerService       *services.RedemptionLedgerService
	validator           *infrastructures.Validator
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewRedemptionHandler(
	verificationService *services.VerificationService,
	offerService *services.OfferService,
	ledgerService *services.RedemptionLedgerService,
	validator *infrastructures.Validator,
	authMiddleware *middlewares.AuthMiddleware,
	rateLimitMiddleware *middlewares.RateLimitMiddleware,
) *RedemptionHandler {
	return &RedemptionHandler{
		verificationService: verificationService,
		offerService:        offerService,
		ledgerService:       ledgerService,
		validator:           validator,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *RedemptionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/offers/:id/redemptions/walk-up",
		h.authMiddleware.AuthConnect,
		h.rateLimitMiddleware.LimitByActor("walk-up", ratelimit.WalkUpLimit),
		h.RedeemWithoutCode,
	)
	router.Get("/offers/:id/redemptions", h.authMiddleware.AuthConnect, h.GetOfferRedemptions)

	redemptionGroup := router.Group("/redemptions", h.authMiddleware.AuthConnect)
	redemptionGroup.Get("/me", h.GetMyRedemptions)
	redemptionGroup.Get("/:id", h.GetRedemption)
}

func (h *RedemptionHandler) RedeemWithoutCode(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.WalkUpRedemptionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}
	if err := h.validator.Validate(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.verificationService.RedeemWithoutCode(c.UserContext(), c.Params("id"), req.UserID, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.VerifyResponse(c, result)
}

func (h *RedemptionHandler) GetOfferRedemptions(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var pagination models.PaginationRequest
	if err := c.QueryParser(&pagination); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid pagination parameters"))
	}

	redemptions, err := h.offerService.GetOfferRedemptions(c.UserContext(), c.Params("id"), actor, &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemptions)
}

func (h *RedemptionHandler) GetMyRedemptions(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var pagination models.PaginationRequest
	if err := c.QueryParser(&pagination); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid pagination parameters"))
	}

	redemptions, err := h.ledgerService.GetRedemptionsByUser(c.UserContext(), actor.ID, &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemptions)
}

func (h *RedemptionHandler) GetRedemption(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	redemption, err := h.offerService.GetRedemption(c.UserContext(), c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}
