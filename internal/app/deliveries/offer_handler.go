package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/middlewares"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/internal/app/services"
)

type OfferHandler struct {
	offerService   *services.OfferService
	authMiddleware *middlewares.AuthMiddleware
}

func NewOfferHandler(offerService *services.OfferService, authMiddleware *middlewares.AuthMiddleware) *OfferHandler {
	return &OfferHandler{
		offerService:   offerService,
		authMiddleware: authMiddleware,
	}
}

func (h *OfferHandler) RegisterRoutes(router fiber.Router) {
	offerGroup := router.Group("/offers")

	// Public endpoints
	offerGroup.Get("/", h.GetOffers)
	offerGroup.Get("/:id", h.GetOffer)

	// Protected endpoints
	offerGroup.Post("/", h.authMiddleware.AuthConnect, h.CreateOffer)
	offerGroup.Patch("/:id", h.authMiddleware.AuthConnect, h.UpdateOffer)
}

func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.OfferCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}

	offer, err := h.offerService.CreateOffer(c.UserContext(), &req, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Status(fiber.StatusCreated)
	return pkg.SuccessResponse(c, offer)
}

func (h *OfferHandler) GetOffer(c *fiber.Ctx) error {
	offer, err := h.offerService.GetOffer(c.UserContext(), c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, offer)
}

func (h *OfferHandler) GetOffers(c *fiber.Ctx) error {
	var pagination models.PaginationRequest
	if err := c.QueryParser(&pagination); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid pagination parameters"))
	}

	var venueId *string
	if v := c.Query("venue_id"); v != "" {
		venueId = &v
	}

	offers, err := h.offerService.GetOffers(c.UserContext(), &pagination, venueId)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, offers)
}

func (h *OfferHandler) UpdateOffer(c *fiber.Ctx) error {
	actor, err := middlewares.CurrentActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var req models.OfferUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid request body"))
	}

	offer, err := h.offerService.UpdateOffer(c.UserContext(), c.Params("id"), &req, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, offer)
}
