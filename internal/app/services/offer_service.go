package services

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var offerOrderFields = map[string]string{
	"created_at": "created_at",
	"starts_at":  "starts_at",
	"ends_at":    "ends_at",
	"title":      "title",
}

type OfferService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
	ledger    *RedemptionLedgerService
	audit     *AuditService
}

func NewOfferService(db *gorm.DB, validator *infrastructures.Validator, ledger *RedemptionLedgerService, audit *AuditService) *OfferService {
	return &OfferService{
		db:        db,
		validator: validator,
		ledger:    ledger,
		audit:     audit,
	}
}

// WithTx returns a copy of the service bound to tx.
func (s *OfferService) WithTx(tx *gorm.DB) *OfferService {
	return &OfferService{
		db:        tx,
		validator: s.validator,
		ledger:    s.ledger.WithTx(tx),
		audit:     s.audit,
	}
}

func (s *OfferService) CreateOffer(ctx context.Context, req *models.OfferCreateRequest, actor models.Actor) (*models.Offer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	venueUUID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid venue ID format")
	}

	ownerUUID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid owner ID format")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	offer := &models.Offer{
		VenueID:            venueUUID,
		OwnerID:            ownerUUID,
		Title:              req.Title,
		Description:        req.Description,
		Active:             active,
		StartsAt:           req.StartsAt.UTC(),
		EndsAt:             req.EndsAt.UTC(),
		MaxRedemptions:     req.MaxRedemptions,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		Currency:           req.Currency,
		CreatedBy:          &actor.ID,
	}

	if !Can(actor, CapabilityManageOffer, offer) {
		return nil, errors.NewForbiddenError("Not allowed to create offers for this owner")
	}

	if err := s.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create offer")
	}

	s.logAudit(ctx, offer.ID, models.AuditActionCreate, nil, offer, actor)
	return offer, nil
}

func (s *OfferService) GetOffer(ctx context.Context, offerId string) (*models.Offer, error) {
	offerUUID, err := uuid.Parse(offerId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid offer ID format")
	}

	return s.FindOffer(ctx, offerUUID)
}

func (s *OfferService) FindOffer(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.WithContext(ctx).Where("id = ?", offerID).First(&offer).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Offer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get offer")
	}

	return &offer, nil
}

// LockOffer reads the offer under a row lock. It must run inside a transaction;
// it serializes capacity accounting for one offer across concurrent writers.
func (s *OfferService) LockOffer(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", offerID).
		First(&offer).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Offer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to lock offer")
	}

	return &offer, nil
}

func (s *OfferService) GetOffers(ctx context.Context, pagination *models.PaginationRequest, venueId *string) (*models.Pagination[[]models.Offer], error) {
	pagination.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Offer{})
	if venueId != nil {
		venueUUID, err := uuid.Parse(*venueId)
		if err != nil {
			return nil, errors.NewBadRequestError("Invalid venue ID format")
		}
		query = query.Where("venue_id = ?", venueUUID)
	}

	var totalItems int64
	if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count offers")
	}

	var offers []models.Offer
	err := query.Order(pagination.OrderClause(offerOrderFields, "created_at")).
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&offers).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get offers")
	}

	return models.NewPagination(pagination, totalItems, offers), nil
}

func (s *OfferService) UpdateOffer(ctx context.Context, offerId string, req *models.OfferUpdateRequest, actor models.Actor) (*models.Offer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	offer, err := s.GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}

	if !Can(actor, CapabilityManageOffer, offer) {
		return nil, errors.NewForbiddenError("Not allowed to manage this offer")
	}

	previous := *offer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txService := s.WithTx(tx)
		locked, err := txService.LockOffer(ctx, offer.ID)
		if err != nil {
			return err
		}
		if err := txService.applyUpdate(ctx, locked, req); err != nil {
			return err
		}
		if err := tx.Save(locked).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update offer")
		}
		offer = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := models.AuditActionUpdate
	if previous.Active != offer.Active {
		action = models.AuditActionStatusChange
	}
	s.logAudit(ctx, offer.ID, action, previous, offer, actor)
	return offer, nil
}

// logAudit records a committed offer change. A failed audit write never undoes the change.
func (s *OfferService) logAudit(ctx context.Context, offerID uuid.UUID, action models.AuditAction, oldData, newData interface{}, actor models.Actor) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAudit(ctx, "offers", offerID, action, oldData, newData, &actor.ID); err != nil {
		logrus.WithError(err).WithField("offer_id", offerID).Warn("audit log skipped")
	}
}

// applyUpdate mutates offer in place. The committed count is read on the
// same transaction that holds the offer lock, so a ceiling can never drop
// below redemptions that already exist.
func (s *OfferService) applyUpdate(ctx context.Context, offer *models.Offer, req *models.OfferUpdateRequest) error {
	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = req.Description
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}
	if req.StartsAt != nil {
		offer.StartsAt = req.StartsAt.UTC()
	}
	if req.EndsAt != nil {
		offer.EndsAt = req.EndsAt.UTC()
	}
	if req.DiscountPercentage != nil {
		offer.DiscountPercentage = req.DiscountPercentage
	}
	if req.DiscountAmount != nil {
		offer.DiscountAmount = req.DiscountAmount
	}
	if req.ClearMaxRedemption {
		offer.MaxRedemptions = nil
	} else if req.MaxRedemptions != nil {
		committed, err := s.ledger.CountForOffer(ctx, offer.ID)
		if err != nil {
			return err
		}
		if int64(*req.MaxRedemptions) < committed {
			return errors.NewConflictError("Max redemptions cannot be lower than redemptions already made")
		}
		offer.MaxRedemptions = req.MaxRedemptions
	}

	if !offer.EndsAt.After(offer.StartsAt) {
		return errors.NewBadRequestError("Offer must end after it starts")
	}
	return nil
}

// GetOfferRedemptions lists the ledger for one offer to its operator or an admin.
func (s *OfferService) GetOfferRedemptions(ctx context.Context, offerId string, actor models.Actor, pagination *models.PaginationRequest) (*models.Pagination[[]models.Redemption], error) {
	offer, err := s.GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}

	if !Can(actor, CapabilityViewRedemptions, offer) {
		return nil, errors.NewForbiddenError("Not allowed to view redemptions for this offer")
	}

	return s.ledger.GetRedemptionsByOffer(ctx, offer.ID, pagination)
}

// GetRedemption returns one ledger entry to the redeeming user, the offer's operator or an admin.
func (s *OfferService) GetRedemption(ctx context.Context, redemptionId string, actor models.Actor) (*models.Redemption, error) {
	redemption, err := s.ledger.GetRedemption(ctx, redemptionId)
	if err != nil {
		return nil, err
	}

	if redemption.UserID == actor.ID {
		return redemption, nil
	}

	offer, err := s.FindOffer(ctx, redemption.OfferID)
	if err != nil {
		return nil, err
	}
	if !Can(actor, CapabilityViewRedemptions, offer) {
		return nil, errors.NewNotFoundError("Redemption not found")
	}

	return redemption, nil
}
