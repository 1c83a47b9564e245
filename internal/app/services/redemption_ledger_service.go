package services

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyRedeemedToday = stdErrors.New("user already redeemed this offer today")
	ErrCodeAlreadyRedeemed  = stdErrors.New("redemption code already produced a redemption")
)

var redemptionOrderFields = map[string]string{
	"redeemed_at": "redeemed_at",
	"redeemed_on": "redeemed_on",
}

// RedemptionLedgerService is the append-only store of committed redemptions.
// Daily uniqueness and one-redemption-per-code are enforced by unique indexes.
type RedemptionLedgerService struct {
	db *gorm.DB
}

func NewRedemptionLedgerService(db *gorm.DB) *RedemptionLedgerService {
	return &RedemptionLedgerService{db: db}
}

// WithTx returns a copy of the ledger bound to tx.
func (s *RedemptionLedgerService) WithTx(tx *gorm.DB) *RedemptionLedgerService {
	return &RedemptionLedgerService{db: tx}
}

func (s *RedemptionLedgerService) HasRedeemedOn(ctx context.Context, userID, offerID uuid.UUID, day string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Redemption{}).
		Where("user_id = ? AND offer_id = ? AND redeemed_on = ?", userID, offerID, day).
		Count(&count).Error
	if err != nil {
		return false, errors.NewInternalServerError(err, "Failed to check daily redemption")
	}

	return count > 0, nil
}

// CountForOffer counts committed redemptions only.
func (s *RedemptionLedgerService) CountForOffer(ctx context.Context, offerID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Redemption{}).
		Where("offer_id = ?", offerID).
		Count(&count).Error
	if err != nil {
		return 0, errors.NewInternalServerError(err, "Failed to count redemptions")
	}

	return count, nil
}

// Append inserts record. A unique violation comes back as ErrAlreadyRedeemedToday
// or ErrCodeAlreadyRedeemed; any other failure is an internal error.
func (s *RedemptionLedgerService) Append(ctx context.Context, record *models.Redemption) (*models.Redemption, error) {
	record.ID = uuid.Nil

	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		if dup, constraint := uniqueViolation(err); dup {
			if strings.Contains(constraint, "pending_redemption_id") {
				return nil, ErrCodeAlreadyRedeemed
			}
			return nil, ErrAlreadyRedeemedToday
		}
		return nil, errors.NewInternalServerError(err, "Failed to append redemption")
	}

	return record, nil
}

func (s *RedemptionLedgerService) GetRedemption(ctx context.Context, redemptionId string) (*models.Redemption, error) {
	redemptionUUID, err := uuid.Parse(redemptionId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid redemption ID format")
	}

	var redemption models.Redemption
	err = s.db.WithContext(ctx).Where("id = ?", redemptionUUID).First(&redemption).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Redemption not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get redemption")
	}

	return &redemption, nil
}

func (s *RedemptionLedgerService) GetRedemptionsByOffer(ctx context.Context, offerID uuid.UUID, pagination *models.PaginationRequest) (*models.Pagination[[]models.Redemption], error) {
	return s.paginate(ctx, s.db.WithContext(ctx).Model(&models.Redemption{}).Where("offer_id = ?", offerID), pagination)
}

func (s *RedemptionLedgerService) GetRedemptionsByUser(ctx context.Context, userID uuid.UUID, pagination *models.PaginationRequest) (*models.Pagination[[]models.Redemption], error) {
	return s.paginate(ctx, s.db.WithContext(ctx).Model(&models.Redemption{}).Where("user_id = ?", userID), pagination)
}

func (s *RedemptionLedgerService) paginate(ctx context.Context, query *gorm.DB, pagination *models.PaginationRequest) (*models.Pagination[[]models.Redemption], error) {
	pagination.Normalize()

	var totalItems int64
	if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count redemptions")
	}

	var redemptions []models.Redemption
	err := query.Order(pagination.OrderClause(redemptionOrderFields, "redeemed_at")).
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&redemptions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get redemptions")
	}

	return models.NewPagination(pagination, totalItems, redemptions), nil
}
