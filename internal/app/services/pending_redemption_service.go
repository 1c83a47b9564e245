package services

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/app/pkg"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"gorm.io/gorm"
)

// issueAttempts bounds retries when a freshly generated code collides with an
// existing (offer_id, code) pair.
const issueAttempts = 3

var ErrCodeCollision = stdErrors.New("redemption code collision")

// PendingRedemptionService stores issued codes. A code is consumed at most once;
// expiry is evaluated lazily by readers, never written.
type PendingRedemptionService struct {
	db           *gorm.DB
	ttl          time.Duration
	generateCode func() (string, error)
}

func NewPendingRedemptionService(db *gorm.DB, config *infrastructures.AppConfig) *PendingRedemptionService {
	ttl := config.PENDING_CODE_TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PendingRedemptionService{
		db:           db,
		ttl:          ttl,
		generateCode: pkg.GenerateRedemptionCode,
	}
}

// WithTx returns a copy of the service bound to tx.
func (s *PendingRedemptionService) WithTx(tx *gorm.DB) *PendingRedemptionService {
	return &PendingRedemptionService{
		db:           tx,
		ttl:          s.ttl,
		generateCode: s.generateCode,
	}
}

// Issue persists a new code for userID on offerID, valid for the configured TTL from issuedAt.
func (s *PendingRedemptionService) Issue(ctx context.Context, offerID, userID uuid.UUID, issuedAt time.Time) (*models.PendingRedemption, error) {
	for attempt := 0; attempt < issueAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to generate redemption code")
		}

		pending := &models.PendingRedemption{
			OfferID:   offerID,
			UserID:    userID,
			Code:      code,
			IssuedAt:  issuedAt,
			ExpiresAt: issuedAt.Add(s.ttl),
		}

		err = s.db.WithContext(ctx).Create(pending).Error
		if err == nil {
			return pending, nil
		}
		if dup, _ := uniqueViolation(err); !dup {
			return nil, errors.NewInternalServerError(err, "Failed to issue redemption code")
		}
	}

	return nil, errors.NewInternalServerError(ErrCodeCollision, "Failed to issue redemption code")
}

// FindUnconsumed returns the unconsumed record for (offerID, code), or nil when none exists.
func (s *PendingRedemptionService) FindUnconsumed(ctx context.Context, offerID uuid.UUID, code string) (*models.PendingRedemption, error) {
	var pending models.PendingRedemption
	err := s.db.WithContext(ctx).
		Where("offer_id = ? AND code = ? AND consumed = ?", offerID, code, false).
		First(&pending).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewInternalServerError(err, "Failed to look up redemption code")
	}

	return &pending, nil
}

// TryConsume flips consumed from false to true with a single conditional update.
// Exactly one concurrent caller for a given id gets true.
func (s *PendingRedemptionService) TryConsume(ctx context.Context, pendingID uuid.UUID, at time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.PendingRedemption{}).
		Where("id = ? AND consumed = ?", pendingID, false).
		Updates(map[string]interface{}{
			"consumed":    true,
			"consumed_at": at,
		})
	if result.Error != nil {
		return false, errors.NewInternalServerError(result.Error, "Failed to consume redemption code")
	}

	return result.RowsAffected == 1, nil
}

func (s *PendingRedemptionService) GetPendingRedemption(ctx context.Context, pendingId string) (*models.PendingRedemption, error) {
	pendingUUID, err := uuid.Parse(pendingId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid redemption code ID format")
	}

	var pending models.PendingRedemption
	err = s.db.WithContext(ctx).Where("id = ?", pendingUUID).First(&pending).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Redemption code not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get redemption code")
	}

	return &pending, nil
}

func (s *PendingRedemptionService) GetPendingRedemptionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.PendingRedemption, error) {
	var pendings []models.PendingRedemption
	query := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("issued_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&pendings).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get redemption codes")
	}

	return pendings, nil
}

// PurgeExpired deletes unconsumed codes that expired before the cutoff.
// Consumed codes are kept for audit.
func (s *PendingRedemptionService) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("consumed = ? AND expires_at < ?", false, before).
		Delete(&models.PendingRedemption{})
	if result.Error != nil {
		return 0, errors.NewInternalServerError(result.Error, "Failed to purge expired redemption codes")
	}

	return result.RowsAffected, nil
}
