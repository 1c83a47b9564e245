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
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	operationIssue  = "issue"
	operationVerify = "verify"
	operationWalkUp = "walk_up"
)

// rejection aborts the finalize transaction with a business outcome instead of a fault.
type rejection struct {
	reason models.RedemptionReason
	detail models.RedemptionReason
}

func (r *rejection) Error() string {
	return string(r.reason)
}

// VerificationService drives a code from ISSUED to REDEEMED. All read checks run
// before the consume; the consume and the ledger append share one transaction.
type VerificationService struct {
	db            *gorm.DB
	offers        *OfferService
	pending       *PendingRedemptionService
	ledger        *RedemptionLedgerService
	audit         *AuditService
	notifier      NotificationSender
	metrics       *infrastructures.Metrics
	logger        *logrus.Logger
	location      *time.Location
	notifyTimeout time.Duration
	tracer        trace.Tracer
	now           func() time.Time

	// beforeCommit runs once the read checks pass, just before the write transaction.
	beforeCommit func()
}

func NewVerificationService(
	db *gorm.DB,
	offers *OfferService,
	pending *PendingRedemptionService,
	ledger *RedemptionLedgerService,
	audit *AuditService,
	notifier NotificationSender,
	metrics *infrastructures.Metrics,
	logger *logrus.Logger,
	config *infrastructures.AppConfig,
) *VerificationService {
	notifyTimeout := config.NOTIFICATION_TIMEOUT
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &VerificationService{
		db:            db,
		offers:        offers,
		pending:       pending,
		ledger:        ledger,
		audit:         audit,
		notifier:      notifier,
		metrics:       metrics,
		logger:        logger,
		location:      config.Location(),
		notifyTimeout: notifyTimeout,
		tracer:        otel.Tracer("gsalt-deals/verification"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// IssueRedemptionCode mints a code for userId. Offer checks here are advisory;
// verification re-runs them.
func (s *VerificationService) IssueRedemptionCode(ctx context.Context, offerId, userId string) (*models.IssueResult, error) {
	ctx, span := s.tracer.Start(ctx, "redemption.issue", trace.WithAttributes(
		attribute.String("offer.id", offerId),
		attribute.String("user.id", userId),
	))
	defer span.End()

	result, err := s.issue(ctx, offerId, userId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	outcome := string(result.Status)
	if result.Status == models.IssueStatusDenied {
		outcome = string(result.Reason)
	}
	span.SetAttributes(attribute.String("redemption.outcome", outcome))
	s.metrics.RedemptionOutcomes.WithLabelValues(operationIssue, outcome).Inc()
	s.logger.WithFields(logrus.Fields{
		"operation": operationIssue,
		"offer_id":  offerId,
		"user_id":   userId,
		"outcome":   result.Status,
		"reason":    result.Reason,
	}).Info("redemption code issuance")

	return result, nil
}

func (s *VerificationService) issue(ctx context.Context, offerId, userId string) (*models.IssueResult, error) {
	userUUID, err := uuid.Parse(userId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid user ID format")
	}

	offer, err := s.offers.GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if rej := s.eligibility(ctx, offer, at); rej != nil {
		if rej.detail != "" {
			return models.IssueDenied(rej.detail), nil
		}
		return models.IssueDenied(rej.reason), nil
	}

	redeemed, err := s.ledger.HasRedeemedOn(ctx, userUUID, offer.ID, pkg.CalendarDay(at, s.location))
	if err != nil {
		return nil, err
	}
	if redeemed {
		return models.IssueDenied(models.ReasonAlreadyRedeemedToday), nil
	}

	pending, err := s.pending.Issue(ctx, offer.ID, userUUID, at)
	if err != nil {
		return nil, err
	}

	return &models.IssueResult{
		Status:              models.IssueStatusIssued,
		PendingRedemptionID: &pending.ID,
		Code:                pending.Code,
		ExpiresAt:           &pending.ExpiresAt,
	}, nil
}

// VerifyRedemptionCode converts a valid code into a ledger entry on behalf of actor.
func (s *VerificationService) VerifyRedemptionCode(ctx context.Context, offerId, code string, actor models.Actor) (*models.VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "redemption.verify", trace.WithAttributes(
		attribute.String("offer.id", offerId),
		attribute.String("operator.id", actor.ID.String()),
	))
	defer span.End()

	result, err := s.verify(ctx, offerId, code, actor)
	return s.finish(span, operationVerify, offerId, actor, result, err)
}

func (s *VerificationService) verify(ctx context.Context, offerId, code string, actor models.Actor) (*models.VerifyResult, error) {
	offer, err := s.offers.GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}

	if !Can(actor, CapabilityVerifyRedemption, offer) {
		return models.VerifyNotAuthorized(), nil
	}

	pending, err := s.pending.FindUnconsumed(ctx, offer.ID, pkg.NormalizeRedemptionCode(code))
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return models.VerifyRejected(models.ReasonInvalidCode), nil
	}

	at := s.now()
	if pending.IsExpired(at) {
		return models.VerifyRejected(models.ReasonCodeExpired), nil
	}

	if rej := s.eligibility(ctx, offer, at); rej != nil {
		return rejectionResult(rej), nil
	}

	day := pkg.CalendarDay(at, s.location)
	redeemed, err := s.ledger.HasRedeemedOn(ctx, pending.UserID, offer.ID, day)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return models.VerifyRejected(models.ReasonAlreadyRedeemedToday), nil
	}

	if s.beforeCommit != nil {
		s.beforeCommit()
	}

	var redemption *models.Redemption
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		won, err := s.pending.WithTx(tx).TryConsume(ctx, pending.ID, at)
		if err != nil {
			return err
		}
		if !won {
			return &rejection{reason: models.ReasonRaceLost}
		}

		redemption, err = s.commit(ctx, tx, offer.ID, &models.Redemption{
			OfferID:             offer.ID,
			UserID:              pending.UserID,
			OperatorID:          actor.ID,
			PendingRedemptionID: &pending.ID,
			Code:                &pending.Code,
			Method:              models.RedemptionMethodCode,
			RedeemedOn:          day,
			RedeemedAt:          at,
		}, at)
		return err
	})
	if err != nil {
		var rej *rejection
		if stdErrors.As(err, &rej) {
			return rejectionResult(rej), nil
		}
		return nil, err
	}

	s.afterCommit(ctx, offer, redemption, actor)
	return &models.VerifyResult{
		Status:     models.VerifyStatusVerified,
		Redemption: models.NewRedemptionSummary(redemption, offer),
	}, nil
}

// RedeemWithoutCode records a walk-up redemption for userId. There is no code to
// consume, so races are settled by the locked capacity recount and the ledger's
// daily unique index alone.
func (s *VerificationService) RedeemWithoutCode(ctx context.Context, offerId, userId string, actor models.Actor) (*models.VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "redemption.walk_up", trace.WithAttributes(
		attribute.String("offer.id", offerId),
		attribute.String("operator.id", actor.ID.String()),
	))
	defer span.End()

	result, err := s.redeemWithoutCode(ctx, offerId, userId, actor)
	return s.finish(span, operationWalkUp, offerId, actor, result, err)
}

func (s *VerificationService) redeemWithoutCode(ctx context.Context, offerId, userId string, actor models.Actor) (*models.VerifyResult, error) {
	userUUID, err := uuid.Parse(userId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid user ID format")
	}

	offer, err := s.offers.GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}

	if !Can(actor, CapabilityVerifyRedemption, offer) {
		return models.VerifyNotAuthorized(), nil
	}

	at := s.now()
	if rej := s.eligibility(ctx, offer, at); rej != nil {
		return rejectionResult(rej), nil
	}

	day := pkg.CalendarDay(at, s.location)
	redeemed, err := s.ledger.HasRedeemedOn(ctx, userUUID, offer.ID, day)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return models.VerifyRejected(models.ReasonAlreadyRedeemedToday), nil
	}

	if s.beforeCommit != nil {
		s.beforeCommit()
	}

	var redemption *models.Redemption
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		redemption, err = s.commit(ctx, tx, offer.ID, &models.Redemption{
			OfferID:    offer.ID,
			UserID:     userUUID,
			OperatorID: actor.ID,
			Method:     models.RedemptionMethodWalkUp,
			RedeemedOn: day,
			RedeemedAt: at,
		}, at)
		return err
	})
	if err != nil {
		var rej *rejection
		if stdErrors.As(err, &rej) {
			return rejectionResult(rej), nil
		}
		return nil, err
	}

	s.afterCommit(ctx, offer, redemption, actor)
	return &models.VerifyResult{
		Status:     models.VerifyStatusVerified,
		Redemption: models.NewRedemptionSummary(redemption, offer),
	}, nil
}

// eligibility runs the advisory offer guard and capacity checks.
func (s *VerificationService) eligibility(ctx context.Context, offer *models.Offer, at time.Time) *rejection {
	if decision := CheckRedeemable(offer, at); !decision.Allowed {
		return &rejection{reason: models.ReasonOfferNotRedeemable, detail: decision.Reason}
	}

	count, err := s.ledger.CountForOffer(ctx, offer.ID)
	if err != nil {
		// The authoritative recount inside the transaction still gates the append.
		s.logger.WithError(err).WithField("offer_id", offer.ID).Warn("advisory capacity check skipped")
		return nil
	}
	if decision := CheckCapacity(offer, count); !decision.Allowed {
		return &rejection{reason: decision.Reason}
	}
	return nil
}

// commit appends record on tx after re-checking the offer under its row lock.
// Any returned error rolls the whole transaction back, including a consume.
func (s *VerificationService) commit(ctx context.Context, tx *gorm.DB, offerID uuid.UUID, record *models.Redemption, at time.Time) (*models.Redemption, error) {
	offer, err := s.offers.WithTx(tx).LockOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if decision := CheckRedeemable(offer, at); !decision.Allowed {
		return nil, &rejection{reason: models.ReasonOfferNotRedeemable, detail: decision.Reason}
	}

	ledger := s.ledger.WithTx(tx)
	count, err := ledger.CountForOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if decision := CheckCapacity(offer, count); !decision.Allowed {
		return nil, &rejection{reason: decision.Reason}
	}

	redemption, err := ledger.Append(ctx, record)
	if err != nil {
		switch {
		case stdErrors.Is(err, ErrAlreadyRedeemedToday):
			return nil, &rejection{reason: models.ReasonAlreadyRedeemedToday}
		case stdErrors.Is(err, ErrCodeAlreadyRedeemed):
			return nil, &rejection{reason: models.ReasonRaceLost}
		}
		return nil, err
	}

	return redemption, nil
}

// afterCommit runs the best-effort side effects of a committed redemption.
// Neither can change the outcome returned to the caller.
func (s *VerificationService) afterCommit(ctx context.Context, offer *models.Offer, redemption *models.Redemption, actor models.Actor) {
	if err := s.audit.LogAudit(ctx, "redemptions", redemption.ID, models.AuditActionCreate, nil, redemption, &actor.ID); err != nil {
		s.logger.WithError(err).WithField("redemption_id", redemption.ID).Warn("audit log skipped")
	}

	s.notify(models.NotificationIntent{
		RecipientID: redemption.UserID,
		Kind:        models.NotificationKindRedemptionVerified,
		Title:       "Deal redeemed",
		Body:        "Your redemption of " + offer.Title + " was confirmed.",
		Data: map[string]string{
			"offer_id":      offer.ID.String(),
			"redemption_id": redemption.ID.String(),
			"method":        string(redemption.Method),
		},
		CreatedAt: redemption.RedeemedAt,
	})
}

func (s *VerificationService) notify(intent models.NotificationIntent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.Send(ctx, intent); err != nil {
			s.metrics.NotificationFailures.Inc()
			s.logger.WithError(err).WithFields(logrus.Fields{
				"recipient_id": intent.RecipientID,
				"kind":         intent.Kind,
			}).Warn("notification dropped")
		}
	}()
}

func (s *VerificationService) finish(span trace.Span, operation, offerId string, actor models.Actor, result *models.VerifyResult, err error) (*models.VerifyResult, error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.WithError(err).WithFields(logrus.Fields{
			"operation":   operation,
			"offer_id":    offerId,
			"operator_id": actor.ID,
		}).Error("redemption failed")
		return nil, err
	}

	outcome := string(result.Status)
	if result.Status == models.VerifyStatusRejected {
		outcome = string(result.Reason)
	}
	span.SetAttributes(attribute.String("redemption.outcome", outcome))
	s.metrics.RedemptionOutcomes.WithLabelValues(operation, outcome).Inc()
	s.logger.WithFields(logrus.Fields{
		"operation":   operation,
		"offer_id":    offerId,
		"operator_id": actor.ID,
		"outcome":     result.Status,
		"reason":      result.Reason,
	}).Info("redemption decision")

	return result, nil
}

func rejectionResult(rej *rejection) *models.VerifyResult {
	result := models.VerifyRejected(rej.reason)
	result.Detail = rej.detail
	return result
}
