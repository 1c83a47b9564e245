package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerEntry(offer *models.Offer, user uuid.UUID, day string, pendingID *uuid.UUID) *models.Redemption {
	method := models.RedemptionMethodWalkUp
	if pendingID != nil {
		method = models.RedemptionMethodCode
	}
	return &models.Redemption{
		OfferID:             offer.ID,
		UserID:              user,
		OperatorID:          offer.OwnerID,
		PendingRedemptionID: pendingID,
		Method:              method,
		RedeemedOn:          day,
		RedeemedAt:          testNow,
	}
}

func TestLedgerAppendAndCount(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewRedemptionLedgerService(db)
	offer := createOffer(t, db, uuid.New())
	other := createOffer(t, db, uuid.New())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ledger.Append(ctx, ledgerEntry(offer, uuid.New(), "2026-03-10", nil))
		require.NoError(t, err)
	}
	_, err := ledger.Append(ctx, ledgerEntry(other, uuid.New(), "2026-03-10", nil))
	require.NoError(t, err)

	count, err := ledger.CountForOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestLedgerDailyUniqueness(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewRedemptionLedgerService(db)
	offer := createOffer(t, db, uuid.New())
	user := uuid.New()
	ctx := context.Background()

	_, err := ledger.Append(ctx, ledgerEntry(offer, user, "2026-03-10", nil))
	require.NoError(t, err)

	_, err = ledger.Append(ctx, ledgerEntry(offer, user, "2026-03-10", nil))
	assert.ErrorIs(t, err, ErrAlreadyRedeemedToday)

	_, err = ledger.Append(ctx, ledgerEntry(offer, user, "2026-03-11", nil))
	assert.NoError(t, err, "a new calendar day is a new allowance")

	redeemed, err := ledger.HasRedeemedOn(ctx, user, offer.ID, "2026-03-10")
	require.NoError(t, err)
	assert.True(t, redeemed)

	redeemed, err = ledger.HasRedeemedOn(ctx, user, offer.ID, "2026-03-12")
	require.NoError(t, err)
	assert.False(t, redeemed)
}

func TestLedgerOneRedemptionPerCode(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewRedemptionLedgerService(db)
	offer := createOffer(t, db, uuid.New())
	user := uuid.New()
	pendingID := uuid.New()
	ctx := context.Background()

	_, err := ledger.Append(ctx, ledgerEntry(offer, user, "2026-03-10", &pendingID))
	require.NoError(t, err)

	_, err = ledger.Append(ctx, ledgerEntry(offer, user, "2026-03-11", &pendingID))
	assert.ErrorIs(t, err, ErrCodeAlreadyRedeemed)
}

func TestLedgerQueries(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewRedemptionLedgerService(db)
	offer := createOffer(t, db, uuid.New())
	user := uuid.New()
	ctx := context.Background()

	first, err := ledger.Append(ctx, ledgerEntry(offer, user, "2026-03-10", nil))
	require.NoError(t, err)
	second := ledgerEntry(offer, user, "2026-03-11", nil)
	second.RedeemedAt = testNow.Add(24 * time.Hour)
	_, err = ledger.Append(ctx, second)
	require.NoError(t, err)
	_, err = ledger.Append(ctx, ledgerEntry(offer, uuid.New(), "2026-03-10", nil))
	require.NoError(t, err)

	got, err := ledger.GetRedemption(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user, got.UserID)

	_, err = ledger.GetRedemption(ctx, uuid.NewString())
	assert.Error(t, err)
	_, err = ledger.GetRedemption(ctx, "not-a-uuid")
	assert.Error(t, err)

	mine, err := ledger.GetRedemptionsByUser(ctx, user, &models.PaginationRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, mine.TotalItems)
	require.Len(t, mine.Items, 2)
	assert.Equal(t, "2026-03-11", mine.Items[0].RedeemedOn, "newest first")

	page, err := ledger.GetRedemptionsByOffer(ctx, offer.ID, &models.PaginationRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}
