package services

import (
	"context"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var codePattern = regexp.MustCompile(`^[0-9A-F]{32}$`)

func TestPendingRedemptionIssue(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	offer := createOffer(t, db, uuid.New())
	user := uuid.New()

	pending, err := store.Issue(context.Background(), offer.ID, user, testNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, pending.ID)
	assert.Regexp(t, codePattern, pending.Code)
	assert.True(t, pending.ExpiresAt.Equal(testNow.Add(15*time.Minute)))
	assert.False(t, pending.Consumed)

	found, err := store.FindUnconsumed(context.Background(), offer.ID, pending.Code)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, pending.ID, found.ID)
	assert.Equal(t, user, found.UserID)
}

func TestPendingRedemptionIssueAllowsSeveralOutstandingCodes(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	offer := createOffer(t, db, uuid.New())
	user := uuid.New()

	first, err := store.Issue(context.Background(), offer.ID, user, testNow)
	require.NoError(t, err)
	second, err := store.Issue(context.Background(), offer.ID, user, testNow)
	require.NoError(t, err)

	assert.NotEqual(t, first.Code, second.Code)
}

func TestPendingRedemptionIssueRetriesOnCollision(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	offer := createOffer(t, db, uuid.New())

	codes := []string{"AAAA", "AAAA", "BBBB"}
	var calls int32
	store.generateCode = func() (string, error) {
		i := atomic.AddInt32(&calls, 1) - 1
		return codes[i], nil
	}

	first, err := store.Issue(context.Background(), offer.ID, uuid.New(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "AAAA", first.Code)

	second, err := store.Issue(context.Background(), offer.ID, uuid.New(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "BBBB", second.Code)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPendingRedemptionIssueGivesUpAfterRepeatedCollisions(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	offer := createOffer(t, db, uuid.New())
	store.generateCode = func() (string, error) { return "SAME", nil }

	_, err := store.Issue(context.Background(), offer.ID, uuid.New(), testNow)
	require.NoError(t, err)

	_, err = store.Issue(context.Background(), offer.ID, uuid.New(), testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeCollision)
}

func TestPendingRedemptionSameCodeOnDifferentOffers(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	store.generateCode = func() (string, error) { return "SAME", nil }
	first := createOffer(t, db, uuid.New())
	second := createOffer(t, db, uuid.New())

	_, err := store.Issue(context.Background(), first.ID, uuid.New(), testNow)
	require.NoError(t, err)
	_, err = store.Issue(context.Background(), second.ID, uuid.New(), testNow)
	require.NoError(t, err)

	found, err := store.FindUnconsumed(context.Background(), second.ID, "SAME")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, second.ID, found.OfferID)
}

func TestPendingRedemptionFindUnconsumedMissing(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())

	found, err := store.FindUnconsumed(context.Background(), uuid.New(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPendingRedemptionTryConsumeSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	offer := createOffer(t, db, uuid.New())

	pending, err := store.Issue(context.Background(), offer.ID, uuid.New(), testNow)
	require.NoError(t, err)

	const callers = 16
	var wins int32
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			won, err := store.TryConsume(context.Background(), pending.ID, testNow.Add(time.Second))
			if err != nil {
				return err
			}
			if won {
				atomic.AddInt32(&wins, 1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), wins)

	found, err := store.FindUnconsumed(context.Background(), offer.ID, pending.Code)
	require.NoError(t, err)
	assert.Nil(t, found, "consumed code must no longer be reachable")

	stored, err := store.GetPendingRedemption(context.Background(), pending.ID.String())
	require.NoError(t, err)
	assert.True(t, stored.Consumed)
	require.NotNil(t, stored.ConsumedAt)
	assert.Equal(t, models.CodeStateRedeemed, stored.State(testNow))
}

func TestPendingRedemptionPurgeExpired(t *testing.T) {
	db := setupTestDB(t)
	store := NewPendingRedemptionService(db, testConfig())
	offer := createOffer(t, db, uuid.New())
	ctx := context.Background()

	old := testNow.Add(-72 * time.Hour)
	stale, err := store.Issue(ctx, offer.ID, uuid.New(), old)
	require.NoError(t, err)
	consumed, err := store.Issue(ctx, offer.ID, uuid.New(), old)
	require.NoError(t, err)
	won, err := store.TryConsume(ctx, consumed.ID, old.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, won)
	fresh, err := store.Issue(ctx, offer.ID, uuid.New(), testNow)
	require.NoError(t, err)

	purged, err := store.PurgeExpired(ctx, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.GetPendingRedemption(ctx, stale.ID.String())
	assert.Error(t, err)
	_, err = store.GetPendingRedemption(ctx, consumed.ID.String())
	assert.NoError(t, err, "consumed codes are retained for audit")
	_, err = store.GetPendingRedemption(ctx, fresh.ID.String())
	assert.NoError(t, err)
}

func TestPendingRedemptionState(t *testing.T) {
	pending := &models.PendingRedemption{ExpiresAt: testNow}

	assert.Equal(t, models.CodeStateIssued, pending.State(testNow.Add(-time.Second)))
	assert.Equal(t, models.CodeStateExpired, pending.State(testNow))
	pending.Consumed = true
	assert.Equal(t, models.CodeStateRedeemed, pending.State(testNow.Add(time.Hour)))
}
