package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *infrastructures.AppConfig {
	return &infrastructures.AppConfig{
		PENDING_CODE_TTL:     15 * time.Minute,
		REDEMPTION_TIMEZONE:  "UTC",
		NOTIFICATION_TIMEOUT: time.Second,
		PENDING_RETENTION:    24 * time.Hour,
	}
}

type offerOption func(*models.Offer)

func withMaxRedemptions(n int) offerOption {
	return func(o *models.Offer) { o.MaxRedemptions = &n }
}

func withWindow(startsAt, endsAt time.Time) offerOption {
	return func(o *models.Offer) {
		o.StartsAt = startsAt
		o.EndsAt = endsAt
	}
}

func inactive() offerOption {
	return func(o *models.Offer) { o.Active = false }
}

func createOffer(t *testing.T, db *gorm.DB, owner uuid.UUID, opts ...offerOption) *models.Offer {
	t.Helper()
	offer := &models.Offer{
		VenueID:  uuid.New(),
		OwnerID:  owner,
		Title:    "Two for one espresso",
		Active:   true,
		StartsAt: testNow.Add(-time.Hour),
		EndsAt:   testNow.Add(48 * time.Hour),
	}
	for _, opt := range opts {
		opt(offer)
	}
	require.NoError(t, db.Create(offer).Error)
	return offer
}

// recordingSender captures notification intents and can be told to fail.
type recordingSender struct {
	mu      sync.Mutex
	intents []models.NotificationIntent
	err     error
	sent    chan struct{}
}

func newRecordingSender(err error) *recordingSender {
	return &recordingSender{err: err, sent: make(chan struct{}, 64)}
}

func (s *recordingSender) Send(ctx context.Context, intent models.NotificationIntent) error {
	s.mu.Lock()
	s.intents = append(s.intents, intent)
	s.mu.Unlock()
	s.sent <- struct{}{}
	return s.err
}

func (s *recordingSender) Intents() []models.NotificationIntent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NotificationIntent(nil), s.intents...)
}

func (s *recordingSender) waitForSend(t *testing.T) {
	t.Helper()
	select {
	case <-s.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
}

type testEngine struct {
	db           *gorm.DB
	offers       *OfferService
	pending      *PendingRedemptionService
	ledger       *RedemptionLedgerService
	audit        *AuditService
	metrics      *infrastructures.Metrics
	sender       *recordingSender
	verification *VerificationService
}

func newTestEngine(t *testing.T, sender *recordingSender) *testEngine {
	t.Helper()
	if sender == nil {
		sender = newRecordingSender(nil)
	}

	db := setupTestDB(t)
	config := testConfig()
	ledger := NewRedemptionLedgerService(db)
	audit := NewAuditService(db)
	offers := NewOfferService(db, infrastructures.NewValidator(), ledger, audit)
	pending := NewPendingRedemptionService(db, config)
	metrics := infrastructures.NewMetrics()

	verification := NewVerificationService(db, offers, pending, ledger, audit, sender, metrics, testLogger(), config)
	verification.now = func() time.Time { return testNow }

	return &testEngine{
		db:           db,
		offers:       offers,
		pending:      pending,
		ledger:       ledger,
		audit:        audit,
		metrics:      metrics,
		sender:       sender,
		verification: verification,
	}
}

func (e *testEngine) at(t time.Time) {
	e.verification.now = func() time.Time { return t }
}

func (e *testEngine) issue(t *testing.T, offer *models.Offer, user uuid.UUID) *models.IssueResult {
	t.Helper()
	result, err := e.verification.IssueRedemptionCode(context.Background(), offer.ID.String(), user.String())
	require.NoError(t, err)
	require.Equal(t, models.IssueStatusIssued, result.Status, "issue denied: %s", result.Reason)
	return result
}

func (e *testEngine) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}

func operator(id uuid.UUID) models.Actor {
	return models.Actor{ID: id, Role: models.RoleVenueOperator}
}
