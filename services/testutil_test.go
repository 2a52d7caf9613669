package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/payments"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a private in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.RoomHold{},
	))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedHotel(t *testing.T, db *gorm.DB, basePrice int64) *models.Hotel {
	t.Helper()
	hotel := models.Hotel{Name: "Test Hotel", Location: "Testville", BasePrice: basePrice}
	require.NoError(t, db.Create(&hotel).Error)
	return &hotel
}

func seedRoom(t *testing.T, db *gorm.DB, hotelID uint, number, roomType string) *models.Room {
	t.Helper()
	room := models.Room{
		HotelID:    hotelID,
		RoomNumber: number,
		Type:       roomType,
		Price:      100,
		MaxGuests:  2,
		Status:     models.RoomStatusAvailable,
	}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

// pinnedPricing removes the stochastic demand surcharge and fixes "today" so
// quotes are deterministic.
func pinnedPricing(today time.Time) *PricingService {
	return &PricingService{
		Now:    func() time.Time { return today },
		Demand: func() float64 { return 0 },
	}
}

type refundCall struct {
	IntentID string
	Amount   int64
}

// fakeProvider implements payments.Provider in memory.
type fakeProvider struct {
	mu sync.Mutex

	seq     int64
	refunds []refundCall
	cancels []string

	failCreate bool
	failRefund bool
}

func newFakeProvider() *fakeProvider { return &fakeProvider{} }

func (f *fakeProvider) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	if f.failCreate {
		return nil, errors.New("provider unreachable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("pi_test_%d", f.seq)
	return &payments.Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       amountMinor,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakeProvider) Refund(ctx context.Context, paymentIntentID string, amountMinor int64) error {
	if f.failRefund {
		return errors.New("refund rejected")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, refundCall{IntentID: paymentIntentID, Amount: amountMinor})
	return nil
}

func (f *fakeProvider) Cancel(ctx context.Context, paymentIntentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels = append(f.cancels, paymentIntentID)
	return nil
}

func (f *fakeProvider) refundsFor(paymentIntentID string) []refundCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []refundCall
	for _, r := range f.refunds {
		if r.IntentID == paymentIntentID {
			out = append(out, r)
		}
	}
	return out
}

var _ payments.Provider = (*fakeProvider)(nil)

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}
