package services

import (
	"context"
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseExpiredHolds(t *testing.T) {
	db := newTestDB(t)
	provider := newFakeProvider()
	bookings := newBookingService(db, provider, nil)
	svc := NewSweeperService(db, bookings, provider)
	hotel := seedHotel(t, db, 100)

	now := date(2026, time.March, 2)

	expired := seedHold(t, db, hotel.ID, "101", "pi_test_1", date(2026, time.March, 2), date(2026, time.March, 4))
	require.NoError(t, db.Model(expired).Update("expires_at", now.Add(-time.Minute)).Error)

	fresh := seedHold(t, db, hotel.ID, "102", "pi_test_2", date(2026, time.March, 2), date(2026, time.March, 4))
	require.NoError(t, db.Model(fresh).Update("expires_at", now.Add(time.Hour)).Error)

	committed := seedHold(t, db, hotel.ID, "103", "pi_test_3", date(2026, time.March, 2), date(2026, time.March, 4))
	require.NoError(t, db.Model(committed).Updates(map[string]interface{}{
		"status":     models.HoldStatusCommitted,
		"expires_at": now.Add(-time.Minute),
	}).Error)

	require.NoError(t, svc.ReleaseExpiredHolds(context.Background(), now))

	var got models.RoomHold
	require.NoError(t, db.First(&got, expired.ID).Error)
	assert.Equal(t, models.HoldStatusExpired, got.Status)

	got = models.RoomHold{}
	require.NoError(t, db.First(&got, fresh.ID).Error)
	assert.Equal(t, models.HoldStatusActive, got.Status)

	got = models.RoomHold{}
	require.NoError(t, db.First(&got, committed.ID).Error)
	assert.Equal(t, models.HoldStatusCommitted, got.Status)

	assert.Equal(t, []string{"pi_test_1"}, provider.cancels)
}

func TestReleaseExpiredHoldsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	provider := newFakeProvider()
	svc := NewSweeperService(db, newBookingService(db, provider, nil), provider)
	hotel := seedHotel(t, db, 100)

	now := date(2026, time.March, 2)
	hold := seedHold(t, db, hotel.ID, "101", "pi_test_1", date(2026, time.March, 2), date(2026, time.March, 4))
	require.NoError(t, db.Model(hold).Update("expires_at", now.Add(-time.Minute)).Error)

	require.NoError(t, svc.ReleaseExpiredHolds(context.Background(), now))
	require.NoError(t, svc.ReleaseExpiredHolds(context.Background(), now))

	assert.Len(t, provider.cancels, 1)
}

func TestRunSweepsCompletionsAndHolds(t *testing.T) {
	db := newTestDB(t)
	provider := newFakeProvider()
	bookings := newBookingService(db, provider, nil)
	svc := NewSweeperService(db, bookings, provider)
	svc.Now = func() time.Time { return date(2026, time.March, 5) }

	hotel := seedHotel(t, db, 100)
	room := seedRoom(t, db, hotel.ID, "101", "Standard")
	require.NoError(t, db.Model(room).Update("status", models.RoomStatusOccupied).Error)

	past := seedBooking(t, db, hotel.ID, "101", models.BookingStatusConfirmed, models.PaymentStatusSucceeded,
		date(2026, time.March, 2), date(2026, time.March, 4))

	hold := seedHold(t, db, hotel.ID, "102", "pi_test_1", date(2026, time.March, 6), date(2026, time.March, 8))
	require.NoError(t, db.Model(hold).Update("expires_at", date(2026, time.March, 4)).Error)

	svc.Run(context.Background())

	var booking models.Booking
	require.NoError(t, db.First(&booking, past.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, booking.Status)

	var got models.RoomHold
	require.NoError(t, db.First(&got, hold.ID).Error)
	assert.Equal(t, models.HoldStatusExpired, got.Status)
}

func TestRunOnEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	provider := newFakeProvider()
	svc := NewSweeperService(db, newBookingService(db, provider, nil), provider)

	svc.Run(context.Background())

	assert.Empty(t, provider.cancels)
	assert.Empty(t, provider.refunds)
}
