package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seedBookingSeq atomic.Int64

func seedBooking(t *testing.T, db *gorm.DB, hotelID uint, roomNumber, status, paymentStatus string, checkIn, checkOut time.Time) *models.Booking {
	t.Helper()
	b := models.Booking{
		BookingID:     fmt.Sprintf("BK-%s%s-%d", roomNumber, checkIn.Format("20060102"), seedBookingSeq.Add(1)),
		HotelID:       hotelID,
		RoomNumber:    roomNumber,
		RoomType:      "Standard",
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Adults:        2,
		TotalPrice:    400,
		Status:        status,
		PaymentStatus: paymentStatus,
		RefundStatus:  models.RefundStatusNone,
		Version:       1,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func TestFindAvailableRoomSkipsOverlappingActiveBooking(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	seedRoom(t, db, hotel.ID, "101", "Standard")
	seedRoom(t, db, hotel.ID, "102", "Standard")

	seedBooking(t, db, hotel.ID, "101", models.BookingStatusConfirmed, models.PaymentStatusSucceeded,
		date(2026, time.March, 2), date(2026, time.March, 6))

	room, err := inv.FindAvailableRoom(nil, hotel.ID, "Standard", date(2026, time.March, 4), date(2026, time.March, 8))
	require.NoError(t, err)
	assert.Equal(t, "102", room.RoomNumber)
}

func TestFindAvailableRoomExhausted(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	seedRoom(t, db, hotel.ID, "101", "Standard")

	seedBooking(t, db, hotel.ID, "101", models.BookingStatusConfirmed, models.PaymentStatusSucceeded,
		date(2026, time.March, 2), date(2026, time.March, 6))

	_, err := inv.FindAvailableRoom(nil, hotel.ID, "Standard", date(2026, time.March, 4), date(2026, time.March, 8))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

// The status flag alone must never block a room: a booking in the past leaves
// the flag "occupied" until the sweeper runs, but the room is bookable for
// non-overlapping dates.
func TestFindAvailableRoomIgnoresStaleOccupiedFlag(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	room := seedRoom(t, db, hotel.ID, "101", "Standard")

	seedBooking(t, db, hotel.ID, "101", models.BookingStatusConfirmed, models.PaymentStatusSucceeded,
		date(2026, time.March, 2), date(2026, time.March, 6))
	require.NoError(t, db.Model(room).Update("status", models.RoomStatusOccupied).Error)

	got, err := inv.FindAvailableRoom(nil, hotel.ID, "Standard", date(2026, time.March, 10), date(2026, time.March, 12))
	require.NoError(t, err)
	assert.Equal(t, "101", got.RoomNumber)
}

func TestFindAvailableRoomIgnoresCancelledAndFailedBookings(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	seedRoom(t, db, hotel.ID, "101", "Standard")

	seedBooking(t, db, hotel.ID, "101", models.BookingStatusCancelled, models.PaymentStatusRefunded,
		date(2026, time.March, 2), date(2026, time.March, 6))
	seedBooking(t, db, hotel.ID, "101", models.BookingStatusPending, models.PaymentStatusFailed,
		date(2026, time.March, 2), date(2026, time.March, 6))

	room, err := inv.FindAvailableRoom(nil, hotel.ID, "Standard", date(2026, time.March, 2), date(2026, time.March, 6))
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
}

func TestFindAvailableRoomExcludesMaintenance(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	room := seedRoom(t, db, hotel.ID, "101", "Standard")
	require.NoError(t, db.Model(room).Update("status", models.RoomStatusMaintenance).Error)

	_, err := inv.FindAvailableRoom(nil, hotel.ID, "Standard", date(2026, time.March, 2), date(2026, time.March, 6))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

func TestFindAvailableRoomFiltersByType(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	seedRoom(t, db, hotel.ID, "101", "Standard")
	seedRoom(t, db, hotel.ID, "301", "Deluxe")

	room, err := inv.FindAvailableRoom(nil, hotel.ID, "Deluxe", date(2026, time.March, 2), date(2026, time.March, 6))
	require.NoError(t, err)
	assert.Equal(t, "301", room.RoomNumber)
}

func TestMarkOccupiedAndAvailableAreIdempotent(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	seedRoom(t, db, hotel.ID, "101", "Standard")

	require.NoError(t, inv.MarkOccupied(nil, hotel.ID, "101"))
	require.NoError(t, inv.MarkOccupied(nil, hotel.ID, "101"))

	var room models.Room
	require.NoError(t, db.Where("hotel_id = ? AND room_number = ?", hotel.ID, "101").First(&room).Error)
	assert.Equal(t, models.RoomStatusOccupied, room.Status)

	require.NoError(t, inv.MarkAvailable(nil, hotel.ID, "101"))
	require.NoError(t, inv.MarkAvailable(nil, hotel.ID, "101"))

	require.NoError(t, db.Where("hotel_id = ? AND room_number = ?", hotel.ID, "101").First(&room).Error)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
}

func TestRoomActiveElsewhereExcludesGivenBooking(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db)
	hotel := seedHotel(t, db, 100)
	seedRoom(t, db, hotel.ID, "101", "Standard")

	b := seedBooking(t, db, hotel.ID, "101", models.BookingStatusConfirmed, models.PaymentStatusSucceeded,
		date(2026, time.March, 2), date(2026, time.March, 6))

	busy, err := inv.RoomActiveElsewhere(nil, hotel.ID, "101", b.CheckIn, b.CheckOut, b.ID)
	require.NoError(t, err)
	assert.False(t, busy)

	busy, err = inv.RoomActiveElsewhere(nil, hotel.ID, "101", b.CheckIn, b.CheckOut, 0)
	require.NoError(t, err)
	assert.True(t, busy)
}
