package services

import (
	"fmt"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// InventoryService is the single source of truth for "is this room bookable".
// Availability is decided by date-range overlap against active bookings, never
// by the room's status flag alone — flag-based exclusion double-books rooms
// across non-overlapping stays.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

func (s *InventoryService) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB
}

// FindAvailableRoom picks the first room of the hotel (optionally filtered by
// type) that is not under maintenance and has no active booking overlapping
// [checkIn, checkOut). Returns ErrNoRoomAvailable when the inventory is
// exhausted for those dates.
func (s *InventoryService) FindAvailableRoom(tx *gorm.DB, hotelID uint, roomType string, checkIn, checkOut time.Time) (*models.Room, error) {
	db := s.db(tx)

	var rooms []models.Room
	q := db.Where("hotel_id = ? AND status <> ?", hotelID, models.RoomStatusMaintenance)
	if roomType != "" {
		q = q.Where("type = ?", roomType)
	}
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms for hotel %d: %w", hotelID, err)
	}

	for i := range rooms {
		busy, err := s.hasOverlappingBooking(db, hotelID, rooms[i].RoomNumber, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		if !busy {
			return &rooms[i], nil
		}
	}
	return nil, ErrNoRoomAvailable
}

// RoomActiveElsewhere is the commit-time re-check: does any active booking
// other than excludeBookingID overlap the range on this room?
func (s *InventoryService) RoomActiveElsewhere(tx *gorm.DB, hotelID uint, roomNumber string, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	return s.hasOverlappingBooking(s.db(tx), hotelID, roomNumber, checkIn, checkOut, excludeBookingID)
}

// Active means not cancelled and not failed payment; completed stays still
// count so historical ranges stay exclusive.
func (s *InventoryService) hasOverlappingBooking(db *gorm.DB, hotelID uint, roomNumber string, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Booking{}).
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).
		Where("status <> ?", models.BookingStatusCancelled).
		Where("payment_status <> ?", models.PaymentStatusFailed).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check bookings for room %s: %w", roomNumber, err)
	}
	return count > 0, nil
}

// MarkOccupied flips the room's display status. Idempotent; side effect only.
func (s *InventoryService) MarkOccupied(tx *gorm.DB, hotelID uint, roomNumber string) error {
	return s.setStatus(tx, hotelID, roomNumber, models.RoomStatusOccupied)
}

// MarkAvailable returns the room to the pool. Idempotent; side effect only.
func (s *InventoryService) MarkAvailable(tx *gorm.DB, hotelID uint, roomNumber string) error {
	return s.setStatus(tx, hotelID, roomNumber, models.RoomStatusAvailable)
}

func (s *InventoryService) setStatus(tx *gorm.DB, hotelID uint, roomNumber, status string) error {
	err := s.db(tx).Model(&models.Room{}).
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to set room %s status to %s: %w", roomNumber, status, err)
	}
	return nil
}
