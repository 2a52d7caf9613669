package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/payments"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
)

// BookingService owns the booking state machine:
//
//	pending -> confirmed -> completed
//	pending|confirmed -> cancelled
//
// with refund state progressing independently (see RefundService).
type BookingService struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Provider  payments.Provider
	Notifier  Notifier

	// hotelLocks serializes booking commits per hotel so two requests holding
	// intents for the same last room cannot both pass the availability
	// re-check.
	hotelLocks sync.Map
}

func NewBookingService(db *gorm.DB, inv *InventoryService, provider payments.Provider, notifier Notifier) *BookingService {
	return &BookingService{DB: db, Inventory: inv, Provider: provider, Notifier: notifier}
}

func (s *BookingService) hotelLock(hotelID uint) *sync.Mutex {
	mu, _ := s.hotelLocks.LoadOrStore(hotelID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *BookingService) notify(event string, b *models.Booking) {
	if s.Notifier != nil {
		s.Notifier.Publish(event, b)
	}
}

// applyVersioned performs an optimistic-locked update on a booking: the write
// only lands if nobody else touched the row since it was read. Zero rows
// affected means a concurrent writer won.
func applyVersioned(tx *gorm.DB, b *models.Booking, fields map[string]interface{}) error {
	fields["version"] = b.Version + 1

	res := tx.Model(&models.Booking{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking %s: %w", b.BookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConcurrencyConflict
	}
	b.Version++
	return nil
}

// Create commits a booking after the client reports a succeeded payment. This
// is the true point of room allocation: room and price are re-derived from the
// hold recorded at intent time (client-sent values are never trusted), and
// availability is re-checked inside the transaction. If the room was taken in
// the window between intent and commit, the just-authorized payment is
// refunded and ErrConcurrencyConflict is returned.
func (s *BookingService) Create(ctx context.Context, userID uint, paymentIntentID string) (*models.Booking, error) {
	if paymentIntentID == "" {
		return nil, fmt.Errorf("validation: payment_intent_id is required")
	}

	var hold models.RoomHold
	if err := s.DB.Where("payment_intent_id = ?", paymentIntentID).First(&hold).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, fmt.Errorf("failed to load hold for intent %s: %w", paymentIntentID, err)
	}

	// Repeated confirmation for an already-committed intent returns the
	// existing booking instead of double-allocating.
	if hold.Status == models.HoldStatusCommitted {
		var existing models.Booking
		if err := s.DB.Where("payment_intent_id = ?", paymentIntentID).First(&existing).Error; err == nil {
			return &existing, nil
		}
	}

	mu := s.hotelLock(hold.HotelID)
	mu.Lock()
	defer mu.Unlock()

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		busy, err := s.Inventory.RoomActiveElsewhere(tx, hold.HotelID, hold.RoomNumber, hold.CheckIn, hold.CheckOut, 0)
		if err != nil {
			return err
		}
		if busy {
			return ErrConcurrencyConflict
		}

		booking = models.Booking{
			BookingID:       utils.NewBookingRef(),
			UserID:          userID,
			HotelID:         hold.HotelID,
			RoomNumber:      hold.RoomNumber,
			RoomType:        hold.RoomType,
			CheckIn:         hold.CheckIn,
			CheckOut:        hold.CheckOut,
			Adults:          hold.Adults,
			Children:        hold.Children,
			TotalPrice:      hold.Amount,
			Status:          models.BookingStatusConfirmed,
			PaymentStatus:   models.PaymentStatusSucceeded,
			RefundStatus:    models.RefundStatusNone,
			PaymentIntentID: paymentIntentID,
			Version:         1,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if err := s.Inventory.MarkOccupied(tx, hold.HotelID, hold.RoomNumber); err != nil {
			return err
		}

		if err := tx.Model(&models.RoomHold{}).Where("id = ?", hold.ID).
			Update("status", models.HoldStatusCommitted).Error; err != nil {
			return fmt.Errorf("failed to commit hold %d: %w", hold.ID, err)
		}
		return nil
	})

	if txErr != nil {
		// The payment is confirmed but no booking exists for it. Compensate:
		// money must never stay captured without a booking record.
		if rErr := s.Provider.Refund(ctx, paymentIntentID, 0); rErr != nil {
			log.Printf("CRITICAL: compensating refund failed for intent %s: %v (commit error: %v)",
				paymentIntentID, rErr, txErr)
		} else {
			log.Printf("booking commit failed for intent %s, payment refunded: %v", paymentIntentID, txErr)
		}
		_ = s.DB.Model(&models.RoomHold{}).Where("id = ?", hold.ID).
			Update("status", models.HoldStatusExpired).Error
		return nil, txErr
	}

	s.notify(EventBookingCreated, &booking)
	return &booking, nil
}

// Approve is the admin transition for bookings that did not auto-confirm on
// payment (manual review flow): pending -> confirmed.
func (s *BookingService) Approve(bookingID uint) (*models.Booking, error) {
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("validation: cannot approve booking in status %q", booking.Status)
	}

	if err := applyVersioned(s.DB, booking, map[string]interface{}{
		"status": models.BookingStatusConfirmed,
	}); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusConfirmed

	s.notify(EventBookingApproved, booking)
	return booking, nil
}

// Reject cancels a pending booking and releases its room.
func (s *BookingService) Reject(bookingID uint) (*models.Booking, error) {
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("validation: cannot reject booking in status %q", booking.Status)
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyVersioned(tx, booking, map[string]interface{}{
			"status": models.BookingStatusCancelled,
		}); err != nil {
			return err
		}
		return s.Inventory.MarkAvailable(tx, booking.HotelID, booking.RoomNumber)
	})
	if txErr != nil {
		return nil, txErr
	}
	booking.Status = models.BookingStatusCancelled

	s.notify(EventBookingRejected, booking)
	return booking, nil
}

// SweepCompletions advances every confirmed booking whose stay has ended into
// completed and returns its room to the pool. Safe to run repeatedly; a
// failure on one booking is logged and does not abort the rest.
func (s *BookingService) SweepCompletions(now time.Time) error {
	var due []models.Booking
	if err := s.DB.
		Where("status = ? AND check_out < ?", models.BookingStatusConfirmed, now).
		Find(&due).Error; err != nil {
		return fmt.Errorf("failed to query bookings due for completion: %w", err)
	}

	for i := range due {
		b := &due[i]
		if err := s.completeBooking(b); err != nil {
			log.Printf("sweep: failed to complete booking %s: %v", b.BookingID, err)
			continue
		}
		s.notify(EventBookingCompleted, b)
	}
	return nil
}

func (s *BookingService) completeBooking(b *models.Booking) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyVersioned(tx, b, map[string]interface{}{
			"status": models.BookingStatusCompleted,
		}); err != nil {
			return err
		}
		return s.Inventory.MarkAvailable(tx, b.HotelID, b.RoomNumber)
	})
	if err != nil {
		return err
	}
	b.Status = models.BookingStatusCompleted
	return nil
}

func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("User").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// List returns bookings newest first, optionally filtered to one user.
func (s *BookingService) List(userID uint) ([]models.Booking, error) {
	var list []models.Booking
	q := s.DB.Preload("User").Order("created_at DESC")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}
