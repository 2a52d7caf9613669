package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/payments"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
)

const (
	RefundKindFull    = "full"
	RefundKindPartial = "partial"
)

// RefundService reconciles refunds against the payment provider while keeping
// booking state and room availability consistent. refundedAmount only ever
// grows; every write is version-checked against concurrent sweeps.
type RefundService struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Provider  payments.Provider
	Notifier  Notifier

	// Now decides whether a partially-refunded stay is still upcoming.
	Now func() time.Time
}

func NewRefundService(db *gorm.DB, inv *InventoryService, provider payments.Provider, notifier Notifier) *RefundService {
	return &RefundService{DB: db, Inventory: inv, Provider: provider, Notifier: notifier, Now: time.Now}
}

type RefundResult struct {
	RefundAmount int64           `json:"refundAmount"`
	Booking      *models.Booking `json:"booking"`
}

// IssueRefund applies an admin refund. kind "full" refunds the remaining
// balance, cancels the stay and releases the room; kind "partial" refunds the
// explicit amount the admin chose and leaves the stay alone while it is still
// upcoming. The provider is charged first — a provider failure leaves local
// state untouched.
func (s *RefundService) IssueRefund(ctx context.Context, bookingID uint, kind string, amount int64) (*RefundResult, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RefundStatus == models.RefundStatusCompleted {
		return nil, ErrAlreadyRefunded
	}
	if booking.PaymentStatus != models.PaymentStatusSucceeded {
		return nil, fmt.Errorf("validation: cannot refund booking with payment status %q", booking.PaymentStatus)
	}

	remaining := booking.RemainingBalance()
	switch kind {
	case RefundKindFull:
		amount = remaining
	case RefundKindPartial:
		if amount <= 0 || amount > remaining {
			return nil, ErrInvalidRefundAmount
		}
	default:
		return nil, fmt.Errorf("validation: unknown refund type %q", kind)
	}
	if amount <= 0 {
		return nil, ErrInvalidRefundAmount
	}

	if err := s.Provider.Refund(ctx, booking.PaymentIntentID, amount*100); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	stayOver := !booking.CheckOut.After(s.Now())
	cancelStay := kind == RefundKindFull || stayOver
	releaseRoom := cancelStay

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"refunded_amount": booking.RefundedAmount + amount,
		}
		if kind == RefundKindFull {
			fields["refund_status"] = models.RefundStatusCompleted
			fields["payment_status"] = models.PaymentStatusRefunded
		} else {
			fields["refund_status"] = models.RefundStatusPartial
		}
		if cancelStay && (booking.Status == models.BookingStatusPending || booking.Status == models.BookingStatusConfirmed) {
			fields["status"] = models.BookingStatusCancelled
		}

		if err := applyVersioned(tx, booking, fields); err != nil {
			return err
		}
		if releaseRoom {
			return s.Inventory.MarkAvailable(tx, booking.HotelID, booking.RoomNumber)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	booking.RefundedAmount += amount
	if kind == RefundKindFull {
		booking.RefundStatus = models.RefundStatusCompleted
		booking.PaymentStatus = models.PaymentStatusRefunded
	} else {
		booking.RefundStatus = models.RefundStatusPartial
	}
	if cancelStay && (booking.Status == models.BookingStatusPending || booking.Status == models.BookingStatusConfirmed) {
		booking.Status = models.BookingStatusCancelled
	}

	if s.Notifier != nil {
		s.Notifier.Publish(EventRefundIssued, booking)
	}
	return &RefundResult{RefundAmount: amount, Booking: booking}, nil
}

// RequestRefund is the guest-initiated queue entry for admin action. No money
// moves here.
func (s *RefundService) RequestRefund(bookingID, userID uint, reason string) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if userID != 0 && booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if booking.RefundStatus == models.RefundStatusCompleted {
		return nil, ErrAlreadyRefunded
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, fmt.Errorf("validation: booking is already cancelled")
	}

	now := s.Now().UTC()
	if err := applyVersioned(s.DB, booking, map[string]interface{}{
		"refund_status":       models.RefundStatusRequested,
		"refund_reason":       reason,
		"refund_requested_at": utils.PtrTime(now),
	}); err != nil {
		return nil, err
	}
	booking.RefundStatus = models.RefundStatusRequested
	booking.RefundReason = reason
	booking.RefundRequestedAt = utils.PtrTime(now)

	if s.Notifier != nil {
		s.Notifier.Publish(EventRefundRequested, booking)
	}
	return booking, nil
}

// RejectRefundRequest closes a guest refund request without money movement.
func (s *RefundService) RejectRefundRequest(bookingID uint, adminNotes string) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RefundStatus != models.RefundStatusRequested {
		return nil, ErrRefundNotRequested
	}

	if err := applyVersioned(s.DB, booking, map[string]interface{}{
		"refund_status": models.RefundStatusRejected,
		"admin_notes":   adminNotes,
	}); err != nil {
		return nil, err
	}
	booking.RefundStatus = models.RefundStatusRejected
	booking.AdminNotes = adminNotes

	if s.Notifier != nil {
		s.Notifier.Publish(EventRefundRejected, booking)
	}
	return booking, nil
}

func (s *RefundService) loadBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}
	return &booking, nil
}
