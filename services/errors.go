package services

import "errors"

// Sentinel errors shared across booking, payment and refund services.
// Controllers map these to HTTP status codes.
var (
	ErrHotelNotFound   = errors.New("hotel_not_found")
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrHoldNotFound    = errors.New("hold_not_found")

	ErrNoRoomAvailable = errors.New("no_room_available")
	ErrInvalidAmount   = errors.New("invalid_amount")

	// ErrConcurrencyConflict means a commit-time re-check found the state
	// changed under us: a room taken by a rival booking, or a stale
	// version write. The caller surfaces it; for booking commits the
	// just-authorized payment is refunded first.
	ErrConcurrencyConflict = errors.New("concurrency_conflict")

	ErrPaymentProvider = errors.New("payment_provider_error")

	ErrAlreadyRefunded     = errors.New("already_refunded")
	ErrInvalidRefundAmount = errors.New("invalid_refund_amount")
	ErrRefundNotRequested  = errors.New("refund_not_requested")
)
