package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	RefundStatusNone      = "none"
	RefundStatusRequested = "requested"
	RefundStatusPartial   = "partial"
	RefundStatusCompleted = "completed"
	RefundStatusRejected  = "rejected"
)

// Booking is the audit trail of a stay: rows are never deleted, only
// status-transitioned.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// BookingID is the human-readable reference shown to guests, e.g. "BK-4F9A2C1E".
	BookingID string `gorm:"column:booking_id;size:64;uniqueIndex" json:"bookingId"`

	UserID  uint `gorm:"index;column:user_id" json:"userId"`
	HotelID uint `gorm:"index;column:hotel_id" json:"hotelId"`

	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber"`
	RoomType   string `gorm:"column:room_type;size:64" json:"roomType"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	TotalPrice     int64 `gorm:"column:total_price" json:"totalPrice"`
	RefundedAmount int64 `gorm:"column:refunded_amount;default:0" json:"refundedAmount"`

	Status        string `gorm:"column:status;size:32;default:pending" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`
	RefundStatus  string `gorm:"column:refund_status;size:32;default:none" json:"refundStatus"`

	RefundReason      string     `gorm:"column:refund_reason;type:text" json:"refundReason,omitempty"`
	RefundRequestedAt *time.Time `gorm:"column:refund_requested_at" json:"refundRequestedAt,omitempty"`
	AdminNotes        string     `gorm:"column:admin_notes;type:text" json:"adminNotes,omitempty"`

	PaymentIntentID string `gorm:"column:payment_intent_id;size:128;index" json:"paymentIntentId,omitempty"`

	// Version serializes concurrent writers (sweeper vs. admin refund): every
	// update must match the version it read and bump it, or lose.
	Version uint `gorm:"column:version;default:1" json:"-"`

	User  User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID;references:ID" json:"-"`
}

// RemainingBalance is what can still be refunded against this booking.
func (b *Booking) RemainingBalance() int64 {
	return b.TotalPrice - b.RefundedAmount
}
