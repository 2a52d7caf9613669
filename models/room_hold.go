package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	HoldStatusActive    = "active"
	HoldStatusCommitted = "committed"
	HoldStatusExpired   = "expired"
)

// RoomHold records the tentative room pick made when a payment intent is
// opened. The room is not allocated yet; the hold exists so the commit step
// can re-derive room and price server-side, and so abandoned intents can be
// expired (and their authorizations cancelled) by the sweeper.
type RoomHold struct {
	gorm.Model

	HotelID    uint   `gorm:"column:hotel_id;index" json:"hotelId"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber"`
	RoomType   string `gorm:"column:room_type;size:64" json:"roomType"`

	PaymentIntentID string `gorm:"column:payment_intent_id;uniqueIndex;size:128" json:"paymentIntentId"`
	Token           string `gorm:"uniqueIndex;size:128" json:"token"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// Amount is the quoted stay total in whole currency units.
	Amount int64 `gorm:"column:amount" json:"amount"`

	Status    string     `gorm:"size:32;default:active" json:"status"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expiresAt"`
}
