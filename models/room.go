package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	gorm.Model

	HotelID uint `gorm:"column:hotel_id;index:idx_hotel_room_number,unique" json:"hotelId"`

	// RoomNumber is unique within a hotel, not globally.
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;index:idx_hotel_room_number,unique;type:varchar(50)"`

	Type      string `json:"type" gorm:"size:64"`
	Price     int64  `json:"price"`
	MaxGuests int    `json:"maxGuests" gorm:"column:max_guests"`

	// Status is a display flag only. Availability decisions always go through
	// date-range overlap checks against bookings; see services.InventoryService.
	Status string `json:"status" gorm:"size:32;default:available"`

	Images datatypes.JSON `json:"images,omitempty"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
