package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"size:255" json:"location"`

	// BasePrice is the per-night starting price in whole currency units.
	BasePrice int64 `gorm:"column:base_price" json:"basePrice"`

	Amenities       datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	SeasonalPricing datatypes.JSON `gorm:"column:seasonal_pricing" json:"seasonalPricing,omitempty"`

	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SeasonalRule is one entry of Hotel.SeasonalPricing. Rules are kept in list
// order; when ranges overlap the last matching rule takes effect.
type SeasonalRule struct {
	StartDate string `json:"startDate"` // "2006-01-02"
	EndDate   string `json:"endDate"`
	Price     int64  `json:"price"`
}
