package models

import (
	"gorm.io/gorm"
)

// User is the guest identity owning bookings. Authentication is handled
// upstream; this service only resolves the acting user from the request.
type User struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `gorm:"size:150;index" json:"email"`
}
