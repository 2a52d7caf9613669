package services

import (
	"hotel-booking-backend/config"
	"hotel-booking-backend/models"
)

type RoomService struct{}

func (s RoomService) Create(room models.Room) error {
	return config.DB.Create(&room).Error
}

func (s RoomService) GetAll(hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	q := config.DB
	if hotelID != 0 {
		q = q.Where("hotel_id = ?", hotelID)
	}
	err := q.Order("hotel_id, room_number").Find(&rooms).Error
	return rooms, err
}

func (s RoomService) GetByID(id int) (models.Room, error) {
	var room models.Room
	err := config.DB.First(&room, id).Error
	return room, err
}

func (s RoomService) Update(room models.Room) error {
	return config.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room).Error
}

// SetStatus is the admin override (e.g. taking a room into maintenance).
// Guest-facing availability still goes through InventoryService.
func (s RoomService) SetStatus(id int, status string) error {
	return config.DB.Model(&models.Room{}).Where("id = ?", id).Update("status", status).Error
}

func (s RoomService) Delete(id int) error {
	return config.DB.Delete(&models.Room{}, id).Error
}
