package services

import (
	"hotel-booking-backend/config"
	"hotel-booking-backend/models"
)

type HotelService struct{}

func (s HotelService) Create(hotel models.Hotel) (models.Hotel, error) {
	err := config.DB.Create(&hotel).Error
	return hotel, err
}

func (s HotelService) GetAll() ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := config.DB.Preload("Rooms").Find(&hotels).Error
	return hotels, err
}

func (s HotelService) GetByID(id int) (models.Hotel, error) {
	var hotel models.Hotel
	err := config.DB.Preload("Rooms").First(&hotel, id).Error
	return hotel, err
}

func (s HotelService) Update(hotel models.Hotel) error {
	return config.DB.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Updates(hotel).Error
}
