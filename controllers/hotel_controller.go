package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

var hotelService = services.HotelService{}

func GetHotels(c *gin.Context) {
	hotels, err := hotelService.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch hotels")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func GetHotelByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}

	hotel, err := hotelService.GetByID(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func CreateHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel payload: "+err.Error())
		return
	}

	created, err := hotelService.Create(hotel)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

// UpdateHotel also covers seasonal pricing edits: the frontend sends the full
// seasonalPricing list as JSON.
func UpdateHotel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}

	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel payload: "+err.Error())
		return
	}
	hotel.ID = uint(id)

	if err := hotelService.Update(hotel); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}
