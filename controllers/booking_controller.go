// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-booking-backend/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateIntentPayload struct {
	HotelID  uint   `json:"hotelId" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
	Adults   int    `json:"adults" binding:"required,min=1"`
	Children int    `json:"children" binding:"min=0"`
	RoomType string `json:"roomType"`
}

type CreateBookingPayload struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
	PaymentSvc *services.PaymentService
}

func NewBookingController(bookingSvc *services.BookingService, paymentSvc *services.PaymentService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, PaymentSvc: paymentSvc}
}

// parseStayDate accepts "2006-01-02" or RFC3339.
func parseStayDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// currentUserID returns the acting user set by middleware.CurrentUser.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userId"); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}

// respondServiceError maps service sentinels to HTTP statuses with the shared
// error envelope.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
	case errors.Is(err, services.ErrHotelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.hotelNotFound", "message": "hotel not found"}})
	case errors.Is(err, services.ErrHoldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.unknownPaymentIntent", "message": "no pending reservation for that payment intent"}})
	case errors.Is(err, services.ErrNoRoomAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.noRoomAvailable", "message": "no rooms of the requested type are free for those dates"}})
	case errors.Is(err, services.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.roomNoLongerAvailable", "message": "the room is no longer available; your payment has been refunded"}})
	case errors.Is(err, services.ErrAlreadyRefunded):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.alreadyRefunded", "message": "this booking has already been fully refunded"}})
	case errors.Is(err, services.ErrRefundNotRequested):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.refundNotRequested", "message": "there is no pending refund request on this booking"}})
	case errors.Is(err, services.ErrInvalidRefundAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidRefundAmount", "message": "refund amount must be positive and within the remaining balance"}})
	case errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidAmount", "message": "computed amount is not payable"}})
	case errors.Is(err, services.ErrPaymentProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"code": "error.paymentProvider", "message": "payment processor rejected the request"}})
	case strings.Contains(err.Error(), "validation"):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": err.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "internal error", "details": err.Error()}})
	}
}

// ---------------------------
// 1) Create payment intent
// ---------------------------

func (ctrl *BookingController) CreatePaymentIntent(c *gin.Context) {
	var payload CreateIntentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid payload", "details": err.Error()}})
		return
	}

	checkIn, ok := parseStayDate(payload.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDate", "message": "checkIn must be YYYY-MM-DD or RFC3339"}})
		return
	}
	checkOut, ok := parseStayDate(payload.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDate", "message": "checkOut must be YYYY-MM-DD or RFC3339"}})
		return
	}

	result, err := ctrl.PaymentSvc.CreateIntent(c.Request.Context(), payload.HotelID, checkIn, checkOut, payload.Adults, payload.Children, payload.RoomType)
	if err != nil {
		log.Printf("CreatePaymentIntent error (hotel=%d): %v", payload.HotelID, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ---------------------------
// 2) Commit booking after payment confirmation
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "paymentIntentId is required", "details": err.Error()}})
		return
	}

	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), currentUserID(c), payload.PaymentIntentID)
	if err != nil {
		log.Printf("CreateBooking error (intent=%s): %v", payload.PaymentIntentID, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
}

// ---------------------------
// CRUD: Bookings
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	var userID uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidUserId", "message": "user_id must be numeric"}})
			return
		}
		userID = uint(parsed)
	}

	bookings, err := ctrl.BookingSvc.List(userID)
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// Admin transitions
// ---------------------------

func (ctrl *BookingController) ApproveBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Approve(id)
	if err != nil {
		log.Printf("ApproveBooking error (id=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Reject(id)
	if err != nil {
		log.Printf("RejectBooking error (id=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidBookingId", "message": "booking id must be numeric"}})
		return 0, false
	}
	return uint(parsed), true
}
