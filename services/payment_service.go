package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/payments"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
)

// PaymentService opens payment intents for booking requests: it locates a
// candidate room, prices the stay and authorizes the amount with the external
// processor. The room is NOT allocated here — the hold it records is
// informational, and the real allocation happens in BookingService.Create
// after the client confirms payment.
type PaymentService struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Pricing   *PricingService
	Provider  payments.Provider

	Currency string
	HoldTTL  time.Duration
}

func NewPaymentService(db *gorm.DB, inv *InventoryService, pricing *PricingService, provider payments.Provider) *PaymentService {
	ttl := 30 * time.Minute
	if raw := utils.EnvOrDefault("HOLD_TTL_MINUTES", ""); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			ttl = time.Duration(mins) * time.Minute
		}
	}
	return &PaymentService{
		DB:        db,
		Inventory: inv,
		Pricing:   pricing,
		Provider:  provider,
		Currency:  utils.EnvOrDefault("PAYMENT_CURRENCY", "usd"),
		HoldTTL:   ttl,
	}
}

type IntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	TotalPrice      int64  `json:"totalPrice"`
	RoomNumber      string `json:"roomNumber"`
}

// CreateIntent validates the request, picks a candidate room, computes the
// stay total and opens an authorization for it in the smallest currency unit.
func (s *PaymentService) CreateIntent(ctx context.Context, hotelID uint, checkIn, checkOut time.Time, adults, children int, roomType string) (*IntentResult, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return nil, fmt.Errorf("validation: check_in and check_out are required")
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("validation: check_out must be after check_in")
	}
	if adults < 1 {
		return nil, fmt.Errorf("validation: at least one adult is required")
	}
	if children < 0 {
		return nil, fmt.Errorf("validation: children must not be negative")
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to load hotel %d: %w", hotelID, err)
	}

	room, err := s.Inventory.FindAvailableRoom(nil, hotelID, roomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	nightly := s.Pricing.Quote(&hotel, checkIn, checkOut)
	total := utils.StayTotal(nightly, checkIn, checkOut, adults, children)
	if total <= 0 {
		return nil, ErrInvalidAmount
	}

	intent, err := s.Provider.CreateIntent(ctx, total*100, s.Currency, map[string]string{
		"hotel_id":    strconv.FormatUint(uint64(hotelID), 10),
		"room_number": room.RoomNumber,
		"check_in":    checkIn.Format("2006-01-02"),
		"check_out":   checkOut.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate hold token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.HoldTTL)
	hold := models.RoomHold{
		HotelID:         hotelID,
		RoomNumber:      room.RoomNumber,
		RoomType:        room.Type,
		PaymentIntentID: intent.ID,
		Token:           token,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          adults,
		Children:        children,
		Amount:          total,
		Status:          models.HoldStatusActive,
		ExpiresAt:       &expiresAt,
	}
	if err := s.DB.Create(&hold).Error; err != nil {
		// Intent exists but we lost its bookkeeping; void it so the
		// authorization doesn't leak.
		if cErr := s.Provider.Cancel(ctx, intent.ID); cErr != nil {
			log.Printf("CRITICAL: failed to cancel orphaned intent %s: %v", intent.ID, cErr)
		}
		return nil, fmt.Errorf("failed to record room hold: %w", err)
	}

	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		TotalPrice:      total,
		RoomNumber:      room.RoomNumber,
	}, nil
}
