package services

import (
	"context"
	"log"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/payments"

	"gorm.io/gorm"
)

// SweeperService is the recurring job advancing the booking lifecycle: stays
// past checkout become completed, and room holds whose payment intent was
// never confirmed are expired and their authorizations voided. It is wired to
// a cron schedule by main.go but fully invocable on its own; errors are
// logged, never surfaced to a user, and never crash the host process.
type SweeperService struct {
	DB       *gorm.DB
	Bookings *BookingService
	Provider payments.Provider

	Now func() time.Time
}

func NewSweeperService(db *gorm.DB, bookings *BookingService, provider payments.Provider) *SweeperService {
	return &SweeperService{DB: db, Bookings: bookings, Provider: provider, Now: time.Now}
}

// Run executes one sweep pass.
func (s *SweeperService) Run(ctx context.Context) {
	now := s.Now().UTC()
	log.Printf("sweeper: run started (now=%s)", now.Format(time.RFC3339))

	if err := s.Bookings.SweepCompletions(now); err != nil {
		log.Printf("sweeper: completion sweep failed: %v", err)
	}
	if err := s.ReleaseExpiredHolds(ctx, now); err != nil {
		log.Printf("sweeper: hold release failed: %v", err)
	}

	log.Printf("sweeper: run finished")
}

// ReleaseExpiredHolds expires active holds past their TTL and cancels the
// associated payment intents so abandoned authorizations don't linger.
// Cancellation is best-effort per hold.
func (s *SweeperService) ReleaseExpiredHolds(ctx context.Context, now time.Time) error {
	var holds []models.RoomHold
	if err := s.DB.
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.HoldStatusActive, now).
		Find(&holds).Error; err != nil {
		return err
	}

	for i := range holds {
		h := &holds[i]
		if err := s.DB.Model(&models.RoomHold{}).Where("id = ? AND status = ?", h.ID, models.HoldStatusActive).
			Update("status", models.HoldStatusExpired).Error; err != nil {
			log.Printf("sweeper: failed to expire hold %d: %v", h.ID, err)
			continue
		}
		if err := s.Provider.Cancel(ctx, h.PaymentIntentID); err != nil {
			log.Printf("sweeper: failed to cancel intent %s for expired hold %d: %v", h.PaymentIntentID, h.ID, err)
		}
	}
	return nil
}
