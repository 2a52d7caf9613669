package services

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"hotel-booking-backend/models"
)

// PricingService computes a room's per-night price from the hotel's base
// price, its seasonal rules and a demand surcharge. The demand factor and the
// seasonal reference date are injectable policies so tests can pin them.
type PricingService struct {
	// Now supplies the reference date seasonal rules are matched against.
	Now func() time.Time

	// Demand returns the surcharge factor applied to the base price.
	// The default draws uniformly from [0, 0.3).
	Demand func() float64
}

func NewPricingService() *PricingService {
	return &PricingService{
		Now:    time.Now,
		Demand: func() float64 { return rand.Float64() * 0.3 },
	}
}

// Quote returns the per-night price in whole currency units:
// round(basePrice + seasonalAdjustment + basePrice*demand).
// A missing base price counts as 0 and malformed seasonal rules are skipped;
// Quote never fails.
func (s *PricingService) Quote(hotel *models.Hotel, checkIn, checkOut time.Time) int64 {
	base := hotel.BasePrice
	seasonal := s.seasonalAdjustment(hotel)
	surcharge := float64(base) * s.Demand()
	return int64(math.Round(float64(base+seasonal) + surcharge))
}

func (s *PricingService) seasonalAdjustment(hotel *models.Hotel) int64 {
	if len(hotel.SeasonalPricing) == 0 {
		return 0
	}

	var rules []models.SeasonalRule
	if err := json.Unmarshal(hotel.SeasonalPricing, &rules); err != nil {
		return 0
	}

	today := truncateToDate(s.Now())

	// Rules are not date-ranked: scan in list order, last match wins.
	var adjustment int64
	for _, r := range rules {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			continue
		}
		if !today.Before(start) && !today.After(end) {
			adjustment = r.Price
		}
	}
	return adjustment
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
