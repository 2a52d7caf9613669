package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestQuoteDeterministicPortionEqualsBasePrice(t *testing.T) {
	svc := pinnedPricing(date(2026, time.March, 2))
	hotel := &models.Hotel{BasePrice: 100}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(100), got)
}

func TestQuoteMissingBasePriceIsZero(t *testing.T) {
	svc := pinnedPricing(date(2026, time.March, 2))

	got := svc.Quote(&models.Hotel{}, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(0), got)
}

func TestQuoteAppliesSeasonalRuleContainingToday(t *testing.T) {
	svc := pinnedPricing(date(2025, time.December, 20))
	hotel := &models.Hotel{
		BasePrice: 100,
		SeasonalPricing: datatypes.JSON(
			`[{"startDate":"2025-12-15","endDate":"2026-01-05","price":40}]`),
	}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(140), got)
}

func TestQuoteLastMatchingSeasonalRuleWins(t *testing.T) {
	svc := pinnedPricing(date(2025, time.December, 20))
	hotel := &models.Hotel{
		BasePrice: 100,
		SeasonalPricing: datatypes.JSON(
			`[{"startDate":"2025-12-01","endDate":"2025-12-31","price":40},
			  {"startDate":"2025-12-15","endDate":"2026-01-05","price":25}]`),
	}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(125), got)
}

func TestQuoteIgnoresSeasonalRuleOutsideToday(t *testing.T) {
	svc := pinnedPricing(date(2026, time.March, 2))
	hotel := &models.Hotel{
		BasePrice: 100,
		SeasonalPricing: datatypes.JSON(
			`[{"startDate":"2025-12-15","endDate":"2026-01-05","price":40}]`),
	}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(100), got)
}

func TestQuoteSkipsMalformedSeasonalPricing(t *testing.T) {
	svc := pinnedPricing(date(2026, time.March, 2))
	hotel := &models.Hotel{
		BasePrice:       100,
		SeasonalPricing: datatypes.JSON(`"not an array"`),
	}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(100), got)
}

func TestQuoteSkipsRulesWithBadDates(t *testing.T) {
	svc := pinnedPricing(date(2025, time.December, 20))
	hotel := &models.Hotel{
		BasePrice: 100,
		SeasonalPricing: datatypes.JSON(
			`[{"startDate":"soon","endDate":"later","price":999},
			  {"startDate":"2025-12-15","endDate":"2026-01-05","price":40}]`),
	}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(140), got)
}

func TestQuoteAddsDemandSurcharge(t *testing.T) {
	svc := pinnedPricing(date(2026, time.March, 2))
	svc.Demand = func() float64 { return 0.3 }
	hotel := &models.Hotel{BasePrice: 100}

	got := svc.Quote(hotel, date(2026, time.March, 2), date(2026, time.March, 4))
	assert.Equal(t, int64(130), got)
}

func TestDefaultDemandStaysInRange(t *testing.T) {
	svc := NewPricingService()
	for i := 0; i < 100; i++ {
		f := svc.Demand()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 0.3)
	}
}
