package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken returns a hex token (length = bytes).
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewBookingRef builds the human-readable booking reference, e.g. "BK-4F9A2C1E".
func NewBookingRef() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + raw[:8]
}

// PtrTime returns pointer to time.Time
func PtrTime(t time.Time) *time.Time { return &t }

// Nights counts the billable nights of a stay, rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours()
	return int(math.Ceil(hours / 24))
}

// IsWeekendStay reports whether checkIn or checkOut falls on Friday/Saturday.
func IsWeekendStay(checkIn, checkOut time.Time) bool {
	for _, d := range []time.Weekday{checkIn.Weekday(), checkOut.Weekday()} {
		if d == time.Friday || d == time.Saturday {
			return true
		}
	}
	return false
}

// StayTotal computes the full stay price from a nightly quote: nights times a
// guest weighting (adults count 1, children 0.5) times a 1.2 weekend
// multiplier when the stay touches Friday/Saturday.
func StayTotal(nightly int64, checkIn, checkOut time.Time, adults, children int) int64 {
	total := float64(nightly) * float64(Nights(checkIn, checkOut)) *
		(float64(adults) + 0.5*float64(children))
	if IsWeekendStay(checkIn, checkOut) {
		total *= 1.2
	}
	return int64(math.Round(total))
}
