package services

import (
	"fmt"
	"math"

	"github.com/homeserve/booking-backend/internal/models"
)

// GSTRate is the fixed tax rate applied to the base service amount
const GSTRate = 0.18

// Quote holds the derived pricing for a base service amount
type Quote struct {
	ServiceAmount float64
	GSTAmount     float64
	TotalAmount   float64
}

// PricingService derives tax and total from a base service amount
type PricingService struct{}

// NewPricingService creates a new PricingService
func NewPricingService() *PricingService {
	return &PricingService{}
}

// Price computes the GST and total for a base amount. Each derived value is
// rounded to two decimals exactly once; the base amount itself is never
// rounded. Returns models.ErrInvalidAmount for non-positive or non-numeric
// input.
func (s *PricingService) Price(baseAmount float64) (*Quote, error) {
	if math.IsNaN(baseAmount) || math.IsInf(baseAmount, 0) {
		return nil, fmt.Errorf("base amount is not a number: %w", models.ErrInvalidAmount)
	}
	if baseAmount <= 0 {
		return nil, fmt.Errorf("base amount must be positive, got %.2f: %w", baseAmount, models.ErrInvalidAmount)
	}

	gst := Round2(baseAmount * GSTRate)
	total := Round2(baseAmount + gst)

	return &Quote{
		ServiceAmount: baseAmount,
		GSTAmount:     gst,
		TotalAmount:   total,
	}, nil
}

// Round2 rounds a value to two decimals, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a currency value as a two-decimal string for the
// persisted record
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
