package core

import (
	"fmt"
	"math"
)

// CardTierConfig is the static configuration of one card product.
type CardTierConfig struct {
	Name             string     `json:"name"`
	Network          string     `json:"network"` // "Visa" or "Mastercard"
	MinMonthlyIncome float64    `json:"minMonthlyIncome"`
	MultiplierRange  [2]float64 `json:"multiplierRange"` // [min, max] multiplier of monthly salary
	Description      string     `json:"description"`
}

// CardTiers maps every supported card product to its configuration.
// Every card product referenced by a customer or partner strategy must
// have an entry; unknown products fall through to the outlier path in
// ValidateCreditLimit.
var CardTiers = map[string]CardTierConfig{
	"Visa Platinum": {
		Name:             "Visa Platinum",
		Network:          "Visa",
		MinMonthlyIncome: 7000,
		MultiplierRange:  [2]float64{2, 4},
		Description:      "Entry-level premium card",
	},
	"Visa Signature": {
		Name:             "Visa Signature",
		Network:          "Visa",
		MinMonthlyIncome: 15000,
		MultiplierRange:  [2]float64{3, 5},
		Description:      "Mid-tier premium card",
	},
	"Visa Infinite": {
		Name:             "Visa Infinite",
		Network:          "Visa",
		MinMonthlyIncome: 30000,
		MultiplierRange:  [2]float64{5, 6.5},
		Description:      "High-tier card for HNW individuals",
	},
	"Mastercard Standard": {
		Name:             "Mastercard Standard",
		Network:          "Mastercard",
		MinMonthlyIncome: 5000,
		MultiplierRange:  [2]float64{1, 3},
		Description:      "Entry-level card",
	},
	"Mastercard World": {
		Name:             "Mastercard World",
		Network:          "Mastercard",
		MinMonthlyIncome: 12000,
		MultiplierRange:  [2]float64{3, 4.5},
		Description:      "Mid-tier card",
	},
	"Mastercard World Elite": {
		Name:             "Mastercard World Elite",
		Network:          "Mastercard",
		MinMonthlyIncome: 25000,
		MultiplierRange:  [2]float64{4, 6},
		Description:      "High-tier card for executives",
	},
}

// RiskLevel classifies how a proposed credit limit sits within the card
// tier's multiplier-of-salary band.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskStandard     RiskLevel = "standard"
	RiskAggressive   RiskLevel = "aggressive"
	RiskOutlier      RiskLevel = "outlier"
)

// ValidationResult is the outcome of validating a proposed credit
// limit against the customer's income and card tier.
type ValidationResult struct {
	IsValid         bool      `json:"isValid"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Message         string    `json:"message"`
	SuggestedAmount float64   `json:"suggestedAmount"`
	Multiplier      float64   `json:"multiplier"`
}

// ValidateCreditLimit classifies a proposed credit limit for a card
// product. An unknown card product is an outlier classification with a
// generic 3x suggestion, never an error. Inputs are assumed to be
// validated positive numbers; behavior on NaN or negative values is
// undefined.
func ValidateCreditLimit(creditLimit, monthlyIncome float64, cardProduct string) ValidationResult {
	tier, ok := CardTiers[cardProduct]
	if !ok {
		return ValidationResult{
			IsValid:         false,
			RiskLevel:       RiskOutlier,
			Message:         "Unknown card type",
			SuggestedAmount: monthlyIncome * 3,
			Multiplier:      0,
		}
	}

	multiplier := creditLimit / monthlyIncome
	minMultiplier := tier.MultiplierRange[0]
	maxMultiplier := tier.MultiplierRange[1]
	midMultiplier := (minMultiplier + maxMultiplier) / 2

	var riskLevel RiskLevel
	var message string
	isValid := true

	switch {
	case multiplier > maxMultiplier:
		riskLevel = RiskOutlier
		message = fmt.Sprintf("Exceeds %s maximum (%gx salary). Requires approval.", cardProduct, maxMultiplier)
		isValid = false
	case multiplier > midMultiplier+0.5:
		riskLevel = RiskAggressive
		message = fmt.Sprintf("Above typical range for %s. Consider risk factors.", cardProduct)
	case multiplier >= minMultiplier:
		riskLevel = RiskStandard
		message = fmt.Sprintf("Within normal range for %s.", cardProduct)
	default:
		riskLevel = RiskConservative
		message = fmt.Sprintf("Conservative limit for %s.", cardProduct)
	}

	return ValidationResult{
		IsValid:         isValid,
		RiskLevel:       riskLevel,
		Message:         message,
		SuggestedAmount: math.Round(monthlyIncome * midMultiplier),
		Multiplier:      multiplier,
	}
}

// AutoSuggestedLimit returns the midpoint-of-band credit limit for a
// customer's income and card product, or a 3x fallback for unknown
// products.
func AutoSuggestedLimit(monthlyIncome float64, cardProduct string) float64 {
	tier, ok := CardTiers[cardProduct]
	if !ok {
		return monthlyIncome * 3
	}
	midMultiplier := (tier.MultiplierRange[0] + tier.MultiplierRange[1]) / 2
	return math.Round(monthlyIncome * midMultiplier)
}

// CustomerSegment buckets a customer for analytics metadata.
func CustomerSegment(customer Customer) string {
	switch {
	case customer.Income >= 20000 && customer.CreditScore >= 750:
		return "premium"
	case customer.Income >= 10000 && customer.CreditScore >= 700:
		return "affluent"
	case customer.Income >= 7000 && customer.CreditScore >= 650:
		return "mass_market"
	default:
		return "emerging"
	}
}
