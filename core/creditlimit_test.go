package core

import (
	"strings"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestValidateCreditLimit_RiskLevels(t *testing.T) {
	tests := []struct {
		name        string
		creditLimit float64
		income      float64
		cardProduct string
		wantRisk    RiskLevel
		wantValid   bool
	}{
		// Visa Signature band is [3, 5], midpoint 4.
		{"outlier above tier maximum", 60000, 10000, "Visa Signature", RiskOutlier, false},
		{"aggressive above midpoint margin", 47000, 10000, "Visa Signature", RiskAggressive, true},
		{"standard within band", 40000, 10000, "Visa Signature", RiskStandard, true},
		{"standard at band minimum", 30000, 10000, "Visa Signature", RiskStandard, true},
		{"conservative below band", 20000, 10000, "Visa Signature", RiskConservative, true},
		// Mastercard Standard band is [1, 3].
		{"entry card outlier", 35000, 10000, "Mastercard Standard", RiskOutlier, false},
		{"entry card standard", 15000, 10000, "Mastercard Standard", RiskStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCreditLimit(tt.creditLimit, tt.income, tt.cardProduct)
			check.Equal(t, tt.wantRisk, result.RiskLevel)
			check.Equal(t, tt.wantValid, result.IsValid)
			check.Equal(t, tt.creditLimit/tt.income, result.Multiplier)
		})
	}
}

func TestValidateCreditLimit_UnknownCardProduct(t *testing.T) {
	result := ValidateCreditLimit(30000, 10000, "Diners Club Carte Blanche")

	check.False(t, result.IsValid)
	check.Equal(t, RiskOutlier, result.RiskLevel)
	check.Equal(t, "Unknown card type", result.Message)
	check.Equal(t, 30000.0, result.SuggestedAmount) // 3x income fallback
	check.Equal(t, 0.0, result.Multiplier)
}

func TestValidateCreditLimit_SuggestedAmountIsBandMidpoint(t *testing.T) {
	result := ValidateCreditLimit(40000, 10000, "Visa Signature")

	check.Equal(t, 40000.0, result.SuggestedAmount) // 4x midpoint of [3, 5]
	check.True(t, strings.Contains(result.Message, "Visa Signature"))
}

func TestAutoSuggestedLimit(t *testing.T) {
	check.Equal(t, 40000.0, AutoSuggestedLimit(10000, "Visa Signature"))
	check.Equal(t, 30000.0, AutoSuggestedLimit(10000, "Visa Platinum"))
	check.Equal(t, 30000.0, AutoSuggestedLimit(10000, "Unknown Card"))
}

func TestCardTiers_CoverCustomerProducts(t *testing.T) {
	for name, tier := range CardTiers {
		check.Equal(t, name, tier.Name)
		check.True(t, tier.MultiplierRange[0] < tier.MultiplierRange[1])
		check.True(t, tier.MinMonthlyIncome > 0)
	}
}

func TestCustomerSegment(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		expected string
	}{
		{"premium", Customer{Income: 25000, CreditScore: 780}, "premium"},
		{"affluent", Customer{Income: 12000, CreditScore: 710}, "affluent"},
		{"mass market", Customer{Income: 8000, CreditScore: 660}, "mass_market"},
		{"emerging", Customer{Income: 5000, CreditScore: 600}, "emerging"},
		{"high income low score", Customer{Income: 25000, CreditScore: 600}, "emerging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.expected, CustomerSegment(tt.customer))
		})
	}
}
