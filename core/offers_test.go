package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestGenerateBankOffers_ThreeRivalBanks(t *testing.T) {
	customer := Customer{ID: "cust-1", Income: 10000, CreditScore: 800, DebtBurdenRatio: 0}

	// Float64 = 0 disables the per-bank discount: every limit is
	// income * 0.75 rounded to the nearest 1,000.
	rnd := &mockRandSource{ints: []int{600, 1200, 1800}}
	offers := GenerateBankOffers(customer, false, midnight, rnd)

	check.Equal(t, 3, len(offers))
	check.Equal(t, "SNB", offers[0].BankName)
	check.Equal(t, "ANB", offers[1].BankName)
	check.Equal(t, "Al Ahli Bank", offers[2].BankName)
	for _, offer := range offers {
		check.Equal(t, 8000.0, offer.CreditLimit) // 7,500 rounded up
		check.True(t, offer.Timestamp.Before(midnight))
	}
}

func TestGenerateBankOffers_MarksHighestAsWinner(t *testing.T) {
	customer := Customer{ID: "cust-1", Income: 10000, CreditScore: 800, DebtBurdenRatio: 0.2}

	// ANB takes the deepest discount, Al Ahli a lighter one, SNB none.
	rnd := &mockRandSource{floats: []float64{0, 0.9, 0.5}}
	offers := GenerateBankOffers(customer, false, midnight, rnd)

	check.True(t, offers[0].IsWinner)
	check.False(t, offers[1].IsWinner)
	check.False(t, offers[2].IsWinner)
	check.Equal(t, 1, len(winnersOf(offers)))
}

func TestGenerateBankOffers_ScalesWithProfile(t *testing.T) {
	strong := Customer{ID: "a", Income: 20000, CreditScore: 800, DebtBurdenRatio: 0}
	weak := Customer{ID: "b", Income: 6000, CreditScore: 520, DebtBurdenRatio: 0.45}

	strongOffers := GenerateBankOffers(strong, false, midnight, &mockRandSource{})
	weakOffers := GenerateBankOffers(weak, false, midnight, &mockRandSource{})

	for i := range strongOffers {
		check.True(t, strongOffers[i].CreditLimit > weakOffers[i].CreditLimit)
	}
}
