package core

import "time"

// baselineOfferBank describes one of the rival banks competing on
// credit limits, with the jitter band and submission window the demo
// assigns each.
type baselineOfferBank struct {
	name        string
	maxDiscount float64       // per-bank downward jitter on the derived limit
	window      time.Duration // offers were submitted within this window before now
}

var baselineOfferBanks = []baselineOfferBank{
	{name: "SNB", maxDiscount: 0.10, window: time.Hour},
	{name: "ANB", maxDiscount: 0.15, window: 2 * time.Hour},
	{name: "Al Ahli Bank", maxDiscount: 0.12, window: 3 * time.Hour},
}

// GenerateBankOffers produces the rival credit-limit offers a user bids
// against for one customer. Each bank derives its limit from income x
// 0.75 scaled by credit-score and debt factors, jittered downward and
// rounded to the nearest 1,000 SAR. The leading offer is flagged
// winner; when prioritizeLowestDTI is set, offers are compared on their
// DTI-adjusted value instead of the raw limit.
func GenerateBankOffers(customer Customer, prioritizeLowestDTI bool, now time.Time, rnd RandSource) []BankOffer {
	if rnd == nil {
		rnd = defaultRandSource
	}

	baseAmount := customer.Income * 0.75
	creditScoreFactor := float64(customer.CreditScore) / 800
	debtFactor := 1 - customer.DebtBurdenRatio

	offers := make([]BankOffer, 0, len(baselineOfferBanks))
	for _, bank := range baselineOfferBanks {
		limit := roundToNearest(
			baseAmount*creditScoreFactor*debtFactor*(1-rnd.Float64()*bank.maxDiscount), 1000)
		offers = append(offers, BankOffer{
			BankName:    bank.name,
			CreditLimit: limit,
			Timestamp:   now.Add(-time.Duration(rnd.Intn(int(bank.window.Seconds()))) * time.Second),
		})
	}

	winnerIdx := 0
	for i, offer := range offers[1:] {
		value := offer.CreditLimit
		best := offers[winnerIdx].CreditLimit
		if prioritizeLowestDTI {
			value *= 1 - customer.DebtBurdenRatio
			best *= 1 - customer.DebtBurdenRatio
		}
		if value > best {
			winnerIdx = i + 1
		}
	}
	offers[winnerIdx].IsWinner = true

	return offers
}
