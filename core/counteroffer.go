package core

import "time"

const (
	// counterOfferProbability is the chance a bank responds to a
	// competitive user offer with a raise.
	counterOfferProbability = 0.70

	// counterOfferOutlierProbability applies instead when the user's
	// offer is classified outlier risk: banks rarely chase amounts
	// that exceed the card tier's regulatory band.
	counterOfferOutlierProbability = 0.05

	// ceilingProximityThreshold: a bank already within 5% of its
	// regulatory ceiling never raises.
	ceilingProximityThreshold = 0.95
)

// SimulateImprovedOffers models competitor reaction after a user
// submits a manual offer that ties or beats the current best competing
// offer. Each competing bank at or below the user's amount raises, with
// the response probability, to a random 5-15% above the user's amount
// rounded to the nearest 1,000 SAR - clamped to the lesser of the
// card tier's regulatory ceiling and double the bank's prior offer.
// The user's own entry is never touched; offers that do not raise are
// returned unchanged. Raised offers get a fresh timestamp so the UI
// can highlight them.
//
// customer may be nil when tier data is unavailable; the tier ceiling
// clamp is then skipped and only the anti-runaway doubling bound
// applies.
func SimulateImprovedOffers(offers []BankOffer, userOffer BankOffer, customer *Customer, now time.Time, rnd RandSource) []BankOffer {
	if rnd == nil {
		rnd = defaultRandSource
	}

	// No competitive pressure: the user is trailing.
	highestCompeting := 0.0
	for _, offer := range offers {
		if offer.BankName == userOffer.BankName {
			continue
		}
		if offer.CreditLimit > highestCompeting {
			highestCompeting = offer.CreditLimit
		}
	}
	if userOffer.CreditLimit < highestCompeting {
		return offers
	}

	probability := counterOfferProbability
	var tierCeiling float64
	if customer != nil {
		validation := ValidateCreditLimit(userOffer.CreditLimit, customer.Income, customer.AppliedCard)
		if validation.RiskLevel == RiskOutlier {
			probability = counterOfferOutlierProbability
		}
		if tier, ok := CardTiers[customer.AppliedCard]; ok {
			tierCeiling = customer.Income * tier.MultiplierRange[1]
		}
	}

	updated := make([]BankOffer, len(offers))
	copy(updated, offers)

	for i := range updated {
		offer := &updated[i]
		if offer.BankName == userOffer.BankName {
			continue
		}
		if offer.CreditLimit > userOffer.CreditLimit {
			continue
		}
		if tierCeiling > 0 && offer.CreditLimit >= tierCeiling*ceilingProximityThreshold {
			continue
		}
		if rnd.Float64() >= probability {
			continue
		}

		raised := roundToNearest(userOffer.CreditLimit*(1.05+rnd.Float64()*0.10), 1000)

		maxRaise := offer.CreditLimit * 2
		if tierCeiling > 0 && tierCeiling < maxRaise {
			maxRaise = tierCeiling
		}
		if raised > maxRaise {
			raised = maxRaise
		}
		if raised <= offer.CreditLimit {
			continue
		}

		offer.CreditLimit = raised
		offer.Timestamp = now
	}

	return updated
}
