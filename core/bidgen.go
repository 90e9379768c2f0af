package core

import (
	"fmt"
	"slices"
	"time"
)

// premiumCities earn a location bonus in bid sizing.
var premiumCities = []string{"Riyadh", "Jeddah"}

// premiumCobrandPartners earn a prestige bonus in bid sizing.
var premiumCobrandPartners = []string{"jarir", "amazon", "extra"}

// GenerateWelcomeBids synthesizes one candidate welcome-balance bid per
// eligible bank partner. Banks whose quota is exhausted at the given
// moment, or whose business preferences the customer fails, submit no
// bid. Output ordering is not guaranteed; callers must sort before
// relying on position.
//
// All randomness (bid jitter, staggered creation timestamps) is drawn
// from rnd; pass nil for the process-wide source.
func GenerateWelcomeBids(customer Customer, now time.Time, rnd RandSource) []WelcomeBid {
	if rnd == nil {
		rnd = defaultRandSource
	}

	bids := make([]WelcomeBid, 0, len(BankPartners))
	for _, bank := range BankPartners {
		quotaRemaining := QuotaRemaining(bank, now)
		if quotaRemaining <= 0 {
			continue
		}

		if !eligibleForBank(customer, bank) {
			continue
		}

		bids = append(bids, WelcomeBid{
			BankID:         bank.ID,
			BankName:       bank.Name,
			BankLogo:       bank.Logo,
			BidAmount:      calculateBidAmount(customer, bank, rnd),
			QuotaRemaining: quotaRemaining,
			Eligibility:    bankEligibilityProfile(bank),
			CampaignID:     fmt.Sprintf("campaign_%s_%s", bank.ID, now.Format("2006-01-02")),
			ExpiresAt:      now.Add(24 * time.Hour),
			// Randomized within the last hour to model asynchronous
			// bid submission.
			CreatedAt: now.Add(-time.Duration(rnd.Intn(3600)) * time.Second),
		})
	}

	return bids
}

// eligibleForBank applies a bank's hard-coded business preferences.
// Distinct from the generic profile check: these rules are what the
// bank actually runs, the attached EligibilityProfile is what it
// discloses for audit.
func eligibleForBank(customer Customer, bank BankPartner) bool {
	if customer.CreditScore < 600 {
		return false
	}
	if customer.DebtBurdenRatio > 0.5 {
		return false
	}

	switch bank.ID {
	case "snb":
		return customer.Income >= 8000 && slices.Contains(premiumCities, customer.Location)
	case "anb":
		return customer.Income >= 6000
	case "rajhi":
		return customer.Nationality == "Saudi Arabian"
	case "alinma":
		return customer.Age <= 45 && customer.Income >= 7000
	case "samba":
		return customer.Income >= 15000 && customer.CreditScore >= 700
	case "riyadbank":
		return customer.Income >= 5000
	default:
		return true
	}
}

// calculateBidAmount sizes a bank's bid for a customer: the bank's
// minimum plus graduated bonuses, scaled by the strategy coefficient,
// jittered ±20%, rounded to the nearest 5 SAR, and clamped into the
// bank's [MinBid, MaxBid] band.
func calculateBidAmount(customer Customer, bank BankPartner, rnd RandSource) float64 {
	baseBid := bank.MinBid

	// Income bracket
	switch {
	case customer.Income >= 15000:
		baseBid += 100
	case customer.Income >= 10000:
		baseBid += 60
	case customer.Income >= 7000:
		baseBid += 30
	}

	// Credit score bracket
	switch {
	case customer.CreditScore >= 750:
		baseBid += 80
	case customer.CreditScore >= 700:
		baseBid += 50
	case customer.CreditScore >= 650:
		baseBid += 25
	}

	// Age bracket, younger preferred
	switch {
	case customer.Age <= 30:
		baseBid += 40
	case customer.Age <= 40:
		baseBid += 20
	}

	// Low debt burden
	switch {
	case customer.DebtBurdenRatio <= 0.2:
		baseBid += 50
	case customer.DebtBurdenRatio <= 0.3:
		baseBid += 25
	}

	// Premium location
	if slices.Contains(premiumCities, customer.Location) {
		baseBid += 30
	}

	// Cobrand partner prestige
	if customer.CobrandPartner != "" && slices.Contains(premiumCobrandPartners, customer.CobrandPartner) {
		baseBid += 25
	}

	baseBid = applyStrategyMultiplier(baseBid, bank.BiddingStrategy)

	// Random variation (±20%)
	baseBid *= 0.8 + rnd.Float64()*0.4

	return clampAmount(roundToNearest(baseBid, 5), bank.MinBid, bank.MaxBid)
}

// bankEligibilityProfile synthesizes the profile a bank discloses with
// its bid, reflecting its actual preferences for audit transparency.
func bankEligibilityProfile(bank BankPartner) EligibilityProfile {
	switch bank.ID {
	case "snb":
		return EligibilityProfile{
			IncomeMin:      8000,
			Regions:        []string{"Riyadh", "Jeddah"},
			CreditScoreMin: 650,
		}
	case "anb":
		return EligibilityProfile{
			IncomeMin:      6000,
			CreditScoreMin: 600,
		}
	case "rajhi":
		return EligibilityProfile{
			Nationalities: []string{"Saudi Arabian"},
			IncomeMin:     5000,
		}
	case "alinma":
		return EligibilityProfile{
			AgeMax:         45,
			IncomeMin:      7000,
			CreditScoreMin: 650,
		}
	case "samba":
		return EligibilityProfile{
			IncomeMin:      15000,
			CreditScoreMin: 700,
		}
	case "riyadbank":
		return EligibilityProfile{
			IncomeMin:          5000,
			DebtBurdenRatioMax: 0.4,
		}
	default:
		return EligibilityProfile{}
	}
}
