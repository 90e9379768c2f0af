package core

import (
	"math"
	"time"
)

// BiddingStrategy tags how aggressively a bank partner sizes its bids
// and depletes its daily quota.
type BiddingStrategy string

const (
	StrategyConservative BiddingStrategy = "conservative"
	StrategyBalanced     BiddingStrategy = "balanced"
	StrategyAggressive   BiddingStrategy = "aggressive"
)

// BankPartner is the static description of a simulated bank. Partners
// are configuration: they are never mutated at runtime, and quota
// remaining is derived from time-of-day rather than stored.
type BankPartner struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Logo              string          `json:"logo"`
	DailyQuota        int             `json:"daily_quota"`
	MinBid            float64         `json:"min_bid"`
	MaxBid            float64         `json:"max_bid"`
	PreferredSegments []string        `json:"preferred_segments"`
	BiddingStrategy   BiddingStrategy `json:"bidding_strategy"`
}

// BankPartners lists the simulated Saudi bank partners that submit
// welcome-balance bids.
var BankPartners = []BankPartner{
	{
		ID:                "snb",
		Name:              "Saudi National Bank",
		Logo:              "SNB",
		DailyQuota:        100,
		MinBid:            25,
		MaxBid:            400,
		PreferredSegments: []string{"high_income", "riyadh", "jeddah"},
		BiddingStrategy:   StrategyAggressive,
	},
	{
		ID:                "anb",
		Name:              "Arab National Bank",
		Logo:              "ANB",
		DailyQuota:        80,
		MinBid:            30,
		MaxBid:            350,
		PreferredSegments: []string{"mid_income", "dammam", "mecca"},
		BiddingStrategy:   StrategyBalanced,
	},
	{
		ID:                "rajhi",
		Name:              "Al Rajhi Bank",
		Logo:              "RAJHI",
		DailyQuota:        120,
		MinBid:            25,
		MaxBid:            500,
		PreferredSegments: []string{"conservative", "islamic", "family"},
		BiddingStrategy:   StrategyConservative,
	},
	{
		ID:                "alinma",
		Name:              "Alinma Bank",
		Logo:              "ALINMA",
		DailyQuota:        90,
		MinBid:            35,
		MaxBid:            450,
		PreferredSegments: []string{"young_professionals", "tech", "modern"},
		BiddingStrategy:   StrategyAggressive,
	},
	{
		ID:                "samba",
		Name:              "Samba Financial Group",
		Logo:              "SAMBA",
		DailyQuota:        75,
		MinBid:            40,
		MaxBid:            600,
		PreferredSegments: []string{"premium", "high_net_worth", "business"},
		BiddingStrategy:   StrategyAggressive,
	},
	{
		ID:                "riyadbank",
		Name:              "Riyad Bank",
		Logo:              "RIYAD",
		DailyQuota:        95,
		MinBid:            25,
		MaxBid:            375,
		PreferredSegments: []string{"traditional", "medina", "tabuk"},
		BiddingStrategy:   StrategyBalanced,
	},
}

// BankByID returns the partner with the given id, or nil if unknown.
func BankByID(bankID string) *BankPartner {
	for i := range BankPartners {
		if BankPartners[i].ID == bankID {
			return &BankPartners[i]
		}
	}
	return nil
}

// QuotaRemaining derives how many bids a partner can still extend at
// the given moment. Usage accelerates through the day at a rate set by
// the partner's strategy: aggressive banks burn quota fastest.
// Pure function of the supplied clock so tests can simulate any hour.
func QuotaRemaining(bank BankPartner, now time.Time) int {
	hoursIntoDay := float64(now.Hour()) + float64(now.Minute())/60
	dayProgress := hoursIntoDay / 24

	var usageRate float64
	switch bank.BiddingStrategy {
	case StrategyAggressive:
		usageRate = 0.7 + dayProgress*0.3
	case StrategyConservative:
		usageRate = 0.3 + dayProgress*0.4
	default:
		usageRate = 0.5 + dayProgress*0.4
	}

	used := int(math.Floor(float64(bank.DailyQuota) * usageRate))
	if used >= bank.DailyQuota {
		return 0
	}
	return bank.DailyQuota - used
}
