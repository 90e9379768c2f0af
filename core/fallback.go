package core

import (
	"fmt"
	"time"
)

// FallbackBids produces the deterministic flat baseline used when
// dynamic bid generation fails: one bid per partner at the midpoint of
// its bid band, full quota, no eligibility constraints. Highest-wins
// ranking still applies downstream, so the degraded result stays
// well-formed for the UI.
func FallbackBids(customer Customer, now time.Time) []WelcomeBid {
	bids := make([]WelcomeBid, 0, len(BankPartners))
	for _, bank := range BankPartners {
		midpoint := roundToNearest((bank.MinBid+bank.MaxBid)/2, 5)
		bids = append(bids, WelcomeBid{
			BankID:         bank.ID,
			BankName:       bank.Name,
			BankLogo:       bank.Logo,
			BidAmount:      midpoint,
			QuotaRemaining: bank.DailyQuota,
			CampaignID:     fmt.Sprintf("baseline_%s_%s", bank.ID, now.Format("2006-01-02")),
			ExpiresAt:      now.Add(24 * time.Hour),
			CreatedAt:      now,
		})
	}
	return bids
}
