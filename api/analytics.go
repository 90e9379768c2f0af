package api

import (
	"net/http"

	"github.com/rizqlabs/welcomebid/core"
	"github.com/rizqlabs/welcomebid/history"
)

type biddingAnalytics struct {
	TotalOffers        int            `json:"total_offers"`
	StatusBreakdown    map[string]int `json:"status_breakdown"`
	AverageCreditLimit float64        `json:"average_credit_limit"`
	TopCompetingBank   string         `json:"top_competing_bank,omitempty"`
	CustomerSegments   map[string]int `json:"customer_segments"`
}

// BiddingAnalytics handles GET /bidding-analytics. Figures are computed
// from the offer-history ledger rather than sampled counters, so they
// always agree with what /offer-history returns.
func (h *Handler) BiddingAnalytics(w http.ResponseWriter, r *http.Request) {
	records := h.store.List()

	analytics := biddingAnalytics{
		TotalOffers:      len(records),
		StatusBreakdown:  map[string]int{},
		CustomerSegments: map[string]int{},
	}

	bankWins := map[string]int{}
	for _, record := range records {
		analytics.StatusBreakdown[string(record.Status)]++
		analytics.AverageCreditLimit += record.CreditLimit
		analytics.CustomerSegments[recordSegment(record)]++
		for _, offer := range record.CompetingOffers {
			if offer.IsWinner {
				bankWins[offer.BankName]++
			}
		}
	}
	if len(records) > 0 {
		analytics.AverageCreditLimit /= float64(len(records))
	}

	topWins := 0
	for bank, wins := range bankWins {
		if wins > topWins || (wins == topWins && bank < analytics.TopCompetingBank) {
			analytics.TopCompetingBank = bank
			topWins = wins
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      analytics,
		"timestamp": h.now().UnixMilli(),
	})
}

// recordSegment buckets a ledger record the same way live evaluations
// are bucketed. Records without a financial snapshot land in emerging.
func recordSegment(record history.Record) string {
	if record.Financials == nil {
		return "emerging"
	}
	return core.CustomerSegment(core.Customer{
		Income:      record.Financials.Income,
		CreditScore: record.Financials.CreditScore,
	})
}
