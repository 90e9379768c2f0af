package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
)

func fixedBidSource(bids []WelcomeBid) BidSource {
	return func(Customer, time.Time, RandSource) ([]WelcomeBid, error) {
		return bids, nil
	}
}

func failingBidSource(err error) BidSource {
	return func(Customer, time.Time, RandSource) ([]WelcomeBid, error) {
		return nil, err
	}
}

func auditContains(trail []string, substr string) bool {
	for _, line := range trail {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestEvaluateBidsWith_WinnerIsHighestAmount(t *testing.T) {
	bids := []WelcomeBid{
		{BankID: "anb", BankName: "Arab National Bank", BidAmount: 180, QuotaRemaining: 10},
		{BankID: "snb", BankName: "Saudi National Bank", BidAmount: 275, QuotaRemaining: 20},
		{BankID: "rajhi", BankName: "Al Rajhi Bank", BidAmount: 140, QuotaRemaining: 5},
	}
	customer := Customer{ID: "cust-1", Income: 9000, CreditScore: 700, Location: "Riyadh", Age: 30}

	resp := EvaluateBidsWith(fixedBidSource(bids), baselineBidSource, customer, midnight, &mockRandSource{})

	check.NotNil(t, resp.WinningBid)
	check.Equal(t, "Saudi National Bank", resp.WinningBid.BankName)
	check.Equal(t, 275.0, resp.WinningBid.BidAmount)

	// Eligible bids are sorted strictly descending.
	check.Equal(t, 3, len(resp.EligibleBids))
	for i := 1; i < len(resp.EligibleBids); i++ {
		check.True(t, resp.EligibleBids[i-1].BidAmount > resp.EligibleBids[i].BidAmount)
	}

	check.True(t, strings.Contains(resp.DecisionReason, "Saudi National Bank"))
	check.True(t, strings.Contains(resp.DecisionReason, "275"))
}

func TestEvaluateBidsWith_AuditTrailStepOrdering(t *testing.T) {
	bids := []WelcomeBid{
		{BankID: "snb", BankName: "Saudi National Bank", BidAmount: 275, QuotaRemaining: 20},
		{BankID: "anb", BankName: "Arab National Bank", BidAmount: 180, QuotaRemaining: 10},
	}
	customer := Customer{ID: "cust-1", Income: 9000, CreditScore: 700, Location: "Riyadh", Age: 30}

	resp := EvaluateBidsWith(fixedBidSource(bids), baselineBidSource, customer, midnight, &mockRandSource{})

	wantOrder := []string{
		"Starting bid evaluation for customer cust-1",
		"Retrieved 2 active bids",
		"2 bids passed eligibility criteria",
		"2 bids have available quota",
		"Rank 1: Saudi National Bank",
		"Rank 2: Arab National Bank",
		"RESULT: Winner selected - Saudi National Bank",
		"Winning margin: SAR 95 over Arab National Bank",
		"Customer Profile: Income=9000, CreditScore=700, Location=Riyadh, Age=30",
	}

	idx := 0
	for _, line := range resp.AuditTrail {
		if idx < len(wantOrder) && strings.Contains(line, wantOrder[idx]) {
			idx++
		}
		// Every line carries a timestamp prefix.
		check.True(t, strings.HasPrefix(line, "["))
	}
	check.Equal(t, len(wantOrder), idx)
}

func TestEvaluateBidsWith_EligibilityRejectionLogged(t *testing.T) {
	bids := []WelcomeBid{
		{BankID: "snb", BankName: "Saudi National Bank", BidAmount: 275, QuotaRemaining: 20},
		{BankID: "samba", BankName: "Samba Financial Group", BidAmount: 400, QuotaRemaining: 5,
			Eligibility: EligibilityProfile{IncomeMin: 15000}},
	}
	customer := Customer{ID: "cust-1", Income: 9000, CreditScore: 700}

	resp := EvaluateBidsWith(fixedBidSource(bids), baselineBidSource, customer, midnight, &mockRandSource{})

	check.NotNil(t, resp.WinningBid)
	check.Equal(t, "Saudi National Bank", resp.WinningBid.BankName)
	check.Equal(t, 1, len(resp.EligibleBids))
	check.True(t, auditContains(resp.AuditTrail, "Filtered out Samba Financial Group: Failed eligibility check"))
}

func TestEvaluateBidsWith_QuotaExhaustedExcluded(t *testing.T) {
	bids := []WelcomeBid{
		{BankID: "snb", BankName: "Saudi National Bank", BidAmount: 275, QuotaRemaining: 0},
		{BankID: "anb", BankName: "Arab National Bank", BidAmount: 180, QuotaRemaining: 10},
	}
	customer := Customer{ID: "cust-1", Income: 9000, CreditScore: 700}

	resp := EvaluateBidsWith(fixedBidSource(bids), baselineBidSource, customer, midnight, &mockRandSource{})

	check.NotNil(t, resp.WinningBid)
	check.Equal(t, "Arab National Bank", resp.WinningBid.BankName)
	check.True(t, auditContains(resp.AuditTrail, "Saudi National Bank excluded: Daily quota exhausted"))
}

func TestEvaluateBidsWith_NoBidsIsTerminalState(t *testing.T) {
	customer := Customer{ID: "cust-1", Income: 4000, CreditScore: 550}

	resp := EvaluateBidsWith(fixedBidSource(nil), baselineBidSource, customer, midnight, &mockRandSource{})

	check.Nil(t, resp.WinningBid)
	check.Equal(t, 0, len(resp.EligibleBids))
	check.True(t, strings.Contains(resp.DecisionReason, "No eligible bids available"))
	check.True(t, auditContains(resp.AuditTrail, "RESULT: No winning bid"))
}

func TestEvaluateBids_LowCreditScoreCustomer(t *testing.T) {
	// No partner predicate accepts a 550 credit score, so the dynamic
	// source produces nothing.
	customer := Customer{ID: "cust-1", Income: 20000, CreditScore: 550, Location: "Riyadh"}

	resp := EvaluateBids(customer, midnight, &mockRandSource{})

	check.Nil(t, resp.WinningBid)
	check.Equal(t, 0, len(resp.EligibleBids))
	check.True(t, strings.Contains(resp.DecisionReason, "minimum criteria") ||
		strings.Contains(resp.DecisionReason, "quotas are exhausted"))
}

func TestEvaluateBidsWith_DegradesToBaselineOnPrimaryFailure(t *testing.T) {
	customer := Customer{ID: "cust-1", Income: 9000, CreditScore: 700}

	resp := EvaluateBidsWith(failingBidSource(errors.New("partner feed offline")), baselineBidSource,
		customer, midnight, &mockRandSource{})

	check.True(t, auditContains(resp.AuditTrail, "Dynamic bidding unavailable"))
	check.NotNil(t, resp.WinningBid)
	// Baseline bids sit at each partner's band midpoint; Samba's 320 leads.
	check.Equal(t, "Samba Financial Group", resp.WinningBid.BankName)
	check.Equal(t, 320.0, resp.WinningBid.BidAmount)
	check.Equal(t, len(BankPartners), len(resp.EligibleBids))
}

func TestFallbackBids_DeterministicMidpoints(t *testing.T) {
	customer := Customer{ID: "cust-1"}

	first := FallbackBids(customer, midnight)
	second := FallbackBids(customer, midnight)

	check.Equal(t, len(BankPartners), len(first))
	check.Equal(t, first, second)

	for i, bid := range first {
		bank := BankPartners[i]
		check.Equal(t, bank.ID, bid.BankID)
		check.True(t, bid.BidAmount >= bank.MinBid)
		check.True(t, bid.BidAmount <= bank.MaxBid)
		check.Equal(t, bank.DailyQuota, bid.QuotaRemaining)
	}
}
