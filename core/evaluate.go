package core

import (
	"fmt"
	"sort"
	"time"
)

// BidSource produces the candidate bid set for an evaluation. The
// evaluator is wired with a primary (dynamic) source and a fallback so
// a failing primary degrades instead of surfacing to the caller.
type BidSource func(customer Customer, now time.Time, rnd RandSource) ([]WelcomeBid, error)

// auditLog collects timestamped, human-readable evaluation steps.
type auditLog struct {
	entries []string
	now     time.Time
}

func (a *auditLog) addf(format string, args ...any) {
	line := fmt.Sprintf("[%s] %s", a.now.UTC().Format(time.RFC3339), fmt.Sprintf(format, args...))
	a.entries = append(a.entries, line)
}

// EvaluateBids runs the full evaluation pipeline for a customer:
// generate candidate bids, filter by eligibility, drop quota-exhausted
// bids, rank by amount, and select a winner. Every step appends a
// timestamped line to the audit trail; the trail is part of the
// contract, not incidental logging.
//
// When dynamic bid generation fails, evaluation continues on the
// deterministic baseline source (see FallbackBids) rather than
// propagating the failure.
func EvaluateBids(customer Customer, now time.Time, rnd RandSource) BidResponse {
	return EvaluateBidsWith(dynamicBidSource, baselineBidSource, customer, now, rnd)
}

// EvaluateBidsWith is EvaluateBids with explicit primary and fallback
// bid sources. Exported so callers (and tests) can inject either side.
func EvaluateBidsWith(primary, fallback BidSource, customer Customer, now time.Time, rnd RandSource) BidResponse {
	if rnd == nil {
		rnd = defaultRandSource
	}
	audit := &auditLog{now: now}

	// Step 1: Retrieve active bids
	audit.addf("Starting bid evaluation for customer %s", customer.ID)
	allBids, err := primary(customer, now, rnd)
	if err != nil {
		audit.addf("Dynamic bidding unavailable (%v), degrading to baseline offers", err)
		allBids, err = fallback(customer, now, rnd)
		if err != nil {
			// Both sources failing is still not fatal: an empty bid
			// set is a valid terminal state.
			audit.addf("Baseline bidding unavailable (%v), continuing with no bids", err)
			allBids = nil
		}
	}
	audit.addf("Retrieved %d active bids from bank partners", len(allBids))

	// Step 2: Filter by eligibility
	eligibleBids := make([]WelcomeBid, 0, len(allBids))
	for _, bid := range allBids {
		if IsEligible(customer, bid.Eligibility) {
			eligibleBids = append(eligibleBids, bid)
		}
	}
	audit.addf("%d bids passed eligibility criteria", len(eligibleBids))
	for _, bid := range allBids {
		if !IsEligible(customer, bid.Eligibility) {
			audit.addf("Filtered out %s: Failed eligibility check", bid.BankName)
		}
	}

	// Step 3: Check quota availability
	availableBids := make([]WelcomeBid, 0, len(eligibleBids))
	for _, bid := range eligibleBids {
		if bid.QuotaRemaining > 0 {
			availableBids = append(availableBids, bid)
		} else {
			audit.addf("%s excluded: Daily quota exhausted", bid.BankName)
		}
	}
	audit.addf("%d bids have available quota", len(availableBids))

	// Step 4: Sort by bid amount, highest first. Stable: equal amounts
	// keep generator order; true tie-breaking is deferred to
	// ResolveTieBreaking once a user offer enters the set.
	sort.SliceStable(availableBids, func(i, j int) bool {
		return availableBids[i].BidAmount > availableBids[j].BidAmount
	})
	for i, bid := range availableBids {
		audit.addf("Rank %d: %s - SAR %.0f", i+1, bid.BankName, bid.BidAmount)
	}

	// Step 5: Select winner
	var winningBid *WelcomeBid
	var decisionReason string

	if len(availableBids) == 0 {
		decisionReason = "No eligible bids available. Customer may not meet minimum criteria or all bank quotas are exhausted."
		audit.addf("RESULT: No winning bid - %s", decisionReason)
	} else {
		winningBid = &availableBids[0]
		decisionReason = fmt.Sprintf("Highest bid selected: %s with SAR %.0f", winningBid.BankName, winningBid.BidAmount)
		audit.addf("RESULT: Winner selected - %s (SAR %.0f)", winningBid.BankName, winningBid.BidAmount)

		if len(availableBids) > 1 {
			runnerUp := availableBids[1]
			margin := winningBid.BidAmount - runnerUp.BidAmount
			audit.addf("Winning margin: SAR %.0f over %s", margin, runnerUp.BankName)
		}
	}

	// Customer profile summary for traceability
	audit.addf("Customer Profile: Income=%.0f, CreditScore=%d, Location=%s, Age=%d",
		customer.Income, customer.CreditScore, customer.Location, customer.Age)

	return BidResponse{
		WinningBid:     winningBid,
		EligibleBids:   availableBids,
		DecisionReason: decisionReason,
		AuditTrail:     audit.entries,
	}
}

// dynamicBidSource wraps the partner bid generator as the primary
// BidSource.
func dynamicBidSource(customer Customer, now time.Time, rnd RandSource) ([]WelcomeBid, error) {
	return GenerateWelcomeBids(customer, now, rnd), nil
}

// baselineBidSource wraps FallbackBids as the degraded-mode BidSource.
func baselineBidSource(customer Customer, now time.Time, _ RandSource) ([]WelcomeBid, error) {
	return FallbackBids(customer, now), nil
}
