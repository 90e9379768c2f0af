package core

import (
	"fmt"
	"strings"
	"time"
)

// bankIntel is internal per-bank data used only for tie-breaking. It is
// never serialized into a BankOffer or otherwise revealed to the
// simulated banks; the information asymmetry is deliberate.
type bankIntel struct {
	trustScore int // 0-100, based on past performance/disqualifications
	todayWins  int // portfolio balance tracking
}

// internalBankIntel holds the platform's private view of each bank.
// Static configuration in the demo; a live system would put this behind
// a store with an explicit update contract.
var internalBankIntel = map[string]bankIntel{
	"SNB":                              {trustScore: 85, todayWins: 2},
	"ANB":                              {trustScore: 78, todayWins: 1},
	"Rajhi Bank":                       {trustScore: 92, todayWins: 0},
	"Al Ahli Bank":                     {trustScore: 80, todayWins: 1},
	"Your Offer (Riyad Bank)":          {trustScore: 88, todayWins: 1},
	"Your Previous Offer (Riyad Bank)": {trustScore: 88, todayWins: 1},
}

// unknownBankIntel is assumed for banks absent from the table.
var unknownBankIntel = bankIntel{trustScore: 50, todayWins: 0}

func intelFor(bankName string) bankIntel {
	if intel, ok := internalBankIntel[bankName]; ok {
		return intel
	}
	return unknownBankIntel
}

// CobrandIssuerPreferences maps a cobrand partner id to the issuing
// bank the retailer prefers. Configuration, not logic: extend the map
// to onboard further partnerships.
var CobrandIssuerPreferences = map[string]string{
	"amazon": "ANB",
	"jarir":  "SNB",
}

// tieCandidate pairs an offer with the internal data the cascade ranks
// on.
type tieCandidate struct {
	offer  BankOffer
	intel  bankIntel
	commit time.Time
}

// ResolveTieBreaking chooses exactly one winner among the offers,
// applying an ordered cascade when several share the top amount:
//
//  1. Unique highest amount wins outright.
//  2. Earliest commit timestamp wins.
//  3. The cobrand partner's preferred issuer wins.
//  4. Highest internal trust score wins.
//  5. Fewest wins recorded today wins (portfolio balance).
//  6. Highest deterministic hash of customerID+bankName wins; on a
//     genuine hash collision the first remaining candidate in slice
//     order wins.
//
// Each stage only runs if the prior one left more than one candidate,
// and the final stage is total, so exactly one offer returns with
// IsWinner set. IsTied is cleared on every offer once a stage resolves.
// Offers without a timestamp are treated as committed at now, which
// keeps resolution deterministic for identical inputs.
func ResolveTieBreaking(offers []BankOffer, customerID, cobrandPartner string, now time.Time) TieBreakingResult {
	auditTrail := []string{}
	if len(offers) == 0 {
		return TieBreakingResult{UpdatedOffers: []BankOffer{}, AuditTrail: auditTrail}
	}

	// Step 1: Find the highest credit limit and the offers tied at it.
	highestLimit := offers[0].CreditLimit
	for _, offer := range offers[1:] {
		if offer.CreditLimit > highestLimit {
			highestLimit = offer.CreditLimit
		}
	}

	tied := make([]tieCandidate, 0, len(offers))
	tiedNames := make([]string, 0, len(offers))
	for _, offer := range offers {
		if !amountsEqual(offer.CreditLimit, highestLimit) {
			continue
		}
		commit := offer.Timestamp
		if commit.IsZero() {
			commit = now
		}
		tied = append(tied, tieCandidate{offer: offer, intel: intelFor(offer.BankName), commit: commit})
		tiedNames = append(tiedNames, offer.BankName)
	}

	auditTrail = append(auditTrail,
		fmt.Sprintf("Highest credit limit: %.0f", highestLimit),
		fmt.Sprintf("Banks tied at highest limit: %s", strings.Join(tiedNames, ", ")))

	if len(tied) == 1 {
		auditTrail = append(auditTrail,
			fmt.Sprintf("Clear winner: %s (unique highest offer)", tied[0].offer.BankName))
		return TieBreakingResult{
			UpdatedOffers: markWinner(offers, tied[0].offer.BankName),
			AuditTrail:    auditTrail,
		}
	}

	auditTrail = append(auditTrail, "Applying tie-breaking cascade...")

	// Stage A: earliest commit wins.
	earliest := tied[0].commit
	for _, c := range tied[1:] {
		if c.commit.Before(earliest) {
			earliest = c.commit
		}
	}
	remaining := filterCandidates(tied, func(c tieCandidate) bool { return c.commit.Equal(earliest) })
	if len(remaining) == 1 {
		winner := remaining[0].offer.BankName
		auditTrail = append(auditTrail,
			fmt.Sprintf("Winner: %s (earliest commit time: %s)", winner, earliest.UTC().Format("15:04:05")))
		return TieBreakingResult{UpdatedOffers: markWinner(offers, winner), AuditTrail: auditTrail}
	}

	// Stage B: retailer preference via the cobrand partnership.
	if cobrandPartner != "" {
		if preferredBank, ok := CobrandIssuerPreferences[cobrandPartner]; ok {
			preferred := filterCandidates(remaining, func(c tieCandidate) bool {
				return c.offer.BankName == preferredBank
			})
			if len(preferred) == 1 {
				winner := preferred[0].offer.BankName
				auditTrail = append(auditTrail,
					fmt.Sprintf("Winner: %s (retailer preference for %s cobrand)", winner, cobrandPartner))
				return TieBreakingResult{UpdatedOffers: markWinner(offers, winner), AuditTrail: auditTrail}
			}
		}
	}

	// Stage C: highest trust score wins.
	highestTrust := remaining[0].intel.trustScore
	for _, c := range remaining[1:] {
		if c.intel.trustScore > highestTrust {
			highestTrust = c.intel.trustScore
		}
	}
	remaining = filterCandidates(remaining, func(c tieCandidate) bool { return c.intel.trustScore == highestTrust })
	if len(remaining) == 1 {
		winner := remaining[0].offer.BankName
		auditTrail = append(auditTrail,
			fmt.Sprintf("Winner: %s (highest trust score: %d)", winner, highestTrust))
		return TieBreakingResult{UpdatedOffers: markWinner(offers, winner), AuditTrail: auditTrail}
	}

	// Stage D: portfolio balance, fewest wins today.
	fewestWins := remaining[0].intel.todayWins
	for _, c := range remaining[1:] {
		if c.intel.todayWins < fewestWins {
			fewestWins = c.intel.todayWins
		}
	}
	remaining = filterCandidates(remaining, func(c tieCandidate) bool { return c.intel.todayWins == fewestWins })
	if len(remaining) == 1 {
		winner := remaining[0].offer.BankName
		auditTrail = append(auditTrail,
			fmt.Sprintf("Winner: %s (portfolio balance: %d wins today)", winner, fewestWins))
		return TieBreakingResult{UpdatedOffers: markWinner(offers, winner), AuditTrail: auditTrail}
	}

	// Stage E: deterministic hash. Total: always yields one winner.
	winner := remaining[0]
	winnerHash := ComputeOfferHash(customerID, winner.offer.BankName)
	for _, c := range remaining[1:] {
		if h := ComputeOfferHash(customerID, c.offer.BankName); h > winnerHash {
			winner = c
			winnerHash = h
		}
	}
	auditTrail = append(auditTrail,
		fmt.Sprintf("Winner: %s (deterministic hash: %d)", winner.offer.BankName, winnerHash))
	return TieBreakingResult{UpdatedOffers: markWinner(offers, winner.offer.BankName), AuditTrail: auditTrail}
}

func filterCandidates(candidates []tieCandidate, keep func(tieCandidate) bool) []tieCandidate {
	result := make([]tieCandidate, 0, len(candidates))
	for _, c := range candidates {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result
}

// markWinner returns a copy of offers with exactly the named bank
// flagged as winner and the tied flag cleared everywhere: "tied" only
// describes the contested state before resolution.
func markWinner(offers []BankOffer, winnerBank string) []BankOffer {
	updated := make([]BankOffer, len(offers))
	for i, offer := range offers {
		offer.IsWinner = offer.BankName == winnerBank
		offer.IsTied = false
		updated[i] = offer
	}
	return updated
}

// MarkLeadingOffers flags the current standing of a competitive set
// before tie-breaking: every offer at the top amount is a provisional
// winner, and tied when more than one shares it. This is the
// pre-resolution view the UI renders while the contest is still open.
func MarkLeadingOffers(offers []BankOffer) []BankOffer {
	if len(offers) == 0 {
		return []BankOffer{}
	}

	highest := offers[0].CreditLimit
	for _, offer := range offers[1:] {
		if offer.CreditLimit > highest {
			highest = offer.CreditLimit
		}
	}

	atTop := 0
	for _, offer := range offers {
		if amountsEqual(offer.CreditLimit, highest) {
			atTop++
		}
	}

	updated := make([]BankOffer, len(offers))
	for i, offer := range offers {
		leading := amountsEqual(offer.CreditLimit, highest)
		offer.IsWinner = leading
		offer.IsTied = leading && atTop > 1
		updated[i] = offer
	}
	return updated
}
