package core

import (
	"strings"
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
)

var resolveAt = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func winnersOf(offers []BankOffer) []string {
	var names []string
	for _, offer := range offers {
		if offer.IsWinner {
			names = append(names, offer.BankName)
		}
	}
	return names
}

func TestResolveTieBreaking_UniqueHighestWinsOutright(t *testing.T) {
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 25000, Timestamp: resolveAt.Add(-time.Hour)},
		{BankName: "ANB", CreditLimit: 20000, Timestamp: resolveAt.Add(-2 * time.Hour)},
	}

	result := ResolveTieBreaking(offers, "cust-1", "", resolveAt)

	check.Equal(t, []string{"SNB"}, winnersOf(result.UpdatedOffers))
	check.True(t, auditContains(result.AuditTrail, "Clear winner: SNB (unique highest offer)"))
	for _, offer := range result.UpdatedOffers {
		check.False(t, offer.IsTied)
	}
}

func TestResolveTieBreaking_EarliestCommitWins(t *testing.T) {
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 20000, Timestamp: resolveAt.Add(-time.Hour)},
		{BankName: "ANB", CreditLimit: 20000, Timestamp: resolveAt.Add(-3 * time.Hour)},
	}

	result := ResolveTieBreaking(offers, "cust-1", "", resolveAt)

	check.Equal(t, []string{"ANB"}, winnersOf(result.UpdatedOffers))
	check.True(t, auditContains(result.AuditTrail, "earliest commit time"))
}

func TestResolveTieBreaking_CobrandPreference(t *testing.T) {
	commit := resolveAt.Add(-time.Hour)
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 20000, Timestamp: commit},
		{BankName: "ANB", CreditLimit: 20000, Timestamp: commit},
	}

	result := ResolveTieBreaking(offers, "cust-1", "amazon", resolveAt)

	check.Equal(t, []string{"ANB"}, winnersOf(result.UpdatedOffers))
	check.True(t, auditContains(result.AuditTrail, "retailer preference for amazon cobrand"))

	result = ResolveTieBreaking(offers, "cust-1", "jarir", resolveAt)

	check.Equal(t, []string{"SNB"}, winnersOf(result.UpdatedOffers))
	check.True(t, auditContains(result.AuditTrail, "retailer preference for jarir cobrand"))
}

func TestResolveTieBreaking_TrustScoreBreaksTie(t *testing.T) {
	// SNB and ANB tied at 20,000 with identical commit timestamps and no
	// cobrand partner: SNB's trust score (85 vs 78) decides.
	commit := resolveAt.Add(-time.Hour)
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 20000, Timestamp: commit},
		{BankName: "ANB", CreditLimit: 20000, Timestamp: commit},
	}

	result := ResolveTieBreaking(offers, "cust-1", "", resolveAt)

	check.Equal(t, []string{"SNB"}, winnersOf(result.UpdatedOffers))
	check.True(t, auditContains(result.AuditTrail, "highest trust score: 85"))
}

func TestResolveTieBreaking_HashStageIsTotal(t *testing.T) {
	// Both Riyad Bank entries share trust score 88 and one win today, so
	// the cascade runs all the way to the hash stage.
	commit := resolveAt.Add(-time.Hour)
	offers := []BankOffer{
		{BankName: "Your Offer (Riyad Bank)", CreditLimit: 30000, Timestamp: commit},
		{BankName: "Your Previous Offer (Riyad Bank)", CreditLimit: 30000, Timestamp: commit},
	}

	result := ResolveTieBreaking(offers, "cust-1", "", resolveAt)

	check.Equal(t, 1, len(winnersOf(result.UpdatedOffers)))
	check.True(t, auditContains(result.AuditTrail, "deterministic hash"))
}

func TestResolveTieBreaking_ExactlyOneWinner(t *testing.T) {
	// Unknown banks share default intel, forcing the full cascade.
	commit := resolveAt.Add(-time.Hour)
	offers := []BankOffer{
		{BankName: "Bank A", CreditLimit: 10000, Timestamp: commit},
		{BankName: "Bank B", CreditLimit: 10000, Timestamp: commit},
		{BankName: "Bank C", CreditLimit: 10000, Timestamp: commit},
		{BankName: "Bank D", CreditLimit: 9000, Timestamp: commit},
	}

	result := ResolveTieBreaking(offers, "cust-9", "", resolveAt)

	check.Equal(t, len(offers), len(result.UpdatedOffers))
	check.Equal(t, 1, len(winnersOf(result.UpdatedOffers)))
	for _, offer := range result.UpdatedOffers {
		check.False(t, offer.IsTied)
	}
}

func TestResolveTieBreaking_Deterministic(t *testing.T) {
	commit := resolveAt.Add(-time.Hour)
	offers := []BankOffer{
		{BankName: "Bank A", CreditLimit: 10000, Timestamp: commit},
		{BankName: "Bank B", CreditLimit: 10000, Timestamp: commit},
		{BankName: "Bank C", CreditLimit: 10000, Timestamp: commit},
	}

	first := ResolveTieBreaking(offers, "cust-9", "", resolveAt)
	for i := 0; i < 10; i++ {
		again := ResolveTieBreaking(offers, "cust-9", "", resolveAt)
		check.Equal(t, first.UpdatedOffers, again.UpdatedOffers)
		check.Equal(t, first.AuditTrail, again.AuditTrail)
	}
}

func TestResolveTieBreaking_MissingTimestampsStayDeterministic(t *testing.T) {
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 20000},
		{BankName: "ANB", CreditLimit: 20000},
	}

	first := ResolveTieBreaking(offers, "cust-1", "", resolveAt)
	second := ResolveTieBreaking(offers, "cust-1", "", resolveAt)

	check.Equal(t, first.UpdatedOffers, second.UpdatedOffers)
	// Absent timestamps all synthesize to now, so trust score decides.
	check.Equal(t, []string{"SNB"}, winnersOf(first.UpdatedOffers))
}

func TestResolveTieBreaking_EmptyOffers(t *testing.T) {
	result := ResolveTieBreaking(nil, "cust-1", "", resolveAt)

	check.Equal(t, 0, len(result.UpdatedOffers))
}

func TestResolveTieBreaking_AuditNamesTiedBanks(t *testing.T) {
	commit := resolveAt.Add(-time.Hour)
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 20000, Timestamp: commit},
		{BankName: "ANB", CreditLimit: 20000, Timestamp: commit},
		{BankName: "Rajhi Bank", CreditLimit: 15000, Timestamp: commit},
	}

	result := ResolveTieBreaking(offers, "cust-1", "", resolveAt)

	check.True(t, auditContains(result.AuditTrail, "Highest credit limit: 20000"))
	found := false
	for _, line := range result.AuditTrail {
		if strings.Contains(line, "Banks tied at highest limit") {
			found = strings.Contains(line, "SNB") && strings.Contains(line, "ANB") &&
				!strings.Contains(line, "Rajhi Bank")
		}
	}
	check.True(t, found)
}

func TestMarkLeadingOffers(t *testing.T) {
	offers := []BankOffer{
		{BankName: "SNB", CreditLimit: 20000},
		{BankName: "ANB", CreditLimit: 20000},
		{BankName: "Rajhi Bank", CreditLimit: 15000},
	}

	marked := MarkLeadingOffers(offers)

	check.True(t, marked[0].IsWinner)
	check.True(t, marked[0].IsTied)
	check.True(t, marked[1].IsWinner)
	check.True(t, marked[1].IsTied)
	check.False(t, marked[2].IsWinner)
	check.False(t, marked[2].IsTied)

	// Unique leader: winner without the tied flag.
	solo := MarkLeadingOffers(offers[1:])
	check.True(t, solo[0].IsWinner)
	check.False(t, solo[0].IsTied)
}
