package core

import "time"

// Customer is a card applicant under review. Generated once per session
// and never mutated by the core.
type Customer struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Location        string    `json:"location"`
	Income          float64   `json:"income"` // monthly, SAR
	CreditScore     int       `json:"creditScore"`
	DebtBurdenRatio float64   `json:"debtBurdenRatio"` // 0-1
	AppliedCard     string    `json:"appliedCard"`
	Nationality     string    `json:"nationality"`
	CobrandPartner  string    `json:"cobrandPartner,omitempty"`
	ApplicationTime time.Time `json:"applicationTime,omitzero"`
}

// EligibilityProfile declares the constraints a customer must satisfy
// to qualify for a bid. Zero-valued numeric fields and nil slices
// impose no restriction; present constraints are conjunctive.
type EligibilityProfile struct {
	IncomeMin          float64  `json:"income_min,omitempty"`
	IncomeMax          float64  `json:"income_max,omitempty"`
	AgeMin             int      `json:"age_min,omitempty"`
	AgeMax             int      `json:"age_max,omitempty"`
	CreditScoreMin     int      `json:"creditScore_min,omitempty"`
	CreditScoreMax     int      `json:"creditScore_max,omitempty"`
	Regions            []string `json:"regions,omitempty"`
	Nationalities      []string `json:"nationalities,omitempty"`
	DebtBurdenRatioMax float64  `json:"debtBurdenRatio_max,omitempty"`
	CobrandPartners    []string `json:"cobrandPartners,omitempty"`
}

// WelcomeBid is a single bank's welcome-balance bid for one customer at
// one moment. The attached eligibility profile reflects the bank's
// actual preferences so the evaluator can audit rejections.
type WelcomeBid struct {
	BankID         string             `json:"bank_id"`
	BankName       string             `json:"bank_name"`
	BankLogo       string             `json:"bank_logo"`
	BidAmount      float64            `json:"bid_amount"` // SAR
	QuotaRemaining int                `json:"quota_remaining"`
	Eligibility    EligibilityProfile `json:"eligibility"`
	CampaignID     string             `json:"campaign_id"`
	ExpiresAt      time.Time          `json:"expires_at"`
	CreatedAt      time.Time          `json:"created_at"`
}

// BankOffer is one credit-limit offer in the competitive set a user
// bids against. IsWinner/IsTied describe the offer's standing within
// that set. Resubmitting replaces the prior offer under the same bank
// name, never retains both.
type BankOffer struct {
	BankName    string    `json:"bankName"`
	CreditLimit float64   `json:"creditLimit"` // SAR
	IsWinner    bool      `json:"isWinner"`
	IsTied      bool      `json:"isTied,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

// BidResponse is the evaluator's output.
//
// If EligibleBids is non-empty, WinningBid points at its first
// (highest-amount) element. AuditTrail holds one timestamped
// human-readable line per evaluation step, in execution order.
type BidResponse struct {
	WinningBid     *WelcomeBid  `json:"winning_bid,omitempty"`
	EligibleBids   []WelcomeBid `json:"eligible_bids"`
	DecisionReason string       `json:"decision_reason"`
	AuditTrail     []string     `json:"audit_trail"`
}

// TieBreakingResult contains the offers after a single authoritative
// winner has been chosen, plus the audit trail of the cascade.
type TieBreakingResult struct {
	UpdatedOffers []BankOffer `json:"updatedOffers"`
	AuditTrail    []string    `json:"auditTrail"`
}
