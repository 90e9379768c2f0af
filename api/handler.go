// Package api exposes the bidding engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rizqlabs/welcomebid/core"
	"github.com/rizqlabs/welcomebid/history"
	"github.com/rizqlabs/welcomebid/metrics"
)

const maxBodySize = 1 << 20

// Handler provides the HTTP handlers for the bidding engine. The clock
// and random source are injectable so tests run deterministically.
type Handler struct {
	store             *history.Store
	metrics           *metrics.Collector
	logger            *slog.Logger
	rnd               core.RandSource
	now               func() time.Time
	counterOfferDelay time.Duration
}

// Options configures a Handler. Zero-valued fields fall back to
// production defaults.
type Options struct {
	Store             *history.Store
	Metrics           *metrics.Collector
	Logger            *slog.Logger
	Rand              core.RandSource
	Now               func() time.Time
	CounterOfferDelay time.Duration
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		store:             opts.Store,
		metrics:           opts.Metrics,
		logger:            opts.Logger,
		rnd:               opts.Rand,
		now:               opts.Now,
		counterOfferDelay: opts.CounterOfferDelay,
	}
	if h.store == nil {
		h.store = history.NewStore()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.metrics == nil {
		h.metrics = metrics.NewCollector(h.logger)
	}
	if h.rnd == nil {
		h.rnd = core.NewRandSource()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Routes mounts every endpoint on a fresh chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/welcome-bids", h.WelcomeBids)
	r.Post("/evaluate-bids", h.EvaluateBids)
	r.Get("/bank-details", h.BankDetails)
	r.Get("/cobrand-partners", h.CobrandPartners)
	r.Post("/bank-offers", h.BankOffers)
	r.Post("/resolve-tie", h.ResolveTie)
	r.Post("/counter-offers", h.CounterOffers)
	r.Post("/validate-limit", h.ValidateLimit)
	r.Post("/submit-acceptance", h.SubmitAcceptance)
	r.Get("/bidding-analytics", h.BiddingAnalytics)

	r.Route("/offer-history", func(r chi.Router) {
		r.Get("/", h.ListOfferHistory)
		r.Post("/", h.AddOfferHistory)
		r.Get("/export", h.ExportOfferHistory)
		r.Delete("/{id}", h.WithdrawOfferHistory)
		r.Patch("/{id}/status", h.UpdateOfferHistoryStatus)
	})

	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	return r
}

type welcomeBidsRequest struct {
	Customer core.Customer `json:"customer"`
}

type welcomeBidsResponse struct {
	Success   bool               `json:"success"`
	Data      []core.WelcomeBid  `json:"data"`
	Metadata  welcomeBidMetadata `json:"metadata"`
	Timestamp int64              `json:"timestamp"`
}

type welcomeBidMetadata struct {
	TotalBanks    int     `json:"total_banks"`
	EligibleBanks int     `json:"eligible_banks"`
	AverageBid    float64 `json:"average_bid"`
	MaxBid        float64 `json:"max_bid"`
	MinBid        float64 `json:"min_bid"`
}

// WelcomeBids handles POST /welcome-bids.
func (h *Handler) WelcomeBids(w http.ResponseWriter, r *http.Request) {
	var req welcomeBidsRequest
	if !h.decode(w, r, &req) {
		return
	}

	now := h.now()
	bids := core.GenerateWelcomeBids(req.Customer, now, h.rnd)

	meta := welcomeBidMetadata{TotalBanks: len(bids)}
	for _, bid := range bids {
		if bid.QuotaRemaining > 0 {
			meta.EligibleBanks++
		}
		meta.AverageBid += bid.BidAmount
		meta.MaxBid = max(meta.MaxBid, bid.BidAmount)
		if meta.MinBid == 0 || bid.BidAmount < meta.MinBid {
			meta.MinBid = bid.BidAmount
		}
	}
	if len(bids) > 0 {
		meta.AverageBid /= float64(len(bids))
	}

	h.respondJSON(w, http.StatusOK, welcomeBidsResponse{
		Success:   true,
		Data:      bids,
		Metadata:  meta,
		Timestamp: now.UnixMilli(),
	})
}

type evaluateBidsRequest struct {
	Customer core.Customer `json:"customer"`
}

type evaluateBidsResponse struct {
	Success        bool              `json:"success"`
	WinningBid     *core.WelcomeBid  `json:"winning_bid,omitempty"`
	AllBids        []core.WelcomeBid `json:"all_bids"`
	DecisionReason string            `json:"decision_reason"`
	AuditTrail     []string          `json:"audit_trail"`
	Metadata       evaluateMetadata  `json:"metadata"`
	Timestamp      int64             `json:"timestamp"`
}

type evaluateMetadata struct {
	EvaluationTimeMS int64  `json:"evaluation_time_ms"`
	TotalEligible    int    `json:"total_eligible"`
	CustomerSegment  string `json:"customer_segment"`
}

// EvaluateBids handles POST /evaluate-bids.
func (h *Handler) EvaluateBids(w http.ResponseWriter, r *http.Request) {
	var req evaluateBidsRequest
	if !h.decode(w, r, &req) {
		return
	}

	now := h.now()
	start := time.Now()
	result := core.EvaluateBids(req.Customer, now, h.rnd)
	elapsed := time.Since(start)

	winnerBank := ""
	if result.WinningBid != nil {
		winnerBank = result.WinningBid.BankName
	}
	h.metrics.RecordEvaluation(elapsed, winnerBank)
	h.logger.Info("bid evaluation complete",
		slog.String("customer_id", req.Customer.ID),
		slog.String("winner", winnerBank),
		slog.Int("eligible", len(result.EligibleBids)))

	h.respondJSON(w, http.StatusOK, evaluateBidsResponse{
		Success:        true,
		WinningBid:     result.WinningBid,
		AllBids:        result.EligibleBids,
		DecisionReason: result.DecisionReason,
		AuditTrail:     result.AuditTrail,
		Metadata: evaluateMetadata{
			EvaluationTimeMS: elapsed.Milliseconds(),
			TotalEligible:    len(result.EligibleBids),
			CustomerSegment:  core.CustomerSegment(req.Customer),
		},
		Timestamp: now.UnixMilli(),
	})
}

type bankDetailsResponse struct {
	Success   bool        `json:"success"`
	Data      bankDetails `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

type bankDetails struct {
	core.BankPartner
	ContactInfo    contactInfo    `json:"contact_info"`
	ComplianceInfo complianceInfo `json:"compliance_info"`
}

type contactInfo struct {
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	SupportEmail string `json:"support_email"`
}

type complianceInfo struct {
	LicenseNumber  string `json:"license_number"`
	RegulatoryBody string `json:"regulatory_body"`
	LastAudit      string `json:"last_audit"`
}

// BankDetails handles GET /bank-details?bank_id=xxx.
func (h *Handler) BankDetails(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank_id")
	bank := core.BankByID(bankID)
	if bank == nil {
		h.respondError(w, http.StatusNotFound, "Bank not found")
		return
	}

	h.respondJSON(w, http.StatusOK, bankDetailsResponse{
		Success: true,
		Data: bankDetails{
			BankPartner: *bank,
			ContactInfo: contactInfo{
				Phone:        "+966-11-xxx-xxxx",
				Website:      fmt.Sprintf("www.%s.com.sa", bank.ID),
				SupportEmail: fmt.Sprintf("support@%s.com.sa", bank.ID),
			},
			ComplianceInfo: complianceInfo{
				LicenseNumber:  fmt.Sprintf("CL-%s-2024", strings.ToUpper(bank.ID)),
				RegulatoryBody: "Saudi Central Bank (SAMA)",
				LastAudit:      "2024-Q1",
			},
		},
		Timestamp: h.now().UnixMilli(),
	})
}

// CobrandPartners handles GET /cobrand-partners.
func (h *Handler) CobrandPartners(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      core.CobrandPartners,
		"timestamp": h.now().UnixMilli(),
	})
}

type bankOffersRequest struct {
	Customer            core.Customer `json:"customer"`
	PrioritizeLowestDTI bool          `json:"prioritize_lowest_dti"`
}

// BankOffers handles POST /bank-offers, the baseline credit-limit
// offers the user bids against.
func (h *Handler) BankOffers(w http.ResponseWriter, r *http.Request) {
	var req bankOffersRequest
	if !h.decode(w, r, &req) {
		return
	}

	offers := core.GenerateBankOffers(req.Customer, req.PrioritizeLowestDTI, h.now(), h.rnd)
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      offers,
		"timestamp": h.now().UnixMilli(),
	})
}

type resolveTieRequest struct {
	Offers         []core.BankOffer `json:"offers"`
	CustomerID     string           `json:"customer_id"`
	CobrandPartner string           `json:"cobrand_partner"`
}

// ResolveTie handles POST /resolve-tie.
func (h *Handler) ResolveTie(w http.ResponseWriter, r *http.Request) {
	var req resolveTieRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Offers) == 0 {
		h.respondError(w, http.StatusBadRequest, "offers are required")
		return
	}

	result := core.ResolveTieBreaking(req.Offers, req.CustomerID, req.CobrandPartner, h.now())
	h.respondJSON(w, http.StatusOK, result)
}

type counterOffersRequest struct {
	Offers    []core.BankOffer `json:"offers"`
	UserOffer core.BankOffer   `json:"user_offer"`
	Customer  *core.Customer   `json:"customer,omitempty"`
}

// CounterOffers handles POST /counter-offers. The configurable delay
// lets the demo UI show competitors "thinking" before they respond.
func (h *Handler) CounterOffers(w http.ResponseWriter, r *http.Request) {
	var req counterOffersRequest
	if !h.decode(w, r, &req) {
		return
	}

	if h.counterOfferDelay > 0 {
		time.Sleep(h.counterOfferDelay)
	}

	updated := core.SimulateImprovedOffers(req.Offers, req.UserOffer, req.Customer, h.now(), h.rnd)

	raises := 0
	for i := range updated {
		if updated[i].CreditLimit > req.Offers[i].CreditLimit {
			raises++
		}
	}
	h.metrics.RecordCounterOfferRaises(raises)

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      updated,
		"raises":    raises,
		"timestamp": h.now().UnixMilli(),
	})
}

type validateLimitRequest struct {
	CreditLimit   float64 `json:"credit_limit"`
	MonthlyIncome float64 `json:"monthly_income"`
	CardProduct   string  `json:"card_product"`
}

// ValidateLimit handles POST /validate-limit.
func (h *Handler) ValidateLimit(w http.ResponseWriter, r *http.Request) {
	var req validateLimitRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.CreditLimit <= 0 || req.MonthlyIncome <= 0 {
		h.respondError(w, http.StatusBadRequest, "credit_limit and monthly_income must be positive")
		return
	}

	result := core.ValidateCreditLimit(req.CreditLimit, req.MonthlyIncome, req.CardProduct)
	h.respondJSON(w, http.StatusOK, result)
}

type submitAcceptanceRequest struct {
	CustomerID string `json:"customer_id"`
	BidID      string `json:"bid_id"`
	BankID     string `json:"bank_id"`
}

type submitAcceptanceResponse struct {
	Success            bool     `json:"success"`
	ConfirmationNumber string   `json:"confirmation_number"`
	ProcessingTime     string   `json:"processing_time"`
	NextSteps          []string `json:"next_steps"`
	Timestamp          int64    `json:"timestamp"`
}

// SubmitAcceptance handles POST /submit-acceptance.
func (h *Handler) SubmitAcceptance(w http.ResponseWriter, r *http.Request) {
	var req submitAcceptanceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.BankID == "" {
		h.respondError(w, http.StatusBadRequest, "bank_id is required")
		return
	}

	now := h.now()
	h.metrics.RecordOfferSubmitted()
	h.logger.Info("bid acceptance submitted",
		slog.String("customer_id", req.CustomerID),
		slog.String("bank_id", req.BankID))

	h.respondJSON(w, http.StatusOK, submitAcceptanceResponse{
		Success:            true,
		ConfirmationNumber: fmt.Sprintf("WB-%d-%s", now.UnixMilli(), strings.ToUpper(req.BankID)),
		ProcessingTime:     "2-3 business days",
		NextSteps: []string{
			"Bank will verify customer information",
			"Welcome balance will be deposited upon card activation",
			"Customer will receive SMS confirmation when processed",
		},
		Timestamp: now.UnixMilli(),
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "request body is required")
			return false
		}
		h.respondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return false
	}
	return true
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("encoding response", slog.String("error", err.Error()))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}
