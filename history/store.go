// Package history keeps the append-only ledger of credit and
// welcome-balance offers extended to customers, with their status
// transitions. In-memory only: the demo has no durable persistence.
package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rizqlabs/welcomebid/core"
)

var (
	ErrNotFound  = errors.New("offer not found")
	ErrDuplicate = errors.New("offer already exists")
)

// Status is the lifecycle state of an extended offer.
type Status string

const (
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
	StatusPending   Status = "pending"
	StatusIssued    Status = "issued"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusWon, StatusLost, StatusPending, StatusIssued, StatusCancelled:
		return true
	}
	return false
}

// FinancialSnapshot captures the customer attributes the offer was
// decided on, so a record stays reconstructable without the original
// customer object.
type FinancialSnapshot struct {
	Income          float64 `json:"income" cbor:"1,keyasint"`
	CreditScore     int     `json:"creditScore" cbor:"2,keyasint"`
	DebtBurdenRatio float64 `json:"debtBurdenRatio" cbor:"3,keyasint"`
	Age             int     `json:"age" cbor:"4,keyasint"`
}

// Record is one finalized or ongoing offer in the ledger.
type Record struct {
	ID               string             `json:"id" cbor:"1,keyasint"`
	CustomerName     string             `json:"customerName" cbor:"2,keyasint"`
	CustomerLocation string             `json:"customerLocation" cbor:"3,keyasint"`
	Timestamp        time.Time          `json:"timestamp" cbor:"4,keyasint"`
	CreditLimit      float64            `json:"creditLimit" cbor:"5,keyasint"`
	Status           Status             `json:"status" cbor:"6,keyasint"`
	CompetingBank    string             `json:"competingBank,omitempty" cbor:"7,keyasint,omitempty"`
	CardProduct      string             `json:"cardProduct,omitempty" cbor:"8,keyasint,omitempty"`
	APR              float64            `json:"apr,omitempty" cbor:"9,keyasint,omitempty"`
	CobrandPartner   string             `json:"cobrandPartner,omitempty" cbor:"10,keyasint,omitempty"`
	CancelReason     string             `json:"cancelReason,omitempty" cbor:"11,keyasint,omitempty"`
	CompetingOffers  []core.BankOffer   `json:"competingOffers,omitempty" cbor:"12,keyasint,omitempty"`
	Financials       *FinancialSnapshot `json:"financials,omitempty" cbor:"13,keyasint,omitempty"`
}

// cardAPRRates pins the APR per card product so records stay consistent
// regardless of what the caller supplies.
var cardAPRRates = map[string]float64{
	"Visa Platinum":          30,
	"Visa Signature":         28,
	"Visa Infinite":          26,
	"Mastercard Standard":    32,
	"Mastercard World":       32,
	"Mastercard World Elite": 24,
}

// Store is the in-memory offer ledger. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string // insertion order, oldest first
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// Add appends a record to the ledger. An empty ID is assigned a fresh
// uuid; the APR is pinned from the card product table when known.
// Returns the stored record.
func (s *Store) Add(record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if _, exists := s.records[record.ID]; exists {
		return Record{}, fmt.Errorf("%w: %s", ErrDuplicate, record.ID)
	}
	if record.Status == "" {
		record.Status = StatusPending
	}
	if apr, ok := cardAPRRates[record.CardProduct]; ok {
		record.APR = apr
	}

	stored := record
	s.records[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
	return stored, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *record, nil
}

// List returns all records, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if record, exists := s.records[s.order[i]]; exists {
			result = append(result, *record)
		}
	}
	return result
}

// Withdraw deletes the record entirely. Withdrawal is the only way a
// record leaves the ledger.
func (s *Store) Withdraw(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.records, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// StatusUpdate carries the optional fields of a status transition.
type StatusUpdate struct {
	CancelReason    string
	Amount          *float64
	CompetingOffers []core.BankOffer
}

// UpdateStatus transitions a record to the given status, applying any
// optional fields. Returns the updated record.
func (s *Store) UpdateStatus(id string, status Status, update StatusUpdate) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidStatus(status) {
		return Record{}, fmt.Errorf("invalid offer status %q", status)
	}
	record, exists := s.records[id]
	if !exists {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	record.Status = status
	if update.CancelReason != "" {
		record.CancelReason = update.CancelReason
	}
	if update.Amount != nil {
		record.CreditLimit = *update.Amount
	}
	if update.CompetingOffers != nil {
		record.CompetingOffers = update.CompetingOffers
	}
	return *record, nil
}

// Len returns the number of records in the ledger.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
