package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rizqlabs/welcomebid/core"
	"github.com/rizqlabs/welcomebid/history"
)

// ListOfferHistory handles GET /offer-history.
func (h *Handler) ListOfferHistory(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      h.store.List(),
		"timestamp": h.now().UnixMilli(),
	})
}

// AddOfferHistory handles POST /offer-history.
func (h *Handler) AddOfferHistory(w http.ResponseWriter, r *http.Request) {
	var record history.Record
	if !h.decode(w, r, &record) {
		return
	}
	if record.CustomerName == "" {
		h.respondError(w, http.StatusBadRequest, "customerName is required")
		return
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = h.now()
	}

	stored, err := h.store.Add(record)
	if err != nil {
		if errors.Is(err, history.ErrDuplicate) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("offer recorded",
		slog.String("id", stored.ID),
		slog.String("status", string(stored.Status)))
	h.respondJSON(w, http.StatusCreated, stored)
}

// WithdrawOfferHistory handles DELETE /offer-history/{id}.
func (h *Handler) WithdrawOfferHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Withdraw(id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateOfferHistoryStatus handles PATCH /offer-history/{id}/status.
func (h *Handler) UpdateOfferHistoryStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status          history.Status   `json:"status"`
		CancelReason    string           `json:"cancelReason,omitempty"`
		Amount          *float64         `json:"amount,omitempty"`
		CompetingOffers []core.BankOffer `json:"competingOffers,omitempty"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.store.UpdateStatus(id, req.Status, history.StatusUpdate{
		CancelReason:    req.CancelReason,
		Amount:          req.Amount,
		CompetingOffers: req.CompetingOffers,
	})
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// ExportOfferHistory handles GET /offer-history/export, returning the
// ledger as a compact CBOR snapshot.
func (h *Handler) ExportOfferHistory(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Snapshot()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "snapshot failed")
		return
	}
	w.Header().Set("Content-Type", "application/cbor")
	w.Header().Set("Content-Disposition", `attachment; filename="offer-history.cbor"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("writing snapshot", slog.String("error", err.Error()))
	}
}
