package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/orostudio/spareparts/internal/ordering"
)

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.orders.Catalog().All())
}

func (h *Handler) HandleGetSelections(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	machine := r.URL.Query().Get("machine")
	if machine == "" {
		h.writeError(w, "machine is required", http.StatusBadRequest)
		return
	}

	sel, err := h.orders.Selections(session, machine)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}
	h.writeJSON(w, sel)
}

func (h *Handler) HandleSetSelection(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Machine  string   `json:"machine"`
		Code     string   `json:"code"`
		Quantity Quantity `json:"quantity"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	if err := h.orders.SetSelection(session, request.Machine, request.Code, int(request.Quantity)); err != nil {
		h.writeOrderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddSelected(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Machine    string              `json:"machine"`
		Quantities map[string]Quantity `json:"quantities"` // code -> quantity
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	if request.Machine == "" {
		h.writeError(w, "machine is required", http.StatusBadRequest)
		return
	}

	quantities := make(map[string]int, len(request.Quantities))
	for code, qty := range request.Quantities {
		quantities[code] = int(qty)
	}
	if err := h.orders.SetSelections(session, request.Machine, quantities); err != nil {
		h.writeOrderError(w, err)
		return
	}

	added, err := h.orders.AddSelected(session, request.Machine)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	message := "No quantity selected."
	if added > 0 {
		message = fmt.Sprintf("%d items added to your order.", added)
	}

	summary := h.orders.Summary(session)
	response := map[string]any{
		"added":          added,
		"message":        message,
		"line_count":     summary.LineCount,
		"total_quantity": summary.TotalQuantity,
	}
	h.writeJSON(w, response)
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Machine  string   `json:"machine"`
		Code     string   `json:"code"`
		Quantity Quantity `json:"quantity"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	if err := h.orders.SetQuantity(session, request.Machine, request.Code, int(request.Quantity)); err != nil {
		h.writeOrderError(w, err)
		return
	}

	h.writeJSON(w, h.orders.Summary(session))
}

func (h *Handler) HandleRemoveLine(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	machine := r.URL.Query().Get("machine")
	code := r.URL.Query().Get("code")
	if machine == "" || code == "" {
		h.writeError(w, "machine and code are required", http.StatusBadRequest)
		return
	}

	h.orders.Remove(session, machine, code)
	h.writeJSON(w, h.orders.Summary(session))
}

func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	h.orders.Clear(session)

	response := map[string]any{
		"message": "Cart cleared.",
	}
	h.writeJSON(w, response)
}

// writeOrderError maps ordering errors to HTTP statuses
func (h *Handler) writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ordering.ErrUnknownMachine), errors.Is(err, ordering.ErrUnknownPart), errors.Is(err, ordering.ErrQuantityLimit):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ordering.ErrLineNotFound):
		h.writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ordering.ErrEmptyCart):
		h.writeError(w, "No items selected!", http.StatusConflict)
	default:
		h.writeError(w, "Internal error: "+strings.TrimSpace(err.Error()), http.StatusInternalServerError)
	}
}
