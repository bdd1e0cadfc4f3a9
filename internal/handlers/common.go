package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/orostudio/spareparts/internal/models"
	"github.com/orostudio/spareparts/internal/ordering"
	"github.com/orostudio/spareparts/internal/storage"
)

type Handler struct {
	sessionStore *storage.SessionStore
	orders       *ordering.Service
}

func New(orders *ordering.Service, sessions *storage.SessionStore) *Handler {
	return &Handler{
		sessionStore: sessions,
		orders:       orders,
	}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/catalog", h.HandleCatalog)
	mux.HandleFunc("POST /api/sessions", h.HandleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.HandleSessionDetail)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.HandleDeleteSession)
	mux.HandleFunc("GET /api/sessions/{id}/selections", h.HandleGetSelections)
	mux.HandleFunc("PUT /api/sessions/{id}/selections", h.HandleSetSelection)
	mux.HandleFunc("POST /api/sessions/{id}/add", h.HandleAddSelected)
	mux.HandleFunc("PUT /api/sessions/{id}/lines", h.HandleSetQuantity)
	mux.HandleFunc("DELETE /api/sessions/{id}/lines", h.HandleRemoveLine)
	mux.HandleFunc("DELETE /api/sessions/{id}/cart", h.HandleClearCart)
	mux.HandleFunc("POST /api/sessions/{id}/pdf", h.HandleGeneratePDF)
	mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	mux.HandleFunc("GET /", h.HandleStatic)
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, data, http.StatusOK)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Warn(message, "status", code)
	}
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, r *http.Request) (*models.OrderSession, bool) {
	session, exists := h.sessionStore.Get(r.PathValue("id"))
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	session.MarkActive()
	return session, true
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Quantity is a quantity input. It accepts JSON numbers and numeric strings;
// anything else, including negatives, reads as zero.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		*q = 0
		return nil
	}
	*q = Quantity(n)
	return nil
}
