package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

func (h *Handler) HandleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	doc, err := h.orders.GeneratePDF(session, r.URL.Query().Get("filename"))
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	if _, err := w.Write(doc.Data); err != nil {
		slog.Error("Unable to write PDF response", "session_id", session.ID, "err", err)
	}
}
