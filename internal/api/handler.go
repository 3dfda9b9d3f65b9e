// Package api provides the HTTP binding for the USSD gateway callback.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/temberanawe/ussd/internal/dialog"
)

// Response markers of the USSD protocol. A CON response makes the gateway
// prompt again, appending the next token to the cumulative path; an END
// response terminates the session.
const (
	markerContinue  = "CON "
	markerTerminate = "END "
)

// Handler serves the gateway callback.
type Handler struct {
	engine *dialog.Engine
}

// NewHandler creates a Handler around the dialog engine.
func NewHandler(engine *dialog.Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes mounts the USSD callback on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ussd", h.handleUSSD)
}

// handleUSSD processes one turn. The gateway POSTs a url-encoded form with
// sessionId, serviceCode, phoneNumber and text, where text is the full
// cumulative selection path ("" on session start).
func (h *Handler) handleUSSD(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	phone := r.PostFormValue("phoneNumber")
	if phone == "" {
		http.Error(w, "phoneNumber is required", http.StatusBadRequest)
		return
	}
	sessionID := r.PostFormValue("sessionId")
	path := r.PostFormValue("text")

	reply := h.engine.Turn(r.Context(), phone, path)

	slog.Debug("ussd turn",
		"session_id", sessionID,
		"caller", phone,
		"path", path,
		"end", reply.End)

	marker := markerContinue
	if reply.End {
		marker = markerTerminate
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(marker + reply.Text)); err != nil {
		slog.Warn("failed to write ussd response", "caller", phone, "error", err)
	}
}
