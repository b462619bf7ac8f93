package alerts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"alertaVecino/pkg/e"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, e.ErrPermissionDenied):
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "location permission denied"})
	case errors.Is(err, e.ErrLocationUnavailable):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "no recent location fix"})
	case errors.Is(err, e.ErrSourceUnavailable):
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "candidate source unavailable"})
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrInvalidUserID), errors.Is(err, e.ErrInvalidCoordinates):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
	case errors.Is(err, e.ErrConflict), errors.Is(err, e.ErrDuplicateNotification):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "conflict"})
	default:
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
