package alerts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/validator"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Preferences interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.AlertPreferences, error)
	SetPreferences(ctx context.Context, userID uuid.UUID, req domain.SetPreferencesRequest) (*domain.AlertPreferences, error)
}

type Notifications interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]*domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Trigger interface {
	TriggerNow(ctx context.Context, userID uuid.UUID) (domain.EvaluationResult, error)
}

type LocationRecorder interface {
	ReportFix(ctx context.Context, userID uuid.UUID, point domain.GeoPoint) error
	ReportDenied(ctx context.Context, userID uuid.UUID) error
}

type Handler struct {
	logger        *slog.Logger
	Preferences   Preferences
	Notifications Notifications
	Trigger       Trigger
	Locations     LocationRecorder
}

func NewHandler(logger *slog.Logger, prefs Preferences, notifications Notifications, trigger Trigger, locations LocationRecorder) *Handler {
	return &Handler{
		logger:        logger,
		Preferences:   prefs,
		Notifications: notifications,
		Trigger:       trigger,
		Locations:     locations,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("GetPreferences", slog.String("remote", r.RemoteAddr))

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	prefs, err := h.Preferences.GetPreferences(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("SetPreferences", slog.String("remote", r.RemoteAddr))

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.SetPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius_km must be between 1.0 and 50.0"})
		return
	}

	l.Info("updating preferences",
		slog.String("user_id", userID.String()),
		slog.Bool("enabled", req.Enabled),
		slog.Float64("radius_km", req.RadiusKM),
	)

	prefs, err := h.Preferences.SetPreferences(r.Context(), userID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, prefs)
}

// TriggerEvaluation records the client's fix (or its denied-permission state)
// and runs one evaluation pass for the user. Concurrent triggers for the same
// user coalesce into the in-flight run.
func (h *Handler) TriggerEvaluation(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("TriggerEvaluation", slog.String("remote", r.RemoteAddr))

	var req domain.TriggerRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid trigger request"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		return
	}

	if req.PermissionDenied {
		if err := h.Locations.ReportDenied(r.Context(), userID); err != nil {
			h.handleError(w, r, err)
			return
		}
	} else {
		point, err := domain.NewGeoPoint(req.Lat, req.Lng)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid coordinates"})
			return
		}
		if err := h.Locations.ReportFix(r.Context(), userID, point); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	result, err := h.Trigger.TriggerNow(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("evaluation triggered",
		slog.String("user_id", userID.String()),
		slog.Int("candidates_seen", result.CandidatesSeen),
		slog.Int("notifications_created", result.NotificationsCreated),
		slog.Bool("skipped", result.Skipped),
	)

	status := http.StatusOK
	if result.Skipped {
		status = http.StatusAccepted
	}
	h.writeJSON(w, status, result)
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ListNotifications", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	var filter domain.NotificationFilter
	if kindStr := r.URL.Query().Get("kind"); kindStr != "" {
		kind := domain.Kind(kindStr)
		if kind != domain.KindIncident && kind != domain.KindEvent {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be incident or event"})
			return
		}
		filter.Kind = &kind
	}
	filter.UnreadOnly = r.URL.Query().Get("unread_only") == "true"

	records, err := h.Notifications.ListNotifications(r.Context(), userID, filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"notifications": records,
		"count":         len(records),
	})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("MarkNotificationRead", slog.String("remote", r.RemoteAddr))

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("MarkAllNotificationsRead", slog.String("remote", r.RemoteAddr))

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	n, err := h.Notifications.MarkAllRead(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int64{"marked": n})
}

// DeleteNotification removes the record and re-arms the (user, entity) pair:
// if the entity is still active and in range, the next evaluation notifies
// again.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("DeleteNotification", slog.String("remote", r.RemoteAddr))

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Notifications.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "userID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid user id", slog.String("user_id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
