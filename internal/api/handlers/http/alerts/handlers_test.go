package alerts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"alertaVecino/internal/api/handlers/http/alerts"
	mock_alerts "alertaVecino/internal/api/handlers/http/alerts/mocks"
	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

type handlerMocks struct {
	prefs         *mock_alerts.MockPreferences
	notifications *mock_alerts.MockNotifications
	trigger       *mock_alerts.MockTrigger
	locations     *mock_alerts.MockLocationRecorder
}

func newHandler(ctrl *gomock.Controller) (*alerts.Handler, handlerMocks) {
	m := handlerMocks{
		prefs:         mock_alerts.NewMockPreferences(ctrl),
		notifications: mock_alerts.NewMockNotifications(ctrl),
		trigger:       mock_alerts.NewMockTrigger(ctrl),
		locations:     mock_alerts.NewMockLocationRecorder(ctrl),
	}
	h := alerts.NewHandler(newTestLogger(), m.prefs, m.notifications, m.trigger, m.locations)
	return h, m
}

func TestGetPreferences_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	want := &domain.AlertPreferences{
		UserID:          userID,
		Enabled:         true,
		RadiusKM:        5,
		NotifyIncidents: true,
		NotifyEvents:    true,
	}

	m.prefs.EXPECT().
		GetPreferences(gomock.Any(), userID).
		Return(want, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/"+userID.String()+"/preferences", nil)
	req = addChiURLParam(req, "userID", userID.String())
	rr := httptest.NewRecorder()

	h.GetPreferences(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.AlertPreferences](t, rr)
	if got.RadiusKM != 5 || !got.Enabled {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestGetPreferences_BadUserID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/not-a-uuid/preferences", nil)
	req = addChiURLParam(req, "userID", "not-a-uuid")
	rr := httptest.NewRecorder()

	h.GetPreferences(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestSetPreferences_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	wantReq := domain.SetPreferencesRequest{
		Enabled:         true,
		RadiusKM:        2.5,
		NotifyIncidents: true,
		NotifyEvents:    false,
	}
	want := &domain.AlertPreferences{
		UserID:          userID,
		Enabled:         true,
		RadiusKM:        2.5,
		NotifyIncidents: true,
	}

	m.prefs.EXPECT().
		SetPreferences(gomock.Any(), userID, wantReq).
		Return(want, nil).
		Times(1)

	body := `{"enabled":true,"radius_km":2.5,"notify_incidents":true,"notify_events":false}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/alerts/"+userID.String()+"/preferences", bytes.NewBufferString(body))
	req = addChiURLParam(req, "userID", userID.String())
	rr := httptest.NewRecorder()

	h.SetPreferences(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestSetPreferences_RadiusOutOfRange_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newHandler(ctrl)
	userID := uuid.New()

	for _, radius := range []string{"0.5", "51", "-3"} {
		body := fmt.Sprintf(`{"enabled":true,"radius_km":%s}`, radius)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/alerts/"+userID.String()+"/preferences", bytes.NewBufferString(body))
		req = addChiURLParam(req, "userID", userID.String())
		rr := httptest.NewRecorder()

		h.SetPreferences(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("radius %s: expected %d got %d", radius, http.StatusBadRequest, rr.Code)
		}
	}
}

func TestTriggerEvaluation_RecordsFixThenRuns(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	m.locations.EXPECT().
		ReportFix(gomock.Any(), userID, domain.GeoPoint{Lat: -12.0464, Lng: -77.0428}).
		Return(nil).
		Times(1)
	m.trigger.EXPECT().
		TriggerNow(gomock.Any(), userID).
		Return(domain.EvaluationResult{CandidatesSeen: 3, NotificationsCreated: 1}, nil).
		Times(1)

	body := fmt.Sprintf(`{"user_id":"%s","lat":-12.0464,"lng":-77.0428}`, userID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.TriggerEvaluation(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.EvaluationResult](t, rr)
	if got.NotificationsCreated != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestTriggerEvaluation_PermissionDenied(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	m.locations.EXPECT().
		ReportDenied(gomock.Any(), userID).
		Return(nil).
		Times(1)
	m.trigger.EXPECT().
		TriggerNow(gomock.Any(), userID).
		Return(domain.EvaluationResult{}, e.ErrPermissionDenied).
		Times(1)

	body := fmt.Sprintf(`{"user_id":"%s","permission_denied":true}`, userID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.TriggerEvaluation(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected %d got %d, body=%s", http.StatusForbidden, rr.Code, rr.Body.String())
	}
}

func TestTriggerEvaluation_CoalescedReturns202(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	m.locations.EXPECT().ReportFix(gomock.Any(), userID, gomock.Any()).Return(nil).Times(1)
	m.trigger.EXPECT().
		TriggerNow(gomock.Any(), userID).
		Return(domain.EvaluationResult{Skipped: true}, nil).
		Times(1)

	body := fmt.Sprintf(`{"user_id":"%s","lat":-12.05,"lng":-77.04}`, userID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.TriggerEvaluation(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected %d got %d, body=%s", http.StatusAccepted, rr.Code, rr.Body.String())
	}
}

func TestTriggerEvaluation_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", bytes.NewBufferString("{bad json"))
	rr := httptest.NewRecorder()

	h.TriggerEvaluation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestListNotifications_FilterFromQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	incident := domain.KindIncident
	m.notifications.EXPECT().
		ListNotifications(gomock.Any(), userID, domain.NotificationFilter{Kind: &incident, UnreadOnly: true}).
		Return([]*domain.NotificationRecord{
			{ID: uuid.New(), UserID: userID, Kind: domain.KindIncident, Message: "Incidente a 0.6 km"},
		}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/alerts/"+userID.String()+"/notifications?kind=incident&unread_only=true", nil)
	req = addChiURLParam(req, "userID", userID.String())
	rr := httptest.NewRecorder()

	h.ListNotifications(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]json.RawMessage](t, rr)
	if string(got["count"]) != "1" {
		t.Fatalf("expected count=1, body=%s", rr.Body.String())
	}
}

func TestListNotifications_BadKind_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newHandler(ctrl)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/alerts/"+userID.String()+"/notifications?kind=weather", nil)
	req = addChiURLParam(req, "userID", userID.String())
	rr := httptest.NewRecorder()

	h.ListNotifications(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestMarkNotificationRead_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	id := uuid.New()

	m.notifications.EXPECT().
		MarkRead(gomock.Any(), id).
		Return(e.ErrNotFound).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+id.String()+"/read", nil)
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.MarkNotificationRead(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d", http.StatusNotFound, rr.Code)
	}
}

func TestDeleteNotification_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	id := uuid.New()

	m.notifications.EXPECT().
		Delete(gomock.Any(), id).
		Return(nil).
		Times(1)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/"+id.String(), nil)
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.DeleteNotification(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected %d got %d", http.StatusNoContent, rr.Code)
	}
}

func TestMarkAllNotificationsRead_ReturnsCount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newHandler(ctrl)
	userID := uuid.New()

	m.notifications.EXPECT().
		MarkAllRead(gomock.Any(), userID).
		Return(int64(4), nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/"+userID.String()+"/notifications/read-all", nil)
	req = addChiURLParam(req, "userID", userID.String())
	rr := httptest.NewRecorder()

	h.MarkAllNotificationsRead(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
	got := decodeJSON[map[string]int64](t, rr)
	if got["marked"] != 4 {
		t.Fatalf("expected marked=4, got %v", got)
	}
}
