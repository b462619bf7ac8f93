package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"alertaVecino/internal/api/handlers/http/admin"
	mock_admin "alertaVecino/internal/api/handlers/http/admin/mocks"
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

func TestAdminCandidateCreate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminSvc := mock_admin.NewMockCandidateAdmin(ctrl)
	h := admin.NewHandler(newTestLogger(), adminSvc, mock_admin.NewMockStatsGetter(ctrl))

	reqBody := `{"kind":"incident","title":"incendio","lat":-12.05,"lng":-77.04}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/candidates/", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	wantID := uuid.New()

	adminSvc.EXPECT().
		Create(gomock.Any(), domain.CreateCandidateRequest{
			Kind:  domain.KindIncident,
			Title: "incendio",
			Lat:   -12.05,
			Lng:   -77.04,
		}).
		Return(wantID, nil).
		Times(1)

	h.AdminCandidateCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]string](t, rr)
	if got["id"] != wantID.String() {
		t.Fatalf("expected id=%s got=%s", wantID.String(), got["id"])
	}
}

func TestAdminCandidateCreate_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := admin.NewHandler(newTestLogger(),
		mock_admin.NewMockCandidateAdmin(ctrl),
		mock_admin.NewMockStatsGetter(ctrl),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/candidates/", bytes.NewBufferString("{bad json"))
	rr := httptest.NewRecorder()

	h.AdminCandidateCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestAdminCandidateCreate_InvalidInput_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminSvc := mock_admin.NewMockCandidateAdmin(ctrl)
	h := admin.NewHandler(newTestLogger(), adminSvc, mock_admin.NewMockStatsGetter(ctrl))

	reqBody := `{"kind":"weather","title":"granizo","lat":-12.05,"lng":-77.04}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/candidates/", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	adminSvc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(uuid.Nil, e.ErrInvalidInput).
		Times(1)

	h.AdminCandidateCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestAdminCandidateGet_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminSvc := mock_admin.NewMockCandidateAdmin(ctrl)
	h := admin.NewHandler(newTestLogger(), adminSvc, mock_admin.NewMockStatsGetter(ctrl))

	id := uuid.New()
	adminSvc.EXPECT().
		Get(gomock.Any(), id).
		Return(nil, e.ErrNotFound).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/candidates/"+id.String(), nil)
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.AdminCandidateGet(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d", http.StatusNotFound, rr.Code)
	}
}

func TestAdminCandidateUpdate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminSvc := mock_admin.NewMockCandidateAdmin(ctrl)
	h := admin.NewHandler(newTestLogger(), adminSvc, mock_admin.NewMockStatsGetter(ctrl))

	id := uuid.New()
	resolved := domain.IncidentResolved

	adminSvc.EXPECT().
		Update(gomock.Any(), id, domain.UpdateCandidateRequest{Status: &resolved}).
		Return(nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/candidates/"+id.String(),
		bytes.NewBufferString(`{"status":"resolved"}`))
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.AdminCandidateUpdate(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected %d got %d, body=%s", http.StatusNoContent, rr.Code, rr.Body.String())
	}
}

func TestAdminCandidateArchive_ServiceError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminSvc := mock_admin.NewMockCandidateAdmin(ctrl)
	h := admin.NewHandler(newTestLogger(), adminSvc, mock_admin.NewMockStatsGetter(ctrl))

	id := uuid.New()
	adminSvc.EXPECT().
		Archive(gomock.Any(), id).
		Return(errors.New("boom")).
		Times(1)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/candidates/"+id.String(), nil)
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.AdminCandidateArchive(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestAdminStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsSvc := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), mock_admin.NewMockCandidateAdmin(ctrl), statsSvc)

	statsSvc.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 30}).
		Return(&domain.AlertStats{
			NotificationsCreated: 7,
			UnreadNotifications:  3,
			ActiveIncidents:      2,
			ActiveEvents:         1,
			Minutes:              30,
			GeneratedAt:          time.Now().UTC(),
		}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=30", nil)
	rr := httptest.NewRecorder()

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.AlertStats](t, rr)
	if got.NotificationsCreated != 7 || got.Minutes != 30 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAdminStats_InvalidMinutes_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := admin.NewHandler(newTestLogger(),
		mock_admin.NewMockCandidateAdmin(ctrl),
		mock_admin.NewMockStatsGetter(ctrl),
	)

	for _, minutes := range []string{"0", "-5", "1441", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes="+minutes, nil)
		rr := httptest.NewRecorder()

		h.AdminStats(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("minutes=%s: expected %d got %d", minutes, http.StatusBadRequest, rr.Code)
		}
	}
}
