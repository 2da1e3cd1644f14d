package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/corneye/corneye-backend/pkg/pagination"
)

type stubFarmerDirectory struct {
	rows   []models.Farmer
	next   *pagination.Cursor
	byID   map[uuid.UUID]*models.Farmer
	status map[uuid.UUID]enums.FarmerStatus

	gotParams farmers.ListParams
}

func newStubFarmerDirectory() *stubFarmerDirectory {
	return &stubFarmerDirectory{
		byID:   make(map[uuid.UUID]*models.Farmer),
		status: make(map[uuid.UUID]enums.FarmerStatus),
	}
}

func (s *stubFarmerDirectory) List(_ context.Context, params farmers.ListParams) ([]models.Farmer, *pagination.Cursor, error) {
	s.gotParams = params
	return s.rows, s.next, nil
}

func (s *stubFarmerDirectory) FindByID(_ context.Context, id uuid.UUID) (*models.Farmer, error) {
	farmer, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return farmer, nil
}

func (s *stubFarmerDirectory) UpdateStatus(_ context.Context, id uuid.UUID, status enums.FarmerStatus) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	s.status[id] = status
	return true, nil
}

type stubRevoker struct {
	revoked []uuid.UUID
}

func (s *stubRevoker) Revoke(_ context.Context, accountID uuid.UUID) error {
	s.revoked = append(s.revoked, accountID)
	return nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminFarmerListFilters(t *testing.T) {
	dir := newStubFarmerDirectory()
	dir.rows = []models.Farmer{{ID: uuid.New(), FullName: "Juan Dela Cruz", Email: "farmer@test.com"}}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/farmers?search=juan&status=active&limit=10", nil)
	resp := httptest.NewRecorder()

	AdminFarmerList(dir, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	if dir.gotParams.Search != "juan" || dir.gotParams.Limit != 10 {
		t.Fatalf("unexpected params %+v", dir.gotParams)
	}
	if dir.gotParams.Status == nil || *dir.gotParams.Status != enums.FarmerStatusActive {
		t.Fatalf("status filter not applied: %+v", dir.gotParams.Status)
	}

	var envelope struct {
		Data farmerListResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].FullName != "Juan Dela Cruz" {
		t.Fatalf("unexpected items %+v", envelope.Data.Items)
	}
}

func TestAdminFarmerListRejectsBadStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/farmers?status=banned", nil)
	resp := httptest.NewRecorder()

	AdminFarmerList(newStubFarmerDirectory(), nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminFarmerDetailNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/farmers/x", nil)
	req = withURLParam(req, "farmerId", uuid.NewString())
	resp := httptest.NewRecorder()

	AdminFarmerDetail(newStubFarmerDirectory(), nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminFarmerDeactivateRevokesSession(t *testing.T) {
	dir := newStubFarmerDirectory()
	id := uuid.New()
	dir.byID[id] = &models.Farmer{ID: id, Status: enums.FarmerStatusActive}
	revoker := &stubRevoker{}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/farmers/x/status", bytes.NewReader([]byte(`{"status":"inactive"}`)))
	req = withURLParam(req, "farmerId", id.String())
	resp := httptest.NewRecorder()

	AdminFarmerSetStatus(dir, revoker, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if dir.status[id] != enums.FarmerStatusInactive {
		t.Fatalf("expected inactive got %s", dir.status[id])
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != id {
		t.Fatalf("expected session revoked for %s got %v", id, revoker.revoked)
	}
}

func TestAdminFarmerReactivateKeepsSessionAlone(t *testing.T) {
	dir := newStubFarmerDirectory()
	id := uuid.New()
	dir.byID[id] = &models.Farmer{ID: id, Status: enums.FarmerStatusInactive}
	revoker := &stubRevoker{}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/farmers/x/status", bytes.NewReader([]byte(`{"status":"active"}`)))
	req = withURLParam(req, "farmerId", id.String())
	resp := httptest.NewRecorder()

	AdminFarmerSetStatus(dir, revoker, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("reactivation must not revoke sessions, got %v", revoker.revoked)
	}
}
