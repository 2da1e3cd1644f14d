package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/corneye/corneye-backend/api/middleware"
	"github.com/corneye/corneye-backend/internal/notifications"
	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
)

type stubNotificationsService struct {
	listResp *notifications.ListResult
	err      error

	gotParams notifications.ListParams
	marked    []uuid.UUID
	markedAll []uuid.UUID
}

func (s *stubNotificationsService) List(_ context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	s.gotParams = params
	return s.listResp, s.err
}

func (s *stubNotificationsService) MarkRead(_ context.Context, _ uuid.UUID, notificationID uuid.UUID) error {
	s.marked = append(s.marked, notificationID)
	return s.err
}

func (s *stubNotificationsService) MarkAllRead(_ context.Context, farmerID uuid.UUID) (int64, error) {
	s.markedAll = append(s.markedAll, farmerID)
	return 3, s.err
}

func (s *stubNotificationsService) Broadcast(_ context.Context, req notifications.BroadcastRequest) (*models.Notification, error) {
	return &models.Notification{Title: req.Title, Message: req.Message, Type: enums.NotificationTypeAnnouncement}, s.err
}

func (s *stubNotificationsService) Notify(context.Context, uuid.UUID, enums.NotificationType, string, string) error {
	return s.err
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithAccountID(req.Context(), uuid.NewString()))
}

func TestListNotificationsParsesQuery(t *testing.T) {
	svc := &stubNotificationsService{listResp: &notifications.ListResult{}}

	req := authedRequest(http.MethodGet, "/api/v1/notifications?limit=5&unreadOnly=true&cursor=abc")
	resp := httptest.NewRecorder()

	ListNotifications(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotParams.Limit != 5 || !svc.gotParams.UnreadOnly || svc.gotParams.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", svc.gotParams)
	}
}

func TestListNotificationsRejectsBadLimit(t *testing.T) {
	svc := &stubNotificationsService{listResp: &notifications.ListResult{}}

	req := authedRequest(http.MethodGet, "/api/v1/notifications?limit=0")
	resp := httptest.NewRecorder()

	ListNotifications(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMarkNotificationReadRejectsBadID(t *testing.T) {
	svc := &stubNotificationsService{}

	req := authedRequest(http.MethodPost, "/api/v1/notifications/x/read")
	req = withURLParam(req, "notificationId", "not-a-uuid")
	resp := httptest.NewRecorder()

	MarkNotificationRead(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(svc.marked) != 0 {
		t.Fatalf("service should not be called on bad input")
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	svc := &stubNotificationsService{}

	req := authedRequest(http.MethodPost, "/api/v1/notifications/read-all")
	resp := httptest.NewRecorder()

	MarkAllNotificationsRead(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.markedAll) != 1 {
		t.Fatalf("expected one mark-all call got %d", len(svc.markedAll))
	}
}
