package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	paginationpkg "github.com/corneye/corneye-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	created       []*models.Notification
	listFn        func(ctx context.Context, params listNotificationsParams) ([]models.Notification, *paginationpkg.Cursor, error)
	markReadFn    func(ctx context.Context, farmerID, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error)
	markAllReadFn func(ctx context.Context, farmerID uuid.UUID, now time.Time) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeRepository) List(ctx context.Context, params listNotificationsParams) ([]models.Notification, *paginationpkg.Cursor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, farmerID, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, farmerID, notificationID, now)
	}
	return notificationMarkResult{}, nil
}

func (f *fakeRepository) MarkAllRead(ctx context.Context, farmerID uuid.UUID, now time.Time) (int64, error) {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, farmerID, now)
	}
	return 0, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func TestService_List(t *testing.T) {
	first := models.Notification{ID: uuid.New(), CreatedAt: time.Now()}

	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listNotificationsParams) ([]models.Notification, *paginationpkg.Cursor, error) {
			if params.Limit != 1 {
				t.Fatalf("unexpected limit %d", params.Limit)
			}
			return []models.Notification{first}, &paginationpkg.Cursor{CreatedAt: first.CreatedAt, ID: first.ID}, nil
		},
	}

	svc := newServiceWithRepo(repo)
	result, err := svc.List(context.Background(), ListParams{FarmerID: uuid.New(), Limit: 1})
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(result.Items))
	}
	if result.Cursor == "" {
		t.Fatal("expected cursor for next page")
	}
	decoded, err := paginationpkg.ParseCursor(result.Cursor)
	if err != nil {
		t.Fatalf("invalid cursor %q: %v", result.Cursor, err)
	}
	if decoded.ID != first.ID {
		t.Fatalf("expected cursor id %s got %s", first.ID, decoded.ID)
	}
}

func TestService_ListInvalidCursor(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.List(context.Background(), ListParams{FarmerID: uuid.New(), Cursor: "bad"})
	if err == nil {
		t.Fatal("expected error for invalid cursor")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestService_MarkRead(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, farmerID, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error) {
			return notificationMarkResult{Found: true, Updated: true}, nil
		},
	}
	svc := newServiceWithRepo(repo)
	if err := svc.MarkRead(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected mark read error: %v", err)
	}
}

func TestService_MarkReadNotFound(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, farmerID, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error) {
			return notificationMarkResult{Found: false}, nil
		},
	}
	svc := newServiceWithRepo(repo)
	err := svc.MarkRead(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestService_Broadcast(t *testing.T) {
	repo := &fakeRepository{}
	svc := newServiceWithRepo(repo)

	created, err := svc.Broadcast(context.Background(), BroadcastRequest{
		Title:   "Scheduled maintenance",
		Message: "The scanner will be offline tonight.",
	})
	if err != nil {
		t.Fatalf("unexpected broadcast error: %v", err)
	}
	if created.FarmerID != nil {
		t.Fatal("broadcast should not be scoped to a farmer")
	}
	if created.Type != enums.NotificationTypeAnnouncement {
		t.Fatalf("unexpected type %s", created.Type)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created row got %d", len(repo.created))
	}
}

func TestService_BroadcastRequiresContent(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	if _, err := svc.Broadcast(context.Background(), BroadcastRequest{Title: "  ", Message: ""}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_Notify(t *testing.T) {
	repo := &fakeRepository{}
	svc := newServiceWithRepo(repo)
	farmerID := uuid.New()

	if err := svc.Notify(context.Background(), farmerID, enums.NotificationTypeScanResult, "Scan complete", "Northern Leaf Blight detected."); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created row got %d", len(repo.created))
	}
	if repo.created[0].FarmerID == nil || *repo.created[0].FarmerID != farmerID {
		t.Fatal("notification should be scoped to the farmer")
	}

	if err := svc.Notify(context.Background(), farmerID, enums.NotificationType("push"), "t", "m"); err == nil {
		t.Fatal("expected invalid type error")
	}
}
