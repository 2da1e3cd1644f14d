package notifications

import (
	"context"
	"strings"
	"time"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service defines notification list/read/broadcast operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, farmerID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, farmerID uuid.UUID) (int64, error)
	Broadcast(ctx context.Context, req BroadcastRequest) (*models.Notification, error)
	Notify(ctx context.Context, farmerID uuid.UUID, kind enums.NotificationType, title, message string) error
}

type service struct {
	repo Repository
}

// ListParams configures pagination for notifications.
type ListParams struct {
	FarmerID   uuid.UUID
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// BroadcastRequest carries an admin announcement pushed to every farmer.
type BroadcastRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.FarmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	query := listNotificationsParams{
		FarmerID:   params.FarmerID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, farmerID, notificationID uuid.UUID) error {
	if farmerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, farmerID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, farmerID uuid.UUID) (int64, error) {
	if farmerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	count, err := s.repo.MarkAllRead(ctx, farmerID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

// Broadcast stores an announcement with no farmer scope so every account sees it.
func (s *service) Broadcast(ctx context.Context, req BroadcastRequest) (*models.Notification, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and message are required")
	}

	notification := &models.Notification{
		Type:    enums.NotificationTypeAnnouncement,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create broadcast")
	}
	return notification, nil
}

// Notify stores a notification addressed to a single farmer.
func (s *service) Notify(ctx context.Context, farmerID uuid.UUID, kind enums.NotificationType, title, message string) error {
	if farmerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	notification := &models.Notification{
		FarmerID: &farmerID,
		Type:     kind,
		Title:    title,
		Message:  message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}
