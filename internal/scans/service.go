package scans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/corneye/corneye-backend/internal/diseases"
	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service runs leaf analyses and serves scan history.
type Service interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)
	History(ctx context.Context, params HistoryParams) (*HistoryResult, error)
	Get(ctx context.Context, farmerID, resultID uuid.UUID) (*models.AnalysisResult, error)
}

// AnalyzeRequest identifies the farmer and the uploaded image.
type AnalyzeRequest struct {
	FarmerID uuid.UUID
	ImageRef string
}

// AnalyzeResult is the persisted outcome plus display guidance.
type AnalyzeResult struct {
	Result          *models.AnalysisResult `json:"result"`
	Recommendations []string               `json:"recommendations"`
}

// HistoryParams configures the scan history listing.
type HistoryParams struct {
	FarmerID uuid.UUID
	Limit    int
	Cursor   string
	Healthy  *bool
}

// HistoryResult wraps a page of results and the cursor for the next page.
type HistoryResult struct {
	Items  []models.AnalysisResult `json:"items"`
	Cursor string                  `json:"cursor"`
}

type notifier interface {
	Notify(ctx context.Context, farmerID uuid.UUID, kind enums.NotificationType, title, message string) error
}

type service struct {
	repo     Repository
	detector Detector
	notify   notifier
}

// ServiceParams bundles the dependencies for the scan service.
type ServiceParams struct {
	Repo     Repository
	Detector Detector
	Notifier notifier
}

// NewService wires the scan dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "scans repository required")
	}
	if params.Detector == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "detector required")
	}
	return &service{
		repo:     params.Repo,
		detector: params.Detector,
		notify:   params.Notifier,
	}, nil
}

func (s *service) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if req.FarmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	detection := s.detector.Detect(req.ImageRef)

	result := &models.AnalysisResult{
		FarmerID:    req.FarmerID,
		DiseaseName: detection.Label,
		Confidence:  detection.Confidence,
		Healthy:     detection.Label == HealthyLabel,
	}
	if ref := strings.TrimSpace(req.ImageRef); ref != "" {
		result.ImageRef = &ref
	}

	if err := s.repo.Create(ctx, result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store analysis result")
	}

	if s.notify != nil {
		title := "Scan complete"
		message := fmt.Sprintf("%s detected (%.0f%% confidence).", detection.Label, detection.Confidence*100)
		if result.Healthy {
			message = fmt.Sprintf("No disease detected (%.0f%% confidence).", detection.Confidence*100)
		}
		// a failed notification never voids a stored scan
		_ = s.notify.Notify(ctx, req.FarmerID, enums.NotificationTypeScanResult, title, message)
	}

	return &AnalyzeResult{
		Result:          result,
		Recommendations: diseases.Recommendations(detection.Label),
	}, nil
}

func (s *service) History(ctx context.Context, params HistoryParams) (*HistoryResult, error) {
	if params.FarmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	query := listResultsParams{
		FarmerID: params.FarmerID,
		Limit:    params.Limit,
		Healthy:  params.Healthy,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list scan history")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &HistoryResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Get(ctx context.Context, farmerID, resultID uuid.UUID) (*models.AnalysisResult, error) {
	if farmerID == uuid.Nil || resultID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id and result id required")
	}
	result, err := s.repo.FindByID(ctx, farmerID, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scan result not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load scan result")
	}
	return result, nil
}
