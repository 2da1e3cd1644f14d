package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FreePlanID is the implicit plan for accounts with no recorded payment.
const FreePlanID = "free"

// Service exposes the subscription screens: plan listing, the mock checkout,
// and the current plan summary.
type Service interface {
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	Subscribe(ctx context.Context, req SubscribeRequest) (*models.Payment, error)
	Current(ctx context.Context, farmerID uuid.UUID) (*CurrentSubscription, error)
}

// SubscribeRequest captures the mock payment submission.
type SubscribeRequest struct {
	FarmerID uuid.UUID
	PlanID   string              `json:"plan_id" validate:"required"`
	Method   enums.PaymentMethod `json:"method" validate:"required"`
}

// CurrentSubscription summarizes the farmer's active plan.
type CurrentSubscription struct {
	Plan        *models.SubscriptionPlan `json:"plan"`
	LastPayment *models.Payment          `json:"last_payment,omitempty"`
}

type notifier interface {
	Notify(ctx context.Context, farmerID uuid.UUID, kind enums.NotificationType, title, message string) error
}

type service struct {
	repo   Repository
	notify notifier
}

// ServiceParams bundles the dependencies for the subscription service.
type ServiceParams struct {
	Repo     Repository
	Notifier notifier
}

// NewService wires the subscription dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "subscriptions repository required")
	}
	return &service{repo: params.Repo, notify: params.Notifier}, nil
}

func (s *service) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plans")
	}
	return plans, nil
}

// Subscribe records the mock payment verbatim. No gateway is contacted and
// nothing is charged; the stored row is the entire transaction.
func (s *service) Subscribe(ctx context.Context, req SubscribeRequest) (*models.Payment, error) {
	if req.FarmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}
	if !req.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	planID := strings.ToLower(strings.TrimSpace(req.PlanID))
	plan, err := s.repo.FindPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find plan")
	}

	payment := &models.Payment{
		FarmerID: req.FarmerID,
		PlanID:   plan.ID,
		PlanName: plan.Name,
		Amount:   plan.Price,
		Method:   req.Method,
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
	}

	if s.notify != nil {
		message := fmt.Sprintf("You are now on the %s (PHP %s/month).", plan.Name, plan.Price.StringFixed(2))
		_ = s.notify.Notify(ctx, req.FarmerID, enums.NotificationTypeSubscription, "Subscription updated", message)
	}

	return payment, nil
}

// Current resolves the farmer's plan from their latest payment, defaulting to
// the free plan when no payment exists.
func (s *service) Current(ctx context.Context, farmerID uuid.UUID) (*CurrentSubscription, error) {
	if farmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	payment, err := s.repo.LatestPayment(ctx, farmerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest payment")
	}

	planID := FreePlanID
	if payment != nil {
		planID = payment.PlanID
	}

	plan, err := s.repo.FindPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find plan")
	}

	return &CurrentSubscription{Plan: plan, LastPayment: payment}, nil
}
