package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/corneye/corneye-backend/internal/notifications"
	"github.com/corneye/corneye-backend/pkg/config"
	"github.com/corneye/corneye-backend/pkg/db"
	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	emailTakenMessage = "email already registered"

	// shown when another request holds the claim; the email may still be free
	registrationInFlightMessage = "registration in progress, try again"

	// registerClaimTTL bounds how long a crashed signup can hold the
	// per-email claim before another attempt may proceed.
	registerClaimTTL = 30 * time.Second
)

// RegisterService handles the signup transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// registrationGuard serializes concurrent signups for the same email so two
// racing requests cannot both pass the duplicate pre-check. The database
// unique index remains the final arbiter.
type registrationGuard interface {
	ClaimRegistration(ctx context.Context, email string, ttl time.Duration) (bool, error)
	ReleaseRegistration(ctx context.Context, email string) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	Guard          registrationGuard
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	guard       registrationGuard
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "registration guard required")
	}
	return &registerService{
		db:          params.DB,
		guard:       params.Guard,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	claimed, err := s.guard.ClaimRegistration(ctx, email, registerClaimTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim registration")
	}
	if !claimed {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, registrationInFlightMessage)
	}
	// release must run even when the client disconnects mid-request, or the
	// claim blocks retries for the full TTL
	defer func() {
		_ = s.guard.ReleaseRegistration(context.WithoutCancel(ctx), email)
	}()

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.Farmer
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		farmerRepo := farmers.NewRepository(tx)
		notificationRepo := notifications.NewRepository(tx)

		if _, err := farmerRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check farmer email")
		}

		farmer, err := farmerRepo.Create(ctx, farmers.CreateFarmerDTO{
			FullName:     strings.TrimSpace(req.FullName),
			Email:        email,
			PasswordHash: passwordHash,
			Phone:        strings.TrimSpace(req.Phone),
			FarmLocation: strings.TrimSpace(req.FarmLocation),
			FarmArea:     strings.TrimSpace(req.FarmArea),
		})
		if err != nil {
			if db.IsUniqueViolation(err, "farmers_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create farmer")
		}

		welcome := &models.Notification{
			FarmerID: &farmer.ID,
			Type:     enums.NotificationTypeAccount,
			Title:    "Welcome to CornEye",
			Message:  "Your account is ready. Scan a corn leaf to get started.",
		}
		if err := notificationRepo.Create(ctx, welcome); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create welcome notification")
		}

		created = farmer
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &RegisterResponse{Farmer: farmers.FromModel(created)}, nil
}
