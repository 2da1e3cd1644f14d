package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corneye/corneye-backend/internal/admins"
	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/corneye/corneye-backend/internal/session"
	pkgAuth "github.com/corneye/corneye-backend/pkg/auth"
	"github.com/corneye/corneye-backend/pkg/config"
	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The same message covers unknown email, wrong password, and deactivated
// accounts so responses don't leak which emails exist.
const invalidCredentialsMessage = "invalid email or password"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*AdminLoginResponse, error)
	Logout(ctx context.Context, accountID uuid.UUID) error
}

type service struct {
	farmers  farmerRepository
	admins   adminRepository
	sessions sessionManager
	jwtCfg   config.JWTConfig
}

type farmerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Farmer, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type adminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Establish(ctx context.Context, state session.State) error
	Revoke(ctx context.Context, accountID uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	FarmerRepo     farmerRepository
	AdminRepo      adminRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.FarmerRepo == nil {
		return nil, fmt.Errorf("farmer repository is required")
	}
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		farmers:  params.FarmerRepo,
		admins:   params.AdminRepo,
		sessions: params.SessionManager,
		jwtCfg:   params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	farmer, err := s.farmers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup farmer")
	}

	valid, err := security.VerifyPassword(req.Password, farmer.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || farmer.Status != enums.FarmerStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := time.Now().UTC()
	if err := s.farmers.UpdateLastLogin(ctx, farmer.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	farmer.LastLoginAt = &now

	accessID := session.NewAccessID()
	state := session.State{
		UserID:      farmer.ID,
		DisplayName: farmer.FullName,
		Email:       farmer.Email,
		AccessID:    accessID,
	}
	if err := s.sessions.Establish(ctx, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "establish session")
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		AccountID: farmer.ID,
		Role:      enums.ActorRoleFarmer,
		JTI:       accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		AccessToken: accessToken,
		Farmer:      farmers.FromModel(farmer),
		Session: SessionPrefs{
			UserID:   farmer.ID,
			FullName: farmer.FullName,
			Email:    farmer.Email,
		},
	}, nil
}

func (s *service) AdminLogin(ctx context.Context, req LoginRequest) (*AdminLoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}

	valid, err := security.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := time.Now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	admin.LastLoginAt = &now

	accessID := session.NewAccessID()
	state := session.State{
		UserID:      admin.ID,
		DisplayName: admin.FullName,
		Email:       admin.Email,
		AccessID:    accessID,
	}
	if err := s.sessions.Establish(ctx, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "establish session")
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		AccountID: admin.ID,
		Role:      enums.ActorRoleAdmin,
		JTI:       accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AdminLoginResponse{
		AccessToken: accessToken,
		Admin:       admins.FromModel(admin),
	}, nil
}

func (s *service) Logout(ctx context.Context, accountID uuid.UUID) error {
	if accountID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "account id required")
	}
	if err := s.sessions.Revoke(ctx, accountID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
