package auth

import (
	"github.com/corneye/corneye-backend/internal/admins"
	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/google/uuid"
)

// LoginRequest captures the credentials sent to the login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionPrefs mirrors the preferences blob the mobile app persists after a
// successful login.
type SessionPrefs struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"fullname"`
	Email    string    `json:"email"`
}

// LoginResponse contains the token, farmer, and session prefs produced by a
// successful farmer login.
type LoginResponse struct {
	AccessToken string             `json:"access_token"`
	Farmer      *farmers.FarmerDTO `json:"farmer"`
	Session     SessionPrefs       `json:"session"`
}

// AdminLoginResponse mirrors LoginResponse for the dashboard admin.
type AdminLoginResponse struct {
	AccessToken string           `json:"access_token"`
	Admin       *admins.AdminDTO `json:"admin"`
}

// RegisterRequest contains the payload required to create a farmer account.
// Password rules follow the signup screen: at least six characters, confirmed
// by retyping.
type RegisterRequest struct {
	FullName        string `json:"fullname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FarmLocation    string `json:"farm_location"`
	FarmArea        string `json:"farm_area"`
}

// RegisterResponse returns the created account. No session is established;
// the app routes new accounts back to the login screen.
type RegisterResponse struct {
	Farmer *farmers.FarmerDTO `json:"farmer"`
}
