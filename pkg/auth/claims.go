package auth

import (
	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
// JTI doubles as the session key; middleware rejects tokens whose JTI no
// longer matches the account's single live session.
type AccessTokenPayload struct {
	AccountID uuid.UUID
	Role      enums.ActorRole
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	AccountID uuid.UUID       `json:"account_id"`
	Role      enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
