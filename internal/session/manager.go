package session

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corneye/corneye-backend/pkg/config"
	redisclient "github.com/corneye/corneye-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no active session")

// State is the server-side session record kept per account. It mirrors the
// preferences blob the mobile app keeps after login: the account key plus
// the display fields the UI greets the user with.
type State struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	AccessID    string    `json:"access_id"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(accountID string) string
}

// Manager owns the lifecycle of the per-account session record. The record
// is keyed by account ID, so a login always overwrites whatever session came
// before it: an account holds at most one live session.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessChecker exposes the read-only surface needed by middleware.
type AccessChecker interface {
	Validate(ctx context.Context, accountID uuid.UUID, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis. A zero TTL keeps
// sessions alive until the next login replaces them or a logout clears them.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   cfg.TTL(),
	}, nil
}

// Establish writes the session record for the account, replacing any prior one.
func (m *Manager) Establish(ctx context.Context, state State) error {
	if state.UserID == uuid.Nil {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(state.AccessID) == "" {
		return fmt.Errorf("access id is required")
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(state.UserID.String()), string(payload), m.ttl)
}

// Current returns the live session state for the account, or ErrNoSession.
func (m *Manager) Current(ctx context.Context, accountID uuid.UUID) (*State, error) {
	if accountID == uuid.Nil {
		return nil, fmt.Errorf("account id is required")
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(accountID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decoding session state: %w", err)
	}
	return &state, nil
}

// Validate reports whether the provided access ID matches the account's live
// session. A token minted before the latest login carries a stale access ID
// and fails here.
func (m *Manager) Validate(ctx context.Context, accountID uuid.UUID, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, nil
	}
	state, err := m.Current(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(state.AccessID), []byte(accessID)) == 1, nil
}

// Revoke deletes the session record for the account. Revoking an account
// with no session is a no-op.
func (m *Manager) Revoke(ctx context.Context, accountID uuid.UUID) error {
	if accountID == uuid.Nil {
		return fmt.Errorf("account id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(accountID.String()))
}

// NewAccessID produces a stable identifier used as the JWT jti and the
// session's access ID.
func NewAccessID() string {
	return uuid.NewString()
}
