package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/redis"
)

const tokenBytes = 32

// Store is the slice of the redis client the token manager needs.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	ReplayTokenKey(sessionID string) string
}

// Manager issues and verifies the per-session anti-replay token. A checkout
// request must carry the current token, and the token is rotated after every
// checkout attempt regardless of outcome, so a resubmitted form can never
// commit the same sale twice.
type Manager interface {
	// Ensure returns the session's current token, minting one if absent.
	Ensure(ctx context.Context, sessionID string) (string, error)
	// Verify checks the presented token against the stored one.
	Verify(ctx context.Context, sessionID, presented string) error
	// Rotate replaces the session's token and returns the new value.
	Rotate(ctx context.Context, sessionID string) (string, error)
}

type manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) (Manager, error) {
	if store == nil {
		return nil, errors.New("session token store is required")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &manager{store: store, ttl: ttl}, nil
}

func (m *manager) Ensure(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}

	key := m.store.ReplayTokenKey(sessionID)
	candidate, err := newToken()
	if err != nil {
		return "", err
	}
	created, err := m.store.SetNX(ctx, key, candidate, m.ttl)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "storing session token")
	}
	if created {
		return candidate, nil
	}

	current, err := m.store.Get(ctx, key)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading session token")
	}
	return current, nil
}

func (m *manager) Verify(ctx context.Context, sessionID, presented string) error {
	if sessionID == "" || presented == "" {
		return pkgerrors.New(pkgerrors.CodeForbidden, "missing checkout token")
	}

	stored, err := m.store.Get(ctx, m.store.ReplayTokenKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "checkout token expired")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading session token")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "stale checkout token")
	}
	return nil
}

func (m *manager) Rotate(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}

	next, err := newToken()
	if err != nil {
		return "", err
	}
	key := m.store.ReplayTokenKey(sessionID)
	if err := m.store.Set(ctx, key, next, m.ttl); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "rotating session token")
	}
	return next, nil
}

func newToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating checkout token")
	}
	return hex.EncodeToString(bytes), nil
}
