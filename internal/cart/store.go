package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/redis"
)

// Line is one entry in a session cart. UnitPrice is snapshotted when the line
// is added so a catalog price change mid-sale does not reprice the cart.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price times quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// KV is the slice of the redis client the cart store needs.
type KV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Store persists session carts as JSON blobs in Redis. Every save refreshes
// the TTL, so an active register never loses its cart and an abandoned one
// expires on its own.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore builds a cart store on top of the shared redis client.
func NewStore(kv KV, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("cart kv store required")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// Load returns the session's cart lines. A missing key is an empty cart.
func (s *Store) Load(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Line{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading cart")
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decoding cart")
	}
	return lines, nil
}

// Save replaces the session's cart and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encoding cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving cart")
	}
	return nil
}

// Clear drops the session's cart entirely.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clearing cart")
	}
	return nil
}
