package session

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/redis"
)

type stubStore struct {
	data map[string]string
	err  error
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = value.(string)
	return nil
}

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *stubStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.data[key] = value.(string)
	return true, nil
}

func (s *stubStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubStore) ReplayTokenKey(sessionID string) string {
	return "pos:token:" + sessionID
}

func TestNewManagerRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil, time.Minute); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestEnsureMintsOnceAndIsStable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr, err := NewManager(newStubStore(), time.Minute)
	if err != nil {
		t.Fatalf("constructing manager: %v", err)
	}

	first, err := mgr.Ensure(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if first == "" {
		t.Fatal("expected a minted token")
	}

	second, err := mgr.Ensure(ctx, "sess-1")
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if second != first {
		t.Fatalf("ensure should be stable, got %q then %q", first, second)
	}
}

func TestVerifyAcceptsCurrentRejectsStale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr, err := NewManager(newStubStore(), time.Minute)
	if err != nil {
		t.Fatalf("constructing manager: %v", err)
	}

	token, err := mgr.Ensure(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if err := mgr.Verify(ctx, "sess-1", token); err != nil {
		t.Fatalf("expected current token to verify, got %v", err)
	}

	rotated, err := mgr.Rotate(ctx, "sess-1")
	if err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if rotated == token {
		t.Fatal("rotation must change the token")
	}

	err = mgr.Verify(ctx, "sess-1", token)
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for stale token, got %v", err)
	}
	if err := mgr.Verify(ctx, "sess-1", rotated); err != nil {
		t.Fatalf("expected rotated token to verify, got %v", err)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr, err := NewManager(newStubStore(), time.Minute)
	if err != nil {
		t.Fatalf("constructing manager: %v", err)
	}

	err = mgr.Verify(ctx, "sess-1", "anything")
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN when nothing stored, got %v", err)
	}
	err = mgr.Verify(ctx, "sess-1", "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for empty token, got %v", err)
	}
}
