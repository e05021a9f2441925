package session

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/security"
	"github.com/agromarket/agromarket-go/internal/storage"
)

func newManagerForTest(t *testing.T, opts ...Option) (*Manager, *storage.MemoryStore, *storage.MemoryStore) {
	t.Helper()

	durable := storage.NewMemoryStore()
	scoped := storage.NewMemoryStore()
	return NewManager(durable, scoped, opts...), durable, scoped
}

func testUser() domain.UserData {
	return domain.UserData{ID: "u1", Name: "Asha", Email: "asha@example.com", UserType: domain.RoleFarmer}
}

func TestSetSelectsTierByRememberMe(t *testing.T) {
	ctx := context.Background()
	m, durable, scoped := newManagerForTest(t)

	if err := m.Set(ctx, "tok-durable", testUser(), true); err != nil {
		t.Fatalf("set rememberMe: %v", err)
	}
	if _, err := durable.Get(ctx, storage.KeySession); err != nil {
		t.Fatalf("durable tier empty after rememberMe login: %v", err)
	}
	if _, err := scoped.Get(ctx, storage.KeySession); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("scoped tier should be empty, got %v", err)
	}

	// Logging in again without rememberMe moves the record to the scoped
	// tier and removes the durable copy.
	if err := m.Set(ctx, "tok-scoped", testUser(), false); err != nil {
		t.Fatalf("set scoped: %v", err)
	}
	if _, err := durable.Get(ctx, storage.KeySession); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("durable tier should be cleared, got %v", err)
	}
	sess, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Token != "tok-scoped" || sess.RememberMe {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestGetPrefersDurableTier(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManagerForTest(t)

	if err := m.Set(ctx, "tok", testUser(), true); err != nil {
		t.Fatalf("set: %v", err)
	}
	sess, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Token != "tok" || !sess.RememberMe {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.User.UserType != domain.RoleFarmer {
		t.Fatalf("user data lost: %+v", sess.User)
	}
}

func TestGetWithoutSession(t *testing.T) {
	m, _, _ := newManagerForTest(t)
	if _, err := m.Get(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("got %v, want ErrNoSession", err)
	}
}

func TestSetTokenPreservesUserAndTier(t *testing.T) {
	ctx := context.Background()
	m, durable, _ := newManagerForTest(t)

	if err := m.Set(ctx, "old", testUser(), true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.SetToken(ctx, "new"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	sess, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Token != "new" {
		t.Fatalf("token not replaced: %q", sess.Token)
	}
	if !sess.RememberMe || sess.User.ID != "u1" {
		t.Fatalf("tier or user data not preserved: %+v", sess)
	}
	if _, err := durable.Get(ctx, storage.KeySession); err != nil {
		t.Fatalf("token replacement left durable tier: %v", err)
	}
}

func TestTouchUpdatesActivityTimestamp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, _, _ := newManagerForTest(t, WithClock(func() time.Time { return now }))

	if err := m.Set(ctx, "tok", testUser(), false); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(time.Hour)
	m.Touch(ctx)

	sess, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !sess.LastActivityAt.Equal(now) {
		t.Fatalf("activity timestamp: got %v, want %v", sess.LastActivityAt, now)
	}
	if sess.Token != "tok" {
		t.Fatalf("touch must not rewrite the token: %q", sess.Token)
	}
}

func TestClearEmptiesBothTiers(t *testing.T) {
	ctx := context.Background()
	m, durable, scoped := newManagerForTest(t)

	// Seed both tiers directly to simulate leftover state.
	if err := durable.Put(ctx, storage.KeySession, []byte(`{"token":"a"}`)); err != nil {
		t.Fatalf("seed durable: %v", err)
	}
	if err := scoped.Put(ctx, storage.KeySession, []byte(`{"token":"b"}`)); err != nil {
		t.Fatalf("seed scoped: %v", err)
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := m.Get(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("session survived clear: %v", err)
	}

	// Clearing again with nothing stored is fine.
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCorruptPayloadTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	m, durable, _ := newManagerForTest(t)

	if err := durable.Put(ctx, storage.KeySession, []byte("not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := m.Get(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("corrupt payload: got %v, want ErrNoSession", err)
	}
	// The corrupt record is removed so it cannot fail again.
	if _, err := durable.Get(ctx, storage.KeySession); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("corrupt record not removed: %v", err)
	}
}

func TestCipherSealsDurableTierOnly(t *testing.T) {
	ctx := context.Background()
	cipher, err := security.NewTokenCipher([]byte("secret"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	m, durable, scoped := newManagerForTest(t, WithCipher(cipher))

	if err := m.Set(ctx, "secret-token", testUser(), true); err != nil {
		t.Fatalf("set durable: %v", err)
	}
	raw, err := durable.Get(ctx, storage.KeySession)
	if err != nil {
		t.Fatalf("read durable: %v", err)
	}
	if bytes.Contains(raw, []byte("secret-token")) {
		t.Fatal("durable payload stored in plaintext")
	}
	sess, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get sealed session: %v", err)
	}
	if sess.Token != "secret-token" {
		t.Fatalf("unsealed token mismatch: %q", sess.Token)
	}

	// The scoped tier never outlives the process, so it stays plain.
	if err := m.Set(ctx, "scoped-token", testUser(), false); err != nil {
		t.Fatalf("set scoped: %v", err)
	}
	raw, err = scoped.Get(ctx, storage.KeySession)
	if err != nil {
		t.Fatalf("read scoped: %v", err)
	}
	if !bytes.Contains(raw, []byte("scoped-token")) {
		t.Fatal("scoped payload unexpectedly sealed")
	}
}

func TestUndecryptablePayloadTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	cipher, err := security.NewTokenCipher([]byte("secret"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	m, durable, _ := newManagerForTest(t, WithCipher(cipher))

	if err := durable.Put(ctx, storage.KeySession, []byte("garbage that is long enough to pass the nonce check......")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := m.Get(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("undecryptable payload: got %v, want ErrNoSession", err)
	}
	if _, err := durable.Get(ctx, storage.KeySession); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("undecryptable record not removed: %v", err)
	}
}

// stallingStore holds the next armed Put open until released, exposing the
// window between a writer's read and its write.
type stallingStore struct {
	storage.Store
	mu      sync.Mutex
	armed   bool
	entered chan struct{}
	release chan struct{}
}

func newStallingStore() *stallingStore {
	return &stallingStore{
		Store:   storage.NewMemoryStore(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *stallingStore) arm() {
	s.mu.Lock()
	s.armed = true
	s.mu.Unlock()
}

func (s *stallingStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	stall := s.armed
	s.armed = false
	s.mu.Unlock()
	if stall {
		close(s.entered)
		<-s.release
	}
	return s.Store.Put(ctx, key, value)
}

func TestTouchCannotClobberConcurrentTokenWrite(t *testing.T) {
	ctx := context.Background()
	scoped := newStallingStore()
	m := NewManager(storage.NewMemoryStore(), scoped)

	if err := m.Set(ctx, "old-token", testUser(), false); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Stall the touch after it has read the old token, then land a token
	// write in that window. The touch must not put the old token back.
	scoped.arm()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		m.Touch(ctx)
	}()
	<-scoped.entered
	go func() {
		defer wg.Done()
		if err := m.SetToken(ctx, "refreshed-token"); err != nil {
			t.Errorf("set token: %v", err)
		}
	}()
	close(scoped.release)
	wg.Wait()

	sess, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Token != "refreshed-token" {
		t.Fatalf("token: got %q, want %q", sess.Token, "refreshed-token")
	}
}
