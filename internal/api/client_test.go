package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/session"
	"github.com/agromarket/agromarket-go/internal/storage"
	"github.com/agromarket/agromarket-go/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type clientFixture struct {
	client    *Client
	sessions  *session.Manager
	durable   *storage.MemoryStore
	scoped    *storage.MemoryStore
	redirects int
}

func newClientForTest(t *testing.T, handler http.Handler) *clientFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	f := &clientFixture{
		durable: storage.NewMemoryStore(),
		scoped:  storage.NewMemoryStore(),
	}
	f.sessions = session.NewManager(f.durable, f.scoped)
	pipe := transport.NewPipeline(server.URL, f.sessions, 0, 0, nil)
	f.client = NewClient(pipe, server.URL, nil, func() { f.redirects++ })
	return f
}

func mintToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestLoginPersistsSessionInSelectedTier(t *testing.T) {
	token := mintToken(t, time.Hour)
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"success":true,"token":%q,"user":{"id":"u1","name":"Asha","userType":"farmer"}}`, token)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()

	user, err := f.client.Login(ctx, LoginInput{Email: "a@example.com", Password: "pw", RememberMe: true})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.UserType != domain.RoleFarmer {
		t.Fatalf("user: %+v", user)
	}
	if _, err := f.durable.Get(ctx, storage.KeySession); err != nil {
		t.Fatalf("rememberMe login must land in the durable tier: %v", err)
	}
	if _, err := f.scoped.Get(ctx, storage.KeySession); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("scoped tier should stay empty: %v", err)
	}

	sess, err := f.sessions.Get(ctx)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.Token != token || !sess.RememberMe {
		t.Fatalf("stored session: %+v", sess)
	}
}

func TestLoginValidatesInput(t *testing.T) {
	f := newClientForTest(t, chi.NewRouter())
	_, err := f.client.Login(context.Background(), LoginInput{Email: "a@example.com"})
	if transport.KindOf(err) != transport.KindInput {
		t.Fatalf("got %v, want input error", err)
	}
}

func TestLoginWithoutTokenFails(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})
	f := newClientForTest(t, r)
	if _, err := f.client.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "pw"}); err == nil {
		t.Fatal("login without a token in the response must fail")
	}
	if _, err := f.sessions.Get(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatal("no session may be stored on a failed login")
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newClientForTest(t, chi.NewRouter())
	err := f.client.Register(context.Background(), RegisterInput{
		Name: "x", Email: "x@example.com", Password: "pw", UserType: domain.RoleAdmin,
	})
	if transport.KindOf(err) != transport.KindInput {
		t.Fatalf("got %v, want input error", err)
	}
}

func TestUnauthorizedTearsDownExactlyOnce(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusUnauthorized)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()
	if err := f.sessions.Set(ctx, mintToken(t, time.Hour), domain.UserData{ID: "u1", UserType: domain.RoleFarmer}, true); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	// A burst of rejected calls tears the session down once.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.client.Products(ctx)
			if !transport.IsAuthError(err) {
				t.Errorf("got %v, want auth error", err)
			}
		}()
	}
	wg.Wait()

	if f.redirects != 1 {
		t.Fatalf("redirects: got %d, want 1", f.redirects)
	}
	if _, err := f.sessions.Get(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("session survived forced logout: %v", err)
	}
}

func TestLoginReArmsLogoutGuard(t *testing.T) {
	token := mintToken(t, time.Hour)
	var unauthorized bool
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"success":true,"token":%q,"user":{"id":"u1","userType":"farmer"}}`, token)
	})
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		if unauthorized {
			http.Error(w, `{"success":false}`, http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":[]}`)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()

	login := func() {
		if _, err := f.client.Login(ctx, LoginInput{Email: "a@example.com", Password: "pw"}); err != nil {
			t.Fatalf("login: %v", err)
		}
	}

	login()
	unauthorized = true
	if _, err := f.client.Products(ctx); !transport.IsAuthError(err) {
		t.Fatalf("got %v, want auth error", err)
	}
	if f.redirects != 1 {
		t.Fatalf("redirects after first teardown: %d", f.redirects)
	}

	// Sign in again; a later 401 must be able to tear down again.
	unauthorized = false
	login()
	unauthorized = true
	if _, err := f.client.Products(ctx); !transport.IsAuthError(err) {
		t.Fatalf("got %v, want auth error", err)
	}
	if f.redirects != 2 {
		t.Fatalf("redirects after second teardown: %d", f.redirects)
	}
}

func TestLogoutNotifiesServerAndClearsSession(t *testing.T) {
	var serverLogouts int
	r := chi.NewRouter()
	r.Post("/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		serverLogouts++
		fmt.Fprint(w, `{"success":true}`)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()
	if err := f.sessions.Set(ctx, mintToken(t, time.Hour), domain.UserData{ID: "u1", UserType: domain.RoleFarmer}, false); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	f.client.Logout(ctx)

	if serverLogouts != 1 {
		t.Fatalf("server logout calls: got %d, want 1", serverLogouts)
	}
	if _, err := f.sessions.Get(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("session survived logout: %v", err)
	}
	if f.redirects != 1 {
		t.Fatalf("redirects: got %d, want 1", f.redirects)
	}
}

func TestLogoutWhileSignedOutSkipsServerCall(t *testing.T) {
	var serverLogouts int
	r := chi.NewRouter()
	r.Post("/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		serverLogouts++
		fmt.Fprint(w, `{"success":true}`)
	})
	f := newClientForTest(t, r)

	f.client.Logout(context.Background())

	if serverLogouts != 0 {
		t.Fatal("logout without a session must not call the server")
	}
	if f.redirects != 1 {
		t.Fatalf("redirects: got %d, want 1", f.redirects)
	}
}

func TestSuccessFalseBecomesServerError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"listing unavailable"}`)
	})
	f := newClientForTest(t, r)
	seedSession(t, f)

	_, err := f.client.Products(context.Background())
	if transport.KindOf(err) != transport.KindServer {
		t.Fatalf("got %v, want server error", err)
	}
	if err.Error() != "listing unavailable" {
		t.Fatalf("message: got %q", err.Error())
	}
}

func TestProductsDecodesList(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":[{"_id":"p1","name":"Seed","price":4.5}]}`)
	})
	f := newClientForTest(t, r)
	seedSession(t, f)

	products, err := f.client.Products(context.Background())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" || products[0].Price != 4.5 {
		t.Fatalf("decoded products: %+v", products)
	}
}

func TestImageURL(t *testing.T) {
	f := newClientForTest(t, chi.NewRouter())
	f.client.uploadsURL = "https://cdn.agromarket.example"

	cases := map[string]string{
		"":                          "",
		"/uploads/p1.jpg":           "https://cdn.agromarket.example/uploads/p1.jpg",
		"https://other.example/x":   "https://other.example/x",
		"http://legacy.example/y.j": "http://legacy.example/y.j",
	}
	for in, want := range cases {
		if got := f.client.ImageURL(in); got != want {
			t.Fatalf("ImageURL(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestEndpointsResolvedByRole(t *testing.T) {
	var gotPath string
	r := chi.NewRouter()
	r.Get("/experts/profile", func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		fmt.Fprint(w, `{"success":true,"data":{"id":"u1","userType":"expert"}}`)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()
	if err := f.sessions.Set(ctx, mintToken(t, time.Hour), domain.UserData{ID: "u1", UserType: domain.RoleExpert}, false); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if _, err := f.client.Profile(ctx); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if gotPath != "/experts/profile" {
		t.Fatalf("expert profile path: got %q", gotPath)
	}
}

func TestUnreadCountAndWatch(t *testing.T) {
	var mu sync.Mutex
	count := 2
	r := chi.NewRouter()
	r.Get("/notifications/unread-count", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, `{"success":true,"data":{"count":%d}}`, count)
	})
	f := newClientForTest(t, r)
	seedSession(t, f)
	ctx := context.Background()

	got, err := f.client.UnreadNotificationsCount(ctx)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if got != 2 {
		t.Fatalf("count: got %d, want 2", got)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	counts := make(chan int, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.client.WatchUnreadCount(watchCtx, 10*time.Millisecond, func(n int) { counts <- n })
	}()

	if first := <-counts; first != 2 {
		t.Fatalf("first delivery: got %d, want 2", first)
	}
	mu.Lock()
	count = 5
	mu.Unlock()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case n := <-counts:
			if n == 5 {
				cancel()
				<-done
				return
			}
		case <-deadline:
			cancel()
			t.Fatal("updated count never delivered")
		}
	}
}

func TestAdminLoginStoresAdminSession(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/admin/login", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"success":true,"token":"admin-tok"}`)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()

	if err := f.client.AdminLogin(ctx, "root", "pw"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	rec, err := f.sessions.GetAdmin(ctx)
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if rec.Token != "admin-tok" || rec.AdminName != "root" {
		t.Fatalf("admin record: %+v", rec)
	}
	// The admin login must not create a user session.
	if _, err := f.sessions.Get(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("admin login leaked into the user namespace: %v", err)
	}
}

func seedSession(t *testing.T, f *clientFixture) {
	t.Helper()
	err := f.sessions.Set(context.Background(), mintToken(t, time.Hour),
		domain.UserData{ID: "u1", UserType: domain.RoleFarmer}, false)
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestExplicitLogoutAfterForcedTeardownStillRedirects(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusUnauthorized)
	})
	f := newClientForTest(t, r)
	ctx := context.Background()
	seedSession(t, f)

	if _, err := f.client.Products(ctx); !transport.IsAuthError(err) {
		t.Fatalf("got %v, want auth error", err)
	}
	if f.redirects != 1 {
		t.Fatalf("redirects after forced teardown: %d", f.redirects)
	}

	// The user asking to sign out is not part of the 401 burst; the
	// redirect fires again even though the session is already gone.
	f.client.Logout(ctx)
	if f.redirects != 2 {
		t.Fatalf("redirects after explicit logout: got %d, want 2", f.redirects)
	}
}
