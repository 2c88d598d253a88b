package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cartsvc "github.com/jrbautista/tindahan-pos/internal/cart"
	"github.com/jrbautista/tindahan-pos/internal/catalog"
	checkoutsvc "github.com/jrbautista/tindahan-pos/internal/checkout"
	"github.com/jrbautista/tindahan-pos/internal/customers"
	"github.com/jrbautista/tindahan-pos/internal/transactions"
	pkgauth "github.com/jrbautista/tindahan-pos/pkg/auth"
	"github.com/jrbautista/tindahan-pos/pkg/config"
	"github.com/jrbautista/tindahan-pos/pkg/enums"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
	"github.com/jrbautista/tindahan-pos/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) Ensure(ctx context.Context, sessionID string) (string, error) {
	return "token-" + sessionID, nil
}

func (stubSessionManager) Verify(ctx context.Context, sessionID, presented string) error {
	return nil
}

func (stubSessionManager) Rotate(ctx context.Context, sessionID string) (string, error) {
	return "rotated", nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListProducts(ctx context.Context) ([]catalog.CategoryGroup, error) {
	return []catalog.CategoryGroup{}, nil
}

func (stubCatalogService) FindByBarcode(ctx context.Context, barcode string) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

type stubCustomersService struct{}

func (stubCustomersService) List(ctx context.Context) ([]customers.CustomerDTO, error) {
	return []customers.CustomerDTO{}, nil
}

func (stubCustomersService) Get(ctx context.Context, id int64) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{ID: id}, nil
}

type stubCartService struct{}

func (stubCartService) View(ctx context.Context, sessionID string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) Add(ctx context.Context, sessionID string, productID int64, quantity int) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) Adjust(ctx context.Context, sessionID string, index, quantity int) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) Remove(ctx context.Context, sessionID string, index int) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) Clear(ctx context.Context, sessionID string) error {
	return nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Execute(ctx context.Context, sessionID string, cashierID int64, input checkoutsvc.Input) (*checkoutsvc.Receipt, error) {
	return &checkoutsvc.Receipt{TransactionID: 1}, nil
}

type stubTransactionsService struct{}

func (stubTransactionsService) List(ctx context.Context, params pagination.Params, filters transactions.ListFilters) (*transactions.ListResult, error) {
	return &transactions.ListResult{Transactions: []transactions.TransactionDTO{}}, nil
}

func (stubTransactionsService) Get(ctx context.Context, id int64) (*transactions.TransactionDTO, error) {
	return &transactions.TransactionDTO{ID: id}, nil
}

func (stubTransactionsService) MarkCreditPaid(ctx context.Context, paymentID, collectedBy int64) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:       cfg,
		Logger:       logg,
		DBPinger:     stubPinger{},
		RedisPinger:  stubPinger{},
		Sessions:     stubSessionManager{},
		Catalog:      stubCatalogService{},
		Customers:    stubCustomersService{},
		Cart:         stubCartService{},
		Checkout:     stubCheckoutService{},
		Transactions: stubTransactionsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		CashierID: 7,
		Username:  "aling.nena",
		Role:      role,
		SessionID: "register-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestHealthReadyChecksDependencies(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}

func TestAPIGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/api/v1/products", "/api/v1/cart", "/api/v1/transactions"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token got %d", path, resp.Code)
		}
	}
}

func TestAPIGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCashier))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for products got %d", resp.Code)
	}
}

func TestSessionTokenReturnsToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/token", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCashier))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for session token got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "token-register-1") {
		t.Fatalf("expected session token in body got %s", resp.Body.String())
	}
}

func TestCartMutationRequiresReplayToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	// Reads pass without the header.
	read := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	read.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCashier))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, read)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart view got %d", resp.Code)
	}

	write := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":1}`))
	write.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCashier))
	write.Header.Set("Content-Type", "application/json")
	write.Header.Set("X-CSRF-Token", "anything")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, write)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guarded cart add got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreditMarkPaidRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	cashier := httptest.NewRequest(http.MethodPost, "/api/v1/credits/5/mark-paid", nil)
	cashier.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCashier))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, cashier)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cashier got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPost, "/api/v1/credits/5/mark-paid", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestCheckoutRouteAccepts(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"customer_type":"walkin","payment_method":"cash","amount_received":"100.00","token":"tok"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCashier))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for checkout got %d: %s", resp.Code, resp.Body.String())
	}
}
