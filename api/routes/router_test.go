package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/config"
	"github.com/agrisetu/agrisetu-backend/pkg/db/models"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubWalletService struct{}

func (stubWalletService) Balance(ctx context.Context, userID uuid.UUID) (*wallet.BalanceView, error) {
	return &wallet.BalanceView{UserID: userID, Balance: decimal.Zero}, nil
}

func (stubWalletService) ListTransactions(ctx context.Context, userID uuid.UUID, params wallet.ListParams) (*wallet.TransactionPage, error) {
	return &wallet.TransactionPage{}, nil
}

func (stubWalletService) Credit(ctx context.Context, input wallet.EntryInput) (*models.WalletTransaction, error) {
	return nil, nil
}

func (stubWalletService) Debit(ctx context.Context, input wallet.EntryInput) (*models.WalletTransaction, error) {
	return nil, nil
}

func (stubWalletService) CreditTx(ctx context.Context, tx *gorm.DB, input wallet.EntryInput) (*models.WalletTransaction, error) {
	return nil, nil
}

func (stubWalletService) DebitTx(ctx context.Context, tx *gorm.DB, input wallet.EntryInput) (*models.WalletTransaction, error) {
	return nil, nil
}

func (stubWalletService) AdminAdjust(ctx context.Context, input wallet.AdjustInput) (*models.WalletTransaction, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		// Zero limits keep the rate limiter disabled in routing tests.
		RateLimit: config.RateLimitConfig{},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:    testConfig(),
		Logger:    logg,
		DB:        stubPinger{},
		WalletSvc: stubWalletService{},
	})
}

func TestHealthLiveSetsEnvHeader(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-AgriSetu-Env"); got != "test" {
		t.Fatalf("expected env header 'test' got %q", got)
	}
}

func TestPublicPing(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivatePing(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCheckoutRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter()
	body := `{"buyer_id":"` + uuid.NewString() + `","payment_method":"wallet","items":[{"product_id":"` + uuid.NewString() + `","qty":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
}

func TestSettlementTransitionRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter()
	body := `{"entity_type":"order","entity_id":"` + uuid.NewString() + `","requested_status":"completed","actor_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlements/transition", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
}

func TestWalletBalanceRoute(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+uuid.NewString()+"/balance", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestWalletBalanceRejectsBadUUID(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/not-a-uuid/balance", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
