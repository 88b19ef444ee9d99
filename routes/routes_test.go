package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"launchboost-backend/middleware"
	"launchboost-backend/payments"
	"launchboost-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubCheckout struct{}

func (stubCheckout) CreateCheckoutSession(params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	return &payments.CheckoutSession{ID: "cs_test_stub", URL: "https://checkout.test/stub"}, nil
}

func (stubCheckout) ParseWebhookEvent(payload []byte, signature string) (*payments.WebhookEvent, error) {
	return &payments.WebhookEvent{Type: "checkout.session.completed"}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"name" TEXT, "role" TEXT DEFAULT 'founder',
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "deals" (
			"id" TEXT PRIMARY KEY, "founder_id" TEXT NOT NULL, "product_name" TEXT NOT NULL,
			"product_website" TEXT NOT NULL, "product_logo_url" TEXT, "title" TEXT NOT NULL,
			"slug" TEXT NOT NULL UNIQUE, "description" TEXT, "short_description" TEXT,
			"category" TEXT NOT NULL, "original_price" INTEGER NOT NULL, "deal_price" INTEGER NOT NULL,
			"discount_percentage" INTEGER NOT NULL, "total_codes" INTEGER NOT NULL,
			"codes_claimed" INTEGER DEFAULT 0, "expires_at" DATETIME NOT NULL, "tags" TEXT,
			"pricing_tier" TEXT DEFAULT 'free', "status" TEXT DEFAULT 'pending_review',
			"is_featured" INTEGER DEFAULT 0, "featured_until" DATETIME,
			"deal_type" TEXT DEFAULT 'discount', "code_type" TEXT, "redemption_instructions" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "deal_codes" (
			"id" TEXT PRIMARY KEY, "deal_id" TEXT NOT NULL, "code" TEXT NOT NULL,
			"is_universal" INTEGER DEFAULT 0, "is_claimed" INTEGER DEFAULT 0,
			"claimed_by" TEXT, "claimed_at" DATETIME,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "payments" (
			"id" TEXT PRIMARY KEY, "user_id" TEXT NOT NULL, "stripe_session_id" TEXT UNIQUE,
			"amount" INTEGER NOT NULL, "currency" TEXT DEFAULT 'usd', "status" TEXT DEFAULT 'pending',
			"payment_type" TEXT DEFAULT 'listing_fee', "listing_tier" TEXT NOT NULL,
			"used_for_deal_id" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func setupTestRouter(t *testing.T) *gin.Engine {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, db, middleware.NewMemorySubmissionLimiter(), stubCheckout{})
	return r
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestUnknownRoute404(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/nonexistent", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPublicDealsAccessible(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/deals", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	protected := []struct {
		method, path string
	}{
		{"POST", "/api/deals"},
		{"GET", "/api/my/deals"},
		{"GET", "/api/auth/profile"},
		{"POST", "/api/payments/checkout"},
		{"GET", "/api/my/payments"},
	}

	for _, route := range protected {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, w.Code)
		}
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router := setupTestRouter(t)

	token, _ := utils.GenerateToken(uuid.New(), "founder@test.com", "founder")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}
