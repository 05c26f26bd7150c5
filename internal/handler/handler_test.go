package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JeansCordoba/Fruteria/internal/service"
	"github.com/JeansCordoba/Fruteria/pkg/config"
	"github.com/JeansCordoba/Fruteria/pkg/database"
	"github.com/JeansCordoba/Fruteria/pkg/jwtutil"
	"github.com/JeansCordoba/Fruteria/prometheus"
)

func TestMain(m *testing.M) {
	// Metric vectors and the JWT signer are package globals initialized at
	// startup; tests need them initialized exactly once too.
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "fruteria_test"},
	})
	jwtutil.Initialize(&config.JWTConfig{
		SigningKey:     "test-signing-key",
		ExpirationTime: time.Hour,
	})
	os.Exit(m.Run())
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// request runs one handler against an in-memory request and returns the
// recorder plus the decoded JSON body.
func request(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params))
		values := make([]string, 0, len(params))
		for k, v := range params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not a JSON object: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestCategoryCreateEndpoint(t *testing.T) {
	db := newTestDB(t)
	h := NewCategoryHandler(service.NewCategoryService(db))

	rec, body := request(t, h.Create, http.MethodPost, "/api/categories", `{"name":"Frutas"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if body["name"] != "Frutas" {
		t.Fatalf("name = %v, want Frutas", body["name"])
	}
	if body["id"] == nil {
		t.Fatal("response must carry the generated id")
	}

	rec, body = request(t, h.Create, http.MethodPost, "/api/categories", `{"name":"Frutas"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}
	if got, want := body["error"], "Category already exists: Frutas"; got != want {
		t.Fatalf("error = %v, want %q", got, want)
	}
}

func TestCategoryGetBadID(t *testing.T) {
	db := newTestDB(t)
	h := NewCategoryHandler(service.NewCategoryService(db))

	rec, body := request(t, h.Get, http.MethodGet, "/api/categories/abc", "", map[string]string{"id": "abc"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got, want := body["error"], "Category ID must be an integer"; got != want {
		t.Fatalf("error = %v, want %q", got, want)
	}
}

func TestProductCreateEndpointValidation(t *testing.T) {
	db := newTestDB(t)
	categories := service.NewCategoryService(db)
	suppliers := service.NewSupplierService(db)
	h := NewProductHandler(service.NewProductService(db, categories, suppliers))

	rec, body := request(t, h.Create, http.MethodPost, "/api/products", `{"name":"Manzana"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status = %d, want 400", rec.Code)
	}
	if got, want := body["error"], "All fields are required"; got != want {
		t.Fatalf("error = %v, want %q", got, want)
	}

	if _, err := categories.Create("Frutas"); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	rec, body = request(t, h.Create, http.MethodPost, "/api/products",
		`{"name":"Manzana","price":-2.50,"category_id":1,"stock":10}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative price status = %d, want 400", rec.Code)
	}
	if got, want := body["error"], "Price must be a positive number"; got != want {
		t.Fatalf("error = %v, want %q", got, want)
	}

	rec, body = request(t, h.Create, http.MethodPost, "/api/products",
		`{"name":"Manzana","price":2.50,"category_id":1,"stock":10}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", rec.Code, body)
	}
}

func TestClientSearchEndpoint(t *testing.T) {
	db := newTestDB(t)
	clients := service.NewClientService(db)
	h := NewClientHandler(clients)

	rec, body := request(t, h.Search, http.MethodGet, "/api/clients/search", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing query status = %d, want 400", rec.Code)
	}
	if got, want := body["error"], "Identity card is required"; got != want {
		t.Fatalf("error = %v, want %q", got, want)
	}

	if _, err := clients.Create("Carlos", "Perez", "12345678", "3001234567", nil, nil); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	rec, body = request(t, h.Search, http.MethodGet, "/api/clients/search?identity_card=12345678", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %v", rec.Code, body)
	}
	if body["identity_card"] != "12345678" {
		t.Fatalf("identity_card = %v, want 12345678", body["identity_card"])
	}
}

func TestLoginEndpoint(t *testing.T) {
	db := newTestDB(t)
	roles := service.NewRoleService(db)
	users := service.NewUserService(db, roles)
	h := NewAuthHandler(users)

	role, err := roles.Create("admin", nil)
	if err != nil {
		t.Fatalf("seed role: %v", err)
	}
	if _, err := users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", role.ID); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec, body := request(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"username":"ana.lopez","password":"secret"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %v", rec.Code, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("response must carry a token")
	}
	claims, err := jwtutil.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username != "ana.lopez" {
		t.Fatalf("claims.Username = %q, want ana.lopez", claims.Username)
	}

	rec, _ = request(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"username":"ana.lopez","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", rec.Code)
	}
}

func TestSaleEndpoints(t *testing.T) {
	db := newTestDB(t)
	categories := service.NewCategoryService(db)
	suppliers := service.NewSupplierService(db)
	products := service.NewProductService(db, categories, suppliers)
	clients := service.NewClientService(db)
	roles := service.NewRoleService(db)
	users := service.NewUserService(db, roles)
	payments := service.NewPaymentService(db)
	h := NewSaleHandler(service.NewSaleService(db))

	category, err := categories.Create("Frutas")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := products.Create("Manzana", mustDecimal(t, "2.50"), category.ID, 10, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := clients.Create("Carlos", "Perez", "12345678", "3001234567", nil, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	role, err := roles.Create("seller", nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", role.ID); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := payments.Create("Efectivo", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, body := request(t, h.Create, http.MethodPost, "/api/sales",
		`{"client_id":1,"user_id":1,"payment_id":1,"items":[{"product_id":1,"quantity":4}]}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", rec.Code, body)
	}
	if total, ok := body["total"].(float64); !ok || total != 10.00 {
		t.Fatalf("total = %v, want 10", body["total"])
	}

	rec, body = request(t, h.Cancel, http.MethodPost, "/api/sales/1/cancel", "", map[string]string{"id": "1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d, want 200: %v", rec.Code, body)
	}
	if body["status"] != "cancelled" {
		t.Fatalf("status = %v, want cancelled", body["status"])
	}

	rec, _ = request(t, h.Cancel, http.MethodPost, "/api/sales/1/cancel", "", map[string]string{"id": "1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("double cancel status = %d, want 409", rec.Code)
	}
}
