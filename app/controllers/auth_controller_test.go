package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/controllers"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/routes"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/services"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/board"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/auth"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/router"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/storage"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/workerpool"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ws"
)

// nullDisk swallows receipt archives during controller tests.
type nullDisk struct{ storage.Disk }

func (nullDisk) Put(string, []byte) error { return nil }

type harness struct {
	db      *gorm.DB
	handler http.Handler
	board   *board.Board
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM order_items")
		db.Exec("DELETE FROM orders")
		db.Exec("DELETE FROM products")
		db.Exec("DELETE FROM users")
	})

	storage.RegisterDisk("testnull", nullDisk{})

	orderRepo := repositories.NewOrderRepository(db)
	b := board.New(orderRepo, board.NewFeed())
	require.NoError(t, b.Load())

	pool := workerpool.New(1)
	t.Cleanup(pool.Shutdown)

	authService := services.NewAuthService(repositories.NewUserRepository(db))
	productRepo := repositories.NewProductRepository(db)
	orderService := services.NewOrderService(orderRepo, productRepo, b, pool, "Chapa Quente")

	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Orders:   controllers.NewOrderController(orderService, b),
		Products: controllers.NewProductController(productRepo),
		Feed:     controllers.NewFeedController(hub, b),
	})

	return &harness{db: db, handler: r.Handler(), board: b}
}

func (h *harness) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) register(t *testing.T, name, phone string) string {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"`+name+`","phone":"`+phone+`"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func TestRegisterThenLogin(t *testing.T) {
	h := newHarness(t)
	h.register(t, "Maria Silva", "11999990000")

	rec := h.do(t, http.MethodPost, "/api/auth/login",
		`{"name":"MARIA SILVA","phone":"11999990000"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestLoginUnknownPhone(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/auth/login",
		`{"name":"Maria Silva","phone":"11999990000"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Usuário não encontrado")
}

func TestLoginNameMismatch(t *testing.T) {
	h := newHarness(t)
	h.register(t, "Maria Silva", "11999990000")

	rec := h.do(t, http.MethodPost, "/api/auth/login",
		`{"name":"Joana Lima","phone":"11999990000"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nome incorreto")
}

func TestRegisterConflict(t *testing.T) {
	h := newHarness(t)
	h.register(t, "Maria Silva", "11999990000")

	rec := h.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Outra Pessoa","phone":"11999990000"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "já está cadastrado")
}

func TestRecoverDisclosesName(t *testing.T) {
	h := newHarness(t)
	h.register(t, "Maria Silva", "11999990000")

	rec := h.do(t, http.MethodPost, "/api/auth/recover", `{"phone":"11999990000"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria Silva")
}

func TestRegisterValidatesPhone(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Maria Silva","phone":"123"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/admin/orders", "", map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminBoardFlow(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Maria Silva", "11999990000")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// Sanity: the token round-trips.
	_, err := auth.ValidateToken(token)
	require.NoError(t, err)

	// Seed a product and take an order through the public channel.
	product := models.Product{Name: "X-Bacon", Price: 24, Available: true}
	require.NoError(t, h.db.Create(&product).Error)

	rec := h.do(t, http.MethodPost, "/api/orders",
		`{"customer_name":"João Pereira","phone":"11988887777","delivery_type":"pickup",
		  "items":[{"product_id":"`+product.ID+`","quantity":2}]}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	orderID := created.Data.ID
	require.NotEmpty(t, orderID)

	// The insert event is applied by the reducer; drive it directly here.
	runCtx, cancelRun := context.WithCancel(context.Background())
	t.Cleanup(cancelRun)
	go h.board.Run(runCtx)
	require.Eventually(t, func() bool {
		_, ok := h.board.Get(orderID)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	// Board listing.
	rec = h.do(t, http.MethodGet, "/api/admin/orders?search=joão", "", authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), orderID)

	// Status transition.
	rec = h.do(t, http.MethodPatch, "/api/admin/orders/"+orderID+"/status",
		`{"status":"preparing"}`, authHeader)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.Order
	require.NoError(t, h.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, models.StatusPreparing, stored.Status)

	// Accept returns the print document.
	rec = h.do(t, http.MethodPost, "/api/admin/orders/"+orderID+"/accept", "", authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "2x X-Bacon")
	assert.Contains(t, rec.Body.String(), "TOTAL: R$ 48.00")

	// Delete removes the row.
	rec = h.do(t, http.MethodDelete, "/api/admin/orders/"+orderID, "", authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, h.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
