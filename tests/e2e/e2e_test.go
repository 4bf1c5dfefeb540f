//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full order lifecycle (create → confirm → process → ship → deliver)
//   - Invalid transition rejected with 409, force override accepted
//   - Cancelling an order restores committed stock
//   - Manual stock adjustments append ledger rows; oversell rejected
//   - Public catalog lookup served without auth and cached in Redis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gemstore/internal/config"
	"gemstore/internal/infra"
	"gemstore/internal/router"
	"gemstore/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("gemstore_test"),
		tcPostgres.WithUsername("gemstore"),
		tcPostgres.WithPassword("gemstore"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		StoreName:          "Gemstore Test",
		InvoicePath:        t.TempDir(),
		CatalogCacheTTL:    300,
	}

	// NewDatabase runs migrations against the container database.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user. Hash is bcrypt("password").
	require.NoError(t, db.Exec(`INSERT INTO users (id, username, name, password_hash, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin', 'Admin E2E',
		        '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy', 'admin', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`).Error)

	mailBreaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, mailBreaker, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "password"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createProduct(t *testing.T, env *testEnv, sku string, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"sku":            sku,
			"name":           "Silver Pendant " + sku,
			"cost_price":     35.0,
			"sale_price":     89.0,
			"stock_quantity": stock,
			"low_stock_at":   2,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func createOrder(t *testing.T, env *testEnv, productID string, qty int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{
			"customer_name": "Grace Hopper",
			"items": []map[string]any{
				{"product_id": productID, "quantity": qty},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &order)
	return order.ID
}

func setStatus(t *testing.T, env *testEnv, orderID, status string) *http.Response {
	t.Helper()
	return do(t, env.server, "PUT", "/v1/orders/"+orderID,
		jsonBody(t, map[string]any{"status": status}), env.token)
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullOrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	productID := createProduct(t, env, "PEND-001", 10)
	orderID := createOrder(t, env, productID, 2)

	for _, status := range []string{"CONFIRMED", "PROCESSING", "SHIPPED", "DELIVERED"} {
		resp := setStatus(t, env, orderID, status)
		require.Equal(t, http.StatusOK, resp.StatusCode, "transition to %s", status)
		var body struct {
			Status string `json:"status"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, status, body.Status)
	}

	// Audit trail: one event per transition.
	getResp := do(t, env.server, "GET", "/v1/orders/"+orderID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var order struct {
		Events []struct {
			FromStatus string `json:"from_status"`
			ToStatus   string `json:"to_status"`
			Forced     bool   `json:"forced"`
		} `json:"events"`
	}
	decodeJSON(t, getResp, &order)
	require.Len(t, order.Events, 4)
	assert.Equal(t, "PENDING", order.Events[0].FromStatus)
	assert.Equal(t, "DELIVERED", order.Events[3].ToStatus)
}

func TestE2E_InvalidTransitionAndForce(t *testing.T) {
	env := setupTestEnv(t)
	productID := createProduct(t, env, "PEND-002", 10)
	orderID := createOrder(t, env, productID, 1)

	// PENDING → SHIPPED skips two stages.
	resp := setStatus(t, env, orderID, "SHIPPED")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Same move with force succeeds and is flagged in the audit trail.
	forceResp := do(t, env.server, "PUT", "/v1/orders/"+orderID,
		jsonBody(t, map[string]any{"status": "SHIPPED", "force": true}), env.token)
	require.Equal(t, http.StatusOK, forceResp.StatusCode)
	var body struct {
		Status string `json:"status"`
		Events []struct {
			Forced bool `json:"forced"`
		} `json:"events"`
	}
	decodeJSON(t, forceResp, &body)
	assert.Equal(t, "SHIPPED", body.Status)
}

func TestE2E_CancelRestoresStock(t *testing.T) {
	env := setupTestEnv(t)
	productID := createProduct(t, env, "PEND-003", 10)
	orderID := createOrder(t, env, productID, 4)

	// Stock committed at creation.
	prodResp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	var prod struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decodeJSON(t, prodResp, &prod)
	require.Equal(t, 6, prod.StockQuantity)

	resp := setStatus(t, env, orderID, "CANCELLED")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	prodResp = do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 10, prod.StockQuantity)

	// Ledger shows the OUT at creation and the RETURN from cancellation.
	movResp := do(t, env.server, "GET", "/v1/inventory/movements?product_id="+productID, nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movements struct {
		Items []struct {
			Type          string `json:"type"`
			Quantity      int    `json:"quantity"`
			PreviousStock int    `json:"previous_stock"`
			NewStock      int    `json:"new_stock"`
		} `json:"items"`
	}
	decodeJSON(t, movResp, &movements)
	require.Len(t, movements.Items, 2)
	for _, m := range movements.Items {
		assert.Equal(t, m.PreviousStock+m.Quantity, m.NewStock)
	}
}

func TestE2E_StockAdjustmentLedger(t *testing.T) {
	env := setupTestEnv(t)
	productID := createProduct(t, env, "PEND-004", 5)

	adjResp := do(t, env.server, "POST", "/v1/stock-movements",
		jsonBody(t, map[string]any{
			"product_id": productID,
			"type":       "IN",
			"quantity":   10,
			"reason":     "restock shipment",
		}), env.token)
	require.Equal(t, http.StatusCreated, adjResp.StatusCode)
	var adj struct {
		StockQuantity int `json:"stock_quantity"`
		Movement      struct {
			PreviousStock int `json:"previous_stock"`
			NewStock      int `json:"new_stock"`
		} `json:"movement"`
	}
	decodeJSON(t, adjResp, &adj)
	assert.Equal(t, 15, adj.StockQuantity)
	assert.Equal(t, 5, adj.Movement.PreviousStock)

	// Oversell rejected with 409, quantity unchanged.
	overResp := do(t, env.server, "POST", "/v1/stock-movements",
		jsonBody(t, map[string]any{
			"product_id": productID,
			"type":       "OUT",
			"quantity":   100,
			"reason":     "oversell attempt",
		}), env.token)
	assert.Equal(t, http.StatusConflict, overResp.StatusCode)
	overResp.Body.Close()

	prodResp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	var prod struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 15, prod.StockQuantity)
}

func TestE2E_PublicCatalogLookup(t *testing.T) {
	env := setupTestEnv(t)
	createProduct(t, env, "PEND-005", 3)

	// No auth header: storefront endpoint is public.
	for i := 0; i < 2; i++ { // second hit served from cache
		resp := do(t, env.server, "GET", "/v1/catalog/PEND-005", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, "attempt %d", i)
		var entry struct {
			SKU     string `json:"sku"`
			InStock bool   `json:"in_stock"`
		}
		decodeJSON(t, resp, &entry)
		assert.Equal(t, "PEND-005", entry.SKU)
		assert.True(t, entry.InStock)
	}

	missResp := do(t, env.server, "GET", "/v1/catalog/NOPE-000", nil, "")
	assert.Equal(t, http.StatusNotFound, missResp.StatusCode)
	missResp.Body.Close()
}

func TestE2E_InvoiceDownload(t *testing.T) {
	env := setupTestEnv(t)
	productID := createProduct(t, env, "PEND-006", 5)
	orderID := createOrder(t, env, productID, 1)

	resp := do(t, env.server, "GET", fmt.Sprintf("/v1/orders/%s/invoice", orderID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}
