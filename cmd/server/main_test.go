package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/config"
	"foodcourt-be/internal/gateway"
	"foodcourt-be/internal/order"
	"foodcourt-be/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	router := setupRouter(transport.Deps{
		Carts:      cart.NewRegistry(time.Hour),
		Orders:     order.NewService(gateway.NewMemory()),
		Tokens:     issuer,
		CORSOrigin: "http://localhost:3000",
	})

	t.Run("Health Check", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ok")
	})

	t.Run("Checkout requires a session", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/checkout", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Wires routes", func(t *testing.T) {
		cfg := &config.Config{
			AppPort:        "8080",
			AppEnv:         "test",
			JWTSecret:      "dummy_secret",
			GatewayTimeout: time.Second,
			CartIdleTTL:    time.Hour,
		}

		router, err := newServer(ctx, cfg, db)
		require.NoError(t, err)
		assert.NotNil(t, router)

		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		_, err := newServer(ctx, &config.Config{AppEnv: "test"}, db)
		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	var gotAddr string
	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	startServerFunc = func(ctx context.Context, addr string, handler http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("JWT_SECRET", "secret")

	assert.NoError(t, run())
	assert.Equal(t, ":8080", gotAddr)
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- startServer(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
