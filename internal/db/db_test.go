package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"os/exec"
	"testing"

	"foodcourt-be/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBUser:     "orders",
		DBPassword: "secret",
		DBName:     "foodcourt",
		DBPort:     "5433",
	}

	assert.Equal(t,
		"host=db.internal user=orders password=secret dbname=foodcourt port=5433 sslmode=disable",
		DSN(cfg),
	)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "not_a_driver")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

func TestNewDatabase_PingFailure(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "ping_fails")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestNewDatabase_Success(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{DBHost: "localhost"}, "ping_ok")

	assert.NoError(t, err)
	assert.NotNil(t, db)
	db.Close()
}

func TestInitDB_Failure(t *testing.T) {
	// InitDB exits the process, so it runs in a child test binary.
	if os.Getenv("DB_CRASHER") == "1" {
		InitDB(&config.Config{DBHost: "invalid_host", DBPort: "1"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_Failure")
	cmd.Env = append(os.Environ(), "DB_CRASHER=1")
	err := cmd.Run()

	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want exit status 1", err)
}

// --- fake drivers ---

type fakeDriver struct{ pingErr error }

func (d *fakeDriver) Open(name string) (driver.Conn, error) {
	return &fakeConn{pingErr: d.pingErr}, nil
}

type fakeConn struct{ pingErr error }

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *fakeConn) Close() error                              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

// Ping implements driver.Pinger.
func (c *fakeConn) Ping(ctx context.Context) error { return c.pingErr }

func init() {
	sql.Register("ping_ok", &fakeDriver{})
	sql.Register("ping_fails", &fakeDriver{pingErr: errors.New("connection refused")})
}
