package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"foodcourt-be/internal/config"
	"foodcourt-be/internal/db"
	"foodcourt-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedded embed.FS

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		dsn = db.DSN(cfg)
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer conn.Close()

	var migrations fs.FS
	if *dir != "" {
		migrations = os.DirFS(*dir)
	} else {
		migrations, _ = fs.Sub(embedded, "migrations")
	}

	if err := run(context.Background(), conn, *mode, migrations); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func run(ctx context.Context, conn *sql.DB, mode string, migrations fs.FS) error {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return runMigrationsUp(ctx, conn, migrations, files)
	case "down":
		return runMigrationsDown(ctx, conn, migrations, files)
	case "status":
		return printStatus(ctx, conn, files)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'status')", mode)
	}
}

func runMigrationsUp(ctx context.Context, conn *sql.DB, migrations fs.FS, files []string) error {
	log := logger.L().With(zap.String("mode", "up"))
	applied := 0

	for _, file := range files {
		version := path.Base(file)

		var exists bool
		err := conn.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := fs.ReadFile(migrations, file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		log.Info("applying migration", zap.String("version", version))
		err = inTx(ctx, conn, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, extractMigrationPart(string(content), "Up")); err != nil {
				return fmt.Errorf("migration failed (%s): %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return fmt.Errorf("failed to record migration version: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		applied++
	}

	log.Info("migrations up to date", zap.Int("applied", applied))
	return nil
}

// runMigrationsDown rolls back the most recently applied migration only.
func runMigrationsDown(ctx context.Context, conn *sql.DB, migrations fs.FS, files []string) error {
	log := logger.L().With(zap.String("mode", "down"))

	var lastVersion string
	err := conn.QueryRowContext(ctx,
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`,
	).Scan(&lastVersion)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	file := ""
	for _, f := range files {
		if path.Base(f) == lastVersion {
			file = f
			break
		}
	}
	if file == "" {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := fs.ReadFile(migrations, file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	log.Info("rolling back migration", zap.String("version", lastVersion))
	return inTx(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, extractMigrationPart(string(content), "Down")); err != nil {
			return fmt.Errorf("rollback failed (%s): %w", lastVersion, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
}

func printStatus(ctx context.Context, conn *sql.DB, files []string) error {
	rows, err := conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return err
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, f := range files {
		version := path.Base(f)
		state := "pending"
		if applied[version] {
			state = "applied"
		}
		logger.L().Info("migration", zap.String("version", version), zap.String("state", state))
	}
	return nil
}

func inTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func extractMigrationPart(content string, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "-- +migrate "+section) {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(line, "-- +migrate") {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
