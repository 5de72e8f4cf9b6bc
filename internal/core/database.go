// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/internhub/internal/config"
	"github.com/carterperez-dev/internhub/internal/migrations"
)

const (
	pgUniqueViolation = "23505"
	pingTimeout       = 5 * time.Second
)

// Database is the primary PostgreSQL pool.
type Database struct {
	DB *sqlx.DB
}

func NewDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (*Database, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(jitteredDuration(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := pingWithin(ctx, "database", db.PingContext); err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return &Database{DB: db}, nil
}

// Migrate applies the embedded schema migrations.
func (d *Database) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, d.DB.DB)
}

func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	return pingWithin(ctx, "database", d.DB.PingContext)
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

// DBTX is satisfied by *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// pingWithin bounds a health probe by pingTimeout.
func pingWithin(ctx context.Context, what string, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", what, err)
	}
	return nil
}

// IsDuplicateKey reports whether err is a PostgreSQL unique violation.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func jitteredDuration(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: non-security-sensitive jitter for connection pool
	jitter := time.Duration(rand.Int64N(int64(base/7) + 1))
	return base + jitter
}
