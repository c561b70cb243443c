// Package sqlite implementa el almacenamiento del ledger sobre SQLite (driver puro Go).
// Los decimales se guardan como TEXT para no perder precisión.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ ports.Store = (*Store)(nil)

// Querier es lo común entre *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store ledger persistido en un archivo SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path. ":memory:" crea una base efímera.
// Se usa una única conexión: SQLite admite un solo escritor y así las transacciones quedan serializadas.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "stock-ledger.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	// El pragma va en el DSN para que aplique a cada conexión que abra database/sql.
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

// Migrate aplica en orden las migraciones embebidas pendientes.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		var n int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, name).Scan(&n); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if n > 0 {
			continue
		}
		body, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}

// Run ejecuta fn dentro de una transacción SQLite.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStorageFailure, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrStorageFailure, err)
	}
	return nil
}

// Repos devuelve repositorios fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return reposFor(s.db)
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB expone la conexión para tests de integración.
func (s *Store) DB() *sql.DB { return s.db }

// Path devuelve la ruta configurada.
func (s *Store) Path() string { return s.path }

func reposFor(q Querier) ports.Repos {
	return ports.Repos{
		Materials: &materialRepo{q: q},
		Rolls:     &rollRepo{q: q},
		Customers: &customerRepo{q: q},
		Sales:     &saleRepo{q: q},
		Logs:      &activityLogRepo{q: q},
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
