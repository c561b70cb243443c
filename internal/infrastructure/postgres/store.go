package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/ports"
)

var _ ports.Store = (*Store)(nil)

// Store agrupa pool, runner transaccional y repositorios de lectura.
type Store struct {
	*TxRunner
	pool *pgxpool.Pool
}

// NewStore envuelve un pool ya abierto (ver NewPool).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{TxRunner: NewTxRunner(pool), pool: pool}
}

// Repos devuelve repositorios sobre el pool, fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return reposFor(s.pool)
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close cierra el pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
