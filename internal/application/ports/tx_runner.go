package ports

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios del ledger. Dentro de TxRunner.Run todos quedan atados a la misma transacción.
type Repos struct {
	Materials repository.MaterialRepository
	Rolls     repository.RollRepository
	Customers repository.CustomerRepository
	Sales     repository.SaleRepository
	Logs      repository.ActivityLogRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback; si no, Commit. La entrada de auditoría y la mutación
// de dominio se confirman juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Store es el colaborador de almacenamiento con ciclo de vida explícito:
// se abre al arrancar y se cierra en el apagado.
type Store interface {
	TxRunner
	// Repos devuelve repositorios fuera de transacción, para lecturas.
	Repos() Repos
	Ping(ctx context.Context) error
	Close() error
}
