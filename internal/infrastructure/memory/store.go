// Package memory implementa el almacenamiento del ledger en memoria.
// Las transacciones se serializan con un mutex y el rollback restaura una copia del estado.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/ports"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var _ ports.Store = (*Store)(nil)

type row[T any] struct {
	seq int64
	v   T
}

type state struct {
	materials map[string]row[entity.Material]
	rolls     map[string]row[entity.Roll]
	customers map[string]row[entity.Customer]
	sales     map[string]row[entity.Sale]
	logs      []entity.ActivityLog
	seq       int64
}

func newState() *state {
	return &state{
		materials: make(map[string]row[entity.Material]),
		rolls:     make(map[string]row[entity.Roll]),
		customers: make(map[string]row[entity.Customer]),
		sales:     make(map[string]row[entity.Sale]),
	}
}

func (st *state) next() int64 {
	st.seq++
	return st.seq
}

func (st *state) clone() *state {
	c := &state{
		materials: make(map[string]row[entity.Material], len(st.materials)),
		rolls:     make(map[string]row[entity.Roll], len(st.rolls)),
		customers: make(map[string]row[entity.Customer], len(st.customers)),
		sales:     make(map[string]row[entity.Sale], len(st.sales)),
		logs:      make([]entity.ActivityLog, len(st.logs)),
		seq:       st.seq,
	}
	for k, v := range st.materials {
		c.materials[k] = v
	}
	for k, v := range st.rolls {
		c.rolls[k] = v
	}
	for k, v := range st.customers {
		c.customers[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	copy(c.logs, st.logs)
	return c
}

// Store guarda el estado completo del ledger en memoria.
type Store struct {
	mu     sync.RWMutex
	st     *state
	closed bool
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con acceso exclusivo al estado. Si fn falla, se descartan sus cambios.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: store cerrado", domain.ErrStorageFailure)
	}
	snapshot := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repos devuelve repositorios que toman el lock en cada llamada.
func (s *Store) Repos() ports.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) ports.Repos {
	return ports.Repos{
		Materials: &materialRepo{s: s, inTx: inTx},
		Rolls:     &rollRepo{s: s, inTx: inTx},
		Customers: &customerRepo{s: s, inTx: inTx},
		Sales:     &saleRepo{s: s, inTx: inTx},
		Logs:      &activityLogRepo{s: s, inTx: inTx},
	}
}

// Ping siempre responde mientras el store esté abierto.
func (s *Store) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("%w: store cerrado", domain.ErrStorageFailure)
	}
	return nil
}

// Close marca el store como cerrado.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) read(inTx bool, fn func(st *state)) {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.st)
}

func (s *Store) write(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

func sortedValues[T any](m map[string]row[T], keep func(T) bool) []T {
	rows := make([]row[T], 0, len(m))
	for _, r := range m {
		if keep == nil || keep(r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.v)
	}
	return out
}
