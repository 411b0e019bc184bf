package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner abre una transacción sobre el pool y entrega repositorios ligados a ella.
type TxRunner struct {
	q Querier
}

// NewTxRunner construye el runner. q normalmente es el *pgxpool.Pool.
func NewTxRunner(q Querier) *TxRunner {
	return &TxRunner{q: q}
}

// Run ejecuta fn en una transacción; commit solo si fn no devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(repository.TxRepos{
		Users:   NewUserRepository(tx),
		Markets: NewMarketRepository(tx),
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
