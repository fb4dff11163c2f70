package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/painel-books-api/internal/application/disparo"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ disparo.TxRunner = (*TxRunner)(nil)

// Beginner abre transações; satisfeito por *pgxpool.Pool e pgxmock.PgxPoolIface.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunDisparo abre a transação, passa repositórios atados a ela e faz Commit,
// ou Rollback se fn falhar.
func (r *TxRunner) RunDisparo(ctx context.Context, fn func(
	historicoRepo repository.HistoricoDisparoRepository,
	controleRepo repository.ControleMensalRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewHistoricoDisparoRepository(tx), NewControleMensalRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
