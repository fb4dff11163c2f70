package memory

import (
	"context"

	"github.com/jhoicas/painel-books-api/internal/application/disparo"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ disparo.TxRunner = (*TxRunner)(nil)

// TxRunner executa o callback sobre o Store. Não há rollback: um erro no meio
// do callback mantém o que já foi escrito.
type TxRunner struct{ s *Store }

// NewTxRunner constrói o runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunDisparo chama fn com os repositórios de histórico e controle mensal.
func (r *TxRunner) RunDisparo(ctx context.Context, fn func(
	historicoRepo repository.HistoricoDisparoRepository,
	controleRepo repository.ControleMensalRepository,
) error) error {
	return fn(NewHistoricoDisparoRepository(r.s), NewControleMensalRepository(r.s))
}
