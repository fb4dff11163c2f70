package disparo

import (
	"context"

	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação, com repositórios atados a ela.
// O disparo e o controle mensal do mês são gravados juntos ou nenhum deles.
type TxRunner interface {
	RunDisparo(ctx context.Context, fn func(
		historicoRepo repository.HistoricoDisparoRepository,
		controleRepo repository.ControleMensalRepository,
	) error) error
}
