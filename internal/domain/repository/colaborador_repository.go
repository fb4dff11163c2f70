package repository

import (
	"context"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
)

// ColaboradorRepository define o porto de persistência para Colaborador.
type ColaboradorRepository interface {
	// Count conta colaboradores; status vazio conta todos.
	Count(ctx context.Context, status string) (int, error)
	Create(ctx context.Context, colaborador *entity.Colaborador) error
}
