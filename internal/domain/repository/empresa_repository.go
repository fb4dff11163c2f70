package repository

import (
	"context"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
)

// EmpresaRepository define o porto de persistência para Empresa (DIP).
// A implementação vive em infrastructure.
type EmpresaRepository interface {
	// Count conta empresas; status vazio conta todas.
	Count(ctx context.Context, status string) (int, error)
	// ListByStatus lista empresas com o status dado, na ordem do backend (nome).
	ListByStatus(ctx context.Context, status string) ([]*entity.Empresa, error)
	// GetByID devolve (nil, nil) quando a empresa não existe.
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	Create(ctx context.Context, empresa *entity.Empresa) error
}
