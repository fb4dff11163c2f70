package repository

import (
	"context"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
)

// HistoricoDisparoRepository consultas e escrita sobre historico_disparos.
type HistoricoDisparoRepository interface {
	// Count conta os disparos que satisfazem todas as cláusulas.
	Count(ctx context.Context, clausulas []Clausula) (int, error)

	// Search devolve os disparos que satisfazem as cláusulas, ordenados por
	// data_disparo decrescente, com os snapshots de Empresa e Colaborador do join.
	Search(ctx context.Context, clausulas []Clausula) ([]*entity.HistoricoDisparo, error)

	Create(ctx context.Context, disparo *entity.HistoricoDisparo) error
}
