package repository

import (
	"context"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
)

// ControleMensalRepository porto de persistência para controle_mensal.
type ControleMensalRepository interface {
	// ListByPeriodo lista os controles do mês/ano com o snapshot da empresa.
	ListByPeriodo(ctx context.Context, mes, ano int) ([]*entity.ControleMensal, error)
	// Upsert cria ou atualiza o controle identificado por (empresa_id, mes, ano).
	Upsert(ctx context.Context, controle *entity.ControleMensal) error
}
