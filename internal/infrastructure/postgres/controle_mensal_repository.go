package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.ControleMensalRepository = (*ControleMensalRepo)(nil)

// ControleMensalRepo implementação de ControleMensalRepository (pool ou tx).
type ControleMensalRepo struct {
	q Querier
}

// NewControleMensalRepository constrói o adaptador.
func NewControleMensalRepository(q Querier) *ControleMensalRepo {
	return &ControleMensalRepo{q: q}
}

// ListByPeriodo lista os controles do mês com o snapshot da empresa.
func (r *ControleMensalRepo) ListByPeriodo(ctx context.Context, mes, ano int) ([]*entity.ControleMensal, error) {
	query := `
		SELECT cm.id, cm.empresa_id, cm.mes, cm.ano, cm.status, cm.data_processamento,
		       COALESCE(cm.observacoes, ''), cm.created_at, cm.updated_at,
		       e.id, e.nome_completo, e.nome_abreviado, e.email_gestor, e.status
		FROM controle_mensal cm
		LEFT JOIN empresas e ON e.id = cm.empresa_id
		WHERE cm.mes = $1 AND cm.ano = $2
		ORDER BY cm.created_at`
	rows, err := r.q.Query(ctx, query, mes, ano)
	if err != nil {
		return nil, fmt.Errorf("list controle_mensal: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ControleMensal, 0)
	for rows.Next() {
		var c entity.ControleMensal
		var empID, empNome, empAbrev, empEmail, empStatus *string
		if err := rows.Scan(
			&c.ID, &c.EmpresaID, &c.Mes, &c.Ano, &c.Status, &c.DataProcessamento,
			&c.Observacoes, &c.CreatedAt, &c.UpdatedAt,
			&empID, &empNome, &empAbrev, &empEmail, &empStatus,
		); err != nil {
			return nil, fmt.Errorf("scan controle_mensal: %w", err)
		}
		if empID != nil {
			c.Empresa = &entity.Empresa{
				ID:            *empID,
				NomeCompleto:  deref(empNome),
				NomeAbreviado: deref(empAbrev),
				EmailGestor:   deref(empEmail),
				Status:        deref(empStatus),
			}
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list controle_mensal: %w", err)
	}
	return list, nil
}

// Upsert cria o controle de (empresa_id, mes, ano) ou atualiza status,
// data_processamento e observacoes. ID e timestamps voltam preenchidos.
func (r *ControleMensalRepo) Upsert(ctx context.Context, c *entity.ControleMensal) error {
	query := `
		INSERT INTO controle_mensal (empresa_id, mes, ano, status, data_processamento, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (empresa_id, mes, ano) DO UPDATE
		SET status = EXCLUDED.status,
		    data_processamento = EXCLUDED.data_processamento,
		    observacoes = EXCLUDED.observacoes,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		c.EmpresaID, c.Mes, c.Ano, c.Status, c.DataProcessamento, c.Observacoes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert controle_mensal: %w", err)
	}
	return nil
}
