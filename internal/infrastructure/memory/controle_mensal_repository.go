package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.ControleMensalRepository = (*ControleMensalRepo)(nil)

// ControleMensalRepo repositório de controles mensais sobre o Store.
type ControleMensalRepo struct{ s *Store }

// NewControleMensalRepository constrói o adaptador.
func NewControleMensalRepository(s *Store) *ControleMensalRepo { return &ControleMensalRepo{s: s} }

// ListByPeriodo lista os controles do mês com o snapshot da empresa.
func (r *ControleMensalRepo) ListByPeriodo(_ context.Context, mes, ano int) ([]*entity.ControleMensal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.ControleMensal, 0)
	for _, c := range r.s.controles {
		if c.Mes != mes || c.Ano != ano {
			continue
		}
		cp := *c
		cp.Empresa = nil
		if e := r.s.empresaByID(c.EmpresaID); e != nil {
			snap := *e
			cp.Empresa = &snap
		}
		out = append(out, &cp)
	}
	return out, nil
}

// Upsert cria ou atualiza o controle de (empresa_id, mes, ano).
// Na atualização o ID existente é devolvido em controle.ID.
func (r *ControleMensalRepo) Upsert(_ context.Context, controle *entity.ControleMensal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	now := time.Now()
	for _, c := range r.s.controles {
		if c.EmpresaID == controle.EmpresaID && c.Mes == controle.Mes && c.Ano == controle.Ano {
			c.Status = controle.Status
			c.DataProcessamento = controle.DataProcessamento
			c.Observacoes = controle.Observacoes
			c.UpdatedAt = now
			controle.ID = c.ID
			controle.CreatedAt = c.CreatedAt
			controle.UpdatedAt = now
			return nil
		}
	}
	if controle.ID == "" {
		controle.ID = uuid.New().String()
	}
	controle.CreatedAt, controle.UpdatedAt = now, now
	cp := *controle
	cp.Empresa = nil
	r.s.controles = append(r.s.controles, &cp)
	return nil
}
