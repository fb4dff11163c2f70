package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo repositório de empresas sobre o Store.
type EmpresaRepo struct{ s *Store }

// NewEmpresaRepository constrói o adaptador.
func NewEmpresaRepository(s *Store) *EmpresaRepo { return &EmpresaRepo{s: s} }

// Count conta empresas; status vazio conta todas.
func (r *EmpresaRepo) Count(_ context.Context, status string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	n := 0
	for _, e := range r.s.empresas {
		if status == "" || e.Status == status {
			n++
		}
	}
	return n, nil
}

// ListByStatus lista empresas com o status dado, ordenadas por nome.
func (r *EmpresaRepo) ListByStatus(_ context.Context, status string) ([]*entity.Empresa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.Empresa, 0)
	for _, e := range r.s.empresasOrdenadas() {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetByID devolve (nil, nil) quando não existe.
func (r *EmpresaRepo) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.empresaByID(id), nil
}

// Create insere a empresa; ID repetido devolve domain.ErrDuplicate.
func (r *EmpresaRepo) Create(_ context.Context, empresa *entity.Empresa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.empresaByID(empresa.ID) != nil {
		return fmt.Errorf("insert empresa %s: %w", empresa.ID, domain.ErrDuplicate)
	}
	r.s.empresas = append(r.s.empresas, empresa)
	return nil
}
