package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.ColaboradorRepository = (*ColaboradorRepo)(nil)

// ColaboradorRepo repositório de colaboradores sobre o Store.
type ColaboradorRepo struct{ s *Store }

// NewColaboradorRepository constrói o adaptador.
func NewColaboradorRepository(s *Store) *ColaboradorRepo { return &ColaboradorRepo{s: s} }

// Count conta colaboradores; status vazio conta todos.
func (r *ColaboradorRepo) Count(_ context.Context, status string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	n := 0
	for _, c := range r.s.colaboradores {
		if status == "" || c.Status == status {
			n++
		}
	}
	return n, nil
}

// Create insere o colaborador; ID repetido devolve domain.ErrDuplicate.
func (r *ColaboradorRepo) Create(_ context.Context, colaborador *entity.Colaborador) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.colaboradorByID(colaborador.ID) != nil {
		return fmt.Errorf("insert colaborador %s: %w", colaborador.ID, domain.ErrDuplicate)
	}
	r.s.colaboradores = append(r.s.colaboradores, colaborador)
	return nil
}
