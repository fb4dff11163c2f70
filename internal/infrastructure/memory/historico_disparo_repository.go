package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.HistoricoDisparoRepository = (*HistoricoDisparoRepo)(nil)

// HistoricoDisparoRepo avalia as cláusulas em memória, com a mesma semântica
// do adaptador PostgreSQL (colaborador_id nulo não satisfaz eq/in).
type HistoricoDisparoRepo struct{ s *Store }

// NewHistoricoDisparoRepository constrói o adaptador.
func NewHistoricoDisparoRepository(s *Store) *HistoricoDisparoRepo {
	return &HistoricoDisparoRepo{s: s}
}

// Count conta os disparos que satisfazem as cláusulas.
func (r *HistoricoDisparoRepo) Count(_ context.Context, clausulas []repository.Clausula) (int, error) {
	if err := repository.Validar(clausulas); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	n := 0
	for _, d := range r.s.disparos {
		if satisfaz(d, clausulas) {
			n++
		}
	}
	return n, nil
}

// Search devolve cópias dos disparos com snapshots, por data_disparo decrescente.
func (r *HistoricoDisparoRepo) Search(_ context.Context, clausulas []repository.Clausula) ([]*entity.HistoricoDisparo, error) {
	if err := repository.Validar(clausulas); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	out := make([]*entity.HistoricoDisparo, 0)
	for _, d := range r.s.disparos {
		if !satisfaz(d, clausulas) {
			continue
		}
		cp := *d
		cp.EmailsCC = slices.Clone(d.EmailsCC)
		cp.Empresa, cp.Colaborador = nil, nil
		if e := r.s.empresaByID(d.EmpresaID); e != nil {
			snap := *e
			cp.Empresa = &snap
		}
		if d.ColaboradorID != nil {
			if c := r.s.colaboradorByID(*d.ColaboradorID); c != nil {
				snap := *c
				cp.Colaborador = &snap
			}
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DataDisparo.After(out[j].DataDisparo)
	})
	return out, nil
}

// Create insere o disparo; ID repetido devolve domain.ErrDuplicate.
func (r *HistoricoDisparoRepo) Create(_ context.Context, disparo *entity.HistoricoDisparo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, d := range r.s.disparos {
		if d.ID == disparo.ID {
			return fmt.Errorf("insert historico_disparo %s: %w", disparo.ID, domain.ErrDuplicate)
		}
	}
	cp := *disparo
	cp.Empresa, cp.Colaborador = nil, nil
	r.s.disparos = append(r.s.disparos, &cp)
	return nil
}

func satisfaz(d *entity.HistoricoDisparo, clausulas []repository.Clausula) bool {
	for _, c := range clausulas {
		if !avaliar(d, c) {
			return false
		}
	}
	return true
}

func avaliar(d *entity.HistoricoDisparo, c repository.Clausula) bool {
	if c.Campo == repository.CampoDataDisparo {
		t, ok := c.Valor.(time.Time)
		if !ok {
			return false
		}
		switch c.Operador {
		case repository.OpEq:
			return d.DataDisparo.Equal(t)
		case repository.OpGte:
			return !d.DataDisparo.Before(t)
		case repository.OpLte:
			return !d.DataDisparo.After(t)
		}
		return false
	}

	var v string
	switch c.Campo {
	case repository.CampoEmpresaID:
		v = d.EmpresaID
	case repository.CampoStatus:
		v = d.Status
	case repository.CampoColaboradorID:
		if d.ColaboradorID == nil {
			return false
		}
		v = *d.ColaboradorID
	default:
		return false
	}

	switch c.Operador {
	case repository.OpEq:
		s, _ := c.Valor.(string)
		return v == s
	case repository.OpIn:
		vals, _ := c.Valor.([]string)
		return slices.Contains(vals, v)
	case repository.OpGte:
		s, _ := c.Valor.(string)
		return v >= s
	case repository.OpLte:
		s, _ := c.Valor.(string)
		return v <= s
	}
	return false
}
