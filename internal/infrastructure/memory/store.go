// Package memory implementa os repositórios em memória: modo demonstração
// (DB_DRIVER=memory) e testes dos casos de uso.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
)

// Store guarda as tabelas em memória. Seguro para uso concorrente.
type Store struct {
	mu            sync.RWMutex
	empresas      []*entity.Empresa
	colaboradores []*entity.Colaborador
	disparos      []*entity.HistoricoDisparo
	controles     []*entity.ControleMensal

	// Err, quando definido, é devolvido por todas as operações (simula backend fora do ar).
	Err error
}

// NewStore cria um store vazio.
func NewStore() *Store { return &Store{} }

// AddEmpresas insere empresas sem validação (seed/testes).
func (s *Store) AddEmpresas(list ...*entity.Empresa) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empresas = append(s.empresas, list...)
}

// AddColaboradores insere colaboradores sem validação (seed/testes).
func (s *Store) AddColaboradores(list ...*entity.Colaborador) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colaboradores = append(s.colaboradores, list...)
}

// AddDisparos insere disparos sem validação (seed/testes).
func (s *Store) AddDisparos(list ...*entity.HistoricoDisparo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disparos = append(s.disparos, list...)
}

// AddControles insere controles mensais sem validação (seed/testes).
func (s *Store) AddControles(list ...*entity.ControleMensal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controles = append(s.controles, list...)
}

func (s *Store) empresaByID(id string) *entity.Empresa {
	for _, e := range s.empresas {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *Store) colaboradorByID(id string) *entity.Colaborador {
	for _, c := range s.colaboradores {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// empresasOrdenadas devolve cópia ordenada por nome, como a listagem do backend.
func (s *Store) empresasOrdenadas() []*entity.Empresa {
	list := make([]*entity.Empresa, len(s.empresas))
	copy(list, s.empresas)
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].NomeCompleto) < strings.ToLower(list[j].NomeCompleto)
	})
	return list
}
