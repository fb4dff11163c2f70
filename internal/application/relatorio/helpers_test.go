package relatorio_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/painel-books-api/internal/application/relatorio"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

// agora fixo usado como relógio: 15/04/2024 12:00 UTC.
var agora = time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)

func novoService(s *memory.Store, opts ...relatorio.Option) *relatorio.Service {
	base := []relatorio.Option{
		relatorio.WithLocation(time.UTC),
		relatorio.WithClock(func() time.Time { return agora }),
	}
	return relatorio.NewService(
		memory.NewEmpresaRepository(s),
		memory.NewColaboradorRepository(s),
		memory.NewHistoricoDisparoRepository(s),
		memory.NewControleMensalRepository(s),
		append(base, opts...)...,
	)
}

func empresa(id, nome, status string) *entity.Empresa {
	return &entity.Empresa{ID: id, NomeCompleto: nome, Status: status}
}

func colaborador(id, nome, status string) *entity.Colaborador {
	return &entity.Colaborador{ID: id, NomeCompleto: nome, Email: id + "@exemplo.com.br", Status: status}
}

// addEmpresas cria `total` empresas "Empresa 01".. das quais as `ativas` primeiras são ativas.
func addEmpresas(s *memory.Store, total, ativas int) {
	for i := 1; i <= total; i++ {
		status := entity.StatusInativo
		if i <= ativas {
			status = entity.StatusAtivo
		}
		s.AddEmpresas(empresa(fmt.Sprintf("emp-%02d", i), fmt.Sprintf("Empresa %02d", i), status))
	}
}

func addColaboradores(s *memory.Store, total, ativos int) {
	for i := 1; i <= total; i++ {
		status := entity.StatusInativo
		if i <= ativos {
			status = entity.StatusAtivo
		}
		s.AddColaboradores(colaborador(fmt.Sprintf("col-%02d", i), fmt.Sprintf("Colaborador %02d", i), status))
	}
}

var seq int

func disparo(empresaID, colaboradorID, status string, quando time.Time) *entity.HistoricoDisparo {
	seq++
	d := &entity.HistoricoDisparo{
		ID:          fmt.Sprintf("d-%04d", seq),
		EmpresaID:   empresaID,
		DataDisparo: quando,
		Status:      status,
		Assunto:     "Book " + quando.Format("01/2006"),
		CreatedAt:   quando,
	}
	if colaboradorID != "" {
		d.ColaboradorID = &colaboradorID
	}
	return d
}

func dia(ano int, mes time.Month, d, hora int) time.Time {
	return time.Date(ano, mes, d, hora, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, esperado string, obtido decimal.Decimal, msg ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(esperado).Equal(obtido),
		append([]any{"esperado %s, obtido %s", esperado, obtido.String()}, msg...)...)
}
