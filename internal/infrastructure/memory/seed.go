package memory

import (
	"fmt"
	"time"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
)

// Seed popula o store com um conjunto pequeno e determinístico para o modo
// demonstração: 4 empresas (1 inativa), 5 colaboradores (1 inativo) e
// disparos nos dois últimos meses a partir de now.
func Seed(s *Store, now time.Time) {
	criado := now.AddDate(-1, 0, 0)
	empresas := []*entity.Empresa{
		{ID: "emp-1", NomeCompleto: "Alfa Consultoria Ltda", NomeAbreviado: "Alfa", CNPJ: "11222333000181", EmailGestor: "gestor@alfa.com.br", Status: entity.StatusAtivo},
		{ID: "emp-2", NomeCompleto: "Beta Serviços S.A.", NomeAbreviado: "Beta", CNPJ: "22333444000181", EmailGestor: "financeiro@beta.com.br", Status: entity.StatusAtivo},
		{ID: "emp-3", NomeCompleto: "Gama Engenharia", NomeAbreviado: "Gama", CNPJ: "33444555000181", EmailGestor: "contato@gama.eng.br", Status: entity.StatusAtivo},
		{ID: "emp-4", NomeCompleto: "Delta Comércio", NomeAbreviado: "Delta", CNPJ: "44555666000181", Status: entity.StatusInativo},
	}
	for _, e := range empresas {
		e.CreatedAt, e.UpdatedAt = criado, criado
	}
	colaboradores := []*entity.Colaborador{
		{ID: "col-1", NomeCompleto: "Ana Souza", Email: "ana@alfa.com.br", Cargo: "Controller", Status: entity.StatusAtivo},
		{ID: "col-2", NomeCompleto: "Bruno Lima", Email: "bruno@beta.com.br", Cargo: "Diretor", Status: entity.StatusAtivo},
		{ID: "col-3", NomeCompleto: "Carla Dias", Email: "carla@gama.eng.br", Cargo: "Analista", Status: entity.StatusAtivo},
		{ID: "col-4", NomeCompleto: "Diego Alves", Email: "diego@delta.com.br", Cargo: "Gerente", Status: entity.StatusInativo},
		{ID: "col-5", NomeCompleto: "Elisa Rocha", Email: "elisa@beta.com.br", Cargo: "Coordenadora", Status: entity.StatusAtivo},
	}
	for _, c := range colaboradores {
		c.CreatedAt, c.UpdatedAt = criado, criado
	}
	s.AddEmpresas(empresas...)
	s.AddColaboradores(colaboradores...)

	inicioMes := time.Date(now.Year(), now.Month(), 1, 9, 0, 0, 0, now.Location())
	anterior := inicioMes.AddDate(0, -1, 0)
	disparo := func(n int, empresaID, colaboradorID, status string, quando time.Time) *entity.HistoricoDisparo {
		col := colaboradorID
		d := &entity.HistoricoDisparo{
			ID:            fmt.Sprintf("disp-%02d", n),
			EmpresaID:     empresaID,
			ColaboradorID: &col,
			DataDisparo:   quando,
			Status:        status,
			Assunto:       "Book mensal " + quando.Format("01/2006"),
			CreatedAt:     quando,
		}
		if status == entity.DisparoFalhou {
			d.ErroDetalhes = "550 mailbox unavailable"
		}
		return d
	}
	s.AddDisparos(
		disparo(1, "emp-1", "col-1", entity.DisparoEnviado, anterior),
		disparo(2, "emp-2", "col-2", entity.DisparoEnviado, anterior.Add(time.Hour)),
		disparo(3, "emp-2", "col-5", entity.DisparoFalhou, anterior.Add(2*time.Hour)),
		disparo(4, "emp-3", "col-3", entity.DisparoFalhou, anterior.Add(3*time.Hour)),
		disparo(5, "emp-4", "col-4", entity.DisparoEnviado, anterior.Add(4*time.Hour)),
		disparo(6, "emp-1", "col-1", entity.DisparoEnviado, inicioMes),
		disparo(7, "emp-2", "col-5", entity.DisparoFalhou, inicioMes.Add(time.Hour)),
		disparo(8, "emp-3", "col-3", entity.DisparoAgendado, inicioMes.Add(2*time.Hour)),
	)

	processado := anterior.Add(6 * time.Hour)
	s.AddControles(
		&entity.ControleMensal{ID: "ctrl-1", EmpresaID: "emp-1", Mes: int(anterior.Month()), Ano: anterior.Year(), Status: entity.ControleConcluido, DataProcessamento: &processado},
		&entity.ControleMensal{ID: "ctrl-2", EmpresaID: "emp-3", Mes: int(anterior.Month()), Ano: anterior.Year(), Status: entity.ControleFalhou, DataProcessamento: &processado},
		&entity.ControleMensal{ID: "ctrl-3", EmpresaID: "emp-1", Mes: int(now.Month()), Ano: now.Year(), Status: entity.ControleConcluido},
	)
}
