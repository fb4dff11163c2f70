package relatorio

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/periodo"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

// BuscarEstatisticasPerformance resume todos os disparos de [inicio, fim],
// sem filtro de status na consulta.
//
// MediaDiaria = total / ceil(dias do período); zero quando o período é vazio
// ou invertido.
func (s *Service) BuscarEstatisticasPerformance(ctx context.Context, inicio, fim time.Time) (_ *dto.EstatisticasPerformanceDTO, err error) {
	defer func(t0 time.Time) { observar("estatisticas_performance", t0, err) }(time.Now())

	list, err := s.historico.Search(ctx, []repository.Clausula{
		repository.Gte(repository.CampoDataDisparo, inicio),
		repository.Lte(repository.CampoDataDisparo, fim),
	})
	if err != nil {
		return nil, fmt.Errorf("relatorio: buscar estatísticas de performance: %w", err)
	}
	if len(list) == 0 {
		return &dto.EstatisticasPerformanceDTO{
			TaxaSucesso: decimal.Zero,
			MediaDiaria: decimal.Zero,
		}, nil
	}

	var sucessos, falhas int
	empresas := make(map[string]struct{})
	colaboradores := make(map[string]struct{})
	for _, d := range list {
		switch {
		case d.Sucesso():
			sucessos++
		case d.Falha():
			falhas++
		}
		empresas[d.EmpresaID] = struct{}{}
		if d.ColaboradorID != nil && *d.ColaboradorID != "" {
			colaboradores[*d.ColaboradorID] = struct{}{}
		}
	}

	media := decimal.Zero
	if dias := periodo.Dias(inicio, fim); dias > 0 {
		media = decimal.NewFromInt(int64(len(list))).Div(decimal.NewFromInt(int64(dias))).Round(2)
	}

	return &dto.EstatisticasPerformanceDTO{
		TotalDisparos:          len(list),
		Sucessos:               sucessos,
		Falhas:                 falhas,
		TaxaSucesso:            taxaSucesso(sucessos, falhas),
		EmpresasAtendidas:      len(empresas),
		ColaboradoresAtendidos: len(colaboradores),
		MediaDiaria:            media,
	}, nil
}

// BuscarColaboradoresComFalhas monta o ranking de colaboradores com mais
// falhas nos últimos `meses` meses, agrupando por (colaborador, empresa):
// o mesmo colaborador falhando em duas empresas gera duas entradas.
//
// Ordena por total de falhas decrescente (empate: falha mais recente primeiro)
// e devolve no máximo `limite` entradas. Valores <= 0 usam os padrões.
func (s *Service) BuscarColaboradoresComFalhas(ctx context.Context, limite, meses int) (_ []dto.ColaboradorFalhasDTO, err error) {
	defer func(inicio time.Time) { observar("colaboradores_com_falhas", inicio, err) }(time.Now())

	if limite <= 0 {
		limite = s.limiteFalhas
	}
	if meses <= 0 {
		meses = s.mesesFalhas
	}
	desde := periodo.MesesAtras(s.now(), meses)

	list, err := s.historico.Search(ctx, []repository.Clausula{
		repository.Eq(repository.CampoStatus, entity.DisparoFalhou),
		repository.Gte(repository.CampoDataDisparo, desde),
	})
	if err != nil {
		return nil, fmt.Errorf("relatorio: buscar colaboradores com falhas: %w", err)
	}

	type chave struct{ colaboradorID, empresaID string }
	type grupo struct {
		colaborador *entity.Colaborador
		empresa     *entity.Empresa
		falhas      []time.Time // decrescente, herdado da ordenação da consulta
	}
	grupos := make(map[chave]*grupo)
	ordem := make([]chave, 0)
	for _, d := range list {
		if d.Colaborador == nil || d.Empresa == nil {
			continue
		}
		k := chave{d.Colaborador.ID, d.Empresa.ID}
		g, ok := grupos[k]
		if !ok {
			g = &grupo{colaborador: d.Colaborador, empresa: d.Empresa}
			grupos[k] = g
			ordem = append(ordem, k)
		}
		g.falhas = append(g.falhas, d.DataDisparo)
	}

	out := make([]dto.ColaboradorFalhasDTO, 0, len(ordem))
	for _, k := range ordem {
		g := grupos[k]
		out = append(out, dto.ColaboradorFalhasDTO{
			Colaborador: dto.FromColaborador(g.colaborador),
			Empresa:     dto.FromEmpresa(g.empresa),
			TotalFalhas: len(g.falhas),
			UltimaFalha: g.falhas[0],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalFalhas != out[j].TotalFalhas {
			return out[i].TotalFalhas > out[j].TotalFalhas
		}
		return out[i].UltimaFalha.After(out[j].UltimaFalha)
	})
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}
