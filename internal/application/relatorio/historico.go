package relatorio

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/periodo"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

// MontarClausulas traduz os filtros presentes em cláusulas explícitas.
//
// Função pura: a ordem das cláusulas é fixa e não depende de estado.
// ApenasComFalhas e ApenasComSucesso juntos são rejeitados, pois exigiriam
// status = falhou AND status = enviado. Mes sem Ano (ou o inverso) também.
func MontarClausulas(f dto.FiltroHistorico, loc *time.Location) ([]repository.Clausula, error) {
	if f.ApenasComFalhas && f.ApenasComSucesso {
		return nil, fmt.Errorf("%w: apenas_com_falhas e apenas_com_sucesso são mutuamente exclusivos", domain.ErrInvalidInput)
	}

	var cl []repository.Clausula
	if f.EmpresaID != "" {
		cl = append(cl, repository.Eq(repository.CampoEmpresaID, f.EmpresaID))
	}
	if len(f.EmpresaIDs) > 0 {
		cl = append(cl, repository.In(repository.CampoEmpresaID, f.EmpresaIDs))
	}
	if f.ColaboradorID != "" {
		cl = append(cl, repository.Eq(repository.CampoColaboradorID, f.ColaboradorID))
	}
	if len(f.ColaboradorIDs) > 0 {
		cl = append(cl, repository.In(repository.CampoColaboradorID, f.ColaboradorIDs))
	}
	if len(f.Status) > 0 {
		cl = append(cl, repository.In(repository.CampoStatus, f.Status))
	}
	if f.DataInicio != nil {
		cl = append(cl, repository.Gte(repository.CampoDataDisparo, *f.DataInicio))
	}
	if f.DataFim != nil {
		cl = append(cl, repository.Lte(repository.CampoDataDisparo, *f.DataFim))
	}
	if (f.Mes == 0) != (f.Ano == 0) {
		return nil, fmt.Errorf("%w: mes e ano devem ser informados juntos", domain.ErrInvalidInput)
	}
	if f.Mes != 0 {
		iv, err := periodo.Mes(f.Mes, f.Ano, loc)
		if err != nil {
			return nil, err
		}
		cl = append(cl,
			repository.Gte(repository.CampoDataDisparo, iv.Inicio),
			repository.Lte(repository.CampoDataDisparo, iv.Fim),
		)
	}
	if f.ApenasComFalhas {
		cl = append(cl, repository.Eq(repository.CampoStatus, entity.DisparoFalhou))
	}
	if f.ApenasComSucesso {
		cl = append(cl, repository.Eq(repository.CampoStatus, entity.DisparoEnviado))
	}
	return cl, nil
}

// BuscarHistoricoDetalhado consulta o histórico com os filtros dados,
// do disparo mais recente para o mais antigo.
//
// Sem IncluirInativos, só ficam os disparos cuja empresa e colaborador
// (do join) estão ativos; linhas sem um dos lados do join são descartadas.
func (s *Service) BuscarHistoricoDetalhado(ctx context.Context, f dto.FiltroHistorico) (_ []dto.HistoricoDisparoDTO, err error) {
	defer func(inicio time.Time) { observar("historico_detalhado", inicio, err) }(time.Now())

	list, err := s.buscarHistorico(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("relatorio: buscar histórico detalhado: %w", err)
	}
	return dto.FromHistoricos(list), nil
}

func (s *Service) buscarHistorico(ctx context.Context, f dto.FiltroHistorico) ([]*entity.HistoricoDisparo, error) {
	clausulas, err := MontarClausulas(f, s.loc)
	if err != nil {
		return nil, err
	}
	list, err := s.historico.Search(ctx, clausulas)
	if err != nil {
		return nil, err
	}
	if f.IncluirInativos {
		return list, nil
	}

	ativos := make([]*entity.HistoricoDisparo, 0, len(list))
	for _, d := range list {
		if d.Empresa.Ativa() && d.Colaborador.Ativo() {
			ativos = append(ativos, d)
		}
	}
	if descartados := len(list) - len(ativos); descartados > 0 {
		s.log.Debug().Int("descartados", descartados).Msg("histórico: disparos de empresas/colaboradores inativos removidos")
	}
	return ativos, nil
}

// BuscarHistoricoEmpresa devolve o histórico (inclusive de colaboradores
// inativos) dos últimos `meses` meses de uma empresa e seus indicadores.
// meses <= 0 usa o padrão configurado.
func (s *Service) BuscarHistoricoEmpresa(ctx context.Context, empresaID string, meses int) (_ *dto.HistoricoEmpresaDTO, err error) {
	defer func(inicio time.Time) { observar("historico_empresa", inicio, err) }(time.Now())

	if meses <= 0 {
		meses = s.mesesHistorico
	}

	empresa, err := s.empresas.GetByID(ctx, empresaID)
	if err != nil {
		return nil, fmt.Errorf("relatorio: buscar histórico da empresa: %w", err)
	}
	if empresa == nil {
		return nil, fmt.Errorf("relatorio: buscar histórico da empresa: Empresa não encontrada (%s): %w", empresaID, domain.ErrNotFound)
	}

	desde := periodo.MesesAtras(s.now(), meses)
	list, err := s.buscarHistorico(ctx, dto.FiltroHistorico{
		EmpresaID:       empresaID,
		DataInicio:      &desde,
		IncluirInativos: true,
	})
	if err != nil {
		return nil, fmt.Errorf("relatorio: buscar histórico da empresa: %w", err)
	}

	var sucessos, falhas int
	for _, d := range list {
		switch {
		case d.Sucesso():
			sucessos++
		case d.Falha():
			falhas++
		}
	}
	stats := dto.EstatisticasEmpresaDTO{
		TotalEnvios: len(list),
		Sucessos:    sucessos,
		Falhas:      falhas,
		TaxaSucesso: taxaSucesso(sucessos, falhas),
	}
	if len(list) > 0 {
		ultimo := list[0].DataDisparo
		stats.UltimoEnvio = &ultimo
	}

	return &dto.HistoricoEmpresaDTO{
		Empresa:      dto.FromEmpresa(empresa),
		Historico:    dto.FromHistoricos(list),
		Estatisticas: stats,
	}, nil
}
