package relatorio

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/periodo"
)

// GerarRelatorioMensal compõe métricas, histórico do mês (só ativos) e os
// controles mensais do mesmo mês/ano. Qualquer falha aborta o relatório.
func (s *Service) GerarRelatorioMensal(ctx context.Context, mes, ano int) (_ *dto.RelatorioMensalDTO, err error) {
	defer func(inicio time.Time) { observar("relatorio_mensal", inicio, err) }(time.Now())

	if err := periodo.Validar(mes, ano); err != nil {
		return nil, fmt.Errorf("relatorio: gerar relatório mensal: %w", err)
	}

	var (
		metricas  *dto.RelatorioMetricasDTO
		historico []*entity.HistoricoDisparo
		controles []*entity.ControleMensal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.CalcularMetricasMensais(gctx, mes, ano)
		metricas = m
		return err
	})
	g.Go(func() error {
		h, err := s.buscarHistorico(gctx, dto.FiltroHistorico{Mes: mes, Ano: ano})
		if err != nil {
			return fmt.Errorf("histórico do mês: %w", err)
		}
		historico = h
		return nil
	})
	g.Go(func() error {
		c, err := s.controles.ListByPeriodo(gctx, mes, ano)
		if err != nil {
			return fmt.Errorf("controles mensais: %w", err)
		}
		controles = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("relatorio: gerar relatório mensal: %w", err)
	}

	return &dto.RelatorioMensalDTO{
		Mes:              mes,
		Ano:              ano,
		Rotulo:           periodo.Rotulo(mes, ano),
		Metricas:         *metricas,
		Historico:        dto.FromHistoricos(historico),
		ControlesMensais: dto.FromControlesMensais(controles),
	}, nil
}
