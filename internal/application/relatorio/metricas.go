package relatorio

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/periodo"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

// CalcularMetricasMensais monta o resumo do mês.
//
// Sete consultas independentes em paralelo:
//  1. empresas (todas / ativas)
//  2. colaboradores (todos / ativos)
//  3. disparos enviados e com falha dentro do mês
//  4. empresas ativas sem book enviado no mês
//
// Se qualquer consulta falhar a operação inteira falha; não há resultado parcial.
func (s *Service) CalcularMetricasMensais(ctx context.Context, mes, ano int) (_ *dto.RelatorioMetricasDTO, err error) {
	defer func(inicio time.Time) { observar("metricas_mensais", inicio, err) }(time.Now())

	iv, err := periodo.Mes(mes, ano, s.loc)
	if err != nil {
		return nil, fmt.Errorf("relatorio: calcular métricas mensais: %w", err)
	}

	type contagem struct {
		n   int
		err error
	}
	type semBooksResult struct {
		empresas []*entity.Empresa
		err      error
	}

	contar := func(fn func() (int, error)) <-chan contagem {
		ch := make(chan contagem, 1)
		go func() {
			n, err := fn()
			ch <- contagem{n, err}
		}()
		return ch
	}

	totalEmpresasCh := contar(func() (int, error) { return s.empresas.Count(ctx, "") })
	empresasAtivasCh := contar(func() (int, error) { return s.empresas.Count(ctx, entity.StatusAtivo) })
	totalColabCh := contar(func() (int, error) { return s.colaboradores.Count(ctx, "") })
	colabAtivosCh := contar(func() (int, error) { return s.colaboradores.Count(ctx, entity.StatusAtivo) })
	enviadosCh := contar(func() (int, error) {
		return s.historico.Count(ctx, clausulasMes(iv, entity.DisparoEnviado))
	})
	falhasCh := contar(func() (int, error) {
		return s.historico.Count(ctx, clausulasMes(iv, entity.DisparoFalhou))
	})
	semBooksCh := make(chan semBooksResult, 1)
	go func() {
		list, err := s.empresasSemBooks(ctx, iv)
		semBooksCh <- semBooksResult{list, err}
	}()

	totalEmpresas := <-totalEmpresasCh
	empresasAtivas := <-empresasAtivasCh
	totalColab := <-totalColabCh
	colabAtivos := <-colabAtivosCh
	enviados := <-enviadosCh
	falhas := <-falhasCh
	semBooks := <-semBooksCh

	for _, r := range []struct {
		etapa string
		err   error
	}{
		{"total de empresas", totalEmpresas.err},
		{"empresas ativas", empresasAtivas.err},
		{"total de colaboradores", totalColab.err},
		{"colaboradores ativos", colabAtivos.err},
		{"e-mails enviados", enviados.err},
		{"e-mails com falha", falhas.err},
		{"empresas sem books", semBooks.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("relatorio: calcular métricas mensais: %s: %w", r.etapa, r.err)
		}
	}

	s.log.Debug().
		Int("mes", mes).Int("ano", ano).
		Int("enviados", enviados.n).Int("falhas", falhas.n).
		Int("sem_books", len(semBooks.empresas)).
		Msg("métricas mensais calculadas")

	return &dto.RelatorioMetricasDTO{
		TotalEmpresas:       totalEmpresas.n,
		EmpresasAtivas:      empresasAtivas.n,
		TotalColaboradores:  totalColab.n,
		ColaboradoresAtivos: colabAtivos.n,
		EmailsEnviadosMes:   enviados.n,
		EmailsFalharamMes:   falhas.n,
		TaxaSucessoMes:      taxaSucesso(enviados.n, falhas.n),
		EmpresasSemBooks:    dto.FromEmpresas(semBooks.empresas),
	}, nil
}

// IdentificarEmpresasSemBooks devolve as empresas ativas sem nenhum disparo
// com status "enviado" no mês, na ordem da listagem de empresas.
// Disparos com falha ou cancelados não contam como cobertura.
func (s *Service) IdentificarEmpresasSemBooks(ctx context.Context, mes, ano int) (_ []dto.EmpresaResumoDTO, err error) {
	defer func(inicio time.Time) { observar("empresas_sem_books", inicio, err) }(time.Now())

	iv, err := periodo.Mes(mes, ano, s.loc)
	if err != nil {
		return nil, fmt.Errorf("relatorio: identificar empresas sem books: %w", err)
	}
	list, err := s.empresasSemBooks(ctx, iv)
	if err != nil {
		return nil, fmt.Errorf("relatorio: identificar empresas sem books: %w", err)
	}
	return dto.FromEmpresas(list), nil
}

func (s *Service) empresasSemBooks(ctx context.Context, iv periodo.Intervalo) ([]*entity.Empresa, error) {
	ativas, err := s.empresas.ListByStatus(ctx, entity.StatusAtivo)
	if err != nil {
		return nil, fmt.Errorf("empresas ativas: %w", err)
	}
	if len(ativas) == 0 {
		return []*entity.Empresa{}, nil
	}

	enviados, err := s.historico.Search(ctx, clausulasMes(iv, entity.DisparoEnviado))
	if err != nil {
		return nil, fmt.Errorf("disparos enviados: %w", err)
	}
	cobertas := make(map[string]struct{}, len(enviados))
	for _, d := range enviados {
		cobertas[d.EmpresaID] = struct{}{}
	}

	out := make([]*entity.Empresa, 0, len(ativas))
	for _, e := range ativas {
		if !e.Ativa() {
			continue
		}
		if _, ok := cobertas[e.ID]; !ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// clausulasMes filtra por status dentro da janela inclusiva do mês.
func clausulasMes(iv periodo.Intervalo, status string) []repository.Clausula {
	return []repository.Clausula{
		repository.Eq(repository.CampoStatus, status),
		repository.Gte(repository.CampoDataDisparo, iv.Inicio),
		repository.Lte(repository.CampoDataDisparo, iv.Fim),
	}
}
