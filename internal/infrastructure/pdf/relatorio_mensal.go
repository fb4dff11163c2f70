// Package pdf gera a versão impressa do relatório mensal de books.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: título + mês de referência │ data de emissão    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: empresas │ colaboradores │ enviados │ taxa    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESAS SEM BOOKS: lista simples                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÚLTIMOS DISPAROS: Data | Empresa | Colaborador | Status    │
//	│  CONTROLE MENSAL: Empresa | Status | Processado em          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/application/relatorio"
)

// MaxDisparos limita a tabela de últimos disparos.
const MaxDisparos = 40

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 94, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRelatorioGenerator gera o PDF do relatório mensal com Maroto v2.
type MarotoRelatorioGenerator struct {
	loc *time.Location
	now func() time.Time
}

// NewMarotoRelatorioGenerator constrói o gerador; loc nil usa UTC.
func NewMarotoRelatorioGenerator(loc *time.Location) *MarotoRelatorioGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoRelatorioGenerator{loc: loc, now: time.Now}
}

// GenerateRelatorioMensalPDF devolve os bytes do PDF do relatório.
func (g *MarotoRelatorioGenerator) GenerateRelatorioMensalPDF(_ context.Context, r *dto.RelatorioMensalDTO) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: relatório vazio")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Mensal de Books - "+r.Rotulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.cabecalhoRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(indicadoresRow(&r.Metricas))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(secaoRow(fmt.Sprintf("EMPRESAS SEM BOOKS (%d)", len(r.Metricas.EmpresasSemBooks))))
	m.AddRows(semBooksRows(r.Metricas.EmpresasSemBooks)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(secaoRow("ÚLTIMOS DISPAROS"))
	m.AddRows(cabecalhoTabela([]string{"Data", "Empresa", "Colaborador", "Status"}, []int{2, 4, 4, 2}))
	m.AddRows(g.disparoRows(r.Historico)...)

	if len(r.ControlesMensais) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(secaoRow("CONTROLE MENSAL"))
		m.AddRows(cabecalhoTabela([]string{"Empresa", "Status", "Processado em"}, []int{6, 3, 3}))
		m.AddRows(g.controleRows(r.ControlesMensais)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func (g *MarotoRelatorioGenerator) cabecalhoRow(r *dto.RelatorioMensalDTO) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("RELATÓRIO MENSAL DE BOOKS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Referência: "+r.Rotulo, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido em", props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
			text.New(g.now().In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func indicadoresRow(m *dto.RelatorioMetricasDTO) core.Row {
	kpi := func(titulo, valor string, cor *props.Color) core.Col {
		return col.New(3).Add(
			text.New(titulo, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: cor, Top: 6}),
		)
	}
	return row.New(16).Add(
		kpi("Empresas ativas", fmt.Sprintf("%d / %d", m.EmpresasAtivas, m.TotalEmpresas), colorPrimary),
		kpi("Colaboradores ativos", fmt.Sprintf("%d / %d", m.ColaboradoresAtivos, m.TotalColaboradores), colorPrimary),
		kpi("Enviados / falhas", fmt.Sprintf("%d / %d", m.EmailsEnviadosMes, m.EmailsFalharamMes), colorPrimary),
		kpi("Taxa de sucesso", m.TaxaSucessoMes.StringFixed(2)+"%", colorPrimary),
	)
}

func secaoRow(titulo string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func cabecalhoTabela(rotulos []string, tamanhos []int) core.Row {
	cols := make([]core.Col, 0, len(rotulos))
	for i, r := range rotulos {
		cols = append(cols, col.New(tamanhos[i]).Add(text.New(r, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func semBooksRows(empresas []dto.EmpresaResumoDTO) []core.Row {
	if len(empresas) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Todas as empresas ativas receberam o book no mês.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(empresas))
	for _, e := range empresas {
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(text.New(e.NomeCompleto, props.Text{Size: 8, Top: 0.5, Left: 2})),
			col.New(4).Add(text.New(nonEmpty(e.EmailGestor, "-"), props.Text{Size: 8, Top: 0.5, Color: colorGray})),
		))
	}
	return rows
}

func (g *MarotoRelatorioGenerator) disparoRows(historico []dto.HistoricoDisparoDTO) []core.Row {
	if len(historico) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Nenhum disparo no mês.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	n := min(len(historico), MaxDisparos)
	rows := make([]core.Row, 0, n+1)
	for _, h := range historico[:n] {
		var empresa, colaborador string
		if h.Empresa != nil {
			empresa = h.Empresa.NomeCompleto
		}
		if h.Colaborador != nil {
			colaborador = h.Colaborador.NomeCompleto
		}
		cor := colorGray
		if h.Status == "falhou" {
			cor = colorDanger
		}
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(h.DataDisparo.In(g.loc).Format("02/01 15:04"), props.Text{Size: 7.5, Top: 0.5, Left: 1})),
			col.New(4).Add(text.New(empresa, props.Text{Size: 7.5, Top: 0.5, Left: 1})),
			col.New(4).Add(text.New(colaborador, props.Text{Size: 7.5, Top: 0.5, Left: 1})),
			col.New(2).Add(text.New(relatorio.StatusLabel(h.Status), props.Text{Size: 7.5, Top: 0.5, Left: 1, Color: cor})),
		))
	}
	if resto := len(historico) - n; resto > 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("... e mais %d disparos (veja a exportação completa).", resto), props.Text{
				Size: 7, Color: colorGray, Top: 1, Align: align.Right,
			}),
		)))
	}
	return rows
}

func (g *MarotoRelatorioGenerator) controleRows(controles []dto.ControleMensalDTO) []core.Row {
	rows := make([]core.Row, 0, len(controles))
	for _, c := range controles {
		nome := c.EmpresaID
		if c.Empresa != nil {
			nome = c.Empresa.NomeCompleto
		}
		processado := "-"
		if c.DataProcessamento != nil {
			processado = c.DataProcessamento.In(g.loc).Format("02/01/2006 15:04")
		}
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(nome, props.Text{Size: 7.5, Top: 0.5, Left: 1})),
			col.New(3).Add(text.New(c.Status, props.Text{Size: 7.5, Top: 0.5, Left: 1})),
			col.New(3).Add(text.New(processado, props.Text{Size: 7.5, Top: 0.5, Left: 1, Color: colorGray})),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
