package relatorio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/periodo"
)

const tipoResumo, tipoDisparo = "RESUMO", "DISPARO"

// Rótulos de status exibidos na exportação.
var statusLabels = map[string]string{
	entity.DisparoEnviado:   "Enviado",
	entity.DisparoFalhou:    "Falhou",
	entity.DisparoAgendado:  "Agendado",
	entity.DisparoCancelado: "Cancelado",
}

var (
	colunasDetalhadas = []string{"Tipo", "Data do Disparo", "Empresa", "Colaborador", "E-mail", "Status", "Assunto", "Erro", "Cópias (CC)"}
	colunasSimples    = []string{"Tipo", "ID", "Data do Disparo", "Empresa ID", "Colaborador ID", "Status", "Assunto"}
)

var extensoes = map[string]string{
	dto.FormatoCSV:   ".csv",
	dto.FormatoExcel: ".xlsx",
	dto.FormatoPDF:   ".pdf",
}

// StatusLabel devolve o rótulo de exibição; status desconhecido volta sem alteração.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// ExportarDados prepara as linhas planas do histórico filtrado.
//
// Com IncluirDetalhes as linhas trazem rótulos legíveis (data local, status,
// nomes de empresa e colaborador); sem ele, os identificadores crus.
// Com IncluirMetricas e mês/ano nos filtros, uma linha de resumo entra no topo.
// A conversão para CSV/Excel/PDF fica com o consumidor.
func (s *Service) ExportarDados(ctx context.Context, cfg dto.ExportConfigRequest) (_ *dto.ExportacaoDTO, err error) {
	defer func(inicio time.Time) { observar("exportar_dados", inicio, err) }(time.Now())

	ext, ok := extensoes[cfg.Formato]
	if !ok {
		return nil, fmt.Errorf("relatorio: exportar dados: %w: formato %q", domain.ErrInvalidInput, cfg.Formato)
	}

	list, err := s.buscarHistorico(ctx, cfg.Filtros)
	if err != nil {
		return nil, fmt.Errorf("relatorio: exportar dados: %w", err)
	}

	colunas := colunasSimples
	if cfg.IncluirDetalhes {
		colunas = colunasDetalhadas
	}
	linhas := make([]map[string]string, 0, len(list)+1)

	porMes := cfg.Filtros.Mes != 0 && cfg.Filtros.Ano != 0
	if cfg.IncluirMetricas && porMes {
		m, err := s.CalcularMetricasMensais(ctx, cfg.Filtros.Mes, cfg.Filtros.Ano)
		if err != nil {
			return nil, fmt.Errorf("relatorio: exportar dados: %w", err)
		}
		linhas = append(linhas, linhaResumo(colunas, cfg.Filtros.Mes, cfg.Filtros.Ano, m))
	}

	for _, d := range list {
		if cfg.IncluirDetalhes {
			linhas = append(linhas, s.linhaDetalhada(d))
		} else {
			linhas = append(linhas, s.linhaSimples(d))
		}
	}

	nome := "historico_disparos_" + s.now().In(s.loc).Format("2006-01-02")
	if porMes {
		nome += fmt.Sprintf("_%02d_%d", cfg.Filtros.Mes, cfg.Filtros.Ano)
	}

	return &dto.ExportacaoDTO{
		NomeArquivo: nome + ext,
		Formato:     cfg.Formato,
		Colunas:     colunas,
		Linhas:      linhas,
	}, nil
}

func (s *Service) linhaDetalhada(d *entity.HistoricoDisparo) map[string]string {
	var empresa, colaborador, email string
	if d.Empresa != nil {
		empresa = d.Empresa.NomeCompleto
	}
	if d.Colaborador != nil {
		colaborador = d.Colaborador.NomeCompleto
		email = d.Colaborador.Email
	}
	return map[string]string{
		"Tipo":            tipoDisparo,
		"Data do Disparo": d.DataDisparo.In(s.loc).Format("02/01/2006 15:04"),
		"Empresa":         empresa,
		"Colaborador":     colaborador,
		"E-mail":          email,
		"Status":          StatusLabel(d.Status),
		"Assunto":         d.Assunto,
		"Erro":            d.ErroDetalhes,
		"Cópias (CC)":     strings.Join(d.EmailsCC, "; "),
	}
}

func (s *Service) linhaSimples(d *entity.HistoricoDisparo) map[string]string {
	var colaboradorID string
	if d.ColaboradorID != nil {
		colaboradorID = *d.ColaboradorID
	}
	return map[string]string{
		"Tipo":            tipoDisparo,
		"ID":              d.ID,
		"Data do Disparo": d.DataDisparo.In(s.loc).Format(time.RFC3339),
		"Empresa ID":      d.EmpresaID,
		"Colaborador ID":  colaboradorID,
		"Status":          d.Status,
		"Assunto":         d.Assunto,
	}
}

// linhaResumo distribui os textos do resumo pelas colunas após "Tipo".
func linhaResumo(colunas []string, mes, ano int, m *dto.RelatorioMetricasDTO) map[string]string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	taxa, _ := m.TaxaSucessoMes.Float64()
	textos := []string{
		"Resumo " + periodo.Rotulo(mes, ano),
		p.Sprintf("Empresas ativas: %d de %d", m.EmpresasAtivas, m.TotalEmpresas),
		p.Sprintf("Colaboradores ativos: %d de %d", m.ColaboradoresAtivos, m.TotalColaboradores),
		p.Sprintf("Taxa de sucesso: %.2f%%", taxa),
		p.Sprintf("Enviados: %d | Falhas: %d", m.EmailsEnviadosMes, m.EmailsFalharamMes),
		p.Sprintf("Empresas sem books: %d", len(m.EmpresasSemBooks)),
	}
	linha := map[string]string{"Tipo": tipoResumo}
	for i, col := range colunas[1:] {
		if i < len(textos) {
			linha[col] = textos[i]
		} else {
			linha[col] = ""
		}
	}
	return linha
}
