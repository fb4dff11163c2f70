package http

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/application/relatorio"
	"github.com/jhoicas/painel-books-api/internal/domain/periodo"
)

// RelatorioPDFGenerator renderiza o relatório mensal em PDF.
type RelatorioPDFGenerator interface {
	GenerateRelatorioMensalPDF(ctx context.Context, r *dto.RelatorioMensalDTO) ([]byte, error)
}

// RelatorioHandler expõe as consultas do painel de books.
type RelatorioHandler struct {
	svc      *relatorio.Service
	pdf      RelatorioPDFGenerator
	validate *validator.Validate
}

// NewRelatorioHandler constrói o handler. pdf pode ser nil: a rota de PDF responde 501.
func NewRelatorioHandler(svc *relatorio.Service, pdf RelatorioPDFGenerator) *RelatorioHandler {
	return &RelatorioHandler{svc: svc, pdf: pdf, validate: validator.New()}
}

// Metricas godoc
// @Summary      Métricas mensais de disparo de books
// @Tags         relatorios
// @Produce      json
// @Param        mes  query  int  false  "Mês (1-12). Default: mês corrente."
// @Param        ano  query  int  false  "Ano. Default: ano corrente."
// @Success      200  {object}  dto.RelatorioMetricasDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/relatorios/metricas [get]
func (h *RelatorioHandler) Metricas(c *fiber.Ctx) error {
	mes, ano, err := mesAno(c, h.svc.Agora())
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.svc.CalcularMetricasMensais(c.Context(), mes, ano)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// EmpresasSemBooks lista empresas ativas sem envio no mês.
func (h *RelatorioHandler) EmpresasSemBooks(c *fiber.Ctx) error {
	mes, ano, err := mesAno(c, h.svc.Agora())
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.svc.IdentificarEmpresasSemBooks(c.Context(), mes, ano)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list, "total": len(list)})
}

// Historico godoc
// @Summary      Histórico detalhado de disparos
// @Description  Filtros combinam por AND. Por padrão só entram disparos de empresas ativas.
// @Tags         relatorios
// @Produce      json
// @Param        empresa_id          query  string  false  "Empresa"
// @Param        empresa_ids         query  string  false  "Empresas, separadas por vírgula"
// @Param        colaborador_id      query  string  false  "Colaborador"
// @Param        status              query  string  false  "enviado,falhou,agendado,cancelado"
// @Param        data_inicio         query  string  false  "YYYY-MM-DD"
// @Param        data_fim            query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        mes                 query  int     false  "Mês (exige ano)"
// @Param        ano                 query  int     false  "Ano"
// @Param        apenas_com_falhas   query  bool    false  "Somente falhas"
// @Param        apenas_com_sucesso  query  bool    false  "Somente enviados"
// @Param        incluir_inativos    query  bool    false  "Inclui empresas inativas"
// @Success      200  {object}  object{data=[]dto.HistoricoDisparoDTO,total=int}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/historico [get]
func (h *RelatorioHandler) Historico(c *fiber.Ctx) error {
	f, err := filtroFromQuery(c, h.svc.Location())
	if err != nil {
		return respondError(c, err)
	}
	if err := h.validate.Struct(f); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	list, err := h.svc.BuscarHistoricoDetalhado(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list, "total": len(list)})
}

// Mensal devolve o relatório mensal completo.
func (h *RelatorioHandler) Mensal(c *fiber.Ctx) error {
	mes, ano, err := mesAno(c, h.svc.Agora())
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.svc.GerarRelatorioMensal(c.Context(), mes, ano)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(r)
}

// MensalPDF godoc
// @Summary      Relatório mensal em PDF
// @Tags         relatorios
// @Produce      application/pdf
// @Param        mes  query  int  false  "Mês (1-12)"
// @Param        ano  query  int  false  "Ano"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/mensal/pdf [get]
func (h *RelatorioHandler) MensalPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{
			Code: "NOT_IMPLEMENTED", Message: "geração de PDF não configurada",
		})
	}
	mes, ano, err := mesAno(c, h.svc.Agora())
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.svc.GerarRelatorioMensal(c.Context(), mes, ano)
	if err != nil {
		return respondError(c, err)
	}
	b, err := h.pdf.GenerateRelatorioMensalPDF(c.Context(), r)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="relatorio_books_%02d_%d.pdf"`, mes, ano))
	return c.Send(b)
}

// Performance estatísticas do período [data_inicio, data_fim].
// Sem datas, usa do início do mês corrente até agora.
func (h *RelatorioHandler) Performance(c *fiber.Ctx) error {
	loc := h.svc.Location()
	agora := h.svc.Agora()
	inicio, err := queryData(c, "data_inicio", loc, false)
	if err != nil {
		return respondError(c, err)
	}
	fim, err := queryData(c, "data_fim", loc, true)
	if err != nil {
		return respondError(c, err)
	}
	if inicio == nil {
		iv, _ := periodo.Mes(int(agora.Month()), agora.Year(), loc)
		inicio = &iv.Inicio
	}
	if fim == nil {
		fim = &agora
	}
	st, err := h.svc.BuscarEstatisticasPerformance(c.Context(), *inicio, *fim)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// HistoricoEmpresa histórico dos últimos N meses de uma empresa.
func (h *RelatorioHandler) HistoricoEmpresa(c *fiber.Ctx) error {
	meses, err := queryInt(c, "meses", 0)
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.svc.BuscarHistoricoEmpresa(c.Context(), c.Params("id"), meses)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(r)
}

// ColaboradoresFalhas ranking de falhas por colaborador.
func (h *RelatorioHandler) ColaboradoresFalhas(c *fiber.Ctx) error {
	limite, err := queryInt(c, "limite", 0)
	if err != nil {
		return respondError(c, err)
	}
	meses, err := queryInt(c, "meses", 0)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.svc.BuscarColaboradoresComFalhas(c.Context(), limite, meses)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": list, "total": len(list)})
}

// Exportar godoc
// @Summary      Linhas planas para exportação do histórico
// @Tags         relatorios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ExportConfigRequest  true  "Formato e filtros"
// @Success      200   {object}  dto.ExportacaoDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/relatorios/exportar [post]
func (h *RelatorioHandler) Exportar(c *fiber.Ctx) error {
	var req dto.ExportConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo JSON inválido")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.svc.ExportarDados(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
