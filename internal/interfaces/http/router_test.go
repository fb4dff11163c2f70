package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-books-api/internal/application/disparo"
	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/application/relatorio"
	"github.com/jhoicas/painel-books-api/internal/infrastructure/memory"
	"github.com/jhoicas/painel-books-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/painel-books-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// agora fixa o "mês corrente" em abril/2024; o seed grava março e abril.
var agora = time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)

type lista[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// buildTestApp monta a aplicação completa sobre o store em memória populado.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	memory.Seed(store, agora)

	svc := relatorio.NewService(
		memory.NewEmpresaRepository(store),
		memory.NewColaboradorRepository(store),
		memory.NewHistoricoDisparoRepository(store),
		memory.NewControleMensalRepository(store),
		relatorio.WithLocation(time.UTC),
		relatorio.WithClock(func() time.Time { return agora }),
	)
	registrar := disparo.NewRegistrarUseCase(
		memory.NewTxRunner(store),
		memory.NewEmpresaRepository(store),
		time.UTC,
		zerolog.Nop(),
	)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	app.Use(apphttp.Recovery(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Relatorio:    svc,
		RelatorioPDF: pdf.NewMarotoRelatorioGenerator(time.UTC),
		Registrar:    registrar,
	})
	return app, store
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas e empresas sem books
// ──────────────────────────────────────────────────────────────────────────────

func TestMetricas_MesInformado(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/metricas?mes=3&ano=2024", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := decodeBody[dto.RelatorioMetricasDTO](t, resp)
	assert.Equal(t, 4, m.TotalEmpresas)
	assert.Equal(t, 3, m.EmpresasAtivas)
	assert.Equal(t, 5, m.TotalColaboradores)
	assert.Equal(t, 4, m.ColaboradoresAtivos)
	assert.Equal(t, 3, m.EmailsEnviadosMes)
	assert.Equal(t, 2, m.EmailsFalharamMes)
	assert.True(t, decimal.NewFromInt(60).Equal(m.TaxaSucessoMes), "taxa = %s", m.TaxaSucessoMes)
	require.Len(t, m.EmpresasSemBooks, 1)
	assert.Equal(t, "emp-3", m.EmpresasSemBooks[0].ID)
}

func TestMetricas_SemParametrosUsaMesCorrente(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/metricas", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := decodeBody[dto.RelatorioMetricasDTO](t, resp)
	assert.Equal(t, 1, m.EmailsEnviadosMes)
	assert.Equal(t, 1, m.EmailsFalharamMes)
	assert.True(t, decimal.NewFromInt(50).Equal(m.TaxaSucessoMes))
}

func TestMetricas_ParametrosInvalidos(t *testing.T) {
	app, _ := buildTestApp(t)

	cases := []struct {
		name   string
		target string
	}{
		{"mês fora do intervalo", "/api/relatorios/metricas?mes=13&ano=2024"},
		{"mês não numérico", "/api/relatorios/metricas?mes=marco&ano=2024"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tc.target, nil)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			e := decodeBody[dto.ErrorResponse](t, resp)
			assert.Equal(t, "VALIDATION", e.Code)
		})
	}
}

func TestEmpresasSemBooks(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/empresas-sem-books?mes=4&ano=2024", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[lista[dto.EmpresaResumoDTO]](t, resp)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "emp-2", out.Data[0].ID)
	assert.Equal(t, "emp-3", out.Data[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestHistorico_Filtros(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/historico?mes=3&ano=2024&status=falhou", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[lista[dto.HistoricoDisparoDTO]](t, resp)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "disp-04", out.Data[0].ID, "mais recente primeiro")
	assert.Equal(t, "disp-03", out.Data[1].ID)
	require.NotNil(t, out.Data[0].Empresa)
	assert.Equal(t, "Gama Engenharia", out.Data[0].Empresa.NomeCompleto)
}

func TestHistorico_RespostaEnvelopada(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/historico?mes=3&ano=2024", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw := decodeBody[map[string]json.RawMessage](t, resp)
	assert.Len(t, raw, 2)
	assert.Contains(t, raw, "data")
	assert.JSONEq(t, "4", string(raw["total"]))
}

func TestHistorico_InativosSoComFlag(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/historico?empresa_id=emp-4", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decodeBody[lista[dto.HistoricoDisparoDTO]](t, resp).Total)

	resp = doRequest(t, app, http.MethodGet, "/api/relatorios/historico?empresa_id=emp-4&incluir_inativos=true", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodeBody[lista[dto.HistoricoDisparoDTO]](t, resp).Total)
}

func TestHistorico_ErrosDeEntrada(t *testing.T) {
	app, _ := buildTestApp(t)

	cases := []struct {
		name   string
		target string
	}{
		{"flags exclusivas", "/api/relatorios/historico?apenas_com_falhas=true&apenas_com_sucesso=true"},
		{"data inválida", "/api/relatorios/historico?data_inicio=01/03/2024"},
		{"booleano inválido", "/api/relatorios/historico?incluir_inativos=talvez"},
		{"status desconhecido", "/api/relatorios/historico?status=enviado,perdido"},
		{"mês sem ano", "/api/relatorios/historico?mes=3"},
		{"ano sem mês", "/api/relatorios/historico?ano=2024"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tc.target, nil)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHistoricoEmpresa(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/empresas/emp-2/historico", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[dto.HistoricoEmpresaDTO](t, resp)
	assert.Equal(t, "emp-2", out.Empresa.ID)
	assert.Len(t, out.Historico, 3)
	assert.Equal(t, 1, out.Estatisticas.Sucessos)
	assert.Equal(t, 2, out.Estatisticas.Falhas)
	require.NotNil(t, out.Estatisticas.UltimoEnvio)

	resp = doRequest(t, app, http.MethodGet, "/api/relatorios/empresas/nao-existe/historico", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Relatório mensal, performance e falhas
// ──────────────────────────────────────────────────────────────────────────────

func TestMensal(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/mensal?mes=3&ano=2024", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	r := decodeBody[dto.RelatorioMensalDTO](t, resp)
	assert.Equal(t, 3, r.Mes)
	assert.Equal(t, 2024, r.Ano)
	assert.Len(t, r.Historico, 4, "disparo da empresa inativa fica de fora")
	assert.Len(t, r.ControlesMensais, 2)
}

func TestMensalPDF(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/mensal/pdf?mes=3&ano=2024", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "relatorio_books_03_2024.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestMensalPDF_SemGerador(t *testing.T) {
	store := memory.NewStore()
	svc := relatorio.NewService(
		memory.NewEmpresaRepository(store),
		memory.NewColaboradorRepository(store),
		memory.NewHistoricoDisparoRepository(store),
		memory.NewControleMensalRepository(store),
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Relatorio: svc})

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/mensal/pdf", nil)
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/disparos", map[string]string{"empresa_id": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "rota de disparos só existe com o caso de uso")
}

func TestPerformance(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/performance?data_inicio=2024-03-01&data_fim=2024-03-31", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	st := decodeBody[dto.EstatisticasPerformanceDTO](t, resp)
	assert.Equal(t, 5, st.TotalDisparos)
	assert.Equal(t, 3, st.Sucessos)
	assert.Equal(t, 2, st.Falhas)
	assert.Equal(t, 4, st.EmpresasAtendidas)
	assert.Equal(t, 5, st.ColaboradoresAtendidos)
}

func TestPerformance_SemDatasUsaMesCorrente(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/performance", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, decodeBody[dto.EstatisticasPerformanceDTO](t, resp).TotalDisparos)
}

func TestColaboradoresFalhas(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/relatorios/colaboradores-falhas?limite=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[lista[dto.ColaboradorFalhasDTO]](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "col-5", out.Data[0].Colaborador.ID)
	assert.Equal(t, "emp-2", out.Data[0].Empresa.ID)
	assert.Equal(t, 2, out.Data[0].TotalFalhas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportação
// ──────────────────────────────────────────────────────────────────────────────

func TestExportar(t *testing.T) {
	app, _ := buildTestApp(t)

	body := dto.ExportConfigRequest{
		Formato:         dto.FormatoCSV,
		Filtros:         dto.FiltroHistorico{Mes: 3, Ano: 2024},
		IncluirMetricas: true,
	}
	resp := doRequest(t, app, http.MethodPost, "/api/relatorios/exportar", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[dto.ExportacaoDTO](t, resp)
	assert.Equal(t, "historico_disparos_2024-04-15_03_2024.csv", out.NomeArquivo)
	assert.Len(t, out.Linhas, 5, "resumo + 4 disparos")
}

func TestExportar_Invalido(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/relatorios/exportar", map[string]string{"formato": "xml"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody[dto.ErrorResponse](t, resp).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/relatorios/exportar", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, r.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de disparos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarDisparo(t *testing.T) {
	app, _ := buildTestApp(t)

	quando := time.Date(2024, time.April, 20, 10, 0, 0, 0, time.UTC)
	col := "col-3"
	body := dto.RegistrarDisparoRequest{
		EmpresaID:     "emp-3",
		ColaboradorID: &col,
		DataDisparo:   &quando,
		Status:        "enviado",
		Assunto:       "Book abril",
	}
	resp := doRequest(t, app, http.MethodPost, "/api/disparos", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decodeBody[dto.RegistrarDisparoResponse](t, resp)
	assert.NotEmpty(t, out.Disparo.ID)
	require.NotNil(t, out.ControleMensal)
	assert.Equal(t, "concluido", out.ControleMensal.Status)

	// Gama deixa de aparecer entre as empresas sem books de abril.
	resp = doRequest(t, app, http.MethodGet, "/api/relatorios/empresas-sem-books?mes=4&ano=2024", nil)
	out2 := decodeBody[lista[dto.EmpresaResumoDTO]](t, resp)
	require.Equal(t, 1, out2.Total)
	assert.Equal(t, "emp-2", out2.Data[0].ID)
}

func TestRegistrarDisparo_Erros(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/disparos", map[string]string{"empresa_id": "emp-1", "status": "perdido"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/disparos", map[string]string{"empresa_id": "emp-x", "status": "enviado"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infra
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthEMetrics(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Gera ao menos uma observação antes de ler /metrics.
	doRequest(t, app, http.MethodGet, "/api/relatorios/metricas?mes=3&ano=2024", nil)
	resp = doRequest(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "painel_books_relatorio")
}

func TestRotaInexistente(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/nao-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRequestLogger_RegistraRequisicaoComPanic(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
	app.Use(apphttp.Recovery(zerolog.Nop()))
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp := doRequest(t, app, http.MethodGet, "/panic", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "uma linha de log: %s", buf.String())
	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/panic", entry["path"])
	assert.EqualValues(t, 500, entry["status"])
}

func TestRecovery(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.Recovery(zerolog.Nop()))
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp := doRequest(t, app, http.MethodGet, "/panic", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", decodeBody[dto.ErrorResponse](t, resp).Code)
}
