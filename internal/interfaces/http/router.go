package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/painel-books-api/internal/application/disparo"
	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/application/relatorio"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Relatorio    *relatorio.Service
	RelatorioPDF RelatorioPDFGenerator
	Registrar    *disparo.RegistrarUseCase
	// Health verifica o backend; nil responde sempre ok.
	Health func(ctx context.Context) error
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Health))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Relatórios (somente leitura)
	rel := api.Group("/relatorios")
	rh := NewRelatorioHandler(deps.Relatorio, deps.RelatorioPDF)
	rel.Get("/metricas", rh.Metricas)
	rel.Get("/empresas-sem-books", rh.EmpresasSemBooks)
	rel.Get("/historico", rh.Historico)
	rel.Get("/mensal", rh.Mensal)
	rel.Get("/mensal/pdf", rh.MensalPDF)
	rel.Get("/performance", rh.Performance)
	rel.Get("/empresas/:id/historico", rh.HistoricoEmpresa)
	rel.Get("/colaboradores-falhas", rh.ColaboradoresFalhas)
	rel.Post("/exportar", rh.Exportar)

	// Disparos
	if deps.Registrar != nil {
		dh := NewDisparoHandler(deps.Registrar)
		api.Post("/disparos", dh.Registrar)
	}
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: "UNAVAILABLE", Message: err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
