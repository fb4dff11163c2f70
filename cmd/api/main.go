package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-books-api/docs"
	"github.com/jhoicas/painel-books-api/internal/application/disparo"
	"github.com/jhoicas/painel-books-api/internal/application/relatorio"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
	"github.com/jhoicas/painel-books-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/painel-books-api/internal/infrastructure/pdf"
	"github.com/jhoicas/painel-books-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/painel-books-api/internal/interfaces/http"
	"github.com/jhoicas/painel-books-api/pkg/config"
	"github.com/jhoicas/painel-books-api/pkg/logger"
)

// backend agrupa os portos de persistência escolhidos por DB_DRIVER.
type backend struct {
	empresas      repository.EmpresaRepository
	colaboradores repository.ColaboradorRepository
	historico     repository.HistoricoDisparoRepository
	controles     repository.ControleMensalRepository
	txRunner      disparo.TxRunner
	health        func(ctx context.Context) error
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Str("timezone", cfg.Report.Timezone).
		Msg("iniciando aplicação")

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("fuso dos relatórios")
	}

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, loc)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o backend")
	}
	defer be.close()

	relatorioSvc := relatorio.NewService(
		be.empresas, be.colaboradores, be.historico, be.controles,
		relatorio.WithLocation(loc),
		relatorio.WithLogger(log.Component("relatorio")),
		relatorio.WithDefaults(cfg.Report.HistoryMonths, cfg.Report.FailuresLimit, cfg.Report.FailuresMonths),
	)
	registrarUC := disparo.NewRegistrarUseCase(be.txRunner, be.empresas, loc, log.Component("disparo"))

	// PDF: relatório mensal para impressão
	pdfGenerator := infrapdf.NewMarotoRelatorioGenerator(loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	httpLog := log.Component("http")
	app.Use(httpRouter.RequestLogger(httpLog))
	app.Use(httpRouter.Recovery(httpLog))

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       "Painel de Books API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Relatorio:    relatorioSvc,
		RelatorioPDF: pdfGenerator,
		Registrar:    registrarUC,
		Health:       be.health,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

func openBackend(ctx context.Context, cfg *config.Config, loc *time.Location) (*backend, error) {
	if cfg.DB.Driver == config.DriverMemory {
		store := memory.NewStore()
		memory.Seed(store, time.Now().In(loc))
		return &backend{
			empresas:      memory.NewEmpresaRepository(store),
			colaboradores: memory.NewColaboradorRepository(store),
			historico:     memory.NewHistoricoDisparoRepository(store),
			controles:     memory.NewControleMensalRepository(store),
			txRunner:      memory.NewTxRunner(store),
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		empresas:      postgres.NewEmpresaRepository(pool),
		colaboradores: postgres.NewColaboradorRepository(pool),
		historico:     postgres.NewHistoricoDisparoRepository(pool),
		controles:     postgres.NewControleMensalRepository(pool),
		txRunner:      postgres.NewTxRunner(pool),
		health:        pool.Ping,
		close:         pool.Close,
	}, nil
}
