package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/vivienda-api/docs"
	"github.com/jhoicas/vivienda-api/internal/application/usecase"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/vivienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/vivienda-api/internal/interfaces/http"
	"github.com/jhoicas/vivienda-api/pkg/config"
	"github.com/jhoicas/vivienda-api/pkg/logger"
	"github.com/jhoicas/vivienda-api/pkg/metrics"
)

// @title                       Vivienda API
// @version                     1.0
// @description                 Administración de programas de subsidio de vivienda y usuarios.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	programRepo, userRepo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar almacenamiento")
	}
	defer closeStore()

	programUC := usecase.NewProgramUseCase(programRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	reportUC := usecase.NewReportUseCase(programUC, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	if cfg.Metrics.Enabled {
		app.Use(httpRouter.MetricsMiddleware())
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(metrics.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vivienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: /api sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		ProgramUC: programUC,
		UserUC:    userUC,
		ReportUC:  reportUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre el almacenamiento configurado, aplica migraciones si corresponde
// y devuelve los repositorios junto con la función de cierre.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.ProgramRepository, repository.UserRepository, func(), error) {
	if cfg.Store.Driver == config.StoreDriverSQLite {
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Migrate.AutoMigrate {
			if err := sqlite.Migrate(db); err != nil {
				_ = db.Close()
				return nil, nil, nil, err
			}
			log.Info().Str("path", cfg.Store.SQLitePath).Msg("migraciones SQLite aplicadas")
		}
		return sqlite.NewProgramRepository(db), sqlite.NewUserRepository(db), closer(db), nil
	}

	if cfg.Migrate.AutoMigrate {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
		if err != nil {
			return nil, nil, nil, err
		}
		err = mg.Up()
		_ = mg.Close()
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Msg("migraciones PostgreSQL aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	return postgres.NewProgramRepository(pool), postgres.NewUserRepository(pool), pool.Close, nil
}

func closer(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
