package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/vivienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/vivienda-api/pkg/config"
	"github.com/jhoicas/vivienda-api/pkg/logger"
)

// migrator es lo común a los migradores de PostgreSQL y SQLite.
type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "uso: migrate [up|down|version]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	mg, closeFn, err := newMigrator(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar migrador")
	}
	defer closeFn()

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().
		Str("store", cfg.Store.Driver).
		Str("cmd", cmd).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("migraciones")
}

func newMigrator(cfg *config.Config) (migrator, func(), error) {
	if cfg.Store.Driver == config.StoreDriverSQLite {
		db, err := sqlite.Open(context.Background(), cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		mg, err := sqlite.NewMigrator(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return mg, func() { _ = db.Close() }, nil
	}
	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		return nil, nil, err
	}
	return mg, func() { _ = mg.Close() }, nil
}
