// Comando token: emite un JWT para un usuario ACTIVE existente, identificado por email.
// Uso: go run ./cmd/token -email admin@vivienda.gov.co
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/vivienda-api/internal/application/auth"
	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/vivienda-api/pkg/config"
	"github.com/jhoicas/vivienda-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del usuario")
	flag.Parse()
	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if !cfg.JWT.Enabled() {
		log.Fatal().Msg("JWT_SECRET vacío: no se puede firmar el token")
	}

	ctx := context.Background()
	users, closeFn, err := openUsers(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer closeFn()

	uc := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	out, err := uc.IssueToken(ctx, *email)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		log.Fatal().Str("email", *email).Msg("usuario no encontrado")
	case errors.Is(err, domain.ErrForbidden):
		log.Fatal().Str("email", *email).Msg("usuario inactivo")
	case err != nil:
		log.Fatal().Err(err).Msg("generar token")
	}
	log.Info().Str("user_id", out.UserID).Str("role", out.Role).Int("exp_minutes", out.ExpMinutes).Msg("token emitido")
	fmt.Println(out.Token)
}

func openUsers(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
	if cfg.Store.Driver == config.StoreDriverSQLite {
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewUserRepository(db), func() { _ = db.Close() }, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewUserRepository(pool), pool.Close, nil
}
