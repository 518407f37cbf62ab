// seed_superadmin crea (o promueve) la cuenta de administrador de plataforma a partir de
// SUPERADMIN_EMAIL y SUPERADMIN_PASSWORD.
//
// Uso: go run ./cmd/seed_superadmin
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Offers-api/internal/application/auth"
	"github.com/jhoicas/Offers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Offers-api/pkg/config"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_superadmin"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	user, created, err := auth.SeedSuperAdmin(ctx, postgres.NewUserRepository(pool), auth.SuperAdminInput{
		Email:     cfg.SuperAdmin.Email,
		Password:  cfg.SuperAdmin.Password,
		FirstName: cfg.SuperAdmin.FirstName,
		LastName:  cfg.SuperAdmin.LastName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear super-admin")
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Bool("created", created).Msg("super-admin listo")
}
