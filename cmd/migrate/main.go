// migrate aplica o revierte las migraciones embebidas del esquema.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [pasos]   (sin pasos revierte todo)
//	go run ./cmd/migrate version
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Offers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Offers-api/pkg/config"
	"github.com/jhoicas/Offers-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up | down [pasos] | version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})
	dsn := cfg.DB.ConnectionString()

	switch os.Args[1] {
	case "up":
		if err := postgres.ApplyMigrations(dsn); err != nil {
			log.Fatal().Err(err).Msg("migrate up")
		}
	case "down":
		steps := 0
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil || steps < 0 {
				log.Fatal().Str("pasos", os.Args[2]).Msg("pasos debe ser un entero positivo")
			}
		}
		if err := postgres.RollbackMigrations(dsn, steps); err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
	case "version":
	default:
		log.Fatal().Str("comando", os.Args[1]).Msg("comando desconocido")
	}

	v, dirty, err := postgres.MigrationVersion(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado del esquema")
}
