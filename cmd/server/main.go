package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-lead-keeper/internal/cache"
	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/handler"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/server"
	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("crm-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("driver", cfg.Storage.DB.Driver()).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Bool("cache_enabled", cfg.Storage.Cache.Address != "").
		Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if !cfg.Storage.DB.SkipMigrations {
		if err = db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("error applying migrations")
		}
		log.Info().Msg("migrations applied")
	}

	repositories := store.NewRepositories(db, log)

	dashboardCache := cache.NewDashboardCache(cfg.Storage.Cache, log)
	defer dashboardCache.Close()

	services, err := service.NewServices(repositories, dashboardCache, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
