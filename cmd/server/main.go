package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-card-keeper/internal/adapter"
	"github.com/MKhiriev/go-card-keeper/internal/config"
	myHTTP "github.com/MKhiriev/go-card-keeper/internal/handler/http"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/server"
	"github.com/MKhiriev/go-card-keeper/internal/service"
	"github.com/MKhiriev/go-card-keeper/internal/store"
	"github.com/MKhiriev/go-card-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("card-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, *cfg, log)

	llm, err := adapter.NewLLMRunner(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating llm adapter")
	}

	search, err := adapter.NewSearchEngine(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating search adapter")
	}

	handler := myHTTP.NewHandler(services, llm, search, adapter.NewPlainTextExtractor(), log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(repositories, cfg.Workers, log).Run(ctx)

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
