package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/aleister1102/synopse/internal/api"
	"github.com/aleister1102/synopse/internal/archiver"
	"github.com/aleister1102/synopse/internal/config"
	"github.com/aleister1102/synopse/internal/datastore"
	"github.com/aleister1102/synopse/internal/differ"
	"github.com/aleister1102/synopse/internal/logger"
	"github.com/aleister1102/synopse/internal/seeder"
	"github.com/aleister1102/synopse/internal/synopsis"
)

func main() {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	seedFile := flag.String("seed", "", "Path to a YAML seed file. If set, the store is wiped and re-imported before serving.")
	archiveDir := flag.String("archive", "", "Export a Parquet history snapshot to this directory and exit.")
	addrOverride := flag.String("addr", "", "Listen address override, e.g. :9090 (takes precedence over config file).")
	flag.Parse()

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load config using path '%s': %v", *configFile, err)
	}
	if *addrOverride != "" {
		gCfg.ServerConfig.ListenAddress = *addrOverride
	}
	if *archiveDir != "" {
		gCfg.ArchiveConfig.BasePath = *archiveDir
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Configuration loaded and validated")

	store, err := datastore.NewLawStore(gCfg.StorageConfig.DatabasePath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open law store")
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seedFile != "" {
		if err := seeder.NewSeeder(store, zLogger).Import(*seedFile); err != nil {
			zLogger.Fatal().Err(err).Str("seed_file", *seedFile).Msg("Seed import failed")
		}
	}

	if *archiveDir != "" {
		historyArchiver, err := archiver.NewArchiverBuilder(zLogger).
			WithArchiveConfig(&gCfg.ArchiveConfig).
			WithSource(store).
			Build()
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to build archiver")
		}
		if _, err := historyArchiver.ExportHistory(ctx); err != nil {
			zLogger.Fatal().Err(err).Msg("History snapshot failed")
		}
		return
	}

	generator := synopsis.NewGeneratorBuilder(zLogger).
		WithDiffConfig(differ.DiffConfig{EnableSemanticCleanup: gCfg.DiffConfig.EnableSemanticCleanup}).
		Build()

	server, err := api.NewServerBuilder(zLogger).
		WithServerConfig(&gCfg.ServerConfig).
		WithStore(store).
		WithGenerator(generator).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build API server")
	}

	if err := server.Start(ctx); err != nil {
		zLogger.Fatal().Err(err).Msg("Server exited with error")
	}
	zLogger.Info().Msg("Shutdown complete")
}
