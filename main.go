package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medgenio/omim-medgen-api/config"
	"github.com/medgenio/omim-medgen-api/data"
	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/omimparser"
	"github.com/medgenio/omim-medgen-api/scheduler"
	"github.com/medgenio/omim-medgen-api/server"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks)

	sources, err := omimparser.LoadSourcesFile(cfg.SourcesFile)
	if err != nil {
		logging.Error("Failed to load sources config", "error", err)
		os.Exit(1)
	}
	// Explicit file paths from the environment win over the sources file
	if cfg.MappingFile != "" {
		sources.Mapping.File = cfg.MappingFile
	}
	if cfg.MgdefFile != "" {
		sources.Mgdef.File = cfg.MgdefFile
	}

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	parser := omimparser.NewDiseaseParser(sources, cfg.Download)

	sched := scheduler.NewScheduler(dataContainer, parser, cfg)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataContainer)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}
