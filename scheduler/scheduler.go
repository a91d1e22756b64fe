// Package scheduler provides automated disease database rebuilds and health
// monitoring. It drives the parser on a daily cron, swaps the result into
// the data container and optionally persists it to SQLite and the JSON
// output file.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/medgenio/omim-medgen-api/config"
	"github.com/medgenio/omim-medgen-api/interfaces"
	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/metrics"
	"github.com/medgenio/omim-medgen-api/omimparser"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
	"github.com/medgenio/omim-medgen-api/storage"
	"github.com/medgenio/omim-medgen-api/validation"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles database rebuilds and health monitoring using
// dependency injection.
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	cfg       *config.Config
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, cfg *config.Config) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		cfg:       cfg,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial build and schedules daily rebuilds at 06:00.
func (s *Scheduler) Start() error {
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.updateData(); err != nil {
			logging.Error("Failed to update data", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule updates", "error", err)
		return fmt.Errorf("failed to schedule updates: %w", err)
	}

	s.scheduler.StartAsync()

	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// updateData performs a complete database rebuild.
func (s *Scheduler) updateData() error {
	// Prevent concurrent updates
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting database rebuild")
	start := time.Now()

	newDiseases, err := s.parser.ParseAllDiseases()
	if err != nil {
		logging.Error("Failed to build disease database", "error", err)
		return fmt.Errorf("failed to build disease database: %w", err)
	}

	byCUI := make(map[string]entities.DiseaseEntry, len(newDiseases))
	byOmimID := make(map[string][]entities.DiseaseEntry)
	for i := range newDiseases {
		byCUI[newDiseases[i].MedgenConceptID] = newDiseases[i]
		byOmimID[newDiseases[i].OmimID] = append(byOmimID[newDiseases[i].OmimID], newDiseases[i])
	}

	validator := validation.NewDataValidator()
	report := validator.ReportDataQuality(newDiseases)

	if len(report.DuplicateConceptIDs) > 0 {
		logging.Warn("Duplicate concept ids detected",
			"total", len(report.DuplicateConceptIDs),
			"concept_ids", report.DuplicateConceptIDs,
		)
	}
	if report.EntriesWithInvalidCUI > 0 {
		logging.Warn("Entries with malformed concept ids", "count", report.EntriesWithInvalidCUI)
	}
	if report.EntriesWithInvalidOmim > 0 {
		logging.Warn("Entries with non-numeric MIM numbers", "count", report.EntriesWithInvalidOmim)
	}
	logging.Info("Data quality report",
		"entries_without_info", report.EntriesWithoutInfo,
		"omim_ids_with_multiple_concepts", len(report.DuplicateOmimIDs))

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(newDiseases, byCUI, byOmimID)

	if err := omimparser.WriteDatabase(newDiseases, s.cfg.OutputFile); err != nil {
		logging.Error("Failed to write JSON database", "error", err)
	}

	if s.cfg.DatabaseDSN != "" {
		if err := s.persistToDatabase(newDiseases); err != nil {
			logging.Error("Failed to persist diseases to SQLite", "error", err)
		}
	}

	elapsed := time.Since(start)
	metrics.DiseaseEntriesTotal.Set(float64(len(newDiseases)))
	metrics.DatabaseBuildDuration.Observe(elapsed.Seconds())

	logging.Info("Database rebuild completed", "duration", elapsed.String(), "disease_count", len(newDiseases))

	return nil
}

// persistToDatabase mirrors the build into the configured SQLite database.
func (s *Scheduler) persistToDatabase(diseases []entities.DiseaseEntry) error {
	db, err := storage.NewDB(s.cfg.DatabaseDSN, s.cfg.Env == "dev")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn("Failed to close database", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := storage.CreateSchema(ctx, db); err != nil {
		return err
	}
	if err := storage.ReplaceAll(ctx, db, diseases); err != nil {
		return err
	}

	logging.Info("Diseases persisted to SQLite", "dsn", s.cfg.DatabaseDSN, "count", len(diseases))
	return nil
}

// startHealthMonitoring warns when the data has gone stale.
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Data hasn't been updated in over 25 hours")
			}
		}
	}()
}
