// Command omimbuild is the one-shot builder: it joins the gzipped
// MedGen/HPO/OMIM mapping file with the MGDEF concept definitions and
// writes the disease database as a JSON array.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/omimparser"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
	"github.com/medgenio/omim-medgen-api/storage"
)

func main() {
	mappingPath := flag.String("mapping", "MedGen_HPO_OMIM_Mapping.txt.gz", "Path to the gzipped MedGen/HPO/OMIM mapping file")
	mgdefPath := flag.String("mgdef", "MGDEF.csv.gz", "Path to the gzipped MGDEF definitions file")
	outputPath := flag.String("output", "omim_medgen_data.json", "Output JSON file")
	sourcesPath := flag.String("sources", "", "Optional YAML file with download sources")
	download := flag.Bool("download", false, "Download the reference files before building")
	databaseDSN := flag.String("db", "", "Optional SQLite DSN to persist the disease table")
	flag.Parse()

	sources := omimparser.DefaultSources()
	if *sourcesPath != "" {
		loaded, err := omimparser.LoadSourcesFile(*sourcesPath)
		if err != nil {
			logging.Error("Failed to load sources config", "error", err)
			os.Exit(1)
		}
		sources = loaded
	}
	sources.Mapping.File = *mappingPath
	sources.Mgdef.File = *mgdefPath

	if *download {
		if err := omimparser.DownloadAll(sources); err != nil {
			logging.Error("Failed to download reference files", "error", err)
			os.Exit(1)
		}
	}

	entries, err := omimparser.ParseAllDiseases(sources.Mapping.File, sources.Mgdef.File)
	if err != nil {
		logging.Error("Failed to build disease database", "error", err)
		os.Exit(1)
	}

	if err := omimparser.WriteDatabase(entries, *outputPath); err != nil {
		logging.Error("Failed to write disease database", "error", err)
		os.Exit(1)
	}

	if *databaseDSN != "" {
		if err := persist(*databaseDSN, entries); err != nil {
			logging.Error("Failed to persist diseases to SQLite", "error", err)
			os.Exit(1)
		}
	}
}

func persist(dsn string, entries []entities.DiseaseEntry) error {
	db, err := storage.NewDB(dsn, false)
	if err != nil {
		return err
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
	if err := storage.ReplaceAll(ctx, db, entries); err != nil {
		return err
	}

	logging.Info("Diseases persisted to SQLite", "dsn", dsn, "count", len(entries))
	return nil
}
