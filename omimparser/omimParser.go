// Package omimparser builds the OMIM/MedGen disease database from the two
// gzipped MedGen reference files: the HPO/OMIM mapping table and the MGDEF
// concept-definition table. Both are joined on the OMIM concept identifier
// and serialized as a JSON array of disease entries.
package omimparser

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// ParseAllDiseases reads the definitions and mapping files and joins them
// into the flat disease entry list. Any failure aborts the build; no partial
// result is returned.
func ParseAllDiseases(mappingPath, mgdefPath string) ([]entities.DiseaseEntry, error) {
	start := time.Now()

	definitions, err := ParseDefinitions(mgdefPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	logging.Info("Definitions loaded", "path", mgdefPath, "definitions", len(definitions))

	mapping, err := ParseMapping(mappingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping: %w", err)
	}
	logging.Info("Mapping loaded", "path", mappingPath, "rows", len(mapping.Rows))

	entries := BuildDiseaseEntries(mapping, definitions)

	logging.Info("Disease database built",
		"entries", len(entries),
		"duration", time.Since(start).String())

	return entries, nil
}

// WriteDatabase serializes the disease entries as an indented JSON array.
// Non-ASCII characters are written literally, not escaped.
func WriteDatabase(entries []entities.DiseaseEntry, path string) error {
	var buf strings.Builder

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to marshal disease entries: %w", err)
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Info("Disease database written", "path", path, "entries", len(entries))
	return nil
}
