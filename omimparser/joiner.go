package omimparser

import (
	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// Logical columns of the mapping file, matched case-insensitively.
const (
	mappingMIMColumn     = "MIM_number"
	mappingNameColumn    = "OMIM_name"
	mappingOMIMCUIColumn = "OMIM_CUI"
	mappingHPOCUIColumn  = "HPO_CUI"
)

// missingDefinition is the value used when a concept has no MGDEF entry.
const missingDefinition = "NA"

// BuildDiseaseEntries joins mapping rows against the CUI definitions and
// returns the disease entries in first-seen order. Rows that are entirely
// empty, lack a MIM number or OMIM CUI, or repeat an already-seen OMIM CUI
// are skipped silently; anomalies never fail the build.
func BuildDiseaseEntries(mapping *Table, definitions map[string]string) []entities.DiseaseEntry {
	entries := make([]entities.DiseaseEntry, 0, len(mapping.Rows))

	// Dedup set for OMIM CUIs, scoped to this pass only.
	seen := make(map[string]bool)

	skippedEmptyRows := 0
	skippedMissingFields := 0
	skippedDuplicates := 0

	for _, row := range mapping.Rows {
		if rowIsEmpty(row) {
			skippedEmptyRows++
			continue
		}

		mimNumber := mapping.Get(row, mappingMIMColumn)
		omimName := mapping.Get(row, mappingNameColumn)
		omimCUI := mapping.Get(row, mappingOMIMCUIColumn)
		hpoCUI := mapping.Get(row, mappingHPOCUIColumn)

		if mimNumber == "" || omimCUI == "" {
			skippedMissingFields++
			continue
		}

		if seen[omimCUI] {
			skippedDuplicates++
			continue
		}
		seen[omimCUI] = true

		info, ok := definitions[omimCUI]
		if !ok {
			info = missingDefinition
		}
		// Definitions never store empty text and a lookup miss already
		// yields "NA", so this HPO fallback cannot trigger. Kept to match
		// the published dataset build exactly.
		if info == "" && hpoCUI != "" {
			if alt, ok := definitions[hpoCUI]; ok {
				info = alt
			} else {
				info = missingDefinition
			}
		}

		entries = append(entries, entities.DiseaseEntry{
			ID:                mimNumber,
			OmimID:            mimNumber,
			OmimDisease:       omimName,
			MedgenConceptID:   omimCUI,
			MedgenDiseaseInfo: info,
		})
	}

	if skippedEmptyRows > 0 || skippedMissingFields > 0 || skippedDuplicates > 0 {
		logging.Info("Mapping join skip statistics",
			"empty_rows", skippedEmptyRows,
			"missing_fields", skippedMissingFields,
			"duplicate_cuis", skippedDuplicates,
			"entries_built", len(entries))
	}

	return entries
}
