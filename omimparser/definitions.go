package omimparser

import (
	"fmt"
	"strings"

	"github.com/medgenio/omim-medgen-api/logging"
)

// Column names required in the MGDEF definitions file, matched
// case-insensitively.
const (
	definitionsCUIColumn = "CUI"
	definitionsDefColumn = "DEF"
)

// ParseDefinitions reads the gzipped MGDEF file and returns the CUI to
// definition mapping. The delimiter is inferred from the header line, the
// CUI and DEF columns may appear at any position and extra columns are
// ignored. Rows with an empty CUI or empty definition after trimming are
// dropped, and on duplicate CUIs the first occurrence in file order wins.
func ParseDefinitions(path string) (map[string]string, error) {
	lines, err := ReadGzipLines(path)
	if err != nil {
		return nil, err
	}

	start := firstNonBlank(lines)
	if start < 0 {
		return nil, fmt.Errorf("definitions file %s: %w", path, ErrEmptyInput)
	}

	headerLine := strings.TrimSpace(lines[start])
	delimiter := DetectDelimiter(headerLine)

	table := NewTable(parseFields(headerLine, delimiter))
	if !table.HasColumn(definitionsCUIColumn) || !table.HasColumn(definitionsDefColumn) {
		return nil, &MissingColumnsError{
			Required: []string{definitionsCUIColumn, definitionsDefColumn},
			Found:    table.Columns,
		}
	}

	definitions := make(map[string]string)

	skippedEmptyValues := 0
	skippedDuplicates := 0

	for _, line := range lines[start+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := parseFields(line, delimiter)

		cui := table.Get(row, definitionsCUIColumn)
		def := table.Get(row, definitionsDefColumn)

		if cui == "" || def == "" {
			skippedEmptyValues++
			continue
		}

		// First occurrence wins on duplicate CUIs.
		if _, exists := definitions[cui]; exists {
			skippedDuplicates++
			continue
		}
		definitions[cui] = def
	}

	if skippedEmptyValues > 0 || skippedDuplicates > 0 {
		logging.Info("Definitions file skip statistics",
			"path", path,
			"empty_values", skippedEmptyValues,
			"duplicate_cuis", skippedDuplicates,
			"definitions_kept", len(definitions))
	}

	return definitions, nil
}
