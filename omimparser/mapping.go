package omimparser

import (
	"fmt"
	"strings"
)

// ParseMapping reads the gzipped MedGen/HPO/OMIM mapping file into a Table.
// The header line may be prefixed with '#' characters, which are stripped
// together with surrounding whitespace before the delimiter is inferred.
// A file that contains only a header yields a table with zero rows.
func ParseMapping(path string) (*Table, error) {
	lines, err := ReadGzipLines(path)
	if err != nil {
		return nil, err
	}

	start := firstNonBlank(lines)
	if start < 0 {
		return nil, fmt.Errorf("mapping file %s: %w", path, ErrEmptyInput)
	}

	headerLine := strings.TrimSpace(lines[start])
	if strings.HasPrefix(headerLine, "#") {
		headerLine = strings.TrimSpace(strings.TrimLeft(headerLine, "#"))
	}

	delimiter := DetectDelimiter(headerLine)

	table := NewTable(parseFields(headerLine, delimiter))

	for _, line := range lines[start+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		table.AppendRow(line, delimiter)
	}

	return table, nil
}
