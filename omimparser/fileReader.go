package omimparser

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/medgenio/omim-medgen-api/logging"
)

// ReadGzipLines decompresses a gzip file and returns its content as lines.
// The stream is decoded as UTF-8 with ill-formed byte sequences replaced by
// U+FFFD, so encoding glitches in the upstream files never abort a build.
func ReadGzipLines(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("Failed to close input file", "path", path, "error", err)
		}
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream in %s: %w", path, err)
	}
	defer func() {
		if err := gz.Close(); err != nil {
			logging.Warn("Failed to close gzip reader", "path", path, "error", err)
		}
	}()

	content, err := io.ReadAll(transform.NewReader(gz, runes.ReplaceIllFormed()))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	return splitLines(string(content)), nil
}

// splitLines splits on \n and strips a trailing \r from every line, so both
// Unix and Windows line endings are handled.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
