package omimparser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/medgenio/omim-medgen-api/logging"
)

// downloadFile fetches one compressed reference file and stores it as-is.
// The files stay gzip-compressed on disk; the reader decompresses on parse.
func downloadFile(source Source) error {
	dir := filepath.Dir(source.File)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create download directory %s: %w", dir, err)
		}
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(source.URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", source.URL, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", response.StatusCode, source.URL)
	}

	outFile, err := os.Create(filepath.Clean(source.File))
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", source.File, err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logging.Warn("Failed to close output file", "error", err)
		}
	}()

	written, err := io.Copy(outFile, response.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", source.File, err)
	}

	logging.Debug("Reference file downloaded", "file", source.File, "bytes", written)
	return nil
}

// DownloadAll fetches both reference files concurrently.
func DownloadAll(sources Sources) error {
	downloads := []Source{sources.Mapping, sources.Mgdef}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, source := range downloads {
		wg.Add(1)

		go func(source Source) {
			defer wg.Done()
			if err := downloadFile(source); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(source)
	}
	wg.Wait()

	if len(errs) > 0 {
		logging.Error("Download errors occurred", "errors", errs)
		return fmt.Errorf("download errors: %v", errs)
	}

	return nil
}
