package omimparser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the NCBI MedGen FTP mirror.
const (
	defaultMappingURL  = "https://ftp.ncbi.nlm.nih.gov/pub/medgen/MedGen_HPO_OMIM_Mapping.txt.gz"
	defaultMgdefURL    = "https://ftp.ncbi.nlm.nih.gov/pub/medgen/csv/MGDEF.csv.gz"
	defaultMappingFile = "files/MedGen_HPO_OMIM_Mapping.txt.gz"
	defaultMgdefFile   = "files/MGDEF.csv.gz"
)

// Source describes where one reference file is downloaded from and where the
// compressed copy is stored locally.
type Source struct {
	URL  string `yaml:"url"`
	File string `yaml:"file"`
}

// Sources holds the two reference files of a database build.
type Sources struct {
	Mapping Source `yaml:"mapping"`
	Mgdef   Source `yaml:"mgdef"`
}

// DefaultSources returns the NCBI MedGen mirror locations.
func DefaultSources() Sources {
	return Sources{
		Mapping: Source{URL: defaultMappingURL, File: defaultMappingFile},
		Mgdef:   Source{URL: defaultMgdefURL, File: defaultMgdefFile},
	}
}

// LoadSources parses YAML bytes into Sources, filling missing fields with
// the defaults.
func LoadSources(data []byte) (Sources, error) {
	sources := DefaultSources()
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return DefaultSources(), fmt.Errorf("failed to parse sources config: %w", err)
	}
	return applySourceDefaults(sources), nil
}

// LoadSourcesFile reads a YAML sources file. A missing file is not an error,
// it simply yields the defaults.
func LoadSourcesFile(path string) (Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return DefaultSources(), fmt.Errorf("failed to read sources config %s: %w", path, err)
	}
	return LoadSources(data)
}

func applySourceDefaults(sources Sources) Sources {
	defaults := DefaultSources()

	if sources.Mapping.URL == "" {
		sources.Mapping.URL = defaults.Mapping.URL
	}
	if sources.Mapping.File == "" {
		sources.Mapping.File = defaults.Mapping.File
	}
	if sources.Mgdef.URL == "" {
		sources.Mgdef.URL = defaults.Mgdef.URL
	}
	if sources.Mgdef.File == "" {
		sources.Mgdef.File = defaults.Mgdef.File
	}

	return sources
}
