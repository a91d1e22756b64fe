package omimparser

import (
	"github.com/medgenio/omim-medgen-api/interfaces"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// Compile-time check to ensure DiseaseParser implements Parser interface
var _ interfaces.Parser = (*DiseaseParser)(nil)

// DiseaseParser implements the Parser interface. When Download is set the
// reference files are fetched from their sources before parsing.
type DiseaseParser struct {
	Sources  Sources
	Download bool
}

// NewDiseaseParser creates a parser for the given sources.
func NewDiseaseParser(sources Sources, download bool) *DiseaseParser {
	return &DiseaseParser{Sources: sources, Download: download}
}

// ParseAllDiseases implements the Parser interface.
func (p *DiseaseParser) ParseAllDiseases() ([]entities.DiseaseEntry, error) {
	if p.Download {
		if err := DownloadAll(p.Sources); err != nil {
			return nil, err
		}
	}
	return ParseAllDiseases(p.Sources.Mapping.File, p.Sources.Mgdef.File)
}
