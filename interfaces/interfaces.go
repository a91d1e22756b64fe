// Package interfaces defines the core abstractions of the OMIM/MedGen API
// to keep data storage, parsing, scheduling and validation testable and
// loosely coupled.
package interfaces

import (
	"time"

	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// DataQualityReport summarizes anomalies found in a built disease database.
type DataQualityReport struct {
	DuplicateConceptIDs    []string // medgen_concept_id values seen more than once
	DuplicateOmimIDs       []string // MIM numbers mapped to multiple concepts
	EntriesWithoutInfo     int      // entries whose disease info is the "NA" placeholder
	EntriesWithInvalidCUI  int      // concept ids not matching the C-prefixed form
	EntriesWithInvalidOmim int      // MIM numbers that are not purely numeric
}

// DataStore provides thread-safe access to the disease database with atomic
// replacement for zero-downtime updates.
type DataStore interface {
	GetDiseases() []entities.DiseaseEntry
	GetDiseasesByCUI() map[string]entities.DiseaseEntry
	GetDiseasesByOmimID() map[string][]entities.DiseaseEntry
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	UpdateData(diseases []entities.DiseaseEntry,
		byCUI map[string]entities.DiseaseEntry,
		byOmimID map[string][]entities.DiseaseEntry)
	BeginUpdate() bool
	EndUpdate()
}

// Parser builds the disease entry list from the reference files.
type Parser interface {
	ParseAllDiseases() ([]entities.DiseaseEntry, error)
}

// Scheduler manages automated database rebuilds and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// DataValidator validates disease entries and user input.
type DataValidator interface {
	ValidateEntry(e *entities.DiseaseEntry) error
	ValidateInput(input string) error
	ValidateCUI(input string) (string, error)
	ValidateMIM(input string) (string, error)
	ReportDataQuality(diseases []entities.DiseaseEntry) *DataQualityReport
}

// HealthChecker reports system health for the HTTP surface.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
	CalculateNextUpdate() time.Time
}
