// Package data provides thread-safe storage for the built disease database.
// DataContainer swaps whole datasets atomically so readers never observe a
// partially updated build.
package data

import (
	"sync/atomic"
	"time"

	"github.com/medgenio/omim-medgen-api/interfaces"
	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the disease entries and lookup maps behind atomic
// pointers for zero-downtime updates.
type DataContainer struct {
	diseases        atomic.Value // []entities.DiseaseEntry
	byCUI           atomic.Value // map[string]entities.DiseaseEntry
	byOmimID        atomic.Value // map[string][]entities.DiseaseEntry
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a container with empty data.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.diseases.Store(make([]entities.DiseaseEntry, 0))
	dc.byCUI.Store(make(map[string]entities.DiseaseEntry))
	dc.byOmimID.Store(make(map[string][]entities.DiseaseEntry))
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetDiseases returns the full disease entry list.
func (dc *DataContainer) GetDiseases() []entities.DiseaseEntry {
	if v := dc.diseases.Load(); v != nil {
		if diseases, ok := v.([]entities.DiseaseEntry); ok {
			return diseases
		}
	}

	logging.Warn("Disease list is empty or invalid")
	return []entities.DiseaseEntry{}
}

// GetDiseasesByCUI returns the concept-id lookup map.
func (dc *DataContainer) GetDiseasesByCUI() map[string]entities.DiseaseEntry {
	if v := dc.byCUI.Load(); v != nil {
		if byCUI, ok := v.(map[string]entities.DiseaseEntry); ok {
			return byCUI
		}
	}

	logging.Warn("Disease CUI map is empty or invalid")
	return make(map[string]entities.DiseaseEntry)
}

// GetDiseasesByOmimID returns the MIM-number lookup map. A MIM number can
// map to several concepts, so values are slices.
func (dc *DataContainer) GetDiseasesByOmimID() map[string][]entities.DiseaseEntry {
	if v := dc.byOmimID.Load(); v != nil {
		if byOmimID, ok := v.(map[string][]entities.DiseaseEntry); ok {
			return byOmimID
		}
	}

	logging.Warn("Disease OMIM map is empty or invalid")
	return make(map[string][]entities.DiseaseEntry)
}

// GetLastUpdated returns the timestamp of the last data update.
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true while a data update is in progress.
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time.
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time.
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically replaces all data in the container.
func (dc *DataContainer) UpdateData(diseases []entities.DiseaseEntry,
	byCUI map[string]entities.DiseaseEntry,
	byOmimID map[string][]entities.DiseaseEntry) {

	dc.diseases.Store(diseases)
	dc.byCUI.Store(byCUI)
	dc.byOmimID.Store(byOmimID)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of an update. Returns false when another
// update is already in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of an update.
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
