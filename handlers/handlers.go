// Package handlers provides the HTTP request handlers for the OMIM/MedGen
// API endpoints: database paging, concept and MIM lookups, name search,
// health checks and JSON response formatting.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medgenio/omim-medgen-api/data"
	"github.com/medgenio/omim-medgen-api/health"
	"github.com/medgenio/omim-medgen-api/logging"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
	"github.com/medgenio/omim-medgen-api/validation"
)

const pageSize = 100

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// ServeAllDiseases returns the complete disease database
func ServeAllDiseases(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, dataContainer.GetDiseases())
	}
}

// ServePagedDiseases returns one page of the disease database
func ServePagedDiseases(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			RespondWithError(w, http.StatusBadRequest, "Invalid page number")
			return
		}

		diseases := dataContainer.GetDiseases()
		start := (page - 1) * pageSize
		end := start + pageSize

		if start >= len(diseases) {
			RespondWithError(w, http.StatusNotFound, "Page not found")
			return
		}

		if end > len(diseases) {
			end = len(diseases)
		}

		totalItems := len(diseases)
		maxPage := (totalItems + pageSize - 1) / pageSize

		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"data":       diseases[start:end],
			"page":       page,
			"pageSize":   pageSize,
			"totalItems": totalItems,
			"maxPage":    maxPage,
		})
	}
}

// FindDisease searches diseases by name substring, case-insensitive
func FindDisease(dataContainer *data.DataContainer) http.HandlerFunc {
	validator := validation.NewDataValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := validator.ValidateInput(name); err != nil {
			logging.Warn("Rejected search input", "name", name, "error", err)
			RespondWithError(w, http.StatusBadRequest, "Invalid search term")
			return
		}

		needle := strings.ToLower(name)

		var results []entities.DiseaseEntry
		for _, disease := range dataContainer.GetDiseases() {
			if strings.Contains(strings.ToLower(disease.OmimDisease), needle) {
				results = append(results, disease)
			}
		}

		if len(results) == 0 {
			RespondWithError(w, http.StatusNotFound, fmt.Sprintf("No disease found matching %q", name))
			return
		}

		RespondWithJSON(w, http.StatusOK, results)
	}
}

// FindDiseaseByCUI returns the disease entry for a MedGen concept id
func FindDiseaseByCUI(dataContainer *data.DataContainer) http.HandlerFunc {
	validator := validation.NewDataValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		cui, err := validator.ValidateCUI(chi.URLParam(r, "cui"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid concept id")
			return
		}

		disease, exists := dataContainer.GetDiseasesByCUI()[cui]
		if !exists {
			RespondWithError(w, http.StatusNotFound, fmt.Sprintf("No disease found for concept %s", cui))
			return
		}

		RespondWithJSON(w, http.StatusOK, disease)
	}
}

// FindDiseasesByOmimID returns all disease entries for a MIM number
func FindDiseasesByOmimID(dataContainer *data.DataContainer) http.HandlerFunc {
	validator := validation.NewDataValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMIM(chi.URLParam(r, "mim"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid MIM number")
			return
		}

		diseases, exists := dataContainer.GetDiseasesByOmimID()[mim]
		if !exists || len(diseases) == 0 {
			RespondWithError(w, http.StatusNotFound, fmt.Sprintf("No disease found for MIM %s", mim))
			return
		}

		RespondWithJSON(w, http.StatusOK, diseases)
	}
}

// HealthCheck reports data freshness, uptime and memory usage
func HealthCheck(dataContainer *data.DataContainer) http.HandlerFunc {
	checker := health.NewHealthChecker(dataContainer)

	return func(w http.ResponseWriter, r *http.Request) {
		status, healthData, httpStatus := checker.HealthCheck()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		uptime := time.Since(dataContainer.GetServerStartTime())

		RespondWithJSON(w, httpStatus, map[string]any{
			"status":         status,
			"data":           healthData,
			"uptime_seconds": uptime.Seconds(),
			"memory_mb":      int(m.Alloc / 1024 / 1024),
			"next_update":    checker.CalculateNextUpdate().Format(time.RFC3339),
		})
	}
}
