// Package validation provides data and input validation for the
// OMIM/MedGen API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/medgenio/omim-medgen-api/interfaces"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// Pre-compiled patterns, built once at package initialization.
var (
	// MedGen concept ids: C followed by digits, e.g. C0432273.
	cuiRegex = regexp.MustCompile(`^C\d+$`)

	// MIM numbers are purely numeric, usually six digits.
	mimRegex = regexp.MustCompile(`^\d{1,9}$`)

	// Disease-name search input: letters, digits and safe punctuation.
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+,'()/]+$`)

	// Substring matching beats regex for these simple probes.
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onload=", "onerror=",
		"eval(", "expression(", "union select", "drop table", "--", "/*",
		"../", "..\\", "%2e%2e", "file://", "${", "$(", "`",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateEntry checks that a disease entry is structurally sound.
func (v *DataValidatorImpl) ValidateEntry(e *entities.DiseaseEntry) error {
	if e == nil {
		return fmt.Errorf("disease entry is nil")
	}

	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("empty _id")
	}

	if e.ID != e.OmimID {
		return fmt.Errorf("_id %q and omim_id %q differ", e.ID, e.OmimID)
	}

	if !mimRegex.MatchString(e.OmimID) {
		return fmt.Errorf("omim_id %q is not numeric", e.OmimID)
	}

	if strings.TrimSpace(e.MedgenConceptID) == "" {
		return fmt.Errorf("empty medgen_concept_id for MIM %s", e.OmimID)
	}

	if len(e.OmimDisease) > 500 {
		return fmt.Errorf("omim_disease too long for MIM %s: %d characters", e.OmimID, len(e.OmimDisease))
	}

	return nil
}

// ValidateInput validates a user-supplied search string.
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > 200 {
		return fmt.Errorf("input too long: %d characters", len(input))
	}

	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains disallowed pattern")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}

// ValidateCUI validates a concept identifier path parameter and returns it
// normalized to the canonical uppercase form.
func (v *DataValidatorImpl) ValidateCUI(input string) (string, error) {
	cui := strings.ToUpper(strings.TrimSpace(input))
	if !cuiRegex.MatchString(cui) {
		return "", fmt.Errorf("invalid concept id: %q", input)
	}
	return cui, nil
}

// ValidateMIM validates a MIM number path parameter.
func (v *DataValidatorImpl) ValidateMIM(input string) (string, error) {
	mim := strings.TrimSpace(input)
	if !mimRegex.MatchString(mim) {
		return "", fmt.Errorf("invalid MIM number: %q", input)
	}
	return mim, nil
}

// ReportDataQuality scans a built database for anomalies. The join already
// guarantees concept-id uniqueness, so any duplicate reported here points at
// a bug in the build.
func (v *DataValidatorImpl) ReportDataQuality(diseases []entities.DiseaseEntry) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	conceptCount := make(map[string]int)
	omimConcepts := make(map[string]map[string]bool)

	for i := range diseases {
		e := &diseases[i]

		conceptCount[e.MedgenConceptID]++

		if omimConcepts[e.OmimID] == nil {
			omimConcepts[e.OmimID] = make(map[string]bool)
		}
		omimConcepts[e.OmimID][e.MedgenConceptID] = true

		if e.MedgenDiseaseInfo == "NA" {
			report.EntriesWithoutInfo++
		}
		if !cuiRegex.MatchString(e.MedgenConceptID) {
			report.EntriesWithInvalidCUI++
		}
		if !mimRegex.MatchString(e.OmimID) {
			report.EntriesWithInvalidOmim++
		}
	}

	for cui, count := range conceptCount {
		if count > 1 {
			report.DuplicateConceptIDs = append(report.DuplicateConceptIDs, cui)
		}
	}

	for mim, concepts := range omimConcepts {
		if len(concepts) > 1 {
			report.DuplicateOmimIDs = append(report.DuplicateOmimIDs, mim)
		}
	}

	return report
}
