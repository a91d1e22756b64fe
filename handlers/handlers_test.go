package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medgenio/omim-medgen-api/data"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

func populatedContainer(diseases []entities.DiseaseEntry) *data.DataContainer {
	byCUI := make(map[string]entities.DiseaseEntry)
	byOmimID := make(map[string][]entities.DiseaseEntry)
	for _, d := range diseases {
		byCUI[d.MedgenConceptID] = d
		byOmimID[d.OmimID] = append(byOmimID[d.OmimID], d)
	}

	dc := data.NewDataContainer()
	dc.SetServerStartTime(time.Now())
	dc.UpdateData(diseases, byCUI, byOmimID)
	return dc
}

func testRouter(dc *data.DataContainer) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/database", ServeAllDiseases(dc))
	router.Get("/database/{pageNumber}", ServePagedDiseases(dc))
	router.Get("/disease/{name}", FindDisease(dc))
	router.Get("/disease/cui/{cui}", FindDiseaseByCUI(dc))
	router.Get("/disease/omim/{mim}", FindDiseasesByOmimID(dc))
	router.Get("/health", HealthCheck(dc))
	return router
}

func sampleEntries() []entities.DiseaseEntry {
	return []entities.DiseaseEntry{
		{ID: "100050", OmimID: "100050", OmimDisease: "Example Disease", MedgenConceptID: "C001", MedgenDiseaseInfo: "Some disease"},
		{ID: "100100", OmimID: "100100", OmimDisease: "Marfan syndrome", MedgenConceptID: "C002", MedgenDiseaseInfo: "NA"},
		{ID: "100100", OmimID: "100100", OmimDisease: "Marfan syndrome variant", MedgenConceptID: "C003", MedgenDiseaseInfo: "NA"},
	}
}

func doRequest(t *testing.T, router *chi.Mux, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestServeAllDiseases(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	rec := doRequest(t, router, "/database")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}

	var got []entities.DiseaseEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 diseases, got %d", len(got))
	}
}

func TestServePagedDiseases(t *testing.T) {
	// 150 entries span two pages of 100
	diseases := make([]entities.DiseaseEntry, 150)
	for i := range diseases {
		diseases[i] = entities.DiseaseEntry{ID: "100000", OmimID: "100000", MedgenConceptID: "C1"}
	}
	router := testRouter(populatedContainer(diseases))

	rec := doRequest(t, router, "/database/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var page struct {
		Data       []entities.DiseaseEntry `json:"data"`
		Page       int                     `json:"page"`
		TotalItems int                     `json:"totalItems"`
		MaxPage    int                     `json:"maxPage"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}

	if len(page.Data) != 50 {
		t.Errorf("Expected 50 entries on page 2, got %d", len(page.Data))
	}
	if page.TotalItems != 150 || page.MaxPage != 2 {
		t.Errorf("Expected 150 items over 2 pages, got %d/%d", page.TotalItems, page.MaxPage)
	}
}

func TestServePagedDiseasesErrors(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	testCases := []struct {
		path     string
		expected int
	}{
		{"/database/0", http.StatusBadRequest},
		{"/database/abc", http.StatusBadRequest},
		{"/database/-1", http.StatusBadRequest},
		{"/database/99", http.StatusNotFound},
	}

	for _, tc := range testCases {
		if rec := doRequest(t, router, tc.path); rec.Code != tc.expected {
			t.Errorf("GET %s: expected %d, got %d", tc.path, tc.expected, rec.Code)
		}
	}
}

func TestFindDisease(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	rec := doRequest(t, router, "/disease/marfan")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var got []entities.DiseaseEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 matches for marfan, got %d", len(got))
	}
}

func TestFindDiseaseNotFound(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	if rec := doRequest(t, router, "/disease/nosuchdisease"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestFindDiseaseRejectsDangerousInput(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	if rec := doRequest(t, router, "/disease/eval(document)"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for dangerous input, got %d", rec.Code)
	}
}

func TestFindDiseaseByCUI(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	rec := doRequest(t, router, "/disease/cui/c001")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected lowercase CUI to resolve, got %d", rec.Code)
	}

	var got entities.DiseaseEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if got.OmimID != "100050" {
		t.Errorf("Expected MIM 100050, got %q", got.OmimID)
	}

	if rec := doRequest(t, router, "/disease/cui/C999"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown CUI, got %d", rec.Code)
	}
	if rec := doRequest(t, router, "/disease/cui/notacui"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed CUI, got %d", rec.Code)
	}
}

func TestFindDiseasesByOmimID(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	rec := doRequest(t, router, "/disease/omim/100100")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var got []entities.DiseaseEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected both concepts for MIM 100100, got %d", len(got))
	}

	if rec := doRequest(t, router, "/disease/omim/999999"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown MIM, got %d", rec.Code)
	}
	if rec := doRequest(t, router, "/disease/omim/abc"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric MIM, got %d", rec.Code)
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := testRouter(populatedContainer(sampleEntries()))

	rec := doRequest(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for fresh data, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
	if _, ok := body["next_update"]; !ok {
		t.Error("Expected next_update in health response")
	}
}

func TestHealthCheckEmptyDatabase(t *testing.T) {
	dc := data.NewDataContainer()
	dc.SetServerStartTime(time.Now())
	router := testRouter(dc)

	if rec := doRequest(t, router, "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 with no data, got %d", rec.Code)
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithError(rec, http.StatusBadRequest, "Invalid page number")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["message"] != "Invalid page number" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if body["error"] != http.StatusText(http.StatusBadRequest) {
		t.Errorf("Unexpected error text %v", body["error"])
	}
}
