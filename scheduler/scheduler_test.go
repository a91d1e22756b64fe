package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/medgenio/omim-medgen-api/config"
	"github.com/medgenio/omim-medgen-api/data"
	"github.com/medgenio/omim-medgen-api/omimparser/entities"
)

// fakeParser returns canned entries without touching the reference files.
type fakeParser struct {
	entries []entities.DiseaseEntry
	err     error
	calls   int
}

func (f *fakeParser) ParseAllDiseases() ([]entities.DiseaseEntry, error) {
	f.calls++
	return f.entries, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:        "test",
		OutputFile: filepath.Join(t.TempDir(), "omim_medgen_data.json"),
	}
}

func TestUpdateData(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &fakeParser{
		entries: []entities.DiseaseEntry{
			{ID: "100050", OmimID: "100050", OmimDisease: "Example Disease", MedgenConceptID: "C001", MedgenDiseaseInfo: "Some disease"},
			{ID: "100050", OmimID: "100050", OmimDisease: "Example variant", MedgenConceptID: "C002", MedgenDiseaseInfo: "NA"},
		},
	}
	cfg := testConfig(t)

	s := NewScheduler(dc, parser, cfg)

	if err := s.updateData(); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}

	if parser.calls != 1 {
		t.Errorf("Expected 1 parser call, got %d", parser.calls)
	}
	if len(dc.GetDiseases()) != 2 {
		t.Errorf("Expected 2 diseases in the store, got %d", len(dc.GetDiseases()))
	}
	if got := dc.GetDiseasesByCUI()["C002"]; got.OmimDisease != "Example variant" {
		t.Errorf("CUI lookup map not rebuilt, got %+v", got)
	}
	if got := dc.GetDiseasesByOmimID()["100050"]; len(got) != 2 {
		t.Errorf("Expected both concepts under MIM 100050, got %d", len(got))
	}
	if dc.GetLastUpdated().IsZero() {
		t.Error("Last updated should be set after a rebuild")
	}

	if _, err := os.Stat(cfg.OutputFile); err != nil {
		t.Errorf("Expected JSON database at %s: %v", cfg.OutputFile, err)
	}
}

func TestUpdateDataParserFailure(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &fakeParser{err: errors.New("download failed")}
	cfg := testConfig(t)

	s := NewScheduler(dc, parser, cfg)

	if err := s.updateData(); err == nil {
		t.Fatal("Expected update to fail when the parser fails")
	}

	if len(dc.GetDiseases()) != 0 {
		t.Error("Store must keep the previous dataset on failure")
	}
	if dc.IsUpdating() {
		t.Error("Update flag must be cleared after a failure")
	}
}

func TestUpdateDataSkipsWhenAlreadyUpdating(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &fakeParser{}
	cfg := testConfig(t)

	s := NewScheduler(dc, parser, cfg)

	if !dc.BeginUpdate() {
		t.Fatal("Failed to lock the container for the test")
	}
	defer dc.EndUpdate()

	if err := s.updateData(); err != nil {
		t.Fatalf("Concurrent update should be skipped without error, got %v", err)
	}
	if parser.calls != 0 {
		t.Errorf("Parser must not run while another update is in progress, got %d calls", parser.calls)
	}
}

func TestSchedulerStartAndStop(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &fakeParser{
		entries: []entities.DiseaseEntry{
			{ID: "100050", OmimID: "100050", MedgenConceptID: "C001", MedgenDiseaseInfo: "NA"},
		},
	}
	cfg := testConfig(t)

	s := NewScheduler(dc, parser, cfg)

	if err := s.Start(); err != nil {
		t.Fatalf("Expected scheduler to start, got %v", err)
	}
	defer s.Stop()

	if parser.calls != 1 {
		t.Errorf("Start must run the initial build, got %d calls", parser.calls)
	}
	if len(dc.GetDiseases()) != 1 {
		t.Errorf("Expected 1 disease after the initial build, got %d", len(dc.GetDiseases()))
	}
}

func TestSchedulerStartFailsOnInitialBuildError(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &fakeParser{err: errors.New("missing reference files")}
	cfg := testConfig(t)

	s := NewScheduler(dc, parser, cfg)

	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("Expected Start to fail when the initial build fails")
	}
}
