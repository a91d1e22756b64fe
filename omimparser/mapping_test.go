package omimparser

import (
	"errors"
	"testing"
)

func TestParseMappingCommentHeader(t *testing.T) {
	content := "#MIM_number,OMIM_name,OMIM_CUI,HPO_CUI\n" +
		"100050,Example Disease,C001,H001\n"
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte(content))

	table, err := ParseMapping(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(table.Columns) != 4 || table.Columns[0] != "MIM_number" {
		t.Errorf("Comment marker should be stripped from the header, got %v", table.Columns)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("Expected 1 data row, got %d", len(table.Rows))
	}
	if got := table.Get(table.Rows[0], "OMIM_CUI"); got != "C001" {
		t.Errorf("Expected C001, got %q", got)
	}
}

func TestParseMappingTabDelimited(t *testing.T) {
	content := "#MIM_number\tOMIM_name\tOMIM_CUI\tHPO_CUI\n" +
		"100100\tSome name\tC010\tH010\n" +
		"100200\tOther name\tC020\tH020\n"
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte(content))

	table, err := ParseMapping(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Get(table.Rows[1], "mim_number"); got != "100200" {
		t.Errorf("Expected 100200, got %q", got)
	}
}

func TestParseMappingQuotedFields(t *testing.T) {
	content := "#MIM_number,OMIM_name,OMIM_CUI,HPO_CUI\n" +
		"100050,\"Example Disease\",C001,H001\n" +
		"100100,\"Syndrome, autosomal recessive\",C002,H002\n"
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte(content))

	table, err := ParseMapping(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := table.Get(table.Rows[0], "OMIM_name"); got != "Example Disease" {
		t.Errorf("Quotes must not leak into the cell, got %q", got)
	}
	if got := table.Get(table.Rows[1], "OMIM_name"); got != "Syndrome, autosomal recessive" {
		t.Errorf("Quoted name must keep its embedded comma, got %q", got)
	}
	if got := table.Get(table.Rows[1], "OMIM_CUI"); got != "C002" {
		t.Errorf("Columns after a quoted cell must not shift, got %q", got)
	}
}

func TestParseMappingHeaderOnly(t *testing.T) {
	content := "#MIM_number|OMIM_name|OMIM_CUI|HPO_CUI\n"
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte(content))

	table, err := ParseMapping(path)
	if err != nil {
		t.Fatalf("Header-only file should not error, got %v", err)
	}

	if len(table.Rows) != 0 {
		t.Errorf("Expected zero rows, got %d", len(table.Rows))
	}
	if len(table.Columns) != 4 {
		t.Errorf("Expected 4 columns, got %v", table.Columns)
	}
}

func TestParseMappingSkipsBlankDataLines(t *testing.T) {
	content := "#a,b\n1,2\n\n   \n3,4\n"
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte(content))

	table, err := ParseMapping(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("Blank data lines should be skipped, got %d rows", len(table.Rows))
	}
}

func TestParseMappingEmptyInput(t *testing.T) {
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte("  \n\n"))

	_, err := ParseMapping(path)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestParseMappingMultipleHashMarks(t *testing.T) {
	content := "## MIM_number,OMIM_name,OMIM_CUI,HPO_CUI\n100050,x,C1,H1\n"
	path := writeGzipFile(t, t.TempDir(), "mapping.txt.gz", []byte(content))

	table, err := ParseMapping(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if table.Columns[0] != "MIM_number" {
		t.Errorf("All leading hash marks should be stripped, got %q", table.Columns[0])
	}
}
