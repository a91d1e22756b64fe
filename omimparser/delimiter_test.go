package omimparser

import "testing"

func TestDetectDelimiter(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{"tab delimited", "MIM_number\tOMIM_name\tOMIM_CUI", "\t"},
		{"comma delimited", "CUI,DEF,source,SUPPRESS", ","},
		{"pipe delimited", "CUI|DEF|source|SUPPRESS|", "|"},
		{"tab wins over comma", "a\tb,c", "\t"},
		{"comma wins over pipe", "a,b|c", ","},
		{"no known delimiter defaults to tab", "single_column", "\t"},
		{"empty header defaults to tab", "", "\t"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectDelimiter(tc.header); got != tc.expected {
				t.Errorf("DetectDelimiter(%q) = %q, expected %q", tc.header, got, tc.expected)
			}
		})
	}
}
