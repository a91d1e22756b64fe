package omimparser

import "strings"

// Field delimiters seen in the MedGen/OMIM reference files.
const (
	DelimiterTab   = "\t"
	DelimiterComma = ","
	DelimiterPipe  = "|"
)

// DetectDelimiter infers the field delimiter from a header line.
// Precedence is tab, then comma, then pipe; tab is the fallback when the
// header contains none of them.
func DetectDelimiter(header string) string {
	switch {
	case strings.Contains(header, DelimiterTab):
		return DelimiterTab
	case strings.Contains(header, DelimiterComma):
		return DelimiterComma
	case strings.Contains(header, DelimiterPipe):
		return DelimiterPipe
	default:
		return DelimiterTab
	}
}
