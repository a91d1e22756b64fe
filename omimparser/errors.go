package omimparser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput reports an input file with no non-blank lines.
var ErrEmptyInput = errors.New("input file has no non-blank lines")

// MissingColumnsError reports a definitions file that lacks one of the
// required columns after case-insensitive matching.
type MissingColumnsError struct {
	Required []string
	Found    []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns %s not all present (found: %s)",
		strings.Join(e.Required, ", "), strings.Join(e.Found, ", "))
}
