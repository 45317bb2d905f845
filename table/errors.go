package table

import (
	"fmt"
	"strings"
)

// MissingInputError reports an expected source file or sheet absent for the
// run date. It is fatal for the processor that needed it: the pipeline must
// never substitute stale or empty data.
type MissingInputError struct {
	File  string
	Sheet string
}

func (e *MissingInputError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("missing input: sheet %q in %s", e.Sheet, e.File)
	}
	return fmt.Sprintf("missing input: %s", e.File)
}

// SchemaMismatchError reports expected columns absent or renamed upstream.
// Fatal: proceeding with partial columns would silently corrupt the report.
type SchemaMismatchError struct {
	File    string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s: missing columns %s",
		e.File, strings.Join(e.Missing, ", "))
}
