package zte

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vnm-bi/autoreport/table"
)

var spaceRE = regexp.MustCompile(`\s+`)

func norm(s string) string {
	return spaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

func colIdx(header []string, key string) int {
	key = norm(key)
	for i, h := range header {
		if norm(h) == key {
			return i
		}
	}
	return -1
}

// record is one CSV row reduced to the cell name plus the selected columns.
type record struct {
	cell string
	vals []float64
}

// findFile resolves a name prefix to the single matching export for the run
// date. No match is a hard failure: the pipeline must not substitute stale
// data for a missing EMS partition.
func findFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern+"*.csv"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", &table.MissingInputError{File: pattern + "*.csv"}
	}
	sort.Strings(matches)
	return matches[0], nil
}

// loadConcat loads every pattern's file and concatenates the rows. The
// partitions cover disjoint cells of one network, so this is a straight
// append, never a join.
func loadConcat(dir string, patterns []string, cellCol string, cols ...string) ([]record, error) {
	var out []record
	for _, pat := range patterns {
		path, err := findFile(dir, pat)
		if err != nil {
			return nil, err
		}
		recs, err := loadCSV(path, cellCol, cols...)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// loadCSV reads one export: a banner line, then the header row, then data.
// The named columns are selected by header; any absent column is a schema
// mismatch for the whole file.
func loadCSV(path, cellCol string, cols ...string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// banner line ahead of the header
	if _, err := r.Read(); err != nil {
		return nil, &table.SchemaMismatchError{File: filepath.Base(path), Missing: append([]string{cellCol}, cols...)}
	}
	header, err := r.Read()
	if err != nil {
		return nil, &table.SchemaMismatchError{File: filepath.Base(path), Missing: append([]string{cellCol}, cols...)}
	}

	iCell := colIdx(header, cellCol)
	idx := make([]int, len(cols))
	var missing []string
	if iCell == -1 {
		missing = append(missing, cellCol)
	}
	for i, c := range cols {
		idx[i] = colIdx(header, c)
		if idx[i] == -1 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &table.SchemaMismatchError{File: filepath.Base(path), Missing: missing}
	}

	var out []record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) == 0 {
			continue
		}
		if iCell >= len(rec) {
			continue
		}
		cell := strings.TrimSpace(rec[iCell])
		if cell == "" {
			continue
		}
		vals := make([]float64, len(idx))
		for i, j := range idx {
			if j < len(rec) {
				vals[i] = parseNum(rec[j])
			}
		}
		out = append(out, record{cell: cell, vals: vals})
	}
	return out, nil
}

func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
