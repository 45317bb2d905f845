package ericsson

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vnm-bi/autoreport/table"
)

// bookCache opens each workbook at most once per Process call.
type bookCache struct {
	dir   string
	books map[string]*excelize.File
}

func newBookCache(dir string) *bookCache {
	return &bookCache{dir: dir, books: map[string]*excelize.File{}}
}

func (c *bookCache) open(name string) (*excelize.File, error) {
	if f, ok := c.books[name]; ok {
		return f, nil
	}
	path := filepath.Join(c.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &table.MissingInputError{File: name}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	c.books[name] = f
	return f, nil
}

func (c *bookCache) close() {
	for _, f := range c.books {
		f.Close()
	}
}

// readSheet loads one sheet into an HourlyTable: SkipRows leading rows are
// dropped, the cell id is at KeyCol, and the 24 hour columns start at
// HourCol. A sheet narrower than the hour block is a schema mismatch, not
// something to paper over with zeros.
func readSheet(books *bookCache, ref SheetRef, spec Spec) (table.HourlyTable, error) {
	f, err := books.open(ref.File)
	if err != nil {
		return nil, err
	}
	if idx, _ := f.GetSheetIndex(ref.Sheet); idx < 0 {
		return nil, &table.MissingInputError{File: ref.File, Sheet: ref.Sheet}
	}
	rows, err := f.GetRows(ref.Sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) > spec.SkipRows && len(rows[spec.SkipRows]) < spec.HourCol+24 {
		return nil, &table.SchemaMismatchError{
			File:    ref.File + "#" + ref.Sheet,
			Missing: []string{"hour columns 0-23"},
		}
	}

	out := make(table.HourlyTable, 0, len(rows))
	for i, row := range rows {
		if i < spec.SkipRows {
			continue
		}
		if len(row) < spec.HourCol+24 {
			continue // trailing ragged row
		}
		id := strings.TrimSpace(row[spec.KeyCol])
		if id == "" {
			continue
		}
		r := table.HourlyRow{Date: strings.TrimSpace(row[0]), CellID: id}
		for h := 0; h < 24; h++ {
			r.Hours[h] = parseNum(row[spec.HourCol+h])
		}
		out = append(out, r)
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
