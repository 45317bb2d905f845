package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

var historyHeader = []string{
	"Date", "SiteID",
	"3G_User", "3G_Speed", "3G_Voice", "3G_Data",
	"4G_User", "4G_Speed", "4G_Voice", "4G_Data",
	"Province", "District", "Latitude", "Longitude",
}

// History is the rolling master table persisted as CSV. Each Update
// replaces the run date's rows, prunes rows outside the retention window
// and rewrites the file atomically, so re-running a day never duplicates
// it and a crash mid-write never truncates it.
type History struct {
	Path string
}

// Load reads the history file. A missing file is an empty history, not an
// error: the first run ever has nothing to load.
func (h *History) Load() ([]WideRow, error) {
	f, err := os.Open(h.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", h.Path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out []WideRow
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("history %s line %d: %w", h.Path, i+2, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// Update merges the run date's rows into the history. Existing rows for
// the same date are replaced, rows older than retentionDays before the run
// date are dropped, and the file is rewritten through a temp file plus
// rename.
func (h *History) Update(runDate string, rows []WideRow, retentionDays int) error {
	run, err := time.Parse(dateLayout, runDate)
	if err != nil {
		return fmt.Errorf("bad run date %q: %w", runDate, err)
	}
	cutoff := run.AddDate(0, 0, -retentionDays)

	existing, err := h.Load()
	if err != nil {
		return err
	}

	merged := make([]WideRow, 0, len(existing)+len(rows))
	for _, r := range existing {
		if r.Date == runDate {
			continue
		}
		d, err := time.Parse(dateLayout, r.Date)
		if err == nil && d.Before(cutoff) {
			continue
		}
		merged = append(merged, r)
	}
	merged = append(merged, rows...)

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Date != merged[j].Date {
			return merged[i].Date < merged[j].Date
		}
		return merged[i].SiteID < merged[j].SiteID
	})
	return h.rewrite(merged)
}

func (h *History) rewrite(rows []WideRow) error {
	dir := filepath.Dir(h.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".history-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(historyHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, r := range rows {
		if err := w.Write(formatRow(r)); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), h.Path)
}

func formatRow(r WideRow) []string {
	rec := []string{r.Date, r.SiteID}
	rec = append(rec, formatTech(r.G3)...)
	rec = append(rec, formatTech(r.G4)...)
	if r.HasLocation {
		rec = append(rec, r.Province, r.District, fnum(r.Latitude), fnum(r.Longitude))
	} else {
		rec = append(rec, "", "", "", "")
	}
	return rec
}

func formatTech(t *TechData) []string {
	if t == nil {
		return []string{"", "", "", ""}
	}
	return []string{fnum(t.User), fnum(t.Speed), fnum(t.Voice), fnum(t.Data)}
}

func fnum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func parseRow(rec []string) (WideRow, error) {
	if len(rec) != len(historyHeader) {
		return WideRow{}, fmt.Errorf("want %d fields, got %d", len(historyHeader), len(rec))
	}
	row := WideRow{Date: rec[0], SiteID: rec[1]}
	var err error
	if row.G3, err = parseTech(rec[2:6]); err != nil {
		return WideRow{}, err
	}
	if row.G4, err = parseTech(rec[6:10]); err != nil {
		return WideRow{}, err
	}
	row.Province, row.District = rec[10], rec[11]
	if rec[12] != "" || rec[13] != "" {
		row.HasLocation = true
		if row.Latitude, err = strconv.ParseFloat(rec[12], 64); err != nil {
			return WideRow{}, err
		}
		if row.Longitude, err = strconv.ParseFloat(rec[13], 64); err != nil {
			return WideRow{}, err
		}
	}
	return row, nil
}

func parseTech(fields []string) (*TechData, error) {
	if fields[0] == "" && fields[1] == "" && fields[2] == "" && fields[3] == "" {
		return nil, nil
	}
	var t TechData
	for i, dst := range []*float64{&t.User, &t.Speed, &t.Voice, &t.Data} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	return &t, nil
}
