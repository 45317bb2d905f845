package table

import (
	"sort"
	"strings"
)

// CellRecord is one reporting cell for one day in the standardized schema
// every vendor pipeline normalizes to: user (peak concurrency), speed
// (sampled at the busy hour), voice and data (daily totals).
type CellRecord struct {
	CellID string
	User   float64
	Speed  float64
	Voice  float64
	Data   float64
}

// CellTable is a standardized per-cell table for one technology.
type CellTable []CellRecord

// Clean drops rows whose Data column is exactly zero: a cell that carried no
// traffic this period, not a reportable zero-traffic observation. Returns
// the surviving rows and the number removed.
func (t CellTable) Clean() (CellTable, int) {
	kept := make(CellTable, 0, len(t))
	for _, r := range t {
		if r.Data == 0 {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(t) - len(kept)
}

// SiteRecord is one site for one day: user/voice/data summed over the
// site's cells, speed averaged.
type SiteRecord struct {
	SiteID string
	User   float64
	Speed  float64
	Voice  float64
	Data   float64
}

// siteIDLen is the fixed length of the site code embedded in cell ids.
const siteIDLen = 6

// SiteID extracts the site code from a cell identifier. Vendor prefixes
// differ in their leading character but all encode the site in the six
// characters that follow it ("U106038A10M" → "106038").
func SiteID(cellID string) (string, bool) {
	id := strings.TrimSpace(cellID)
	if len(id) < 1+siteIDLen {
		return "", false
	}
	return id[1 : 1+siteIDLen], true
}

// KeyErrors aggregates record-level identifier problems: rows are excluded
// and counted rather than failing the whole table or vanishing silently.
type KeyErrors struct {
	Count   int
	Samples []string
}

const maxKeySamples = 5

func (e *KeyErrors) add(key string) {
	e.Count++
	if len(e.Samples) < maxKeySamples {
		e.Samples = append(e.Samples, key)
	}
}

// AggregateBySite groups a cleaned cell table by site code and reduces to
// one record per site: user/voice/data by sum, speed by arithmetic mean.
// Output is sorted by site id, so grouping is stable regardless of input
// order. Cells whose identifier cannot yield a site code are collected in
// the returned KeyErrors.
func AggregateBySite(cells CellTable) ([]SiteRecord, KeyErrors) {
	type acc struct {
		SiteRecord
		n int
	}
	var bad KeyErrors
	sites := map[string]*acc{}
	for _, c := range cells {
		id, ok := SiteID(c.CellID)
		if !ok {
			bad.add(c.CellID)
			continue
		}
		a := sites[id]
		if a == nil {
			a = &acc{SiteRecord: SiteRecord{SiteID: id}}
			sites[id] = a
		}
		a.User += c.User
		a.Speed += c.Speed
		a.Voice += c.Voice
		a.Data += c.Data
		a.n++
	}

	out := make([]SiteRecord, 0, len(sites))
	for _, a := range sites {
		r := a.SiteRecord
		r.Speed /= float64(a.n)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SiteID < out[j].SiteID })
	return out, bad
}
