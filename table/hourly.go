// Package table holds the cell-level data structures shared by every
// vendor pipeline: hourly metric tables, the standardized per-cell schema,
// and the site-level aggregation.
package table

// NoData marks an hour with no traffic sample. It is preserved as-is on
// import and excluded from daily totals; rows that carried no data at all
// are removed later by the clean stage, not here.
const NoData = -1

// HourlyRow is one cell's 24 hourly samples of a single metric for one day.
type HourlyRow struct {
	Date   string
	CellID string
	Hours  [24]float64
}

// HourlyTable is an ordered set of HourlyRows keyed by cell identifier.
type HourlyTable []HourlyRow

// BusyHour is the peak of a load metric and the hour it occurred.
type BusyHour struct {
	Peak float64
	Hour int
}

// BusyHours returns, per cell, the maximum across the 24 hourly columns and
// the hour index at which it occurs. Ties resolve to the lowest index; a row
// of all-NoData values still yields (NoData, 0) and is filtered downstream.
func (t HourlyTable) BusyHours() map[string]BusyHour {
	out := make(map[string]BusyHour, len(t))
	for _, r := range t {
		bh := BusyHour{Peak: r.Hours[0], Hour: 0}
		for h := 1; h < 24; h++ {
			if r.Hours[h] > bh.Peak {
				bh = BusyHour{Peak: r.Hours[h], Hour: h}
			}
		}
		out[r.CellID] = bh
	}
	return out
}

// SampleAt reads, for each cell present both in busy and in the table, this
// table's value at that cell's busy hour. Cells missing from either side
// produce no entry (inner-join semantics, not an error): throughput must be
// sampled at the hour the load metric peaked, never independently maximized.
func (t HourlyTable) SampleAt(busy map[string]BusyHour) map[string]float64 {
	out := make(map[string]float64, len(t))
	for _, r := range t {
		bh, ok := busy[r.CellID]
		if !ok {
			continue
		}
		out[r.CellID] = r.Hours[bh.Hour]
	}
	return out
}

// DailyTotals sums the 24 hourly columns per cell. NoData hours contribute
// zero so an all-sentinel row totals 0, not -24.
func (t HourlyTable) DailyTotals() map[string]float64 {
	out := make(map[string]float64, len(t))
	for _, r := range t {
		var sum float64
		for h := 0; h < 24; h++ {
			if r.Hours[h] == NoData {
				continue
			}
			sum += r.Hours[h]
		}
		out[r.CellID] = sum
	}
	return out
}
