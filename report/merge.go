// Package report assembles the day's master table from the per-technology
// site tables, maintains the rolling history file, and exports the daily
// workbook for the reporting front end.
package report

import (
	"sort"

	"github.com/vnm-bi/autoreport/sitedb"
	"github.com/vnm-bi/autoreport/table"
)

// TechData is one technology's slice of a wide row. A nil TechData means
// the site did not report on that technology, which is different from
// reporting zeros.
type TechData struct {
	User  float64
	Speed float64
	Voice float64
	Data  float64
}

// WideRow is one site for one day across technologies, with location.
type WideRow struct {
	Date   string
	SiteID string
	G3     *TechData
	G4     *TechData

	Province    string
	District    string
	Latitude    float64
	Longitude   float64
	HasLocation bool
}

// CombineVendors folds same-technology vendor outputs into one site table.
// The vendors serve disjoint regions so sites rarely collide, but when one
// does the reduction matches the site aggregator: user/voice/data sum,
// speed mean.
func CombineVendors(tables ...[]table.SiteRecord) []table.SiteRecord {
	type acc struct {
		table.SiteRecord
		n int
	}
	sites := map[string]*acc{}
	for _, t := range tables {
		for _, s := range t {
			a := sites[s.SiteID]
			if a == nil {
				a = &acc{SiteRecord: table.SiteRecord{SiteID: s.SiteID}}
				sites[s.SiteID] = a
			}
			a.User += s.User
			a.Speed += s.Speed
			a.Voice += s.Voice
			a.Data += s.Data
			a.n++
		}
	}
	out := make([]table.SiteRecord, 0, len(sites))
	for _, a := range sites {
		r := a.SiteRecord
		r.Speed /= float64(a.n)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SiteID < out[j].SiteID })
	return out
}

// BuildWide outer-joins the 3G and 4G site tables for one run date and
// left-joins the location lookup. A site present in only one technology
// still appears, with the other technology null.
func BuildWide(date string, g3, g4 []table.SiteRecord, loc sitedb.Lookup) []WideRow {
	rows := map[string]*WideRow{}
	get := func(id string) *WideRow {
		r := rows[id]
		if r == nil {
			r = &WideRow{Date: date, SiteID: id}
			rows[id] = r
		}
		return r
	}
	for _, s := range g3 {
		get(s.SiteID).G3 = &TechData{User: s.User, Speed: s.Speed, Voice: s.Voice, Data: s.Data}
	}
	for _, s := range g4 {
		get(s.SiteID).G4 = &TechData{User: s.User, Speed: s.Speed, Voice: s.Voice, Data: s.Data}
	}

	out := make([]WideRow, 0, len(rows))
	for id, r := range rows {
		if l, ok := loc[id]; ok {
			r.Province, r.District = l.Province, l.District
			r.Latitude, r.Longitude = l.Latitude, l.Longitude
			r.HasLocation = true
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SiteID < out[j].SiteID })
	return out
}
