// Package ericsson processes the Ericsson daily exports: fixed-name .xlsx
// workbooks whose sheets carry 24 hourly columns per cell. Both technology
// variants run the same pipeline, parameterized by a Spec: busy hour on the
// concurrency metric, throughput sampled at that hour, voice and data summed
// over the day, then standardization and cleaning.
package ericsson

import (
	"github.com/vnm-bi/autoreport/table"
	"github.com/vnm-bi/autoreport/utils"
)

// SheetRef names one metric's source: a workbook and a sheet within it.
type SheetRef struct {
	File  string
	Sheet string
}

// Spec parameterizes the shared pipeline for one technology.
type Spec struct {
	Tech  string
	User  SheetRef // concurrency metric, busy-hour source
	Speed SheetRef // sampled at the user busy hour, never summed
	Voice SheetRef // additive daily total
	Data  SheetRef // additive daily total

	// KeyCol is the cell-id column; the 24 hour columns follow HourCol.
	KeyCol  int
	HourCol int
	// SkipRows drops leading header rows before data.
	SkipRows int
}

// Spec3G describes the 3G export: four leading columns
// (Date, RNC Id, RBS Id, UCell Id) ahead of the hour block.
func Spec3G() Spec {
	return Spec{
		Tech:     "3G",
		User:     SheetRef{File: "Automate_3G_Traffic_User.xlsx", Sheet: "HS_User"},
		Speed:    SheetRef{File: "Automate_3G_Throughput.xlsx", Sheet: "User_TP_DL"},
		Voice:    SheetRef{File: "Automate_3G_Traffic_User.xlsx", Sheet: "Voice_Erlang"},
		Data:     SheetRef{File: "Automate_3G_Traffic_User.xlsx", Sheet: "Data_MB"},
		KeyCol:   3,
		HourCol:  4,
		SkipRows: 1,
	}
}

// Spec4G describes the LTE export: three leading columns
// (Date, Site ID, Cell ID), no header row.
func Spec4G() Spec {
	return Spec{
		Tech:     "4G",
		User:     SheetRef{File: "Automate_North_LTE_Traffic_Data.xlsx", Sheet: "UE_Active_DL"},
		Speed:    SheetRef{File: "Automate_North_LTE_Traffic_Data.xlsx", Sheet: "UE_TP_DL"},
		Voice:    SheetRef{File: "Automate_VoLTE_Traffic_Ericsson.xlsx", Sheet: "VoLTE_Traffic"},
		Data:     SheetRef{File: "Automate_North_LTE_Traffic_Data.xlsx", Sheet: "Data_MB"},
		KeyCol:   2,
		HourCol:  3,
		SkipRows: 0,
	}
}

// Processor runs the Ericsson pipeline for one Spec.
type Processor struct {
	spec Spec
	log  *utils.Logger
}

func New(spec Spec, log *utils.Logger) *Processor {
	return &Processor{spec: spec, log: log}
}

func (p *Processor) Tech() string { return p.spec.Tech }
func (p *Processor) Name() string { return p.spec.Tech + "-Ericsson" }

// Process imports the spec's sheets from dir and returns the cleaned,
// standardized cell table for the day.
func (p *Processor) Process(dir string) (table.CellTable, error) {
	books := newBookCache(dir)
	defer books.close()

	users, err := readSheet(books, p.spec.User, p.spec)
	if err != nil {
		return nil, err
	}
	speed, err := readSheet(books, p.spec.Speed, p.spec)
	if err != nil {
		return nil, err
	}
	voice, err := readSheet(books, p.spec.Voice, p.spec)
	if err != nil {
		return nil, err
	}
	data, err := readSheet(books, p.spec.Data, p.spec)
	if err != nil {
		return nil, err
	}

	busy := users.BusyHours()
	speedAtBusy := speed.SampleAt(busy)
	voiceTotals := voice.DailyTotals()
	dataTotals := data.DailyTotals()

	// The user table is the row base; the per-sheet keys are aligned so the
	// remaining metrics are assembled by cell id. Cells missing from the
	// data sheet contribute zero and fall to the clean step.
	cells := make(table.CellTable, 0, len(users))
	seen := make(map[string]bool, len(users))
	for _, r := range users {
		if seen[r.CellID] {
			continue
		}
		seen[r.CellID] = true
		cells = append(cells, table.CellRecord{
			CellID: r.CellID,
			User:   busy[r.CellID].Peak,
			Speed:  speedAtBusy[r.CellID],
			Voice:  voiceTotals[r.CellID],
			Data:   dataTotals[r.CellID],
		})
	}

	cleaned, removed := cells.Clean()
	p.log.Info("%s: %d cells, %d removed with zero data, %d kept",
		p.Name(), len(cells), removed, len(cleaned))
	return cleaned, nil
}
