// Package zte processes the ZTE daily exports: CSV files named with a
// dynamic date suffix, split across two element-management systems. EMS1
// and EMS2 cover disjoint cell sets of one network, so their tables are
// concatenated, never merged; the traffic and user-throughput tables are
// then inner-joined on cell name. The EMS pre-aggregates these exports
// (busy-hour throughput, whole-day traffic), so the transform stage is a
// column selection rather than an hourly reduction.
package zte

import (
	"github.com/vnm-bi/autoreport/table"
	"github.com/vnm-bi/autoreport/utils"
)

// Spec parameterizes the shared pipeline for one technology.
type Spec struct {
	Tech string

	// File-name prefixes, one per EMS partition; each must match exactly
	// one *.csv in the working directory for the run date.
	TrafficPatterns []string // whole-day voice + data totals
	UserPatterns    []string // busy-hour users + throughput

	CellCol  string
	UserCol  string // in the user-throughput files
	SpeedCol string // in the user-throughput files
	VoiceCol string // in the traffic files
	DataCol  string // in the traffic files
}

// Spec3G describes the UMTS export.
func Spec3G() Spec {
	return Spec{
		Tech:            "3G",
		TrafficPatterns: []string{"Automate_3G_ZTE_Traffic_EMS1_WD_", "Automate_3G_ZTE_Traffic_EMS2_WD_"},
		UserPatterns:    []string{"Automate_3G_ZTE_User_TP_EMS1_BH_", "Automate_3G_ZTE_User_TP_EMS2_BH_"},
		CellCol:         "Cell Name",
		UserCol:         "Average HSDPA Users",
		SpeedCol:        "User DL Throughput (kbps)",
		VoiceCol:        "AMR Traffic (Erl)",
		DataCol:         "Total Data Traffic (MB)",
	}
}

// Spec4G describes the LTE export.
func Spec4G() Spec {
	return Spec{
		Tech:            "4G",
		TrafficPatterns: []string{"Automate_4G_ZTE_Traffic_EMS1_WD_", "Automate_4G_ZTE_Traffic_EMS2_WD_"},
		UserPatterns:    []string{"Automate_4G_ZTE_User_TP_EMS1_BH_", "Automate_4G_ZTE_User_TP_EMS2_BH_"},
		CellCol:         "Cell Name",
		UserCol:         "Average DL Active User Number",
		SpeedCol:        "DL_THP_PER_USER(kbps)",
		VoiceCol:        "[LTE]Average Number of QCI1(Traffic)(Erl)",
		DataCol:         "Data(MB)",
	}
}

// Processor runs the ZTE pipeline for one Spec.
type Processor struct {
	spec Spec
	log  *utils.Logger
}

func New(spec Spec, log *utils.Logger) *Processor {
	return &Processor{spec: spec, log: log}
}

func (p *Processor) Tech() string { return p.spec.Tech }
func (p *Processor) Name() string { return p.spec.Tech + "-ZTE" }

// Process imports the EMS partitions from dir and returns the cleaned,
// standardized cell table for the day.
func (p *Processor) Process(dir string) (table.CellTable, error) {
	traffic, err := loadConcat(dir, p.spec.TrafficPatterns, p.spec.CellCol,
		p.spec.VoiceCol, p.spec.DataCol)
	if err != nil {
		return nil, err
	}
	userTP, err := loadConcat(dir, p.spec.UserPatterns, p.spec.CellCol,
		p.spec.UserCol, p.spec.SpeedCol)
	if err != nil {
		return nil, err
	}

	byCell := make(map[string][2]float64, len(traffic))
	for _, r := range traffic {
		byCell[r.cell] = [2]float64{r.vals[0], r.vals[1]} // voice, data
	}

	// Inner join: a cell must appear in both tables to produce a row.
	cells := make(table.CellTable, 0, len(userTP))
	for _, r := range userTP {
		tr, ok := byCell[r.cell]
		if !ok {
			continue
		}
		cells = append(cells, table.CellRecord{
			CellID: r.cell,
			User:   r.vals[0],
			Speed:  r.vals[1],
			Voice:  tr[0],
			Data:   tr[1],
		})
	}

	cleaned, removed := cells.Clean()
	p.log.Info("%s: %d traffic rows, %d user rows, %d joined, %d removed with zero data",
		p.Name(), len(traffic), len(userTP), len(cells), removed)
	return cleaned, nil
}
