// Package pipeline orchestrates one daily run: stage the dropped files,
// unpack archives, run the four vendor processors, aggregate to sites,
// merge technologies into the master table, roll the history window and
// export the daily workbook.
package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vnm-bi/autoreport/archive"
	"github.com/vnm-bi/autoreport/config"
	"github.com/vnm-bi/autoreport/ericsson"
	"github.com/vnm-bi/autoreport/report"
	"github.com/vnm-bi/autoreport/runlog"
	"github.com/vnm-bi/autoreport/sitedb"
	"github.com/vnm-bi/autoreport/table"
	"github.com/vnm-bi/autoreport/utils"
	"github.com/vnm-bi/autoreport/workdir"
	"github.com/vnm-bi/autoreport/zte"
)

// Processor is one vendor/technology import pipeline. Process reads its
// inputs from the staging directory and returns the cleaned standardized
// cell table.
type Processor interface {
	Name() string
	Tech() string
	Process(dir string) (table.CellTable, error)
}

// EmptyResultError reports a processor that ran cleanly but produced zero
// rows after cleaning. Whether it fails the run is an operator policy.
type EmptyResultError struct {
	Processor string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: no rows after cleaning", e.Processor)
}

// Runner executes daily runs against a fixed configuration.
type Runner struct {
	cfg   *config.Config
	log   *utils.Logger
	src   workdir.FileSource
	procs []Processor
}

// New builds a Runner with the standard four processors, staging files
// from the configured drop directory.
func New(cfg *config.Config, log *utils.Logger) *Runner {
	return &Runner{
		cfg: cfg,
		log: log,
		src: workdir.DirSource{Dir: cfg.DropDir},
		procs: []Processor{
			ericsson.New(ericsson.Spec3G(), log),
			ericsson.New(ericsson.Spec4G(), log),
			zte.New(zte.Spec3G(), log),
			zte.New(zte.Spec4G(), log),
		},
	}
}

// NewWithProcessors builds a Runner over an explicit processor set.
func NewWithProcessors(cfg *config.Config, log *utils.Logger, procs ...Processor) *Runner {
	return &Runner{
		cfg:   cfg,
		log:   log,
		src:   workdir.DirSource{Dir: cfg.DropDir},
		procs: procs,
	}
}

// Run processes one report date end to end and records the outcome in the
// run ledger. The returned error is the reason the run did not complete;
// policy-tolerated processor failures are reported through the ledger
// instead.
func (r *Runner) Run(date string) error {
	ledger, err := runlog.Open(r.cfg.RunLogFile)
	if err != nil {
		return err
	}
	defer ledger.Close()

	failures, err := r.run(date)
	if err != nil {
		if lerr := ledger.Record(date, runlog.StatusNOK, err.Error()); lerr != nil {
			r.log.Error("record run: %v", lerr)
		}
		return err
	}
	if len(failures) > 0 {
		detail := "partial: " + strings.Join(failures, "; ")
		if lerr := ledger.Record(date, runlog.StatusNOK, detail); lerr != nil {
			r.log.Error("record run: %v", lerr)
		}
		return nil
	}
	return ledger.Record(date, runlog.StatusOK, "all processors completed")
}

func (r *Runner) run(date string) (failures []string, err error) {
	work, err := workdir.Acquire(r.cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := work.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	staged, err := r.src.Fetch(work.Path)
	if err != nil {
		return nil, fmt.Errorf("stage input files: %w", err)
	}
	r.log.Info("staged %d file(s)", staged)

	sum, err := archive.ExtractAll(work.Path, r.cfg.DeleteArchives, r.log)
	if err != nil {
		return nil, err
	}
	if sum.Archives > 0 {
		r.log.Info("unpacked %d archive(s): %d file(s)", sum.Archives, sum.Extracted)
	}

	results := r.runProcessors(work.Path)

	byTech := map[string][][]table.SiteRecord{}
	for _, res := range results {
		if res.err != nil {
			r.log.Error("%s: %v", res.proc.Name(), res.err)
			if r.cfg.OnProcessorError == "abort" {
				return nil, fmt.Errorf("%s: %w", res.proc.Name(), res.err)
			}
			failures = append(failures, fmt.Sprintf("%s: %v", res.proc.Name(), res.err))
			continue
		}
		if len(res.cells) == 0 {
			eerr := &EmptyResultError{Processor: res.proc.Name()}
			if r.cfg.OnEmptyResult == "fail" {
				return nil, eerr
			}
			r.log.Warn("%v", eerr)
			continue
		}

		sites, bad := table.AggregateBySite(res.cells)
		if bad.Count > 0 {
			r.log.Warn("%s: %d cell id(s) without a site code, e.g. %s",
				res.proc.Name(), bad.Count, strings.Join(bad.Samples, ", "))
		}
		r.log.Info("%s: %d site(s)", res.proc.Name(), len(sites))
		byTech[res.proc.Tech()] = append(byTech[res.proc.Tech()], sites)
	}

	g3 := report.CombineVendors(byTech["3G"]...)
	g4 := report.CombineVendors(byTech["4G"]...)

	loc, err := sitedb.Load(r.cfg.SiteDBFile)
	if err != nil {
		return nil, err
	}

	rows := report.BuildWide(date, g3, g4, loc)
	r.log.Info("master table: %d site(s) for %s", len(rows), date)

	hist := &report.History{Path: r.cfg.HistoryFile}
	if err := hist.Update(date, rows, r.cfg.RetentionDays); err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}

	path, err := report.ExportDaily(r.cfg.ReportDir, date, rows)
	if err != nil {
		return nil, err
	}
	r.log.Info("report written: %s", path)

	sort.Strings(failures)
	return failures, nil
}

type procResult struct {
	proc  Processor
	cells table.CellTable
	err   error
}

// runProcessors runs every processor against its own view of the staging
// directory. The processors only read, so they can run concurrently;
// results come back in registration order.
func (r *Runner) runProcessors(dir string) []procResult {
	results := make([]procResult, len(r.procs))
	var wg sync.WaitGroup
	for i, p := range r.procs {
		wg.Add(1)
		go func(i int, p Processor) {
			defer wg.Done()
			cells, err := p.Process(dir)
			results[i] = procResult{proc: p, cells: cells, err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}
