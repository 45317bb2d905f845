// Package config loads the pipeline configuration from a TOML file,
// writing a default file on first run.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds everything a run needs. Policy knobs mirror the operator
// choices the pipeline must not hardcode: what to do when one technology
// fails and whether an empty post-clean result is fatal.
type Config struct {
	// DropDir is where the mail stage leaves the day's attachments.
	DropDir string `toml:"drop_dir"`
	// WorkDir is cleared at run start and released at run end.
	WorkDir string `toml:"work_dir"`

	HistoryFile string `toml:"history_file"`
	ReportDir   string `toml:"report_dir"`
	SiteDBFile  string `toml:"site_db_file"`
	RunLogFile  string `toml:"run_log_file"`

	// RetentionDays bounds the rolling history window.
	RetentionDays int `toml:"retention_days"`

	// OnProcessorError: "abort" stops the whole run, "continue" keeps the
	// technologies that succeeded.
	OnProcessorError string `toml:"on_processor_error"`
	// OnEmptyResult: "warn" or "fail" when a processor yields zero rows
	// after cleaning.
	OnEmptyResult string `toml:"on_empty_result"`

	// DeleteArchives removes *.zip files after successful extraction.
	DeleteArchives bool `toml:"delete_archives"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		DropDir:          "drop",
		WorkDir:          "downloads",
		HistoryFile:      "output/master_report.csv",
		ReportDir:        "output",
		SiteDBFile:       "data/sites.db",
		RunLogFile:       "data/runs.db",
		RetentionDays:    30,
		OnProcessorError: "abort",
		OnEmptyResult:    "warn",
		DeleteArchives:   false,
	}
}

// Load reads the TOML config at path. If the file does not exist it is
// created with defaults so the operator has something to edit.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.OnProcessorError {
	case "abort", "continue":
	default:
		return fmt.Errorf("config: on_processor_error must be \"abort\" or \"continue\", got %q", c.OnProcessorError)
	}
	switch c.OnEmptyResult {
	case "warn", "fail":
	default:
		return fmt.Errorf("config: on_empty_result must be \"warn\" or \"fail\", got %q", c.OnEmptyResult)
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("config: retention_days must be positive, got %d", c.RetentionDays)
	}
	return nil
}
