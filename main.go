package main

import (
	"flag"
	"os"
	"time"

	"github.com/vnm-bi/autoreport/config"
	"github.com/vnm-bi/autoreport/pipeline"
	"github.com/vnm-bi/autoreport/utils"
)

func main() {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	date := flag.String("date", yesterday, "report date to process (YYYY-MM-DD)")
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	log := utils.NewLogger()

	if _, err := time.Parse("2006-01-02", *date); err != nil {
		log.Error("invalid -date %q: %v", *date, err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config: %v", err)
		os.Exit(1)
	}

	log.Info("processing report date %s", *date)
	if err := pipeline.New(cfg, log).Run(*date); err != nil {
		log.Error("run failed: %v", err)
		os.Exit(1)
	}
	log.Info("done")
}
