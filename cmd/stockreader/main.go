package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iafilius/StockListViewer/src/config"
	"github.com/iafilius/StockListViewer/src/loader"
	"github.com/iafilius/StockListViewer/src/locale"
	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/quotes"
)

func main() {
	var cfgPath, policyFlag, lang, exportPath, format, schedule, chartPath, symbol, logLevel string
	var max int
	flag.StringVar(&cfgPath, "config", envOr("STOCKVIEWER_CONFIG", "config.yaml"), "Path to config.yaml (optional)")
	flag.IntVar(&max, "n", -1, "Max rows to quote (0 = all; default from config)")
	flag.StringVar(&policyFlag, "policy", "", "On quote error: abort|continue (default from config)")
	flag.StringVar(&lang, "lang", "en", "Output language (en|pt)")
	flag.StringVar(&exportPath, "export", "", "Export snapshot to this file or directory")
	flag.StringVar(&format, "format", "", "Export format: csv|json|parquet|sqlite (default from config)")
	flag.StringVar(&schedule, "schedule", "", "Cron spec with seconds field; repeats the pass until interrupted")
	flag.StringVar(&chartPath, "chart", "", "Write a synthetic price chart PNG to this path")
	flag.StringVar(&symbol, "symbol", "", "Symbol to chart (default: first row)")
	flag.StringVar(&logLevel, "log-level", "", "Override log level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal(err)
	}
	if max >= 0 {
		cfg.Loader.MaxRows = max
	}
	if policyFlag != "" {
		cfg.Loader.OnQuoteError = strings.ToLower(policyFlag)
	}
	if format != "" {
		cfg.Export.Format = format
	}
	if exportPath != "" {
		cfg.Export.Path = exportPath
	}
	if schedule != "" {
		cfg.Export.Schedule = schedule
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	logging.SetLogLevel(cfg.LogLevel)
	if cfg.UsingDemoKey() {
		logging.Warnf("using the public demo API key; most symbols will show N/A")
	}

	policy, err := loader.ParsePolicy(cfg.Loader.OnQuoteError)
	if err != nil {
		fatal(err)
	}
	loc, err := locale.Parse(lang)
	if err != nil {
		fatal(err)
	}
	client := quotes.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout)
	ld := loader.New(client, policy)
	ld.MaxRows = cfg.Loader.MaxRows

	j := &job{
		Client:      client,
		Loader:      ld,
		Bundle:      locale.NewBundle(loc),
		ExportPath:  cfg.Export.Path,
		Format:      cfg.Export.Format,
		ChartPath:   chartPath,
		ChartSymbol: symbol,
		Out:         os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Export.Schedule == "" {
		if _, err := j.runOnce(ctx); err != nil {
			stop()
			fatal(err)
		}
		return
	}

	c, err := newScheduler(cfg.Export.Schedule, func() {
		if _, err := j.runOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Errorf("scheduled pass: %v", err)
		}
	})
	if err != nil {
		fatal(err)
	}
	c.Start()
	logging.Infof("scheduler started (%s)", cfg.Export.Schedule)
	<-ctx.Done()
	<-c.Stop().Done()
	logging.Infof("scheduler stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
