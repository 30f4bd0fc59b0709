package main

import (
	"flag"
	"fmt"
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/iafilius/StockListViewer/src/config"
	"github.com/iafilius/StockListViewer/src/loader"
	"github.com/iafilius/StockListViewer/src/locale"
	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/quotes"
)

func main() {
	var cfgPath, logLevel, lang string
	var fullScreen bool
	flag.StringVar(&cfgPath, "config", envOr("STOCKVIEWER_CONFIG", "config.yaml"), "Path to config.yaml (optional)")
	flag.StringVar(&logLevel, "log-level", "", "Override log level (debug|info|warn|error)")
	flag.StringVar(&lang, "lang", "", "Skip the language selector (en|pt)")
	flag.BoolVar(&fullScreen, "fullscreen", false, "Open the stock list full screen")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.SetLogLevel(cfg.LogLevel)
	if cfg.UsingDemoKey() {
		logging.Warnf("using the public demo API key; most symbols will show N/A")
	}
	policy, err := loader.ParsePolicy(cfg.Loader.OnQuoteError)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	client := quotes.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout)
	ld := loader.New(client, policy)
	ld.MaxRows = cfg.Loader.MaxRows

	a := app.NewWithID("com.stocklistviewer.viewer")
	open := func(l locale.Locale) {
		logging.Infof("locale %s chosen", l)
		st := newUIState(a, locale.NewBundle(l), client, ld)
		w := buildMainWindow(st, fullScreen)
		w.SetMaster()
		w.Show()
	}

	if lang != "" {
		l, err := locale.Parse(lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lang: %v\n", err)
			os.Exit(2)
		}
		open(l)
	} else {
		gate := &languageGate{}
		showLanguageSelector(a, gate, open)
	}
	a.Run()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// compile-time check that the live client feeds both the window and the loader
var (
	_ listingSource       = (*quotes.Client)(nil)
	_ loader.QuoteFetcher = (*quotes.Client)(nil)
	_ surface             = (*fyne.Container)(nil)
)
