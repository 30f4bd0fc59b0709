// Package locale holds the two display-language string tables and number formatting.
package locale

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iafilius/StockListViewer/src/types"
)

// Locale identifies a display language.
type Locale string

const (
	English    Locale = "English"
	Portuguese Locale = "Portuguese"
)

// All lists the selectable locales in button order.
var All = []Locale{English, Portuguese}

// ChooserPrompt is shown on the language selector before any locale exists.
const ChooserPrompt = "Choose your language / Escolha seu idioma"

// Strings is every piece of text the main window and chart show.
type Strings struct {
	ButtonLabel string
	WindowTitle string
	Loading     string
	Headers     [8]string
	ChartTitle  string // fmt pattern, %s = symbol
	DateAxis    string
	PriceAxis   string
	ChartHint   string
	LoadFailed  string
	Reload      string
	SaveChart   string
	NoChart     string
	RowsLoaded  string // fmt pattern, %d rows, %d skipped
	Aborted     string // fmt pattern, %d 1-based row, %s symbol
	SaveFailed  string
	Tag         language.Tag
}

var tables = map[Locale]Strings{
	English: {
		ButtonLabel: "English",
		WindowTitle: "Stock List",
		Loading:     "Loading...",
		Headers:     [8]string{"Symbol", "Name", "Exchange", "Asset Type", "IPO Date", "Delisting Date", "Status", "Current Price"},
		ChartTitle:  "Stock Price Chart for %s",
		DateAxis:    "Date",
		PriceAxis:   "Price",
		ChartHint:   "Select a row to show its price chart",
		LoadFailed:  "Could not load the stock list",
		Reload:      "Reload",
		SaveChart:   "Save chart…",
		NoChart:     "No chart to save.",
		RowsLoaded:  "%d rows loaded (%d skipped)",
		Aborted:     "Loading stopped at row %d (%s)",
		SaveFailed:  "Could not save the chart",
		Tag:         language.AmericanEnglish,
	},
	Portuguese: {
		ButtonLabel: "Português",
		WindowTitle: "Lista de Ações",
		Loading:     "Carregando...",
		Headers:     [8]string{"Símbolo", "Nome", "Bolsa", "Tipo de Ativo", "Data IPO", "Data de Retirada", "Status", "Preço Atual"},
		ChartTitle:  "Gráfico de Preço para %s",
		DateAxis:    "Data",
		PriceAxis:   "Preço",
		ChartHint:   "Selecione uma linha para ver o gráfico",
		LoadFailed:  "Não foi possível carregar a lista de ações",
		Reload:      "Recarregar",
		SaveChart:   "Salvar gráfico…",
		NoChart:     "Nenhum gráfico para salvar.",
		RowsLoaded:  "%d linhas carregadas (%d ignoradas)",
		Aborted:     "Carregamento interrompido na linha %d (%s)",
		SaveFailed:  "Não foi possível salvar o gráfico",
		Tag:         language.BrazilianPortuguese,
	},
}

// Parse maps a config or flag value to a Locale.
func Parse(s string) (Locale, error) {
	switch s {
	case "English", "english", "en":
		return English, nil
	case "Portuguese", "portuguese", "Português", "pt", "pt-BR":
		return Portuguese, nil
	}
	return "", fmt.Errorf("unknown locale %q", s)
}

// Table returns the strings for l; unknown locales fall back to English.
func (l Locale) Table() Strings {
	if t, ok := tables[l]; ok {
		return t
	}
	return tables[English]
}

// Bundle is a chosen locale with its printer. Built once, read-only afterwards.
type Bundle struct {
	Locale Locale
	Strings
	printer *message.Printer
}

// NewBundle freezes l's table and number printer.
func NewBundle(l Locale) *Bundle {
	t := l.Table()
	return &Bundle{Locale: l, Strings: t, printer: message.NewPrinter(t.Tag)}
}

// Title returns the chart title for symbol.
func (b *Bundle) Title(symbol string) string { return fmt.Sprintf(b.ChartTitle, symbol) }

// Loaded returns the status line for a finished load.
func (b *Bundle) Loaded(rows, skipped int) string {
	return b.printer.Sprintf(b.RowsLoaded, rows, skipped)
}

// AbortedAt returns the status line for a load stopped at the 0-based row index.
func (b *Bundle) AbortedAt(index int, symbol string) string {
	return b.printer.Sprintf(b.Aborted, index+1, symbol)
}

// Price formats a quote for the price column: numeric prices get locale separators with
// at least two decimals, anything else shows as returned.
func (b *Bundle) Price(q types.Quote) string {
	if q.Status != types.QuotePriced {
		return q.Display()
	}
	d, err := decimal.NewFromString(q.Price)
	if err != nil {
		return q.Price
	}
	places := decimalPlaces(d.String())
	if places < 2 {
		places = 2
	}
	f, _ := d.Float64()
	return b.Number(f, places)
}

// Number formats v with the locale's separators and n decimals.
func (b *Bundle) Number(v float64, n int) string {
	return b.printer.Sprintf(fmt.Sprintf("%%.%df", n), v)
}

func decimalPlaces(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}
