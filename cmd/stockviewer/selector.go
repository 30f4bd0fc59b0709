package main

import (
	"sync"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/StockListViewer/src/locale"
)

// languageGate lets exactly one locale choice through per process; later clicks
// (double-clicks, the second button before the window closes) are ignored.
type languageGate struct {
	once   sync.Once
	chosen locale.Locale
}

// choose reports whether l was accepted as the session locale.
func (g *languageGate) choose(l locale.Locale) bool {
	accepted := false
	g.once.Do(func() {
		g.chosen = l
		accepted = true
	})
	return accepted
}

// Chosen returns the accepted locale, or "" before any choice.
func (g *languageGate) Chosen() locale.Locale { return g.chosen }

// showLanguageSelector opens the pre-screen. onChoose runs once with the picked locale and
// must open the next window; the selector closes itself afterwards.
func showLanguageSelector(a fyne.App, gate *languageGate, onChoose func(locale.Locale)) fyne.Window {
	w := a.NewWindow("Choose Language")
	prompt := widget.NewLabel(locale.ChooserPrompt)
	prompt.Alignment = fyne.TextAlignCenter

	buttons := container.NewGridWithColumns(len(locale.All))
	for _, l := range locale.All {
		l := l
		buttons.Add(widget.NewButton(l.Table().ButtonLabel, func() {
			if !gate.choose(l) {
				return
			}
			onChoose(l)
			w.Close()
		}))
	}
	w.SetContent(container.NewPadded(container.NewVBox(prompt, buttons)))
	w.SetFixedSize(true)
	w.CenterOnScreen()
	w.Show()
	return w
}
