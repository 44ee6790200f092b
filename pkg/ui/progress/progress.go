// Package progress renders terminal progress bars for the scan and
// hash phases. Bars are purely cosmetic and disable themselves on
// non-interactive outputs, so callers can wire them unconditionally.
package progress

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Interactive reports whether output supports live progress rendering.
// NO_COLOR, piped output and dumb terminals all disable it.
func Interactive(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Bar is a progress bar that degrades to a no-op when the output is
// not interactive or the bar failed to start.
type Bar struct {
	printer *pterm.ProgressbarPrinter
}

// NewBar starts a bar with the given title and total. A nil receiver
// is never returned; on non-interactive outputs the bar is inert.
func NewBar(title string, total int, output *os.File) *Bar {
	if !Interactive(output) || total <= 0 {
		return &Bar{}
	}
	printer, err := pterm.DefaultProgressbar.
		WithTitle(title).
		WithTotal(total).
		WithWriter(output).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return &Bar{}
	}
	return &Bar{printer: printer}
}

// Set advances the bar to an absolute position. Regressions are
// ignored so out-of-order updates cannot move the bar backwards.
func (b *Bar) Set(current int) {
	if b.printer == nil {
		return
	}
	if delta := current - b.printer.Current; delta > 0 {
		b.printer.Add(delta)
	}
}

// UpdateTitle replaces the bar's title text.
func (b *Bar) UpdateTitle(title string) {
	if b.printer != nil {
		b.printer.UpdateTitle(title)
	}
}

// Stop finishes the bar and clears it from the terminal.
func (b *Bar) Stop() {
	if b.printer != nil {
		_, _ = b.printer.Stop()
		b.printer = nil
	}
}
