// Package progress shows how far a batch has got.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter is notified once per processed file.
type Reporter interface {
	Start(total int)
	Advance(path string)
	Finish()
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)      {}
func (Nop) Advance(string) {}
func (Nop) Finish()        {}

// Bar renders a progress bar.
type Bar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBar creates a progress bar writing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{out: w}
}

// ForTerminal returns a stderr Bar when stderr is interactive and Nop
// otherwise, so piped output stays clean.
func ForTerminal() Reporter {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return Nop{}
	}
	return NewBar(os.Stderr)
}

// Start initializes the bar with the number of files.
func (b *Bar) Start(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("tagging"),
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(b.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Advance moves the bar by one file.
func (b *Bar) Advance(string) {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

// Finish completes the bar.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}
