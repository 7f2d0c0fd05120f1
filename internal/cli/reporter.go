// Package cli provides command-line interface functionality for Encrypty.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"Encrypty/internal/app"
	"Encrypty/internal/render"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

// Ensure Reporter implements app.Renderer
var _ app.Renderer = (*Reporter)(nil)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Reporter implements app.Renderer for terminal output.
// Outcomes go to out; the busy indicator goes to status and is animated
// on a single overwritten line only when status is a terminal.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	status   io.Writer
	quiet    bool
	animate  bool
	link     render.LinkFunc
	stop     chan struct{}
	done     chan struct{}
	lastLine int // Length of last printed line (for clearing)
}

// NewReporter creates a terminal reporter.
// If quiet is true, the busy indicator is suppressed; outcomes are always printed.
func NewReporter(out, status io.Writer, quiet bool, link render.LinkFunc) *Reporter {
	return &Reporter{
		out:     out,
		status:  status,
		quiet:   quiet,
		animate: isTerminal(status),
		link:    link,
	}
}

// SetBusy implements app.Renderer.
func (r *Reporter) SetBusy(trigger app.Trigger, busy bool) {
	if r.quiet {
		return
	}
	if busy {
		r.startSpinner()
		return
	}
	r.stopSpinner()
}

func (r *Reporter) startSpinner() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.animate {
		fmt.Fprintln(r.status, app.BusyLabel)
		return
	}

	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.spin(r.stop, r.done)
}

func (r *Reporter) spin(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		r.mu.Lock()
		line := fmt.Sprintf("\r%s %s", spinnerFrames[i%len(spinnerFrames)], app.BusyLabel)
		r.lastLine = len(line)
		fmt.Fprint(r.status, line)
		r.mu.Unlock()

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (r *Reporter) stopSpinner() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	// Clear the spinner line
	fmt.Fprint(r.status, "\r"+strings.Repeat(" ", r.lastLine)+"\r")
	r.lastLine = 0
}

// HideResults implements app.Renderer. Printed output cannot be taken back,
// so there is nothing to hide.
func (r *Reporter) HideResults() {}

// Render implements app.Renderer.
func (r *Reporter) Render(state *app.State) {
	o, ok := state.Outcome()
	if !ok {
		return
	}
	r.stopSpinner()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !o.OK {
		color.New(color.FgRed, color.Bold).Fprint(r.out, "✗ Error: ")
		fmt.Fprintln(r.out, o.Message)
		return
	}

	color.New(color.FgGreen, color.Bold).Fprint(r.out, "✓ Success! ")
	fmt.Fprintln(r.out, o.Message)
	if o.ProcessedCount != nil {
		fmt.Fprintf(r.out, "Processed %d file(s)\n", *o.ProcessedCount)
	}
	if o.OutputText != nil {
		color.New(color.Faint).Fprintln(r.out, strings.TrimRight(*o.OutputText, "\n"))
	}
	if o.HasDownloads() {
		lines := lo.Map(o.OutputFiles, func(name string, _ int) string {
			return fmt.Sprintf("  Download %s: %s", name, r.href(name))
		})
		fmt.Fprintln(r.out, strings.Join(lines, "\n"))
	}
}

func (r *Reporter) href(name string) string {
	if r.link == nil {
		return name
	}
	return r.link(name)
}
