package commands

import (
	"fmt"
	"io"
	"sync"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
)

// Terminal shows notifications and the progress indicator.
// It satisfies both marketclient and dashboard notifier ports.
type Terminal struct {
	out io.Writer
	err io.Writer

	mu      sync.Mutex
	showing bool
}

func NewTerminal(out, err io.Writer) *Terminal {
	return &Terminal{out: out, err: err}
}

func (t *Terminal) NotifySuccess(title, message string) {
	fmt.Fprintf(t.out, "%s✓ %s%s\n", colorGreen, message, colorReset)
}

func (t *Terminal) NotifyError(title, message string) {
	fmt.Fprintf(t.err, "%s✗ %s: %s%s\n", colorRed, title, message, colorReset)
}

// Show prints the indicator line; Hide erases it
func (t *Terminal) Show(title, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.err, "%s⏳ %s - %s%s", colorDim, title, message, colorReset)
	t.showing = true
}

func (t *Terminal) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.showing {
		return
	}
	fmt.Fprint(t.err, "\r\033[K")
	t.showing = false
}
