package handlers

import (
	"errors"
	"io"
	"sync"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgHiGreen, color.Bold)
	errorColor   = color.New(color.FgHiRed, color.Bold)
)

// Notifier prints transient messages, the terminal counterpart of a toast.
type Notifier struct {
	mu   sync.Mutex
	w    io.Writer
	last error
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	successColor.Fprintf(n.w, "✓ %s\n", msg)
}

func (n *Notifier) Error(msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	errorColor.Fprintf(n.w, "✗ %s\n", msg)
	n.last = err
}

// shown reports whether err, or an error it wraps, was already printed.
func (n *Notifier) shown(err error) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last != nil && errors.Is(err, n.last)
}
