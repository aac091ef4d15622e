// Package toast carries short-lived user feedback from the planner core to
// whatever surface shows it. Emitting never blocks and never fails.
package toast

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
	Info    Kind = "info"
)

// DefaultDuration is how long a toast stays visible before dismissing itself.
const DefaultDuration = 3 * time.Second

type Toast struct {
	Kind     Kind
	Message  string
	Duration time.Duration
}

func New(kind Kind, format string, args ...any) Toast {
	return Toast{Kind: kind, Message: fmt.Sprintf(format, args...), Duration: DefaultDuration}
}

type Emitter interface {
	Emit(t Toast)
}

// Discard drops every toast.
type Discard struct{}

func (Discard) Emit(Toast) {}

// Recorder keeps emitted toasts in order.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Emit(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Last returns the most recent toast, if any.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Gate forwards warnings and errors unconditionally; success and info toasts
// only pass while Enabled reports true (the notifications preference).
type Gate struct {
	Next    Emitter
	Enabled func() bool
}

func (g Gate) Emit(t Toast) {
	if g.Next == nil {
		return
	}
	if (t.Kind == Success || t.Kind == Info) && g.Enabled != nil && !g.Enabled() {
		return
	}
	g.Next.Emit(t)
}

// TerminalEmitter prints one styled line per toast.
type TerminalEmitter struct {
	mu    sync.Mutex
	w     io.Writer
	style func(Kind) lipgloss.Style
}

func NewTerminalEmitter(w io.Writer, style func(Kind) lipgloss.Style) *TerminalEmitter {
	return &TerminalEmitter{w: w, style: style}
}

func (e *TerminalEmitter) Emit(t Toast) {
	e.mu.Lock()
	defer e.mu.Unlock()
	line := fmt.Sprintf("%s %s", badge(t.Kind), t.Message)
	if e.style != nil {
		line = e.style(t.Kind).Render(line)
	}
	_, _ = fmt.Fprintln(e.w, line)
}

func badge(kind Kind) string {
	switch kind {
	case Success:
		return "✓"
	case Warning:
		return "!"
	case Error:
		return "✗"
	default:
		return "i"
	}
}
