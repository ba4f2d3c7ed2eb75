// Package notify delivers session-completion messages to the user: as
// in-app toasts, on a plain writer, or through the desktop notification
// daemon.
package notify

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const AppTitle = "Pomodoro"

type Notifier interface {
	Notify(message string)
}

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

type DesktopSender interface {
	Send(Notification) error
}

type NoopDesktopSender struct{}

func (NoopDesktopSender) Send(Notification) error { return nil }

// ExecDesktopSender shells out to notify-send on Linux and osascript on macOS.
// Other platforms are silently skipped.
type ExecDesktopSender struct{}

func (ExecDesktopSender) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Desktop adapts a DesktopSender to Notifier. Sends run on their own
// goroutine; failures are logged only.
type Desktop struct {
	sender DesktopSender
	now    func() time.Time
	log    zerolog.Logger
	wg     sync.WaitGroup
}

func NewDesktop(sender DesktopSender, now func() time.Time, log zerolog.Logger) *Desktop {
	if sender == nil {
		sender = NoopDesktopSender{}
	}
	if now == nil {
		now = time.Now
	}
	return &Desktop{sender: sender, now: now, log: log.With().Str("component", "notify").Logger()}
}

func (d *Desktop) Notify(message string) {
	n := Notification{Title: AppTitle, Body: message, At: d.now()}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sender.Send(n); err != nil {
			d.log.Warn().Err(err).Msg("desktop notification failed")
		}
	}()
}

// Wait blocks until every in-flight send has returned.
func (d *Desktop) Wait() { d.wg.Wait() }

// Toasts collects messages for the TUI to display. The TUI drains it after
// each update.
type Toasts struct {
	mu      sync.Mutex
	pending []string
}

func (t *Toasts) Notify(message string) {
	t.mu.Lock()
	t.pending = append(t.pending, message)
	t.mu.Unlock()
}

// Drain returns and clears the queued messages, oldest first.
func (t *Toasts) Drain() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.pending
	t.pending = nil
	return out
}

// Writer prints each message on its own line; used by the headless runner.
type Writer struct {
	Out io.Writer
}

func (w Writer) Notify(message string) {
	if w.Out == nil {
		return
	}
	fmt.Fprintln(w.Out, message)
}

// Fanout forwards every message to each non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(message string) {
	for _, n := range f {
		if n != nil {
			n.Notify(message)
		}
	}
}
