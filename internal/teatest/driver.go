// Package teatest drives bubbletea models in tests without a tea.Program.
//
// Messages go straight to Update and returned Cmds are executed inline
// until the model goes quiet. Cmds that block (timers, cursor blinks) are
// abandoned after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds a single message may trigger.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds from timer-backed ones.
const cmdTimeout = 50 * time.Millisecond

// Driver feeds messages to Model synchronously.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg is produced. Later sends are dropped.
	Quitting bool
}

type Option func(*Driver)

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains whatever it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) press(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.press(tea.KeyDown) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.press(tea.KeyLeft) }
func (d *Driver) PressRight() { d.T.Helper(); d.press(tea.KeyRight) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up after %d chained commands", MaxDrainDepth)
		return
	}

	msg := runCmd(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}
	if isCursorBlink(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

// runCmd returns cmd's message, or nil if it does not return within
// cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
