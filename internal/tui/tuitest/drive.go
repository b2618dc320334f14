package tuitest

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds Drive so a model that keeps scheduling work fails the
// test instead of hanging it.
const MaxSteps = 500

// Collect runs cmd synchronously and returns the messages it produced,
// flattening batches. Nil commands and nil messages are dropped.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Drive feeds the messages produced by cmd back into model until no
// commands remain. Spinner ticks and quit messages are swallowed since
// they would otherwise loop forever or end the run.
func Drive(t *testing.T, model tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxSteps {
			t.Fatalf("command loop did not settle after %d steps", MaxSteps)
		}

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var out tea.Cmd
			model, out = model.Update(msg)
			queue = append(queue, out)
		}
	}
	return model
}

// Send applies msgs in order and drives each resulting command to rest.
func Send(t *testing.T, model tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		model = Drive(t, model, cmd)
	}
	return model
}
