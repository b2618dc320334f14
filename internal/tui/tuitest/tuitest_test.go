package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg int

// counter counts echoMsg values and re-emits until it reaches limit.
type counter struct {
	seen  int
	limit int
}

func (c counter) Init() tea.Cmd { return nil }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(echoMsg); ok {
		c.seen++
		if c.seen < c.limit {
			return c, tea.Batch(emit(c.seen), nil)
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func emit(n int) tea.Cmd {
	return func() tea.Msg { return echoMsg(n) }
}

func TestCollect(t *testing.T) {
	assert.Nil(t, Collect(nil))
	assert.Nil(t, Collect(func() tea.Msg { return nil }))

	msgs := Collect(tea.Batch(emit(1), tea.Batch(emit(2), emit(3))))
	assert.Equal(t, []tea.Msg{echoMsg(1), echoMsg(2), echoMsg(3)}, msgs)
}

func TestDrive_SettlesAndSkipsQuit(t *testing.T) {
	m := Drive(t, counter{limit: 4}, tea.Batch(emit(0), tea.Quit))
	assert.Equal(t, 4, m.(counter).seen)
}

func TestSend(t *testing.T) {
	m := Send(t, counter{limit: 2}, echoMsg(0), KeyPress("x"))
	assert.Equal(t, 2, m.(counter).seen)
}

func TestKeyPress(t *testing.T) {
	assert.Equal(t, "enter", KeyPress("enter").String())
	assert.Equal(t, "esc", KeyPress("esc").String())
	assert.Equal(t, "ctrl+c", KeyPress("ctrl+c").String())
	assert.Equal(t, "q", KeyPress("q").String())
	assert.Len(t, Type("abc"), 3)
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, WindowSize(80, 24))
}

func TestViewHelpers(t *testing.T) {
	assert.Equal(t, "Total 47", StripANSI("\x1b[1mTotal\x1b[0m 47"))
	assert.True(t, ContainsInOrder("Chicken 60 Beef 120", "Chicken", "Beef"))
	assert.False(t, ContainsInOrder("Beef 120 Chicken 60", "Chicken", "Beef"))
}
