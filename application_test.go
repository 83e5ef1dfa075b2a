package dragsort

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingBox captures the mouse from a left press until the release.
type capturingBox struct {
	*Box
	pressed bool
	actions []MouseAction
}

func (c *capturingBox) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	c.actions = append(c.actions, action)
	switch action {
	case MouseLeftDown:
		c.pressed = true
		return c, RedrawCommand{}
	case MouseLeftUp:
		c.pressed = false
	case MouseMove:
		if c.pressed {
			return c, nil
		}
	}
	return nil, nil
}

// splitRoot hands mouse events to the child under the pointer.
type splitRoot struct {
	*Box
	left, right Primitive
}

func (s *splitRoot) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, _ := event.Position()
	if x < 10 {
		return s.left.MouseHandler(action, event)
	}
	return s.right.MouseHandler(action, event)
}

func TestFireMouseActionsFollowsCapture(t *testing.T) {
	left := &capturingBox{Box: NewBox()}
	right := &capturingBox{Box: NewBox()}
	app := NewApplication()
	app.SetRoot(&splitRoot{Box: NewBox(), left: left, right: right})

	app.handleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonPrimary, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(15, 2, tcell.ButtonPrimary, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(15, 3, tcell.ButtonNone, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(16, 3, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, []MouseAction{MouseMove, MouseLeftDown, MouseMove, MouseMove, MouseLeftUp}, left.actions)
	assert.Equal(t, []MouseAction{MouseMove}, right.actions)
}

func TestFireMouseActionsClick(t *testing.T) {
	box := &capturingBox{Box: NewBox()}
	app := NewApplication().SetRoot(box)

	app.handleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, []MouseAction{MouseMove, MouseLeftDown, MouseLeftUp, MouseLeftClick}, box.actions)
}

func TestExecuteCommand(t *testing.T) {
	box := NewBox()
	other := NewBox()
	app := NewApplication().SetRoot(box)
	assert.True(t, box.HasFocus())

	assert.False(t, app.executeCommand(nil))
	assert.True(t, app.executeCommand(RedrawCommand{}))
	assert.True(t, app.executeCommand(AppendCommand(SetFocusCommand{Target: other}, nil)))
	assert.False(t, box.HasFocus())
	assert.Equal(t, Primitive(other), app.GetFocus())
	assert.False(t, app.executeCommand(SetFocusCommand{Target: other}))
}

func TestAppendCommandFlattens(t *testing.T) {
	cmd := AppendCommand(AppendCommand(RedrawCommand{}, QuitCommand{}), BatchCommand{RedrawCommand{}})
	assert.Equal(t, BatchCommand{RedrawCommand{}, QuitCommand{}, RedrawCommand{}}, cmd)
	assert.Equal(t, RedrawCommand{}, AppendCommand(nil, RedrawCommand{}))
}

func TestApplicationRunsScheduledFunctions(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	l := NewReorderList().SetItems("A", "B", "C")
	app := NewApplication().SetScreen(screen).SetRoot(l)
	l.SetScheduler(app)

	fired := make(chan struct{})
	app.AfterFunc(time.Millisecond, func() {
		close(fired)
		app.Stop()
	})

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
	_, ok := <-fired
	assert.False(t, ok)
}
