package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
	"github.com/xqrs/dragsort/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfgFile, itemsFile, inPlace = "", "", false
	appConfig = config.Config{}
}

func TestReadItems(t *testing.T) {
	items, err := readItems([]string{"b", "a"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, items)

	items, err = readItems(nil, "-", strings.NewReader("one\r\n\ntwo\nthree\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, items)

	file := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(file, []byte("x\ny\n"), 0o600))
	items, err = readItems(nil, file, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, items)

	_, err = readItems([]string{"a"}, file, nil)
	assert.Error(t, err)

	_, err = readItems(nil, filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAndPrintItems(t *testing.T) {
	file := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, writeItems(file, []string{"b", "a"}))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "b\na\n", string(data))

	var out bytes.Buffer
	require.NoError(t, printItems(&out, []string{"c", "d"}))
	assert.Equal(t, "c\nd\n", out.String())
}

func TestSetupLogging(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dragsort.log")
	closeLog, err := setupLogging(config.Log{File: file, Level: "debug"})
	require.NoError(t, err)
	newStatusListener(dragsort.NewReorderList().SetItems("a", "b"), help.New()).OnDragEnded(dragsort.Pos(0), dragsort.Pos(1))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "from row 1 to row 2")

	_, err = setupLogging(config.Log{Level: "loud"})
	assert.Error(t, err)

	closeLog, err = setupLogging(config.Log{Level: "info"})
	require.NoError(t, err)
	assert.NoError(t, closeLog())
}

func TestRunRejectsEmptyInput(t *testing.T) {
	resetFlags(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "nothing to sort")
}

func TestRunRejectsInPlaceWithoutFile(t *testing.T) {
	resetFlags(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--in-place", "a", "b"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), "--in-place")
}

func TestConfigShowAppliesFlags(t *testing.T) {
	resetFlags(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "show", "--log-level", "debug"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "level: debug")
	assert.Contains(t, out.String(), "row_height: 1")
}

func TestConfigInit(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "dragsort.yaml")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, cmd.Execute())

	c, err := config.LoadConfig[config.Config](nil, config.Defaults(), &path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	resetFlags(t)
	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--config", path})
	assert.ErrorContains(t, cmd.Execute(), "already exists")
}

func newTestLayout(t *testing.T, items ...string) (*layout, *dragsort.ReorderList, *help.Bar) {
	t.Helper()
	list := dragsort.NewReorderList().SetItems(items...)
	bar := help.New()
	l := newLayout(list, bar)
	list.SetListener(newStatusListener(list, bar))
	l.SetRect(0, 0, 30, 8)
	return l, list, bar
}

func TestLayoutKeys(t *testing.T) {
	l, list, bar := newTestLayout(t, "a", "b", "c")

	assert.Equal(t, dragsort.QuitCommand{}, l.InputHandler(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.Equal(t, dragsort.QuitCommand{}, l.InputHandler(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))

	l.InputHandler(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone))
	assert.True(t, bar.ShowAll())
	_, _, _, height := list.GetRect()
	assert.Equal(t, 5, height)

	l.InputHandler(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	assert.Equal(t, 1, list.Cursor())
}

func TestLayoutDragUpdatesStatus(t *testing.T) {
	l, list, bar := newTestLayout(t, "a", "b", "c")
	list.SetLongPressDuration(0)

	down := tcell.NewEventMouse(2, 0, tcell.ButtonPrimary, tcell.ModNone)
	capture, _ := l.MouseHandler(dragsort.MouseLeftDown, down)
	require.Equal(t, dragsort.Primitive(list), capture)
	list.MouseHandler(dragsort.MouseMove, tcell.NewEventMouse(2, 2, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, "a → 3", bar.Status())

	list.MouseHandler(dragsort.MouseLeftUp, tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, []string{"b", "c", "a"}, list.Items())
	assert.Equal(t, "moved a: 1 → 3", bar.Status())

	// The help bar ignores the mouse.
	capture, cmd := l.MouseHandler(dragsort.MouseLeftDown, tcell.NewEventMouse(2, 7, tcell.ButtonPrimary, tcell.ModNone))
	assert.Nil(t, capture)
	assert.Nil(t, cmd)
}

func TestApplyConfig(t *testing.T) {
	list := dragsort.NewReorderList().SetItems("a", "b", "c")

	c := config.Default()
	c.Drag.Alpha = 0.5
	c.List.Border = false
	require.NoError(t, applyConfig(list, c))
	assert.Equal(t, 0.5, list.DragConfig().DraggingAlpha)
	assert.Empty(t, list.GetTitle())

	c.List.Border = true
	require.NoError(t, applyConfig(list, c))
	assert.Equal(t, " dragsort ", list.GetTitle())

	c.Drag.Alpha = 2
	assert.ErrorIs(t, applyConfig(list, c), dragsort.ErrInvalidConfig)

	// A reload that arrives mid-drag is refused.
	c.Drag.Alpha = 0.7
	list.SetLongPressDuration(0).SetRect(0, 0, 20, 5)
	list.MouseHandler(dragsort.MouseLeftDown, tcell.NewEventMouse(3, 2, tcell.ButtonPrimary, tcell.ModNone))
	require.True(t, list.Dragging())
	assert.ErrorIs(t, applyConfig(list, c), dragsort.ErrDragInProgress)
	assert.Equal(t, 0.5, list.DragConfig().DraggingAlpha)
}

func TestStdinPiped(t *testing.T) {
	assert.False(t, stdinPiped(strings.NewReader("a\nb\n")))

	file := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(file, []byte("a\n"), 0o600))
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, stdinPiped(f))
}
