package dragsort

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T, width, height int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

func line(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := range width {
		primary, _, _, _ := screen.GetContent(x, y)
		if primary == 0 {
			primary = ' '
		}
		b.WriteRune(primary)
	}
	return b.String()
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxWidth  int
		alignment Alignment
		want      string
		printed   int
	}{
		{"left", "abc", 6, AlignmentLeft, "abc   ", 3},
		{"center", "ab", 6, AlignmentCenter, "  ab  ", 2},
		{"right", "ab", 6, AlignmentRight, "    ab", 2},
		{"truncated", "abcdefgh", 6, AlignmentLeft, "abcde…", 6},
		{"truncated right", "abcdefgh", 6, AlignmentRight, "cdefgh", 6},
		{"wide", "日本", 6, AlignmentLeft, "日 本  ", 4},
		{"wide truncated", "日本語", 4, AlignmentLeft, "日 …   ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 6, 1)
			printed := Print(screen, tt.text, 0, 0, tt.maxWidth, tt.alignment, tcell.StyleDefault)
			assert.Equal(t, tt.printed, printed)
			assert.Equal(t, tt.want, line(screen, 0, 6))
		})
	}
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 3, StringWidth("abc"))
	assert.Equal(t, 4, StringWidth("日本"))
}

func TestClippedScreen(t *testing.T) {
	screen := newTestScreen(t, 6, 2)
	clipped := newClippedScreen(screen, 1, 0, 3, 1)

	fill(clipped, 0, 0, 6, 2, tcell.StyleDefault)
	Print(clipped, "xxxxxx", 0, 0, 6, AlignmentLeft, tcell.StyleDefault)

	assert.Equal(t, " xxx  ", line(screen, 0, 6))
	assert.Equal(t, "      ", line(screen, 1, 6))
}
