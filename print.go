package dragsort

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// grapheme is one user-perceived character and its width in cells.
type grapheme struct {
	runes []rune
	width int
}

func graphemes(text string) []grapheme {
	var (
		out   []grapheme
		state = -1
	)
	for len(text) > 0 {
		var (
			cluster    string
			boundaries int
		)
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		out = append(out, grapheme{
			runes: []rune(cluster),
			width: boundaries >> uniseg.ShiftWidth,
		})
	}
	return out
}

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Print prints text onto the screen at (x, y), using at most maxWidth cells.
// Text that does not fit is cut and ends in an ellipsis, except for right
// alignment where the beginning is dropped. It returns the printed width.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) int {
	if maxWidth <= 0 || text == "" {
		return 0
	}

	clusters := graphemes(text)
	total := 0
	for _, g := range clusters {
		total += g.width
	}

	if total > maxWidth {
		if alignment == AlignmentRight {
			for total > maxWidth && len(clusters) > 0 {
				total -= clusters[0].width
				clusters = clusters[1:]
			}
		} else {
			budget := maxWidth - 1
			kept := 0
			total = 0
			for _, g := range clusters {
				if total+g.width > budget {
					break
				}
				total += g.width
				kept++
			}
			clusters = append(clusters[:kept:kept], grapheme{runes: []rune{SemigraphicsHorizontalEllipsis}, width: 1})
			total++
		}
	}

	switch alignment {
	case AlignmentCenter:
		x += (maxWidth - total) / 2
	case AlignmentRight:
		x += maxWidth - total
	}

	printed := 0
	for _, g := range clusters {
		if g.width == 0 {
			continue
		}
		screen.SetContent(x+printed, y, g.runes[0], g.runes[1:], style)
		// Wide characters leave their trailing cells blank.
		for offset := 1; offset < g.width; offset++ {
			screen.SetContent(x+printed+offset, y, ' ', nil, style)
		}
		printed += g.width
	}
	return printed
}

// fill paints the rectangle with spaces in style.
func fill(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// clippedScreen drops every cell written outside its rectangle.
type clippedScreen struct {
	tcell.Screen
	x, y, width, height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{Screen: screen, x: x, y: y, width: width, height: height}
}

func (s *clippedScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if !s.inBounds(x, y) {
		return
	}
	s.Screen.SetContent(x, y, primary, combining, style)
}
