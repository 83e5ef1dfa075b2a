// Package help draws a one-line or column help bar for a key map, with an
// optional status message on the right.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/keybind"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

// KeyMapFunc returns the key map at draw time. Key maps whose bindings are
// toggled while the program runs are passed this way so the bar stays current.
type KeyMapFunc func() KeyMap

type Bar struct {
	*dragsort.Box
	Styles Styles

	keyMap    KeyMapFunc
	showAll   bool
	separator string
	gap       string
	ellipsis  string
	status    string
}

func New() *Bar {
	return &Bar{
		Box:       dragsort.NewBox(),
		Styles:    DefaultStyles(),
		separator: " • ",
		gap:       "    ",
		ellipsis:  "…",
	}
}

// SetKeyMap shows a fixed key map.
func (b *Bar) SetKeyMap(keyMap KeyMap) *Bar {
	return b.SetKeyMapFunc(func() KeyMap { return keyMap })
}

// SetKeyMapFunc shows whatever key map f returns on each draw.
func (b *Bar) SetKeyMapFunc(f KeyMapFunc) *Bar {
	b.keyMap = f
	b.MarkDirty()
	return b
}

// SetShowAll switches between the one-line and the column layout.
func (b *Bar) SetShowAll(showAll bool) *Bar {
	b.showAll = showAll
	b.MarkDirty()
	return b
}

func (b *Bar) ShowAll() bool {
	return b.showAll
}

// SetStatus sets the message shown right-aligned on the first line.
func (b *Bar) SetStatus(status string) *Bar {
	b.status = status
	b.MarkDirty()
	return b
}

func (b *Bar) Status() string {
	return b.status
}

func (b *Bar) SetStyles(styles Styles) *Bar {
	b.Styles = styles
	b.MarkDirty()
	return b
}

// Draw draws this primitive onto the screen.
func (b *Bar) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	defer b.MarkClean()

	x, y, width, height := b.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	statusWidth := 0
	if b.status != "" {
		statusWidth = dragsort.Print(screen, b.status, x, y, width, dragsort.AlignmentRight, b.Styles.StatusStyle)
		// Keep one blank cell between keys and status.
		statusWidth++
	}

	if b.keyMap == nil {
		return
	}
	keyMap := b.keyMap()
	if keyMap == nil {
		return
	}

	if !b.showAll {
		drawSegments(screen, x, y, width-statusWidth, b.shortLine(keyMap.ShortHelp(), width-statusWidth))
		return
	}
	for row, line := range b.columns(keyMap.FullHelp(), width-statusWidth) {
		if row >= height {
			break
		}
		drawSegments(screen, x, y+row, width-statusWidth, line)
	}
}

// Lines renders the column layout as plain text.
func (b *Bar) Lines(groups [][]keybind.Keybind, maxWidth int) []string {
	styled := b.columns(groups, maxWidth)
	lines := make([]string, 0, len(styled))
	for _, line := range styled {
		var sb strings.Builder
		for _, s := range line {
			sb.WriteString(s.text)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

type segment struct {
	text  string
	style tcell.Style
}

func (b *Bar) shortLine(bindings []keybind.Keybind, maxWidth int) []segment {
	var out []segment
	for _, kb := range bindings {
		item := b.item(kb)
		if len(item) == 0 {
			continue
		}
		candidate := cloneSegments(out)
		if len(candidate) > 0 {
			candidate = append(candidate, segment{text: b.separator, style: b.Styles.SeparatorStyle})
		}
		candidate = append(candidate, item...)
		if maxWidth > 0 && width(candidate) > maxWidth {
			return append(out, b.tail(out, maxWidth)...)
		}
		out = candidate
	}
	return out
}

func (b *Bar) item(kb keybind.Keybind) []segment {
	if !kb.Enabled() {
		return nil
	}
	help := kb.Help()
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []segment{{text: help.Desc, style: b.Styles.DescStyle}}
	case help.Desc == "":
		return []segment{{text: help.Key, style: b.Styles.KeyStyle}}
	}
	return []segment{
		{text: help.Key, style: b.Styles.KeyStyle},
		{text: " ", style: b.Styles.DescStyle},
		{text: help.Desc, style: b.Styles.DescStyle},
	}
}

type column struct {
	items      []keybind.Help
	keyW, colW int
}

func (b *Bar) columns(groups [][]keybind.Keybind, maxWidth int) [][]segment {
	var columns []column
	for _, group := range groups {
		var col column
		for _, kb := range group {
			help := kb.Help()
			if !kb.Enabled() || help.Key == "" && help.Desc == "" {
				continue
			}
			col.items = append(col.items, help)
			col.keyW = max(col.keyW, dragsort.StringWidth(help.Key))
		}
		for _, help := range col.items {
			col.colW = max(col.colW, col.keyW+1+dragsort.StringWidth(help.Desc))
		}
		if len(col.items) > 0 {
			columns = append(columns, col)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	// Columns are taken left to right while they fit.
	gapW := dragsort.StringWidth(b.gap)
	included, total := 0, 0
	for i, col := range columns {
		next := col.colW
		if i > 0 {
			next += gapW
		}
		if maxWidth > 0 && total+next > maxWidth {
			break
		}
		included++
		total += next
	}
	if included == 0 {
		return [][]segment{{{text: b.ellipsis, style: b.Styles.EllipsisStyle}}}
	}

	rows := 0
	for _, col := range columns[:included] {
		rows = max(rows, len(col.items))
	}

	lines := make([][]segment, rows)
	for row := range lines {
		for i, col := range columns[:included] {
			if i > 0 {
				lines[row] = append(lines[row], segment{text: b.gap, style: b.Styles.SeparatorStyle})
			}
			var cell []segment
			if row < len(col.items) {
				help := col.items[row]
				key := help.Key + strings.Repeat(" ", col.keyW-dragsort.StringWidth(help.Key))
				cell = []segment{
					{text: key, style: b.Styles.KeyStyle},
					{text: " " + help.Desc, style: b.Styles.DescStyle},
				}
			}
			// Pad all but the last column so the gaps line up.
			if pad := col.colW - width(cell); i < included-1 && pad > 0 {
				cell = append(cell, segment{text: strings.Repeat(" ", pad), style: b.Styles.DescStyle})
			}
			lines[row] = append(lines[row], cell...)
		}
	}

	if included < len(columns) {
		lines[0] = append(lines[0], b.tail(lines[0], maxWidth)...)
	}
	return lines
}

// tail returns the ellipsis marking dropped entries if it fits.
func (b *Bar) tail(current []segment, maxWidth int) []segment {
	if maxWidth <= 0 || b.ellipsis == "" {
		return nil
	}
	tail := []segment{{text: " " + b.ellipsis, style: b.Styles.EllipsisStyle}}
	if width(current)+width(tail) <= maxWidth {
		return tail
	}
	return nil
}

func drawSegments(screen tcell.Screen, x, y, maxWidth int, segments []segment) {
	for _, s := range segments {
		if maxWidth <= 0 {
			return
		}
		printed := dragsort.Print(screen, s.text, x, y, maxWidth, dragsort.AlignmentLeft, s.style)
		x += printed
		maxWidth -= printed
	}
}

func width(segments []segment) int {
	w := 0
	for _, s := range segments {
		w += dragsort.StringWidth(s.text)
	}
	return w
}

func cloneSegments(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	return out
}
