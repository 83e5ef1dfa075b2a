package dragsort

import "github.com/gdamore/tcell/v2"

// subcell is the number of steps a scroll thumb can take within one cell.
const subcell = 8

// GlyphSet holds the runes of a vertical scroll bar. The thumb glyphs cover
// 1/8 to 8/8 of a cell from the bottom (lower) or the top (upper).
type GlyphSet struct {
	Track      rune
	ThumbLower [subcell]rune
	ThumbUpper [subcell]rune
}

// UnicodeGlyphSet uses block elements that every terminal font has.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      BoxDrawingsLightVertical,
		ThumbLower: [subcell]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'},
		ThumbUpper: [subcell]rune{'▔', '▔', '▀', '▀', '▀', '▀', '█', '█'},
	}
}

// LegacyComputingGlyphSet adds the upper eighth blocks for exact thumb edges.
func LegacyComputingGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.ThumbUpper = [subcell]rune{'▔', '🮂', '🮃', '▀', '🮄', '🮅', '🮆', '█'}
	return g
}

// scrollBar draws the position of a viewport within longer content. It is
// hidden while all content fits.
type scrollBar struct {
	contentLen  int
	viewportLen int
	offset      int

	glyphs     GlyphSet
	trackStyle tcell.Style
	thumbStyle tcell.Style
}

func newScrollBar() *scrollBar {
	return &scrollBar{
		glyphs:     UnicodeGlyphSet(),
		trackStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor).Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
	}
}

func (s *scrollBar) set(contentLen, viewportLen, offset int) {
	s.contentLen = max(contentLen, 0)
	s.viewportLen = max(viewportLen, 0)
	s.offset = max(offset, 0)
}

func (s *scrollBar) visible() bool {
	return s.contentLen > s.viewportLen && s.viewportLen > 0
}

type scrollMetrics struct {
	trackLen   int
	thumbLen   int
	thumbStart int
}

// metrics computes the thumb in subcell units for a track of cells.
func (s *scrollBar) metrics(cells int) scrollMetrics {
	trackLen := cells * subcell
	if trackLen <= 0 {
		return scrollMetrics{}
	}
	contentLen := max(s.contentLen, 1)
	viewportLen := min(max(s.viewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	if maxOffset == 0 {
		return scrollMetrics{trackLen: trackLen, thumbLen: trackLen}
	}
	offset := min(s.offset, maxOffset)

	thumbLen := min(max(trackLen*viewportLen/contentLen, subcell), trackLen)
	return scrollMetrics{
		trackLen:   trackLen,
		thumbLen:   thumbLen,
		thumbStart: (trackLen - thumbLen) * offset / maxOffset,
	}
}

// cellFill returns which part of cell the thumb covers, in subcells
// relative to the top of the cell.
func (m scrollMetrics) cellFill(cell int) (start, length int) {
	cellStart := cell * subcell
	from := max(m.thumbStart, cellStart)
	to := min(m.thumbStart+m.thumbLen, cellStart+subcell)
	if to <= from {
		return 0, 0
	}
	return from - cellStart, to - from
}

func (s *scrollBar) glyph(start, length int) (rune, tcell.Style) {
	switch {
	case length <= 0:
		return s.glyphs.Track, s.trackStyle
	case length >= subcell:
		return s.glyphs.ThumbLower[subcell-1], s.thumbStyle
	case start == 0:
		return s.glyphs.ThumbUpper[length-1], s.thumbStyle
	}
	return s.glyphs.ThumbLower[length-1], s.thumbStyle
}

// draw paints the bar into the column at x, from line y down height lines.
func (s *scrollBar) draw(screen tcell.Screen, x, y, height int) {
	if !s.visible() || height <= 0 {
		return
	}
	m := s.metrics(height)
	for cell := range height {
		r, style := s.glyph(m.cellFill(cell))
		screen.SetContent(x, y+cell, r, nil, style)
	}
}
