package dragsort

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

func toColorful(c tcell.Color, fallback colorful.Color) colorful.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return fallback
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return fallback
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fadeStyle renders style at the given opacity over a backdrop color. Opacity
// 1 returns the style unchanged; opacity 0 makes it the backdrop.
func fadeStyle(style tcell.Style, alpha float64, backdrop tcell.Color) tcell.Style {
	if alpha >= 1 {
		return style
	}
	alpha = max(alpha, 0)
	fg, bg, _ := style.Decompose()
	back := toColorful(backdrop, black)
	if bg == tcell.ColorDefault {
		bg = backdrop
	}
	return style.
		Foreground(toTcell(back.BlendLab(toColorful(fg, white), alpha))).
		Background(toTcell(back.BlendLab(toColorful(bg, back), alpha)))
}
