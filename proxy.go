package dragsort

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// shadowOpacity is the opacity of a proxy's shadow relative to the proxy.
const shadowOpacity = 0.4

// rowProxy is a snapshot of a row's text that floats above its list.
type rowProxy struct {
	list  *ReorderList
	text  string
	style tcell.Style

	centerX, centerY float64
	scaleX, scaleY   float64
	alpha            float64
}

func (p *rowProxy) Center() Point {
	return Point{X: p.centerX, Y: p.centerY}
}

func (p *rowProxy) SetCenter(center Point) {
	p.list.setValue(&p.centerX, center.X)
	p.list.setValue(&p.centerY, center.Y)
}

func (p *rowProxy) SetTransform(t Transform) {
	p.list.setValue(&p.scaleX, t.ScaleX)
	p.list.setValue(&p.scaleY, t.ScaleY)
}

func (p *rowProxy) SetAlpha(alpha float64) {
	p.list.setValue(&p.alpha, alpha)
}

func (p *rowProxy) values() []*float64 {
	return []*float64{&p.centerX, &p.centerY, &p.scaleX, &p.scaleY, &p.alpha}
}

// draw paints the proxy scaled around its center with a shadow on its left.
// width and height are the unscaled size of a row.
func (p *rowProxy) draw(screen tcell.Screen, width, height int, backdrop tcell.Color) {
	if p.alpha <= 0.02 {
		return
	}

	w := max(1, round(float64(width)*p.scaleX))
	h := max(1, round(float64(height)*p.scaleY))
	left := round(p.centerX - float64(w)/2)
	top := round(p.centerY - float64(h)/2)

	style := fadeStyle(p.style, p.alpha, backdrop)
	fill(screen, left, top, w, h, style)
	Print(screen, p.text, left+1+(w-width)/2, top+(h-1)/2, width-2, AlignmentLeft, style)

	shadow := fadeStyle(tcell.StyleDefault.Foreground(Styles.ShadowColor).Background(backdrop), p.alpha*shadowOpacity, backdrop)
	for y := top; y < top+h; y++ {
		screen.SetContent(left-1, y, BlockLightShade, nil, shadow)
	}
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
