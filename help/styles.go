package help

import (
	"github.com/gdamore/tcell/v2"
	"github.com/xqrs/dragsort"
)

type Styles struct {
	KeyStyle       tcell.Style
	DescStyle      tcell.Style
	SeparatorStyle tcell.Style
	EllipsisStyle  tcell.Style
	StatusStyle    tcell.Style
}

// DefaultStyles derives the bar colors from dragsort.Styles.
func DefaultStyles() Styles {
	base := tcell.StyleDefault.Background(dragsort.Styles.PrimitiveBackgroundColor)
	dim := base.Foreground(dragsort.Styles.BorderColor).Dim(true)
	return Styles{
		KeyStyle:       base.Foreground(dragsort.Styles.SecondaryTextColor),
		DescStyle:      base.Foreground(dragsort.Styles.PrimaryTextColor),
		SeparatorStyle: dim,
		EllipsisStyle:  dim,
		StatusStyle:    base.Foreground(dragsort.Styles.SecondaryTextColor).Italic(true),
	}
}
