package dragsort

import "github.com/gdamore/tcell/v2"

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	ContrastBackgroundColor  tcell.Color // Background of the selected row.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Row text.
	SecondaryTextColor       tcell.Color // Help keys and labels.
	ProxyBackgroundColor     tcell.Color // Background of a lifted row.
	ShadowColor              tcell.Color // Shadow next to a lifted row.
}

// Styles is the theme new primitives pick their colors from.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	ContrastBackgroundColor:  tcell.ColorNavy,
	BorderColor:              tcell.ColorWhite,
	TitleColor:               tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
	ProxyBackgroundColor:     tcell.ColorTeal,
	ShadowColor:              tcell.ColorGray,
}
