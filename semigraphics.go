package dragsort

// Semigraphics used for borders, truncation and proxy shadows.
const (
	SemigraphicsHorizontalEllipsis rune = '…' // …

	BoxDrawingsLightHorizontal      rune = '─' // ─
	BoxDrawingsHeavyHorizontal      rune = '━' // ━
	BoxDrawingsLightVertical        rune = '│' // │
	BoxDrawingsHeavyVertical        rune = '┃' // ┃
	BoxDrawingsLightDownAndRight    rune = '┌' // ┌
	BoxDrawingsHeavyDownAndRight    rune = '┏' // ┏
	BoxDrawingsLightDownAndLeft     rune = '┐' // ┐
	BoxDrawingsHeavyDownAndLeft     rune = '┓' // ┓
	BoxDrawingsLightUpAndRight      rune = '└' // └
	BoxDrawingsHeavyUpAndRight      rune = '┗' // ┗
	BoxDrawingsLightUpAndLeft       rune = '┘' // ┘
	BoxDrawingsHeavyUpAndLeft       rune = '┛' // ┛
	BoxDrawingsLightArcDownAndRight rune = '╭' // ╭
	BoxDrawingsLightArcDownAndLeft  rune = '╮' // ╮
	BoxDrawingsLightArcUpAndLeft    rune = '╯' // ╯
	BoxDrawingsLightArcUpAndRight   rune = '╰' // ╰

	BlockLightShade  rune = '░' // ░
	BlockMediumShade rune = '▒' // ▒
)
