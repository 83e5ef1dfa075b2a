package dragsort

import "fmt"

// RowPosition identifies a slot in a list by section and row index. Positions
// are ordered by section first, then by row.
type RowPosition struct {
	Section int
	Row     int
}

// Pos returns the position of row in section 0, the common single-section case.
func Pos(row int) RowPosition {
	return RowPosition{Row: row}
}

// Compare returns -1, 0 or +1 depending on whether p sorts before, equal to,
// or after other.
func (p RowPosition) Compare(other RowPosition) int {
	switch {
	case p.Section < other.Section:
		return -1
	case p.Section > other.Section:
		return 1
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	}
	return 0
}

// Less reports whether p sorts before other.
func (p RowPosition) Less(other RowPosition) bool {
	return p.Compare(other) < 0
}

func (p RowPosition) String() string {
	return fmt.Sprintf("%d:%d", p.Section, p.Row)
}
