package design

import "strconv"

// Cell is a single grid position: either an item index or a gap.
// The zero value is a gap.
type Cell struct {
	index int
	set   bool
}

// Index returns a cell assigned to item i.
func Index(i int) Cell { return Cell{index: i, set: true} }

// Gap returns an empty cell.
func Gap() Cell { return Cell{} }

// Get returns the item index and whether the cell is assigned.
func (c Cell) Get() (int, bool) { return c.index, c.set }

// IsGap reports whether the cell is empty.
func (c Cell) IsGap() bool { return !c.set }

// Equal reports whether two cells hold the same index or are both gaps.
func (c Cell) Equal(o Cell) bool {
	if c.set != o.set {
		return false
	}
	return !c.set || c.index == o.index
}

// String renders the cell as its index or "-" for a gap.
func (c Cell) String() string {
	if !c.set {
		return "-"
	}
	return strconv.Itoa(c.index)
}

// Row builds a row of cells from indices; negative values become gaps.
// It is a convenience for literals, not for validating user input.
func Row(indices ...int) []Cell {
	row := make([]Cell, len(indices))
	for i, v := range indices {
		if v >= 0 {
			row[i] = Index(v)
		}
	}
	return row
}
