package record

import (
	"math"
	"strconv"
	"strings"
)

// Cell is the state of one position in a Record.
type Cell uint8

const (
	Operational Cell = iota
	Damaged
	Unknown
)

// Symbol returns the character used for the cell in the line format.
func (c Cell) Symbol() byte {
	switch c {
	case Operational:
		return '.'
	case Damaged:
		return '#'
	default:
		return '?'
	}
}

func (c Cell) String() string {
	switch c {
	case Operational:
		return "Operational"
	case Damaged:
		return "Damaged"
	case Unknown:
		return "Unknown"
	}
	return "Cell(" + strconv.Itoa(int(c)) + ")"
}

// cellFromSymbol maps a line-format character to its Cell.
func cellFromSymbol(b byte) (Cell, bool) {
	switch b {
	case '.':
		return Operational, true
	case '#':
		return Damaged, true
	case '?':
		return Unknown, true
	}
	return 0, false
}

// Record is an ordered, read-only sequence of cells.
type Record struct {
	cells []Cell
}

// NewRecord copies the given cells into a new Record.
func NewRecord(cells ...Cell) Record {
	return Record{cells: append([]Cell(nil), cells...)}
}

// Len returns the number of cells.
func (r Record) Len() int {
	return len(r.cells)
}

// At returns the cell at index i.
func (r Record) At(i int) Cell {
	return r.cells[i]
}

// Cells returns a copy of the cell sequence.
func (r Record) Cells() []Cell {
	return append([]Cell(nil), r.cells...)
}

// Unknowns returns how many cells are still Unknown.
func (r Record) Unknowns() int {
	n := 0
	for _, c := range r.cells {
		if c == Unknown {
			n++
		}
	}
	return n
}

func (r Record) String() string {
	b := make([]byte, len(r.cells))
	for i, c := range r.cells {
		b[i] = c.Symbol()
	}
	return string(b)
}

// GroupList is the ordered list of required damaged-run lengths.
type GroupList struct {
	lengths []int
}

// NewGroupList copies the given lengths into a new GroupList. Callers are
// expected to pass positive lengths; Parse enforces this for text input.
func NewGroupList(lengths ...int) GroupList {
	return GroupList{lengths: append([]int(nil), lengths...)}
}

// Len returns the number of groups.
func (g GroupList) Len() int {
	return len(g.lengths)
}

// At returns the length of group i.
func (g GroupList) At(i int) int {
	return g.lengths[i]
}

// Lengths returns a copy of the group lengths.
func (g GroupList) Lengths() []int {
	return append([]int(nil), g.lengths...)
}

// Sum returns the total number of damaged cells the groups require,
// saturating at math.MaxInt.
func (g GroupList) Sum() int {
	s := 0
	for _, l := range g.lengths {
		if l > math.MaxInt-s {
			return math.MaxInt
		}
		s += l
	}
	return s
}

// Max returns the longest group length, or 0 for an empty list.
func (g GroupList) Max() int {
	m := 0
	for _, l := range g.lengths {
		m = max(m, l)
	}
	return m
}

// MinSpan is the shortest record that can hold every group: their lengths
// plus one operational separator between each neighbouring pair. Like Sum it
// saturates at math.MaxInt.
func (g GroupList) MinSpan() int {
	if len(g.lengths) == 0 {
		return 0
	}
	s, gaps := g.Sum(), len(g.lengths)-1
	if s > math.MaxInt-gaps {
		return math.MaxInt
	}
	return s + gaps
}

func (g GroupList) String() string {
	parts := make([]string, len(g.lengths))
	for i, l := range g.lengths {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}

// Line is one parsed puzzle line.
type Line struct {
	Record Record
	Groups GroupList
}

func (l Line) String() string {
	return l.Record.String() + " " + l.Groups.String()
}
