// Package arrangement counts the ways the unknown cells of a condition record
// can be resolved so that its damaged runs match a group list exactly.
//
// The count is a memoized recursion over (position, groupIndex, runLength):
// the number of valid resolutions of the record suffix starting at position,
// given that groupIndex groups are already closed and the run in progress has
// runLength damaged cells. Every call owns its memo table, so counts for
// different lines can run in parallel without coordination.
package arrangement

import "github.com/vk/springgrid/internal/record"

// Count returns the number of arrangements of r that satisfy g.
func Count(r record.Record, g record.GroupList) uint64 {
	if g.MinSpan() > r.Len() {
		return 0
	}
	c := newCounter(r, g)
	return c.count(0, 0, 0)
}

// CountLine is Count applied to a parsed line.
func CountLine(l record.Line) uint64 {
	return Count(l.Record, l.Groups)
}

type counter struct {
	rec    record.Record
	groups record.GroupList

	// memo is a dense (position, groupIndex, runLength) table. seen marks
	// filled entries since zero is a legitimate count.
	groupStride int
	runStride   int
	memo        []uint64
	seen        []bool
}

func newCounter(r record.Record, g record.GroupList) *counter {
	c := &counter{rec: r, groups: g}
	// A run never outgrows the record, whatever length the groups ask for.
	c.runStride = min(g.Max(), r.Len()) + 1
	c.groupStride = (g.Len() + 1) * c.runStride
	size := r.Len() * c.groupStride
	c.memo = make([]uint64, size)
	c.seen = make([]bool, size)
	return c
}

func (c *counter) count(pos, gi, run int) uint64 {
	if pos == c.rec.Len() {
		return c.terminal(gi, run)
	}

	k := pos*c.groupStride + gi*c.runStride + run
	if c.seen[k] {
		return c.memo[k]
	}

	var total uint64
	cell := c.rec.At(pos)
	if cell != record.Damaged {
		total += c.operational(pos, gi, run)
	}
	if cell != record.Operational {
		total += c.damaged(pos, gi, run)
	}

	c.memo[k] = total
	c.seen[k] = true
	return total
}

// terminal scores the state left once every cell is resolved: either all
// groups are closed, or the run still open is exactly the last group.
func (c *counter) terminal(gi, run int) uint64 {
	n := c.groups.Len()
	if run == 0 && gi == n {
		return 1
	}
	if gi == n-1 && run == c.groups.At(gi) {
		return 1
	}
	return 0
}

// operational resolves the cell at pos as '.', which either continues a gap
// or closes a run that has reached its required length.
func (c *counter) operational(pos, gi, run int) uint64 {
	switch {
	case run == 0:
		return c.count(pos+1, gi, 0)
	case run == c.groups.At(gi):
		return c.count(pos+1, gi+1, 0)
	default:
		return 0
	}
}

// damaged resolves the cell at pos as '#', extending the current run.
func (c *counter) damaged(pos, gi, run int) uint64 {
	if gi >= c.groups.Len() || run+1 > c.groups.At(gi) {
		return 0
	}
	return c.count(pos+1, gi, run+1)
}
