package record

// DefaultFolds is the number of copies the harder puzzle variant uses.
const DefaultFolds = 5

// Unfold returns the line expanded into folds copies: the cells are repeated
// with a single Unknown cell between neighbouring copies, and the group list
// is repeated back to back. A folds value of 1 or less returns l unchanged.
func (l Line) Unfold(folds int) Line {
	if folds <= 1 {
		return l
	}

	n := l.Record.Len()
	cells := make([]Cell, 0, n*folds+folds-1)
	for i := range folds {
		if i > 0 {
			cells = append(cells, Unknown)
		}
		cells = append(cells, l.Record.cells...)
	}

	lengths := make([]int, 0, l.Groups.Len()*folds)
	for range folds {
		lengths = append(lengths, l.Groups.lengths...)
	}

	return Line{
		Record: Record{cells: cells},
		Groups: GroupList{lengths: lengths},
	}
}

// UnfoldDefault is Unfold(DefaultFolds).
func (l Line) UnfoldDefault() Line {
	return l.Unfold(DefaultFolds)
}
