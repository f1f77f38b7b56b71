package record

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a line that does not follow the `<cells> <groups>` format.
type ParseError struct {
	Line   int // 1-based input line number, 0 when unknown
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Parse reads a single line of the form `<cells> <groups>`, for example
// "?###???????? 3,2,1".
func Parse(text string) (Line, error) {
	return ParseLine(0, text)
}

// ParseLine is Parse with the input line number recorded on any error.
func ParseLine(no int, text string) (Line, error) {
	text = strings.TrimSuffix(text, "\r")
	fail := func(format string, args ...any) (Line, error) {
		return Line{}, &ParseError{Line: no, Text: text, Reason: fmt.Sprintf(format, args...)}
	}

	cellPart, groupPart, found := strings.Cut(text, " ")
	if !found {
		return fail("missing group section")
	}
	if cellPart == "" {
		return fail("missing cell section")
	}
	if strings.Contains(groupPart, " ") {
		return fail("unexpected space in group section")
	}

	cells := make([]Cell, len(cellPart))
	for i := 0; i < len(cellPart); i++ {
		c, ok := cellFromSymbol(cellPart[i])
		if !ok {
			return fail("invalid cell symbol %q at column %d", cellPart[i], i+1)
		}
		cells[i] = c
	}

	var lengths []int
	if groupPart != "" {
		tokens := strings.Split(groupPart, ",")
		lengths = make([]int, len(tokens))
		for i, tok := range tokens {
			n, ok := parseGroupLength(tok)
			if !ok {
				return fail("invalid group length %q", tok)
			}
			lengths[i] = n
		}
	}

	return Line{
		Record: Record{cells: cells},
		Groups: GroupList{lengths: lengths},
	}, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// literals in tests and examples.
func MustParse(text string) Line {
	l, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return l
}

// parseGroupLength accepts only plain decimal digits with a positive value.
func parseGroupLength(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
