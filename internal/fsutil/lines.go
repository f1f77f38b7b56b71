package fsutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is one non-blank line of puzzle input together with its 1-based
// position in the source.
type Line struct {
	No   int
	Text string
}

// ReadLines returns every non-blank line from r. Trailing carriage returns
// are removed; all other characters are kept as-is for the parser to judge.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	no := 0
	for scanner.Scan() {
		no++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, Line{No: no, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line %d: %w", no+1, err)
	}
	return lines, nil
}

// ReadLinesFromFile opens path and reads it with ReadLines. The path "-"
// reads standard input.
func ReadLinesFromFile(path string) ([]Line, error) {
	if path == "-" {
		return ReadLines(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// LinesFromStrings numbers inline records as if they were lines of a file.
func LinesFromStrings(texts []string) []Line {
	lines := make([]Line, 0, len(texts))
	for i, text := range texts {
		lines = append(lines, Line{No: i + 1, Text: text})
	}
	return lines
}
