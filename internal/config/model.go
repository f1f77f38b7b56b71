package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/springgrid/internal/record"
)

// DefaultReportTimeout bounds how long a report waits for its acknowledgement.
const DefaultReportTimeout = 10 * time.Second

// Model is the unified representation of one or more manifests.
type Model struct {
	Puzzles []*Puzzle
	Report  *Report
}

// Puzzle describes one batch of records and the variant to count it with.
type Puzzle struct {
	Name string

	// Exactly one of InputPath and Records is set. InputPath is resolved
	// against the manifest's directory by the loader.
	InputPath string
	Records   []string

	// Folds is the unfold factor; 1 counts the records as written.
	Folds int

	// Expect, when set, is the total the puzzle must produce.
	Expect *uint64

	// Source is the manifest file the puzzle was declared in.
	Source string
}

// Report configures publishing of run results to a socket.io endpoint.
type Report struct {
	URL       string
	Namespace string
	Event     string
	AckEvent  string
	Timeout   time.Duration
}

// NewPuzzle builds a validated puzzle from the fields shared by all
// manifest formats. unfold without an explicit folds value selects
// record.DefaultFolds.
func NewPuzzle(name, source, input string, records []string, unfold bool, folds int, expect *uint64) (*Puzzle, error) {
	if name == "" {
		return nil, fmt.Errorf("%s: puzzle name must not be empty", source)
	}
	if input == "" && len(records) == 0 {
		return nil, fmt.Errorf("%s: puzzle %q needs either input or records", source, name)
	}
	if input != "" && len(records) > 0 {
		return nil, fmt.Errorf("%s: puzzle %q sets both input and records", source, name)
	}
	if folds < 0 {
		return nil, fmt.Errorf("%s: puzzle %q has negative folds %d", source, name, folds)
	}

	switch {
	case !unfold:
		if folds > 1 {
			return nil, fmt.Errorf("%s: puzzle %q sets folds without unfold", source, name)
		}
		folds = 1
	case folds == 0:
		folds = record.DefaultFolds
	}

	return &Puzzle{
		Name:      name,
		InputPath: input,
		Records:   records,
		Folds:     folds,
		Expect:    expect,
		Source:    source,
	}, nil
}

// NewReport builds a validated report configuration, filling defaults for
// empty fields. timeout is a Go duration string.
func NewReport(url, namespace, event, ackEvent, timeout string) (*Report, error) {
	if url == "" {
		return nil, errors.New("report url must not be empty")
	}

	r := &Report{
		URL:       url,
		Namespace: namespace,
		Event:     event,
		AckEvent:  ackEvent,
		Timeout:   DefaultReportTimeout,
	}
	if r.Namespace == "" {
		r.Namespace = "/"
	}
	if r.Event == "" {
		r.Event = "arrangements"
	}
	if r.AckEvent == "" {
		r.AckEvent = r.Event + "_ack"
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid report timeout %q: %w", timeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("report timeout must be positive, got %s", d)
		}
		r.Timeout = d
	}
	return r, nil
}

// Merge appends other's puzzles to m. A second report block is an error.
func (m *Model) Merge(other *Model) error {
	seen := make(map[string]string, len(m.Puzzles))
	for _, p := range m.Puzzles {
		seen[p.Name] = p.Source
	}
	for _, p := range other.Puzzles {
		if src, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate puzzle %q in %s (first declared in %s)", p.Name, p.Source, src)
		}
		seen[p.Name] = p.Source
		m.Puzzles = append(m.Puzzles, p)
	}

	if other.Report != nil {
		if m.Report != nil {
			return errors.New("only one report block is allowed across all manifests")
		}
		m.Report = other.Report
	}
	return nil
}
