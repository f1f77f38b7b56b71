// Package record defines the condition-record model: a fixed sequence of
// tri-state cells paired with the ordered list of damaged-run lengths the
// record must exhibit. It also parses the textual line format and produces
// the unfolded form used by the harder variant of the puzzle.
//
// All types in this package are immutable once constructed and are safe to
// share between goroutines.
package record
