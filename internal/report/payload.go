// Package report publishes the totals of a run to an external socket.io
// endpoint so that dashboards or collectors can follow long batches.
package report

// PuzzleResult is the per-puzzle part of a report.
type PuzzleResult struct {
	Name   string
	Total  uint64
	Lines  int
	Failed int
}

// Payload is the body of the published event.
type Payload struct {
	RunID   string
	Puzzles []PuzzleResult
}

// asMap converts the payload into the plain map form the socket.io client
// serializes.
func (p Payload) asMap() map[string]any {
	puzzles := make([]map[string]any, len(p.Puzzles))
	for i, r := range p.Puzzles {
		puzzles[i] = map[string]any{
			"name":   r.Name,
			"total":  r.Total,
			"lines":  r.Lines,
			"failed": r.Failed,
		}
	}
	return map[string]any{
		"run_id":  p.RunID,
		"puzzles": puzzles,
	}
}
