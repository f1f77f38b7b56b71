package hcl

// fileRoot decodes every top-level block a manifest may contain. Unknown
// blocks and attributes are rejected by the decoder.
type fileRoot struct {
	Puzzles []*puzzleBlock `hcl:"puzzle,block"`
	Reports []*reportBlock `hcl:"report,block"`
}

// puzzleBlock is the HCL shape of a `puzzle "<name>" { ... }` block.
type puzzleBlock struct {
	Name    string   `hcl:"name,label"`
	Input   string   `hcl:"input,optional"`
	Records []string `hcl:"records,optional"`
	Unfold  bool     `hcl:"unfold,optional"`
	Folds   int      `hcl:"folds,optional"`
	Expect  *int64   `hcl:"expect,optional"`
}

// reportBlock is the HCL shape of the `report { ... }` block.
type reportBlock struct {
	URL       string `hcl:"url"`
	Namespace string `hcl:"namespace,optional"`
	Event     string `hcl:"event,optional"`
	AckEvent  string `hcl:"ack_event,optional"`
	Timeout   string `hcl:"timeout,optional"`
}
