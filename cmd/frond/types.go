package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLICompletion is the result of the complete command.
type CLICompletion struct {
	Context   string        `json:"context"`
	Proposals []CLIProposal `json:"proposals"`
}

// CLIProposal is one completion proposal.
type CLIProposal struct {
	Name  string   `json:"name"`
	Kind  string   `json:"kind,omitempty"`
	Types []string `json:"types,omitempty"`
}

// CLIScope is a JSON-friendly scope. ID and ParentID are database IDs
// for index queries and positions in the scope list for live parses.
type CLIScope struct {
	ID        int64        `json:"id"`
	ParentID  *int64       `json:"parent_id,omitempty"`
	Kind      string       `json:"kind"`
	Name      string       `json:"name,omitempty"`
	Bases     []string     `json:"bases,omitempty"`
	StartLine int          `json:"start_line"`
	StartCol  int          `json:"start_col"`
	EndLine   int          `json:"end_line"`
	EndCol    int          `json:"end_col"`
	Bindings  []CLIBinding `json:"bindings,omitempty"`
}

// CLIBinding is a JSON-friendly binding.
type CLIBinding struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Types  []string `json:"types,omitempty"`
	Line   int      `json:"line"`
	Col    int      `json:"col"`
	Branch string   `json:"branch,omitempty"`
}

// CLIFile is a JSON-friendly file representation.
type CLIFile struct {
	ID        int64  `json:"id"`
	Path      string `json:"path"`
	Language  string `json:"language"`
	LineCount int    `json:"line_count"`
}
