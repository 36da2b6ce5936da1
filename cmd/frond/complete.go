package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/frond"
	"github.com/jward/frond/internal/scope"
)

var (
	flagLang  string
	flagStdin bool
)

var completeCmd = &cobra.Command{
	Use:   "complete <file> <line> <col>",
	Short: "List completion proposals at a position",
	Long:  "Completes at a 1-based line and character column of file. No index is needed.",
	Args:  cobra.ExactArgs(3),
	RunE:  runComplete,
}

var scopesCmd = &cobra.Command{
	Use:   "scopes <file>",
	Short: "Print the scope tree and bindings of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScopes,
}

func init() {
	for _, c := range []*cobra.Command{completeCmd, scopesCmd} {
		c.Flags().StringVar(&flagLang, "lang", "", "language (default: from the file extension)")
		c.Flags().BoolVar(&flagStdin, "stdin", false, "read the source from stdin instead of the file")
	}
}

// readSource loads the source for file and picks its language.
func readSource(file string) (string, []byte, error) {
	lang := flagLang
	if lang == "" {
		l, ok := frond.LanguageForFile(file)
		if !ok {
			return "", nil, fmt.Errorf("cannot tell the language of %s; pass --lang", file)
		}
		lang = l
	}
	var src []byte
	var err error
	if flagStdin {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(file)
	}
	if err != nil {
		return "", nil, fmt.Errorf("reading source: %w", err)
	}
	return lang, src, nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	line, err := parsePositionArg(args[1], "line")
	if err != nil {
		return outputError("complete", err)
	}
	col, err := parsePositionArg(args[2], "col")
	if err != nil {
		return outputError("complete", err)
	}
	lang, src, err := readSource(args[0])
	if err != nil {
		return outputError("complete", err)
	}

	engine, err := newEngine("")
	if err != nil {
		return outputError("complete", err)
	}
	defer engine.Close()

	set, err := engine.Complete(context.Background(), frond.Request{
		Language: lang,
		Path:     args[0],
		Source:   src,
		Line:     line,
		Col:      col,
	})
	if err != nil {
		return outputError("complete", err)
	}
	return outputResult(CLIResult{Command: "complete", Results: completionToCLI(set)})
}

func runScopes(cmd *cobra.Command, args []string) error {
	lang, src, err := readSource(args[0])
	if err != nil {
		return outputError("scopes", err)
	}
	engine, err := newEngine("")
	if err != nil {
		return outputError("scopes", err)
	}
	defer engine.Close()

	snap, err := engine.Snapshot(context.Background(), lang, args[0], src)
	if err != nil {
		return outputError("scopes", err)
	}
	return outputResult(CLIResult{Command: "scopes", Results: treeToCLI(snap.Scopes)})
}

func completionToCLI(set *frond.Set) CLICompletion {
	out := CLICompletion{Context: set.Context.String(), Proposals: []CLIProposal{}}
	for _, p := range set.Proposals() {
		cp := CLIProposal{Name: p.Name}
		if p.Binding != nil {
			cp.Kind = p.Binding.Kind.String()
			cp.Types = typeNames(p.Binding.Types)
		}
		out.Proposals = append(out.Proposals, cp)
	}
	return out
}

// treeToCLI lists the scopes of t in open order with their bindings. IDs
// are positions in the list.
func treeToCLI(t *scope.Tree) []CLIScope {
	ids := make(map[*scope.Scope]int64)
	out := make([]CLIScope, 0, len(t.Scopes()))
	for i, s := range t.Scopes() {
		ids[s] = int64(i)
		cs := CLIScope{
			ID:        int64(i),
			Kind:      s.Kind.String(),
			Name:      s.Name(),
			StartLine: s.Span.Start.Line,
			StartCol:  s.Span.Start.Col,
			EndLine:   s.Span.End.Line,
			EndCol:    s.Span.End.Col,
		}
		if s.Class != nil && s.Kind == scope.KindClass {
			cs.Bases = s.Class.BaseNames()
		}
		if s.Parent != nil {
			pid := ids[s.Parent]
			cs.ParentID = &pid
		}
		out = append(out, cs)
	}
	for _, b := range t.Bindings() {
		id, ok := ids[b.Scope]
		if !ok {
			continue
		}
		out[id].Bindings = append(out[id].Bindings, CLIBinding{
			Name:   b.Name,
			Kind:   b.Kind.String(),
			Types:  typeNames(b.Types),
			Line:   b.Loc.Start.Line,
			Col:    b.Loc.Start.Col,
			Branch: b.Branch.String(),
		})
	}
	return out
}

func typeNames(ts []scope.Type) []string {
	var out []string
	for _, t := range ts {
		if s := t.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
