package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// formatCompletionText prints one proposal per line with its kind and
// types.
func formatCompletionText(w io.Writer, c CLICompletion) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range c.Proposals {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Kind, strings.Join(p.Types, " | "))
	}
	tw.Flush()
}

// formatScopesText prints scopes indented by depth, each followed by its
// bindings.
func formatScopesText(w io.Writer, scopes []CLIScope) {
	depth := make(map[int64]int, len(scopes))
	for _, s := range scopes {
		d := 0
		if s.ParentID != nil {
			d = depth[*s.ParentID] + 1
		}
		depth[s.ID] = d
		indent := strings.Repeat("  ", d)

		label := s.Kind
		if s.Name != "" {
			label += " " + s.Name
		}
		if len(s.Bases) > 0 {
			label += "(" + strings.Join(s.Bases, ", ") + ")"
		}
		fmt.Fprintf(w, "%s%s %d:%d-%d:%d\n", indent, label, s.StartLine, s.StartCol, s.EndLine, s.EndCol)
		for _, b := range s.Bindings {
			fmt.Fprintf(w, "%s  %s\n", indent, bindingLine(b))
		}
	}
}

func formatBindingsText(w io.Writer, bs []CLIBinding) {
	for _, b := range bs {
		fmt.Fprintln(w, bindingLine(b))
	}
}

func bindingLine(b CLIBinding) string {
	s := fmt.Sprintf("%s %s @%d:%d", b.Kind, b.Name, b.Line, b.Col)
	if len(b.Types) > 0 {
		s += " : " + strings.Join(b.Types, " | ")
	}
	if b.Branch != "" {
		s += " [" + b.Branch + "]"
	}
	return s
}

// formatFilesText formats CLIFile results as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tLANGUAGE\tLINES")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", f.ID, f.Path, f.Language, f.LineCount)
	}
	tw.Flush()
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	return writeResultText(os.Stdout, result)
}

func writeResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case CLICompletion:
		formatCompletionText(w, v)
	case []CLIScope:
		formatScopesText(w, v)
	case []CLIBinding:
		formatBindingsText(w, v)
	case []CLIFile:
		formatFilesText(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
