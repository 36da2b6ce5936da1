package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jward/frond"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the scope index",
	Long:  "Run queries against an indexed codebase. Line and column numbers are 1-based.",
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery("files", func(q *frond.QueryBuilder) (any, error) {
			files, err := q.Files()
			if err != nil {
				return nil, err
			}
			out := make([]CLIFile, 0, len(files))
			for _, f := range files {
				out = append(out, CLIFile{ID: f.ID, Path: f.Path, Language: f.Language, LineCount: f.LineCount})
			}
			return out, nil
		})
	},
}

var queryScopesCmd = &cobra.Command{
	Use:   "scopes <file>",
	Short: "List the stored scopes of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery("scopes", func(q *frond.QueryBuilder) (any, error) {
			file, err := resolveFilePath(args[0])
			if err != nil {
				return nil, err
			}
			scopes, err := q.ScopesInFile(file)
			if err != nil {
				return nil, err
			}
			out := make([]CLIScope, 0, len(scopes))
			for _, s := range scopes {
				out = append(out, scopeToCLI(s))
			}
			return out, nil
		})
	},
}

var namesCmd = &cobra.Command{
	Use:   "names <file> <line> <col>",
	Short: "List the names visible at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery("names", func(q *frond.QueryBuilder) (any, error) {
			file, err := resolveFilePath(args[0])
			if err != nil {
				return nil, err
			}
			line, err := parsePositionArg(args[1], "line")
			if err != nil {
				return nil, err
			}
			col, err := parsePositionArg(args[2], "col")
			if err != nil {
				return nil, err
			}
			bs, err := q.NamesAt(file, line, col)
			if err != nil {
				return nil, err
			}
			return bindingsToCLI(bs), nil
		})
	},
}

var membersCmd = &cobra.Command{
	Use:   "members <file> <class>",
	Short: "List the members of a class, including inherited ones",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery("members", func(q *frond.QueryBuilder) (any, error) {
			file, err := resolveFilePath(args[0])
			if err != nil {
				return nil, err
			}
			bs, err := q.MembersOf(file, args[1])
			if err != nil {
				return nil, err
			}
			return bindingsToCLI(bs), nil
		})
	},
}

func init() {
	queryCmd.AddCommand(filesCmd)
	queryCmd.AddCommand(queryScopesCmd)
	queryCmd.AddCommand(namesCmd)
	queryCmd.AddCommand(membersCmd)
}

// runQuery opens the index, runs fn and prints its result.
func runQuery(command string, fn func(q *frond.QueryBuilder) (any, error)) error {
	dbPath, err := existingDBPath()
	if err != nil {
		return outputError(command, err)
	}
	engine, err := newEngine(dbPath)
	if err != nil {
		return outputError(command, err)
	}
	defer engine.Close()

	results, err := fn(engine.Query())
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(CLIResult{Command: command, Results: results})
}

// --- Helpers ---

// resolveFilePath converts a file argument to an absolute path.
func resolveFilePath(file string) (string, error) {
	if filepath.IsAbs(file) {
		return file, nil
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("resolving file path %q: %w", file, err)
	}
	return abs, nil
}

// parsePositionArg parses a 1-based line or column argument.
func parsePositionArg(value, name string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, value)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be at least 1", name, value)
	}
	return n, nil
}

func scopeToCLI(s *frond.Scope) CLIScope {
	return CLIScope{
		ID:        s.ID,
		ParentID:  s.ParentScopeID,
		Kind:      s.Kind,
		Name:      s.Name,
		Bases:     s.Bases,
		StartLine: s.StartLine,
		StartCol:  s.StartCol,
		EndLine:   s.EndLine,
		EndCol:    s.EndCol,
	}
}

func bindingsToCLI(bs []*frond.Binding) []CLIBinding {
	out := make([]CLIBinding, 0, len(bs))
	for _, b := range bs {
		out = append(out, CLIBinding{
			Name:   b.Name,
			Kind:   b.Kind,
			Types:  b.Types,
			Line:   b.DeclLine,
			Col:    b.DeclCol,
			Branch: b.Branch,
		})
	}
	return out
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}
