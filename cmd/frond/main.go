package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/frond"
	"github.com/jward/frond/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagDB         string
	flagFormat     string
	flagConfig     string
	flagLanguages  string
	flagPolicy     string
	flagFilter     string
	flagScriptsDir string
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "frond",
	Short:         "Flow-sensitive code completion for Python and JavaScript",
	Long:          "Frond parses source with tree-sitter, builds flow-sensitive scopes, and answers completion requests from the command line, a SQLite index, or an LSP connection.",
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		c, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = c
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
		return nil
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: index.db from the config, relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: "+config.DefaultFile+" in the working directory, if present)")
	rootCmd.PersistentFlags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. python,javascript)")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "merge policy: union|common-base|unresolved")
	rootCmd.PersistentFlags().StringVar(&flagFilter, "filter", "", "filter script: a built-in name or a .risor path")
	rootCmd.PersistentFlags().StringVar(&flagScriptsDir, "scripts-dir", "", "load filter scripts from disk path instead of embedded")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(lspCmd)
}

// loadConfig reads path, or the default file when path is empty and the
// default exists.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return config.Default(), nil
			}
			return nil, err
		}
		path = config.DefaultFile
	}
	return config.Load(path)
}

// engineOptions merges the config file with flag overrides.
func engineOptions() ([]frond.Option, error) {
	opts := []frond.Option{frond.WithLogger(logger)}

	langs := cfg.Languages
	if flagLanguages != "" {
		langs = strings.Split(flagLanguages, ",")
		for i := range langs {
			langs[i] = strings.TrimSpace(langs[i])
		}
	}
	if len(langs) > 0 {
		opts = append(opts, frond.WithLanguages(langs...))
	}

	policyName := cfg.MergePolicy
	if flagPolicy != "" {
		policyName = flagPolicy
	}
	policy, err := frond.ParseMergePolicy(policyName)
	if err != nil {
		return nil, err
	}
	opts = append(opts, frond.WithMergePolicy(policy))

	filter := cfg.FilterScript
	if flagFilter != "" {
		filter = flagFilter
	}
	if filter != "" {
		opts = append(opts, frond.WithFilterScript(filter))
	}

	scriptsDir := cfg.ScriptsDir
	if flagScriptsDir != "" {
		scriptsDir = flagScriptsDir
	}
	if scriptsDir != "" {
		opts = append(opts, frond.WithScriptsDir(scriptsDir))
	}

	if cfg.Index.Parallel != nil {
		opts = append(opts, frond.WithParallel(*cfg.Index.Parallel))
	}
	return opts, nil
}

// newEngine builds an Engine. dbPath may be empty for completion only.
func newEngine(dbPath string) (*frond.Engine, error) {
	opts, err := engineOptions()
	if err != nil {
		return nil, err
	}
	e, err := frond.New(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return e, nil
}

// resolveTargetDir returns the absolute path of the directory to index.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath returns the database path from the --db flag or the
// config, relative to repoRoot.
func resolveDBPath(repoRoot string) string {
	p := flagDB
	if p == "" {
		p = cfg.Index.DB
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(repoRoot, p)
}

// existingDBPath resolves the database for the working directory and
// fails when it has not been created.
func existingDBPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}
	dbPath := resolveDBPath(findRepoRoot(cwd))
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("database not found: %s (run 'frond index' first)", dbPath)
	}
	return dbPath, nil
}
