package frond

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden test format.
type goldenFile struct {
	Completions []goldenCompletion `json:"completions,omitempty"`
	Members     []goldenMembers    `json:"members,omitempty"`
	Names       []goldenNames      `json:"names,omitempty"`
}

// goldenCompletion inserts Text as a new line after AfterLine and
// completes at its end.
type goldenCompletion struct {
	File      string   `json:"file"`
	AfterLine int      `json:"after_line"`
	Text      string   `json:"text"`
	Policy    string   `json:"policy,omitempty"`
	Want      []string `json:"want"`
}

type goldenMembers struct {
	File  string   `json:"file"`
	Class string   `json:"class"`
	Want  []string `json:"want"`
}

type goldenNames struct {
	File string   `json:"file"`
	Line int      `json:"line"`
	Col  int      `json:"col"`
	Want []string `json:"want"`
}

// TestGolden walks testdata/{language}/ directories and runs golden tests
// for all languages that have testdata.
func TestGolden(t *testing.T) {
	langDirs, err := os.ReadDir("testdata")
	if err != nil {
		t.Skip("no testdata directory found")
	}

	for _, langDir := range langDirs {
		if !langDir.IsDir() {
			continue
		}
		lang := langDir.Name()
		langRoot := filepath.Join("testdata", lang)
		levels, err := os.ReadDir(langRoot)
		if err != nil {
			continue
		}

		for _, level := range levels {
			if !level.IsDir() {
				continue
			}
			testDir := filepath.Join(langRoot, level.Name())
			goldenPath := filepath.Join(testDir, "golden.json")
			srcDir := filepath.Join(testDir, "src")

			if _, err := os.Stat(goldenPath); err != nil {
				continue
			}
			if _, err := os.Stat(srcDir); err != nil {
				continue
			}

			t.Run(lang+"/"+level.Name(), func(t *testing.T) {
				runGoldenTest(t, lang, srcDir, goldenPath)
			})
		}
	}
}

func runGoldenTest(t *testing.T, lang, srcDir, goldenPath string) {
	t.Helper()

	goldenData, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	var golden goldenFile
	require.NoError(t, json.Unmarshal(goldenData, &golden))

	if len(golden.Completions) > 0 {
		t.Run("completions", func(t *testing.T) {
			verifyCompletions(t, lang, srcDir, golden.Completions)
		})
	}

	if len(golden.Members) == 0 && len(golden.Names) == 0 {
		return
	}

	dbPath := filepath.Join(t.TempDir(), "golden.db")
	engine, err := New(dbPath, WithLanguages(lang))
	require.NoError(t, err)
	defer engine.Close()

	srcEntries, err := os.ReadDir(srcDir)
	require.NoError(t, err)
	var paths []string
	for _, e := range srcEntries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(srcDir, e.Name()))
		}
	}
	require.NoError(t, engine.IndexFiles(context.Background(), paths))

	if len(golden.Members) > 0 {
		t.Run("members", func(t *testing.T) {
			for _, m := range golden.Members {
				got, err := engine.Query().MembersOf(filepath.Join(srcDir, m.File), m.Class)
				require.NoError(t, err)
				assert.Equal(t, m.Want, bindingNames(got), "members of %s", m.Class)
			}
		})
	}

	if len(golden.Names) > 0 {
		t.Run("names", func(t *testing.T) {
			for _, n := range golden.Names {
				got, err := engine.Query().NamesAt(filepath.Join(srcDir, n.File), n.Line, n.Col)
				require.NoError(t, err)
				assert.Equal(t, n.Want, bindingNames(got), "names at %d:%d", n.Line, n.Col)
			}
		})
	}
}

func verifyCompletions(t *testing.T, lang, srcDir string, cases []goldenCompletion) {
	t.Helper()
	for _, c := range cases {
		data, err := os.ReadFile(filepath.Join(srcDir, c.File))
		require.NoError(t, err)
		lines := strings.Split(string(data), "\n")
		require.LessOrEqual(t, c.AfterLine, len(lines), "%s: after_line out of range", c.File)

		edited := make([]string, 0, len(lines)+1)
		edited = append(edited, lines[:c.AfterLine]...)
		edited = append(edited, c.Text)
		edited = append(edited, lines[c.AfterLine:]...)

		policy, err := ParseMergePolicy(c.Policy)
		require.NoError(t, err)
		engine, err := New("", WithMergePolicy(policy))
		require.NoError(t, err)

		got, err := engine.CompleteNames(context.Background(), Request{
			Language: lang,
			Path:     c.File,
			Source:   []byte(strings.Join(edited, "\n")),
			Line:     c.AfterLine + 1,
			Col:      utf8.RuneCountInString(c.Text) + 1,
		})
		require.NoError(t, err)
		if len(c.Want) == 0 {
			assert.Empty(t, got, "%s after line %d (%s)", c.File, c.AfterLine, c.Policy)
			continue
		}
		assert.Equal(t, c.Want, got, "%s after line %d (%s)", c.File, c.AfterLine, c.Policy)
	}
}
