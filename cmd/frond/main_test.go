package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/frond"
)

func TestFindRepoRoot_DirectGitDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	assert.Equal(t, root, findRepoRoot(root))
}

func TestFindRepoRoot_NestedSubdirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	deep := filepath.Join(root, "sub", "deep")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	assert.Equal(t, root, findRepoRoot(deep))
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("yaml"))
}

func TestParsePositionArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePositionArg(tt.in, "line")
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "frond.yaml")
	require.NoError(t, os.WriteFile(path, []byte("merge_policy: common-base\nlog_level: debug\n"), 0o644))

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "common-base", c.MergePolicy)
}

const cliSource = "class A:\n    def f(self):\n        self.x = 1\n\na = A()\na.\n"

func TestCompletionToCLI(t *testing.T) {
	t.Parallel()
	e, err := frond.New("")
	require.NoError(t, err)

	set, err := e.Complete(context.Background(), frond.Request{
		Language: "python", Path: "a.py", Source: []byte(cliSource), Line: 6, Col: 3,
	})
	require.NoError(t, err)

	got := completionToCLI(set)
	assert.Equal(t, "member", got.Context)
	require.Len(t, got.Proposals, 2)
	assert.Equal(t, "f", got.Proposals[0].Name)
	assert.Equal(t, "func", got.Proposals[0].Kind)
	assert.Equal(t, "x", got.Proposals[1].Name)
	assert.Equal(t, "member", got.Proposals[1].Kind)

	var buf bytes.Buffer
	require.NoError(t, writeResultText(&buf, CLIResult{Results: got}))
	assert.Contains(t, buf.String(), "f")
	assert.Contains(t, buf.String(), "x")
}

func TestTreeToCLI(t *testing.T) {
	t.Parallel()
	e, err := frond.New("")
	require.NoError(t, err)

	snap, err := e.Snapshot(context.Background(), "python", "a.py", []byte(cliSource))
	require.NoError(t, err)

	scopes := treeToCLI(snap.Scopes)
	require.Len(t, scopes, 3)
	assert.Equal(t, "module", scopes[0].Kind)
	assert.Nil(t, scopes[0].ParentID)
	assert.Equal(t, "class", scopes[1].Kind)
	assert.Equal(t, "A", scopes[1].Name)
	require.NotNil(t, scopes[2].ParentID)
	assert.Equal(t, int64(1), *scopes[2].ParentID)

	var names []string
	for _, b := range scopes[0].Bindings {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"A", "a"}, names)

	var buf bytes.Buffer
	require.NoError(t, writeResultText(&buf, CLIResult{Results: scopes}))
	assert.Contains(t, buf.String(), "class A ")
	assert.Contains(t, buf.String(), "    function f")
}

func TestWriteResultText_Unsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Error(t, writeResultText(&buf, CLIResult{Results: 42}))
}
