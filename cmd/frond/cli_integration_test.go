package main_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the frond binary and returns the path.
// The binary is placed in t.TempDir() so it's cleaned up automatically.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "frond"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	bin := filepath.Join(t.TempDir(), binName)
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = filepath.Join(projectRoot(t), "cmd", "frond")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(out))
	return bin
}

// projectRoot returns the module root by walking up from the test file's
// directory to find go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "could not find project root")
		dir = parent
	}
}

const fixtureSource = `class Base:
    def area(self):
        return 0

class Square(Base):
    def side(self):
        return 1

class Circle(Base):
    def radius(self):
        return 1

if flag:
    s = Square()
else:
    s = Circle()
`

// createFixture creates a temporary directory with a .git dir and a
// Python file. Returns the directory and the file path.
func createFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := filepath.Join(dir, "shapes.py")
	require.NoError(t, os.WriteFile(path, []byte(fixtureSource), 0o644))
	return dir, path
}

type envelope struct {
	Command string          `json:"command"`
	Results json.RawMessage `json:"results"`
	Error   string          `json:"error"`
}

// run executes the binary in dir and returns stdout.
func run(t *testing.T, bin, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("stderr: %s", stderr.String())
	}
	return stdout.String(), err
}

func decode(t *testing.T, out string) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	return env
}

func proposalNames(t *testing.T, env envelope) []string {
	t.Helper()
	var res struct {
		Proposals []struct {
			Name string `json:"name"`
		} `json:"proposals"`
	}
	require.NoError(t, json.Unmarshal(env.Results, &res))
	var names []string
	for _, p := range res.Proposals {
		names = append(names, p.Name)
	}
	return names
}

func TestCLI_IndexAndQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir, path := createFixture(t)

	_, err := run(t, bin, dir, "", "index", dir)
	require.NoError(t, err)

	dbPath := filepath.Join(dir, ".frond.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	var scopes int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM scopes").Scan(&scopes))
	assert.Equal(t, 7, scopes, "module, three classes, three methods")

	out, err := run(t, bin, dir, "", "query", "members", path, "Square")
	require.NoError(t, err)
	env := decode(t, out)
	assert.Equal(t, "members", env.Command)
	var members []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Results, &members))
	require.Len(t, members, 2)
	assert.Equal(t, "area", members[0].Name)
	assert.Equal(t, "side", members[1].Name)

	out, err = run(t, bin, dir, "", "--format", "text", "query", "files")
	require.NoError(t, err)
	assert.Contains(t, out, "shapes.py")
	assert.Contains(t, out, "python")
}

func TestCLI_QueryWithoutIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir, _ := createFixture(t)

	out, err := run(t, bin, dir, "", "query", "files")
	require.Error(t, err)
	assert.Contains(t, decode(t, out).Error, "database not found")
}

func TestCLI_Complete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir, path := createFixture(t)
	buffer := fixtureSource + "s.\n"

	out, err := run(t, bin, dir, buffer, "complete", path, "17", "3", "--stdin")
	require.NoError(t, err)
	env := decode(t, out)
	assert.Equal(t, []string{"area", "radius", "side"}, proposalNames(t, env))

	out, err = run(t, bin, dir, buffer, "complete", path, "17", "3", "--stdin", "--policy", "common-base")
	require.NoError(t, err)
	assert.Equal(t, []string{"area"}, proposalNames(t, decode(t, out)))

	// The config file in the working directory applies without flags.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frond.yaml"), []byte("merge_policy: unresolved\n"), 0o644))
	out, err = run(t, bin, dir, buffer, "complete", path, "17", "3", "--stdin")
	require.NoError(t, err)
	assert.Empty(t, proposalNames(t, decode(t, out)))
}

func TestCLI_InvalidArguments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir, path := createFixture(t)

	_, err := run(t, bin, dir, "", "--format", "yaml", "query", "files")
	assert.Error(t, err)

	out, err := run(t, bin, dir, "", "complete", path, "0", "1")
	require.Error(t, err)
	assert.Contains(t, decode(t, out).Error, "invalid line")

	out, err = run(t, bin, dir, "", "complete", filepath.Join(dir, "notes.txt"), "1", "1")
	require.Error(t, err)
	assert.Contains(t, decode(t, out).Error, "--lang")
}
