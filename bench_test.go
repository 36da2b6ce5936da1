package frond

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// benchPythonSource is a realistic Python module with classes,
// inheritance, branches and loops for exercising the full pipeline.
const benchPythonSource = `import os

DEFAULT_RETRIES = 3


class Config:
    def __init__(self, name, debug=False):
        self.name = name
        self.debug = debug
        self.tags = []

    def validate(self):
        if not self.name:
            raise ValueError("name is required")
        return True

    def has_tag(self, tag):
        for t in self.tags:
            if t == tag:
                return True
        return False


class Logger:
    def log(self, msg):
        print(msg)


class PrefixLogger(Logger):
    def __init__(self, prefix):
        self.prefix = prefix

    def log(self, msg):
        print(self.prefix + msg)


class NullLogger(Logger):
    def log(self, msg):
        pass


class App:
    def __init__(self, cfg, quiet):
        self.config = cfg
        if quiet:
            self.logger = NullLogger()
        else:
            self.logger = PrefixLogger("[app] ")
        self.count = 0

    def run(self):
        try:
            self.config.validate()
        except ValueError as err:
            self.logger.log(str(err))
            return 1
        while self.count < DEFAULT_RETRIES:
            self.process()
        return 0

    def process(self):
        self.count += 1
        self.logger.log("processing")


def build_greeting(name):
    parts = ["Hello", name]
    return " ".join(parts)


def count_words(s):
    words = s.split()
    return len(words)


app = App(Config("bench"), os.environ.get("QUIET"))
`

// benchCursor is the request appended to benchPythonSource for completion
// benchmarks.
const benchCursor = "app.logger."

func benchRequest(src string) Request {
	full := src + benchCursor
	return Request{
		Language: "python",
		Path:     "bench.py",
		Source:   []byte(full),
		Line:     strings.Count(full, "\n") + 1,
		Col:      len(benchCursor) + 1,
	}
}

// setupBenchEngine creates an Engine and a Python source file, returning
// the engine and file path. Caller must close the engine.
func setupBenchEngine(b *testing.B) (*Engine, string) {
	b.Helper()
	dir := b.TempDir()
	dbPath := filepath.Join(dir, "bench.db")

	e, err := New(dbPath, WithLanguages("python"))
	if err != nil {
		b.Fatal(err)
	}

	srcPath := filepath.Join(dir, "bench.py")
	if err := os.WriteFile(srcPath, []byte(benchPythonSource), 0644); err != nil {
		e.Close()
		b.Fatal(err)
	}

	return e, srcPath
}

// BenchmarkIndexFiles_Python measures the time to parse, build scopes and
// store a realistic Python source file.
func BenchmarkIndexFiles_Python(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e, srcPath := setupBenchEngine(b)
		b.StartTimer()

		if err := e.IndexFiles(ctx, []string{srcPath}); err != nil {
			e.Close()
			b.Fatal(err)
		}

		b.StopTimer()
		e.Close()
		b.StartTimer()
	}
}

// BenchmarkComplete_Cached measures completion when the snapshot for the
// source is already cached.
func BenchmarkComplete_Cached(b *testing.B) {
	e, err := New("")
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	req := benchRequest(benchPythonSource)

	if _, err := e.Complete(ctx, req); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Complete(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkComplete_Edited measures completion on a buffer that changes
// between requests, so every call parses and builds scopes.
func BenchmarkComplete_Edited(b *testing.B) {
	e, err := New("")
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := benchRequest(fmt.Sprintf("%s# edit %d\n", benchPythonSource, i))
		set, err := e.Complete(ctx, req)
		if err != nil {
			b.Fatal(err)
		}
		if set.Len() == 0 {
			b.Fatal("no proposals")
		}
	}
}

// BenchmarkQueryNamesAt measures a NamesAt query against the index.
func BenchmarkQueryNamesAt(b *testing.B) {
	e, srcPath := setupBenchEngine(b)
	defer e.Close()

	if err := e.IndexFiles(context.Background(), []string{srcPath}); err != nil {
		b.Fatal(err)
	}
	q := e.Query()

	// The while statement inside App.run.
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := q.NamesAt(srcPath, 57, 9); err != nil {
			b.Fatal(err)
		}
	}
}
