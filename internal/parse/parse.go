// Package parse turns source text into ast.Program trees. Each supported
// language has a FrontEnd backed by a tree-sitter grammar; the concrete
// syntax tree is converted into the language-neutral ast node model.
//
// Front ends are best effort. Malformed input still yields a Program:
// ERROR regions are scanned for statements that can be recovered and
// MISSING tokens become absent children.
package parse

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/jward/frond/internal/ast"
)

// ErrUnsupportedLanguage is returned for a language tag with no front end.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// FrontEnd parses one language.
type FrontEnd interface {
	Language() string
	Parse(ctx context.Context, src []byte, path string) (*ast.Program, error)
}

// extToLanguage maps file extensions to language tags.
var extToLanguage = map[string]string{
	".py":  "python",
	".pyi": "python",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
}

// frontEnds maps language tags to their front ends. Built lazily on first
// use via sync.Once.
var (
	frontEnds     map[string]FrontEnd
	frontEndsOnce sync.Once
)

func initFrontEnds() {
	frontEndsOnce.Do(func() {
		frontEnds = map[string]FrontEnd{
			"python":     &treeSitterFrontEnd{lang: "python", grammar: python.GetLanguage(), offside: true, convert: convertPython},
			"javascript": &treeSitterFrontEnd{lang: "javascript", grammar: javascript.GetLanguage(), convert: convertJavaScript},
		}
	})
}

// ForLanguage returns the front end for a language tag.
func ForLanguage(lang string) (FrontEnd, error) {
	initFrontEnds()
	fe, ok := frontEnds[strings.ToLower(lang)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return fe, nil
}

// LanguageForFile returns the language tag for a file path based on its
// extension. Returns ("", false) if the extension is not recognized.
func LanguageForFile(path string) (string, bool) {
	lang, ok := extToLanguage[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Languages returns every supported language tag, sorted.
func Languages() []string {
	initFrontEnds()
	langs := make([]string, 0, len(frontEnds))
	for l := range frontEnds {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Source parses src with the front end for lang.
func Source(ctx context.Context, lang string, src []byte, path string) (*ast.Program, error) {
	fe, err := ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	return fe.Parse(ctx, src, path)
}

type treeSitterFrontEnd struct {
	lang    string
	grammar *sitter.Language
	offside bool
	convert func(c *converter, root *sitter.Node)
}

func (f *treeSitterFrontEnd) Language() string { return f.lang }

func (f *treeSitterFrontEnd) Parse(ctx context.Context, src []byte, path string) (*ast.Program, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(f.grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	prog := ast.NewProgram(f.lang)
	prog.Path = path
	prog.Offside = f.offside
	c := newConverter(src, prog)
	f.convert(c, tree.RootNode())
	prog.SetLoc(c.lines.span())
	return prog, nil
}
