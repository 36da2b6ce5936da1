package complete

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/jward/frond/internal/ast"
)

// Context is the syntactic situation at the cursor.
type Context uint8

const (
	// ContextName proposes every visible name.
	ContextName Context = iota
	// ContextMember proposes the members of the expression before a dot.
	ContextMember
)

func (c Context) String() string {
	if c == ContextMember {
		return "member"
	}
	return "name"
}

// offset converts pos into a byte offset into src. Columns count
// characters; the column just past the end of a line is valid.
func offset(src []byte, pos ast.Pos) (int, bool) {
	if !pos.IsValid() {
		return 0, false
	}
	start := 0
	for line := 1; line < pos.Line; line++ {
		i := bytes.IndexByte(src[start:], '\n')
		if i < 0 {
			return 0, false
		}
		start += i + 1
	}
	end := len(src)
	if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
		end = start + i
	}
	if end > start && src[end-1] == '\r' {
		end--
	}
	off := start
	for col := 1; col < pos.Col; col++ {
		if off >= end {
			return 0, false
		}
		_, size := utf8.DecodeRune(src[off:end])
		off += size
	}
	return off, true
}

// Classify inspects the text before pos. In member context chain holds the
// dotted identifiers before the trigger dot, root first; it is empty when
// that expression is not a plain identifier chain. ok is false when pos
// lies outside src.
func Classify(src []byte, pos ast.Pos) (ctx Context, chain []string, ok bool) {
	off, ok := offset(src, pos)
	if !ok {
		return ContextName, nil, false
	}
	lineStart := bytes.LastIndexByte(src[:off], '\n') + 1
	prefix := []rune(string(src[lineStart:off]))
	i := len(prefix) - 1
	if i < 0 || prefix[i] != '.' {
		return ContextName, nil, true
	}
	i--
	for i >= 0 && (prefix[i] == ' ' || prefix[i] == '\t') {
		i--
	}
	for {
		end := i + 1
		for i >= 0 && isIdent(prefix[i]) {
			i--
		}
		seg := prefix[i+1 : end]
		if len(seg) == 0 || unicode.IsDigit(seg[0]) {
			return ContextMember, nil, true
		}
		chain = append([]string{string(seg)}, chain...)
		if i < 0 || prefix[i] != '.' {
			return ContextMember, chain, true
		}
		i--
	}
}

func isIdent(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Prepare returns the source to parse for a request at pos. In member
// context the trigger dot is replaced by a space so the statement before
// it parses cleanly; columns do not move.
func Prepare(src []byte, pos ast.Pos) []byte {
	off, ok := offset(src, pos)
	if !ok || off == 0 || src[off-1] != '.' {
		return src
	}
	out := append([]byte(nil), src...)
	out[off-1] = ' '
	return out
}
