package frond

import (
	"errors"

	"github.com/jward/frond/internal/parse"
)

var (
	// ErrUnsupportedLanguage is returned for a language tag with no front
	// end, or one excluded by WithLanguages.
	ErrUnsupportedLanguage = parse.ErrUnsupportedLanguage

	// ErrNoIndex is returned by index operations on an Engine created
	// without a database path.
	ErrNoIndex = errors.New("frond: no index database")

	// ErrFileNotIndexed is returned by queries naming a file the index has
	// not seen.
	ErrFileNotIndexed = errors.New("frond: file not indexed")
)

// LanguageForFile returns the language tag for path's extension.
func LanguageForFile(path string) (string, bool) {
	return parse.LanguageForFile(path)
}
