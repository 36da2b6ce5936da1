package frond

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queried = `limit = 10

class Base:
    def area(self):
        return 0

class Square(Base):
    size = 1

    def __init__(self, side):
        self.side = side
        local = side

def helper(a):
    b = a
    return b
`

func newQueryEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	e := newTestEngine(t)
	path := writeFile(t, t.TempDir(), "q.py", queried)
	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))
	return e, path
}

func bindingNames(bs []*Binding) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func TestQuery_NamesAt(t *testing.T) {
	t.Parallel()
	e, path := newQueryEngine(t)

	tests := []struct {
		name      string
		line, col int
		want      []string
	}{
		{"module start", 1, 1, nil},
		{"module after limit", 2, 1, []string{"limit"}},
		{"inside method", 12, 9, []string{"Base", "Square", "helper", "limit", "self", "side"}},
		{"inside function", 16, 5, []string{"Base", "Square", "a", "b", "helper", "limit"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := e.Query().NamesAt(path, tt.line, tt.col)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, bindingNames(got))
		})
	}
}

func TestQuery_MembersOf(t *testing.T) {
	t.Parallel()
	e, path := newQueryEngine(t)

	got, err := e.Query().MembersOf(path, "Square")
	require.NoError(t, err)
	assert.Equal(t, []string{"__init__", "area", "side", "size"}, bindingNames(got))

	got, err = e.Query().MembersOf(path, "Nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_UnknownFile(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Query().ScopesInFile("/nope.py")
	assert.ErrorIs(t, err, ErrFileNotIndexed)
	_, err = e.Query().NamesAt("/nope.py", 1, 1)
	assert.ErrorIs(t, err, ErrFileNotIndexed)
	_, err = e.Query().MembersOf("/nope.py", "K")
	assert.ErrorIs(t, err, ErrFileNotIndexed)
}
