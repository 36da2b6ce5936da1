package frond

import (
	"context"
	"fmt"
	"sync"

	"github.com/jward/frond/internal/ast"
	"github.com/jward/frond/internal/scope"
	"github.com/jward/frond/internal/store"
)

// defaultSnapshotLimit bounds the number of units kept in the cache.
const defaultSnapshotLimit = 64

// Snapshot is an immutable parse of one unit. It is safe to share between
// goroutines.
type Snapshot struct {
	Path     string
	Language string
	// Hash is the SHA-256 of the source the snapshot was built from.
	Hash    string
	Program *ast.Program
	Scopes  *scope.Tree
}

type snapshotEntry struct {
	hash string
	done chan struct{}
	snap *Snapshot
	err  error
}

// snapshotCache keeps the latest snapshot per unit and runs at most one
// build per unit at a time.
type snapshotCache struct {
	mu      sync.Mutex
	limit   int
	entries map[string]*snapshotEntry
	order   []string // least recently used first
}

func newSnapshotCache(limit int) *snapshotCache {
	return &snapshotCache{limit: limit, entries: make(map[string]*snapshotEntry)}
}

type buildFunc func(ctx context.Context, hash string) (*Snapshot, error)

func (c *snapshotCache) get(ctx context.Context, lang, path string, src []byte, build buildFunc) (*Snapshot, error) {
	key := lang + "\x00" + path
	hash := store.ContentHash(src)

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.hash == hash {
		c.touch(key)
		c.mu.Unlock()
		select {
		case <-e.done:
			return e.snap, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	e = &snapshotEntry{hash: hash, done: make(chan struct{})}
	c.entries[key] = e
	c.touch(key)
	c.evict()
	c.mu.Unlock()

	c.run(ctx, e, hash, build)

	if e.err != nil {
		c.mu.Lock()
		if c.entries[key] == e {
			delete(c.entries, key)
			c.remove(key)
		}
		c.mu.Unlock()
	}
	return e.snap, e.err
}

// run builds e and releases its waiters even if build panics. The build
// outlives a cancelled caller since others may be waiting on it.
func (c *snapshotCache) run(ctx context.Context, e *snapshotEntry, hash string, build buildFunc) {
	defer close(e.done)
	defer func() {
		if r := recover(); r != nil {
			e.err = fmt.Errorf("frond: snapshot build panicked: %v", r)
			if ast.DebugAssertions {
				panic(r)
			}
		}
	}()
	e.snap, e.err = build(context.WithoutCancel(ctx), hash)
}

// touch moves key to the back of the LRU order. Callers hold mu.
func (c *snapshotCache) touch(key string) {
	c.remove(key)
	c.order = append(c.order, key)
}

func (c *snapshotCache) remove(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// evict drops the least recently used finished entries over the limit.
// Callers hold mu.
func (c *snapshotCache) evict() {
	for i := 0; len(c.entries) > c.limit && i < len(c.order); {
		key := c.order[i]
		select {
		case <-c.entries[key].done:
			delete(c.entries, key)
			c.order = append(c.order[:i], c.order[i+1:]...)
		default:
			i++
		}
	}
}

// Len reports the number of cached units.
func (c *snapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
