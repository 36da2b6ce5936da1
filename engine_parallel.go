package frond

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/jward/frond/internal/store"
)

// workItem is one file moving through the indexing pipeline.
type workItem struct {
	path    string
	lang    string
	fileID  int64
	content []byte
	batch   *store.BatchedStore
	err     error // set by the parse stage
}

// IndexFilesParallel indexes files in three stages:
//
//	prepare (serial):  hash check, stale data removal, file records.
//	parse (parallel):  parse and build scopes on a worker pool, each file
//	                   buffering rows into its own BatchedStore.
//	commit (serial):   write each batch to SQLite in one transaction.
//
// A file that fails to parse or commit loses its file record so the next
// run retries it; the remaining files are still indexed.
func (e *Engine) IndexFilesParallel(ctx context.Context, paths []string) error {
	if e.store == nil {
		return ErrNoIndex
	}

	pending := make([]*workItem, 0, len(paths))
	for _, path := range paths {
		item, skip, err := e.prepareFile(path)
		if err != nil {
			return fmt.Errorf("prepare %s: %w", path, err)
		}
		if !skip {
			item.batch = store.NewBatchedStore(e.store)
			pending = append(pending, &item)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	var failed []error
	for item := range e.parseAll(ctx, pending) {
		err, rows := item.err, item.batch.Len()
		if err == nil {
			if cerr := e.store.CommitBatch(item.batch); cerr != nil {
				err = fmt.Errorf("commit: %w", cerr)
			}
		}
		if err != nil {
			_ = e.store.DeleteFileData(item.fileID)
			failed = append(failed, fmt.Errorf("%s: %w", item.path, err))
			continue
		}
		e.logger.Debug("indexed", "path", item.path, "rows", rows)
	}

	if len(failed) > 0 {
		e.logger.Warn("indexing finished with failures", "failed", len(failed), "total", len(pending))
		return fmt.Errorf("indexing failed for %d of %d file(s): %w", len(failed), len(pending), errors.Join(failed...))
	}
	return nil
}

// parseAll runs extractFile for every item on a bounded worker pool and
// yields each item once it is done. The channel closes after the last one.
func (e *Engine) parseAll(ctx context.Context, items []*workItem) <-chan *workItem {
	workers := min(runtime.NumCPU(), len(items))
	queue := make(chan *workItem)
	done := make(chan *workItem, len(items))

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range queue {
				if item.err = ctx.Err(); item.err == nil {
					item.err = e.extractFile(ctx, *item, item.batch)
				}
				done <- item
			}
		}()
	}
	go func() {
		for _, item := range items {
			queue <- item
		}
		close(queue)
		wg.Wait()
		close(done)
	}()
	return done
}
