package merge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/sirilvk/mktdata/internal/model"
)

// streamBuffer is the per-worker channel depth in MergeParallel.
const streamBuffer = 256

// cursor reads records from one file.
type cursor struct {
	file File
	f    *os.File
	rd   *model.Reader
}

func openCursor(file File) (*cursor, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Path, err)
	}
	return &cursor{file: file, f: f, rd: model.NewReader(f)}, nil
}

// next returns the cursor's next entry, or ok=false at end of file.
func (c *cursor) next(src int) (entry, bool, error) {
	rec, err := c.rd.Next()
	if err == io.EOF {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, fmt.Errorf("%s: %w", c.file.Path, err)
	}
	return entry{
		rec:    model.SymbolRecord{Symbol: c.file.Symbol, Record: rec},
		fileID: c.file.ID,
		src:    src,
	}, true, nil
}

// stream merges files with a single heap and emits entries in order.
func stream(ctx context.Context, files []File, emit func(entry) error) error {
	cursors := make([]*cursor, 0, len(files))
	defer func() {
		for _, c := range cursors {
			c.f.Close()
		}
	}()

	h := make(entryHeap, 0, len(files))
	for _, file := range files {
		c, err := openCursor(file)
		if err != nil {
			return err
		}
		cursors = append(cursors, c)

		e, ok, err := c.next(len(cursors) - 1)
		if err != nil {
			return err
		}
		if ok {
			h.push(e)
		}
	}

	for h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		e := h.pop()
		if err := emit(e); err != nil {
			return err
		}
		next, ok, err := cursors[e.src].next(e.src)
		if err != nil {
			return err
		}
		if ok {
			h.push(next)
		}
	}
	return nil
}

// Merge writes every record of files to w in timestamp order with a single
// heap. It returns the number of records written.
func Merge(ctx context.Context, files []File, w io.Writer) (int64, error) {
	out := bufio.NewWriter(w)
	out.WriteString(model.MergedHeader)
	out.WriteByte('\n')

	var n int64
	err := stream(ctx, files, func(e entry) error {
		n++
		_, err := out.WriteString(model.FormatSymbolRecord(e.rec) + "\n")
		return err
	})
	if err != nil {
		return n, err
	}
	return n, out.Flush()
}

// MergeParallel produces the same output as Merge, splitting files across up
// to workers goroutines.
func MergeParallel(ctx context.Context, files []File, w io.Writer, workers int) (int64, error) {
	groups := partition(files, workers)
	if len(groups) <= 1 {
		return Merge(ctx, files, w)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	streams := make([]chan entry, len(groups))
	for i, group := range groups {
		ch := make(chan entry, streamBuffer)
		streams[i] = ch
		g.Go(func() error {
			defer close(ch)
			return stream(gctx, group, func(e entry) error {
				select {
				case ch <- e:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		})
	}

	n, aerr := aggregate(streams, w)
	if aerr != nil {
		cancel()
	}
	if err := g.Wait(); err != nil {
		return n, err
	}
	return n, aerr
}

// aggregate merges the heads of the worker streams.
func aggregate(streams []chan entry, w io.Writer) (int64, error) {
	out := bufio.NewWriter(w)
	out.WriteString(model.MergedHeader)
	out.WriteByte('\n')

	h := make(entryHeap, 0, len(streams))
	for i, ch := range streams {
		if e, ok := <-ch; ok {
			e.src = i
			h.push(e)
		}
	}

	var n int64
	for h.Len() > 0 {
		e := h.pop()
		if _, err := out.WriteString(model.FormatSymbolRecord(e.rec) + "\n"); err != nil {
			return n, err
		}
		n++
		if next, ok := <-streams[e.src]; ok {
			next.src = e.src
			h.push(next)
		}
	}
	return n, out.Flush()
}
