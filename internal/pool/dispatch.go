package pool

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Dispatch submits one symbol per non-blank line of r, trimmed of
// whitespace, then drains the pool. It returns the number of symbols
// submitted. The pool is drained even when reading fails.
func Dispatch(p *Pool, r io.Reader) (int, error) {
	defer p.Drain()

	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		symbol := strings.TrimSpace(sc.Text())
		if symbol == "" {
			continue
		}
		if err := p.Submit(symbol); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("read symbols: %w", err)
	}
	return n, nil
}

// Run starts the pool, feeds it the symbols in r and waits for every
// worker to exit. It returns the number of symbols submitted.
func (p *Pool) Run(ctx context.Context, r io.Reader) (int, error) {
	if err := p.Start(ctx); err != nil {
		return 0, err
	}
	n, derr := Dispatch(p, r)
	werr := p.Wait()
	if derr != nil {
		return n, derr
	}
	return n, werr
}
