package pool

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// collector records which worker handled which symbol.
type collector struct {
	mu      sync.Mutex
	symbols []string
	workers map[int]bool
	fail    map[string]error
	delay   time.Duration
}

func newCollector() *collector {
	return &collector{workers: make(map[int]bool), fail: make(map[string]error)}
}

func (c *collector) HandleSymbol(_ context.Context, worker int, symbol string) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.symbols = append(c.symbols, symbol)
	c.workers[worker] = true
	return c.fail[symbol]
}

func (c *collector) sorted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := slices.Clone(c.symbols)
	slices.Sort(out)
	return out
}

func TestPool_Run(t *testing.T) {
	c := newCollector()
	p := New(Config{Workers: 5}, c, nil)

	n, err := p.Run(context.Background(), strings.NewReader("MSFT\n  AAPL \n\nIBM\r\nGOOG\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Run submitted %d symbols, want 4", n)
	}

	want := []string{"AAPL", "GOOG", "IBM", "MSFT"}
	if got := c.sorted(); !slices.Equal(got, want) {
		t.Errorf("handled %v, want %v", got, want)
	}
	if p.State() != StateDone {
		t.Errorf("State() = %v, want done", p.State())
	}
	if stats := p.Stats(); stats.Processed != 4 || stats.Failed != 0 {
		t.Errorf("Stats() = %+v, want 4 processed", stats)
	}
}

func TestPool_UsesSeveralWorkers(t *testing.T) {
	c := newCollector()
	c.delay = 20 * time.Millisecond
	p := New(Config{Workers: 4}, c, nil)

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("SYM")
		sb.WriteByte(byte('A' + i%26))
		sb.WriteByte(byte('0' + i/26))
		sb.WriteByte('\n')
	}

	if _, err := p.Run(context.Background(), strings.NewReader(sb.String())); err != nil {
		t.Fatal(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.workers) < 2 {
		t.Errorf("only %d worker(s) handled symbols, want several", len(c.workers))
	}
	for w := range c.workers {
		if w < 0 || w >= 4 {
			t.Errorf("worker index %d out of range", w)
		}
	}
}

func TestPool_FailureDoesNotStopOthers(t *testing.T) {
	c := newCollector()
	boom := errors.New("disk full")
	c.fail["BAD"] = boom
	p := New(Config{Workers: 2}, c, nil)

	_, err := p.Run(context.Background(), strings.NewReader("A\nBAD\nB\nC\n"))
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "symbol BAD") {
		t.Errorf("error %q should name the symbol", err)
	}

	stats := p.Stats()
	if stats.Processed != 3 || stats.Failed != 1 {
		t.Errorf("Stats() = %+v, want 3 processed and 1 failed", stats)
	}
}

func TestPool_EmptyInput(t *testing.T) {
	c := newCollector()
	p := New(Config{Workers: 5}, c, nil)

	n, err := p.Run(context.Background(), strings.NewReader(""))
	if err != nil || n != 0 {
		t.Errorf("Run on empty input = (%d, %v), want (0, nil)", n, err)
	}
}

func TestPool_StateTransitions(t *testing.T) {
	release := make(chan struct{})
	var handled atomic.Int32
	h := HandlerFunc(func(context.Context, int, string) error {
		<-release
		handled.Add(1)
		return nil
	})
	p := New(Config{Workers: 1}, h, nil)

	if p.State() != StateIdle {
		t.Fatalf("State() = %v, want idle", p.State())
	}
	if err := p.Submit("EARLY"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Submit before Start error = %v, want ErrNotRunning", err)
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if p.State() != StateRunning {
		t.Errorf("State() = %v, want running", p.State())
	}
	if err := p.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}

	if err := p.Submit("AAPL"); err != nil {
		t.Fatal(err)
	}
	p.Drain()
	if p.State() != StateDraining {
		t.Errorf("State() = %v, want draining", p.State())
	}
	if err := p.Submit("LATE"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Submit while draining error = %v, want ErrNotRunning", err)
	}

	close(release)
	if err := p.Wait(); err != nil {
		t.Fatal(err)
	}
	if p.State() != StateDone {
		t.Errorf("State() = %v, want done", p.State())
	}
	if handled.Load() != 1 {
		t.Errorf("handled %d symbols, want 1", handled.Load())
	}
}

func TestPool_CancelledContextSkips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newCollector()
	p := New(Config{Workers: 3}, c, nil)

	_, err := p.Run(ctx, strings.NewReader("A\nB\nC\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if len(c.sorted()) != 0 {
		t.Errorf("handled %v after cancel, want none", c.sorted())
	}
	if p.Stats().Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", p.Stats().Skipped)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{}, newCollector(), nil)
	if p.cfg.Workers != 5 {
		t.Errorf("Workers = %d, want 5", p.cfg.Workers)
	}
	if p.cfg.QueueCapacity != DefaultConfig().QueueCapacity {
		t.Errorf("QueueCapacity = %d, want %d", p.cfg.QueueCapacity, DefaultConfig().QueueCapacity)
	}
}
