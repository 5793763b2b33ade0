// Package queue provides the unbounded FIFO that feeds symbols to the
// generator workers.
package queue

import "sync"

// Queue is a multi-producer, multi-consumer FIFO backed by a ring buffer that
// doubles when full. Put never blocks; Get blocks until an item is available.
//
// Queue has no Close: consumers are stopped by in-band sentinel items.
type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	buf   []T
	head  int // read position
	count int

	// Stats
	totalPut   int64
	totalGot   int64
	resizes    int
	maxPending int
}

// New creates a queue with the given initial capacity.
func New[T any](initialCapacity int) *Queue[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	q := &Queue[T]{buf: make([]T, initialCapacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends an item and wakes one waiting consumer.
func (q *Queue[T]) Put(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = item
	q.count++
	q.totalPut++
	if q.count > q.maxPending {
		q.maxPending = q.count
	}

	q.cond.Signal()
}

// Get removes and returns the oldest item, blocking while the queue is empty.
func (q *Queue[T]) Get() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		q.cond.Wait()
	}
	return q.pop()
}

// TryGet removes and returns the oldest item without blocking.
func (q *Queue[T]) TryGet() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Stats contains queue statistics.
type Stats struct {
	Pending    int
	Capacity   int
	TotalPut   int64
	TotalGot   int64
	Resizes    int
	MaxPending int
}

// Stats returns a snapshot of queue statistics.
func (q *Queue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Pending:    q.count,
		Capacity:   len(q.buf),
		TotalPut:   q.totalPut,
		TotalGot:   q.totalGot,
		Resizes:    q.resizes,
		MaxPending: q.maxPending,
	}
}

// pop must be called with the lock held and count > 0.
func (q *Queue[T]) pop() T {
	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // Clear reference for GC
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	q.totalGot++
	return item
}

// grow doubles the ring. Must be called with lock held.
func (q *Queue[T]) grow() {
	next := make([]T, len(q.buf)*2)
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.head])
	q.buf = next
	q.head = 0
	q.resizes++
}
