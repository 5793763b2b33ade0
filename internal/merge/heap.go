package merge

import (
	"container/heap"

	"github.com/sirilvk/mktdata/internal/model"
)

// entry is a record waiting in a merge heap. src identifies where the next
// record for this slot comes from (a file cursor or a worker stream).
type entry struct {
	rec    model.SymbolRecord
	fileID int
	src    int
}

func (e entry) before(o entry) bool {
	if e.rec.Timestamp.Equal(o.rec.Timestamp) {
		return e.fileID < o.fileID
	}
	return e.rec.Timestamp.Before(o.rec.Timestamp)
}

// entryHeap is a min-heap of entries.
type entryHeap []entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].before(h[j]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func (h *entryHeap) push(e entry) { heap.Push(h, e) }
func (h *entryHeap) pop() entry   { return heap.Pop(h).(entry) }
