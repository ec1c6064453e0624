package sandbox

import "container/heap"

// futureEventList is the ordered set of events a single Sandbox owns,
// keyed by the (timestamp, index) total order from Event.Less. It is
// grounded on the teacher's sim/timing/eventqueue.go EventQueueImpl, which
// wraps container/heap the same way; this variant additionally tracks each
// Event's position in the backing slice so that remove(Event) — required by
// spec.md §4.1 for the run loop's "pop the head it just peeked" pattern and
// for deterministic eviction of same-timestamp duplicates — runs in
// O(log n) instead of a linear scan.
type futureEventList struct {
	h eventHeap
}

func newFutureEventList() *futureEventList {
	fel := &futureEventList{}
	heap.Init(&fel.h)
	return fel
}

// insert adds an event to the list.
func (f *futureEventList) insert(e *Event) {
	heap.Push(&f.h, e)
}

// remove takes an event out of the list, wherever it currently sits. It is
// a no-op if e is not (or is no longer) a member of this list.
func (f *futureEventList) remove(e *Event) {
	if e.heapIndex < 0 || e.heapIndex >= len(f.h) || f.h[e.heapIndex] != e {
		return
	}
	heap.Remove(&f.h, e.heapIndex)
}

// min returns the earliest event in the list without removing it, or nil if
// the list is empty.
func (f *futureEventList) min() *Event {
	if len(f.h) == 0 {
		return nil
	}
	return f.h[0]
}

// clear empties the list.
func (f *futureEventList) clear() {
	for _, e := range f.h {
		e.heapIndex = -1
	}
	f.h = nil
}

// len returns the number of events currently in the list.
func (f *futureEventList) len() int {
	return len(f.h)
}

// eventHeap implements container/heap.Interface over *Event, ordered by
// Event.Less and keeping each element's heapIndex current so that
// heap.Remove can be used at an arbitrary position, not just the root.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool { return h[i].Less(h[j]) }

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *eventHeap) Push(x interface{}) {
	e := x.(*Event)
	e.heapIndex = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.heapIndex = -1
	*h = old[:n-1]
	return e
}
