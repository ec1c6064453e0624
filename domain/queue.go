package domain

import (
	"log"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

// EnqueueHandler is notified when a load is successfully moved from
// pending into the queueing list.
type EnqueueHandler func(load interface{})

// Queue is a capacity-bounded waiting line, grounded on the teacher's
// capacity-checked push/pop pattern in sim/queueing/buffer.go. It tracks a
// pending-to-enqueue list (loads that have arrived but not yet been
// admitted) and a queueing list (loads currently occupying capacity), and
// exposes the queueing list's occupancy through an hour-counter.
type Queue struct {
	box      *sandbox.Sandbox
	capacity int

	pending  []interface{}
	queueing []interface{}

	onEnqueued []EnqueueHandler

	queueingHours *sandbox.HourCounter
}

// NewQueue creates a Queue bound to box with the given capacity, which
// must be positive.
func NewQueue(box *sandbox.Sandbox, capacity int) *Queue {
	if capacity <= 0 {
		log.Panic("domain: queue capacity must be positive")
	}

	return &Queue{
		box:           box,
		capacity:      capacity,
		queueingHours: box.AddHourCounter(false),
	}
}

// Capacity returns the queue's maximum number of concurrently queueing
// loads.
func (q *Queue) Capacity() int { return q.capacity }

// Len returns the number of loads currently occupying queueing capacity.
func (q *Queue) Len() int { return len(q.queueing) }

// PendingLen returns the number of loads waiting to be admitted.
func (q *Queue) PendingLen() int { return len(q.pending) }

// QueueingHours exposes the hour-counter tracking queueing occupancy.
func (q *Queue) QueueingHours() sandbox.ReadOnlyHourCounter {
	return q.queueingHours.AsReadOnly()
}

// OnEnqueued registers h to be called whenever a load is admitted into the
// queueing list.
func (q *Queue) OnEnqueued(h EnqueueHandler) {
	q.onEnqueued = append(q.onEnqueued, h)
}

// RqstEnqueue appends load to the pending list and attempts to admit the
// head of that list into the queueing list if capacity allows.
func (q *Queue) RqstEnqueue(load interface{}) {
	q.pending = append(q.pending, load)
	q.attempt()
}

// Dequeue removes load from the queueing list (a no-op if it isn't
// present) and retriggers an admission attempt for the pending list.
func (q *Queue) Dequeue(load interface{}) {
	for i, v := range q.queueing {
		if v == load {
			q.queueing = append(q.queueing[:i], q.queueing[i+1:]...)
			q.queueingHours.ObserveChange(-1)
			break
		}
	}
	q.attempt()
}

func (q *Queue) attempt() {
	if len(q.pending) == 0 || len(q.queueing) >= q.capacity {
		return
	}

	load := q.pending[0]
	q.pending = q.pending[1:]
	q.queueing = append(q.queueing, load)
	q.queueingHours.ObserveChange(1)

	for _, h := range q.onEnqueued {
		h(load)
	}
}
