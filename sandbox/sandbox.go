// Package sandbox implements the core of a hierarchical discrete-event
// simulation engine: an immutable Event, a per-node future event list, the
// Sandbox scheduler node that composes into a tree, and the HourCounter
// time-weighted statistic accumulator.
package sandbox

import (
	"log"
	"math/rand"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// SimTime is an instant or a duration on the simulated timeline, expressed
// in hours. Using hours as the base unit lets HourCounter accumulate
// directly in count-hours without any unit conversion at the boundary
// between scheduling and statistics.
type SimTime float64

// Sandbox is a scheduler node. It owns a future event list and can host
// child sandboxes and hour-counters. Exactly one sandbox in a tree is the
// root: root.parent == nil, and only the root's clockTime is authoritative —
// every descendant's ClockTime reads through to it.
type Sandbox struct {
	id   string
	seed int64
	rng  *rand.Rand

	logger logrus.FieldLogger

	fel      *futureEventList
	children []*Sandbox
	counters []*HourCounter
	parent   *Sandbox

	// clockTime and index are meaningful only when this Sandbox is the
	// root; non-roots delegate through parent.
	clockTime SimTime
	index     eventIndexSource

	warmups warmupMulticast

	wallClockRef time.Time
	wallClockSet bool

	running bool
}

// New creates a Sandbox with the given id and seed. An empty id is replaced
// with a generated one, grounded on the teacher's simulation/builder.go,
// which falls back to "xid.New().String()" when no id is supplied.
func New(id string, seed int64) *Sandbox {
	if id == "" {
		id = xid.New().String()
	}

	return &Sandbox{
		id:  id,
		seed: seed,
		rng: rand.New(rand.NewSource(seed)),
		fel: newFutureEventList(),
	}
}

// ID returns the sandbox's label.
func (s *Sandbox) ID() string { return s.id }

// Seed returns the seed the default RNG was (most recently) constructed
// from.
func (s *Sandbox) Seed() int64 { return s.seed }

// Parent returns the parent sandbox, or nil if s is the root.
func (s *Sandbox) Parent() *Sandbox { return s.parent }

// Children returns an immutable snapshot of s's child sandboxes.
func (s *Sandbox) Children() []*Sandbox {
	out := make([]*Sandbox, len(s.children))
	copy(out, s.children)
	return out
}

// Logger returns the attached structured logger, or nil if none was set.
func (s *Sandbox) Logger() logrus.FieldLogger { return s.logger }

// SetLogger attaches a structured logging sink. A nil logger (the default)
// disables logging entirely; every log call site in this package checks for
// nil first, matching the guard idiom in the teacher's eventlogger.go.
func (s *Sandbox) SetLogger(logger logrus.FieldLogger) {
	s.logger = logger
}

// DefaultRng returns the sandbox's deterministic random source, to be used
// by domain modules as the uniform RNG source random-variable samplers are
// contracted to consume.
func (s *Sandbox) DefaultRng() *rand.Rand { return s.rng }

// UpdateRandomSeed replaces the sandbox's RNG with a freshly seeded one.
// RNG state afterward is fully determined by newSeed and subsequent
// consumption order.
func (s *Sandbox) UpdateRandomSeed(newSeed int64) {
	s.seed = newSeed
	s.rng = rand.New(rand.NewSource(newSeed))
}

// SetWarmedUpHandler registers h to be notified when this sandbox's subtree
// warms up. It is appended to the same ordered multicast that AddChild and
// AddHourCounter feed, so multiple registrations (unusual, but not
// prohibited) all fire in registration order.
func (s *Sandbox) SetWarmedUpHandler(h WarmedUpHandler) {
	s.warmups.append(h.WarmedUp)
}

func (s *Sandbox) root() *Sandbox {
	r := s
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// ClockTime returns the current logical time, resolved from the root.
func (s *Sandbox) ClockTime() SimTime {
	return s.root().clockTime
}

// AddChild attaches child to s, registering the child's warm-up
// propagation. A child that already has a parent cannot be re-added
// elsewhere — spec.md §7 leaves this "programmer misuse" undefined other
// than recommending detection, so this implementation panics.
func (s *Sandbox) AddChild(child *Sandbox) *Sandbox {
	if child.parent != nil {
		log.Panic("sandbox: child already has a parent")
	}

	child.parent = s
	s.children = append(s.children, child)
	s.warmups.append(child.fireWarmUp)

	return child
}

// AddHourCounter creates a new HourCounter bound to s's clock, registers its
// warm-up reset, and returns it.
func (s *Sandbox) AddHourCounter(keepHistory bool) *HourCounter {
	hc := newHourCounter(s, keepHistory)
	s.counters = append(s.counters, hc)
	s.warmups.append(hc.warmedUp)

	return hc
}

// Schedule inserts an event carrying action into s's own future event list,
// to fire at ClockTime()+delay. Negative delays are rejected: spec.md §4.2
// leaves the exact behavior implementation-defined and recommends
// rejection.
func (s *Sandbox) Schedule(action Action, delay SimTime, tag string) *Event {
	if delay < 0 {
		log.Panic("sandbox: negative delay is not permitted")
	}

	idx := s.root().index.allocate()
	e := newEvent(s, idx, s.ClockTime()+delay, action, tag)
	s.fel.insert(e)

	return e
}

// ScheduleNow is shorthand for Schedule(action, 0, tag).
func (s *Sandbox) ScheduleNow(action Action, tag string) *Event {
	return s.Schedule(action, 0, tag)
}

// Cancel removes an event this sandbox owns from its future event list
// before it fires. spec.md §5 treats cancellation as optional instrumentation
// beyond the guard-flag idiom domain modules use by default; it is provided
// here as that optional convenience.
func (s *Sandbox) Cancel(e *Event) {
	if e.owner != s {
		log.Panic("sandbox: cannot cancel an event owned by another sandbox")
	}
	s.fel.remove(e)
}

// getHeadEvent returns the earliest event among s's own future event list
// and every descendant's, using the global (timestamp, index) order. It
// visits every descendant on each call, as spec.md §4.2 permits caching
// per-subtree minima but requires it not to change observable ordering —
// this implementation favors the simple, obviously-correct version.
func (s *Sandbox) getHeadEvent() *Event {
	head := s.fel.min()

	for _, c := range s.children {
		if childHead := c.getHeadEvent(); childHead != nil {
			if head == nil || childHead.Less(head) {
				head = childHead
			}
		}
	}

	return head
}

// Run locates the global head event, executes it, and advances the clock to
// its timestamp. It returns false if no event exists anywhere in the tree.
// Non-root sandboxes delegate to the root, per spec.md §4.2.
func (s *Sandbox) Run() bool {
	return s.root().runOnce()
}

func (s *Sandbox) runOnce() bool {
	if s.running {
		log.Panic("sandbox: reentrant call into run() from within an event action")
	}

	head := s.getHeadEvent()
	if head == nil {
		return false
	}

	if head.Time() < s.clockTime {
		log.Panic("sandbox: clock may only advance")
	}

	head.owner.fel.remove(head)
	s.clockTime = head.Time()

	s.running = true
	if s.logger != nil {
		s.logger.WithField("time", float64(s.clockTime)).
			WithField("tag", head.tag).Debug("sandbox: executing event")
	}
	if head.action != nil {
		head.action()
	}
	s.running = false

	return true
}

// RunDuration advances the simulation by duration, equivalent to
// RunUntil(ClockTime() + duration).
func (s *Sandbox) RunDuration(duration SimTime) bool {
	root := s.root()
	return root.RunUntil(root.clockTime + duration)
}

// RunEvents executes up to eventCount Run steps, stopping early and
// returning false the moment one of them finds no event to execute.
func (s *Sandbox) RunEvents(eventCount int) bool {
	root := s.root()
	if root.running {
		log.Panic("sandbox: reentrant call into run() from within an event action")
	}

	for i := 0; i < eventCount; i++ {
		if !root.runOnce() {
			return false
		}
	}
	return true
}

// RunRealtime paces execution against the wall clock: it observes elapsed
// wall-clock time since the previous RunRealtime call and runs the
// simulation forward by elapsed*speed logical hours. The first call on a
// root seeds the wall-clock reference and executes no events.
func (s *Sandbox) RunRealtime(speed float64) bool {
	root := s.root()

	now := time.Now()
	if !root.wallClockSet {
		root.wallClockRef = now
		root.wallClockSet = true
		return true
	}

	elapsedSeconds := now.Sub(root.wallClockRef).Seconds()
	root.wallClockRef = now

	return root.RunUntil(root.clockTime + SimTime(elapsedSeconds*speed))
}

// RunUntil executes every event at or before terminate, in order, then
// advances the clock to terminate even if no further event fires — the
// clock only ever moves forward. It returns true iff an event remains
// anywhere in the tree once the loop exits, answering "can the simulation
// continue?"
func (s *Sandbox) RunUntil(terminate SimTime) bool {
	root := s.root()
	if root.running {
		log.Panic("sandbox: reentrant call into run() from within an event action")
	}

	for {
		head := root.getHeadEvent()
		if head == nil || head.Time() > terminate {
			break
		}
		root.runOnce()
	}

	if terminate > root.clockTime {
		root.clockTime = terminate
	}

	return root.getHeadEvent() != nil
}

// fireWarmUp invokes this sandbox's warm-up multicast: the propagation
// callbacks registered for each child and each hour-counter, plus any
// user-registered WarmedUpHandler, all in registration order.
func (s *Sandbox) fireWarmUp() {
	s.warmups.fire()
}

// WarmUp runs the simulation forward by duration and then fans the warm-up
// notification out across the entire subtree and every registered
// hour-counter. Non-root sandboxes delegate to the root.
func (s *Sandbox) WarmUp(duration SimTime) {
	root := s.root()
	root.RunUntil(root.clockTime + duration)
	root.fireWarmUp()
}

// Dispose recursively releases a sandbox's children and hour-counters and
// clears its own future event list.
func (s *Sandbox) Dispose() {
	for _, c := range s.children {
		c.Dispose()
	}
	s.children = nil

	for _, hc := range s.counters {
		hc.dispose()
	}
	s.counters = nil

	s.fel.clear()
}
