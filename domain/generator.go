// Package domain provides reference domain modules built on top of
// package sandbox: Generator, PatternGenerator, Queue, and Server, plus a
// small tandem-queue demo wiring them together.
package domain

import (
	"log"

	"github.com/sandboxsim/sandboxsim/internal/randvar"
	"github.com/sandboxsim/sandboxsim/sandbox"
)

// ArriveHandler is notified each time a Generator's timer fires while it is
// on.
type ArriveHandler func(count int)

// Generator emits onArrive notifications on inter-arrival times drawn from
// a user-supplied Sampler. It starts off; start() turns it on and begins
// scheduling arrivals against its bound sandbox's own event list.
type Generator struct {
	box *sandbox.Sandbox
	iat randvar.Sampler

	on        bool
	startTime sandbox.SimTime
	count     int

	onArrive []ArriveHandler
}

// NewGenerator creates a Generator bound to box, drawing inter-arrival
// times from iat. It registers its warm-up reset with box.
func NewGenerator(box *sandbox.Sandbox, iat randvar.Sampler) *Generator {
	if iat == nil {
		log.Panic("domain: generator requires a non-nil inter-arrival sampler")
	}

	g := &Generator{box: box, iat: iat}
	box.SetWarmedUpHandler(generatorWarmupHandler{g})

	return g
}

// OnArrive registers h to be called on every accepted arrival.
func (g *Generator) OnArrive(h ArriveHandler) {
	g.onArrive = append(g.onArrive, h)
}

// IsOn reports whether the generator is currently emitting arrivals.
func (g *Generator) IsOn() bool { return g.on }

// Count returns the number of arrivals emitted since the last start() (or
// since the last warm-up, whichever is more recent).
func (g *Generator) Count() int { return g.count }

// StartTime returns the clock time at which the generator was last turned
// on. Its value is meaningless while IsOn() is false.
func (g *Generator) StartTime() sandbox.SimTime { return g.startTime }

// Start turns the generator on, zeroes its count, and schedules the first
// arrival. It is a no-op if already on, matching spec's "start() when off"
// precondition implicitly by ignoring the call otherwise.
func (g *Generator) Start() {
	if g.on {
		return
	}

	g.on = true
	g.startTime = g.box.ClockTime()
	g.count = 0
	g.scheduleNext()
}

// End turns the generator off. Any arrival already scheduled still fires
// at its scheduled time but is ignored by the on-guard in the event
// action, per spec.md §4.5's "outstanding scheduled arrivals fire but are
// ignored."
func (g *Generator) End() {
	g.on = false
}

func (g *Generator) scheduleNext() {
	delay := sandbox.SimTime(g.iat(g.box.DefaultRng()))
	g.box.Schedule(g.fire, delay, "generator.arrive")
}

func (g *Generator) fire() {
	if !g.on {
		return
	}

	g.count++
	g.scheduleNext()

	for _, h := range g.onArrive {
		h(g.count)
	}
}

// generatorWarmupHandler adapts Generator.warmedUp to the
// sandbox.WarmedUpHandler interface without exporting a method that could
// be confused with a public reset operation.
type generatorWarmupHandler struct{ g *Generator }

func (h generatorWarmupHandler) WarmedUp() {
	h.g.count = 0
}
