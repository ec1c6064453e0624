package domain

import (
	"log"

	"github.com/sandboxsim/sandboxsim/internal/randvar"
	"github.com/sandboxsim/sandboxsim/sandbox"
)

// StartHandler is notified when a load moves from pending into serving.
type StartHandler func(load interface{})

// DepartHandler is notified when a load finishes service and moves into
// the pending-to-depart set.
type DepartHandler func(load interface{})

// Server is a capacity-bounded service station, grounded on spec.md §4.7
// and on the teacher's queueing package for the admit-on-capacity pattern.
// A load occupies one unit of capacity from the moment it starts service
// until an external Depart call removes it from the pending-to-depart
// set, modeling "server busy, waiting for the caller to collect the
// completed load."
type Server struct {
	box      *sandbox.Sandbox
	capacity int
	service  randvar.LoadSampler

	pending         []interface{}
	serving         map[interface{}]struct{}
	pendingToDepart map[interface{}]struct{}

	onStarted       []StartHandler
	onReadyToDepart []DepartHandler

	servingHours         *sandbox.HourCounter
	pendingToDepartHours *sandbox.HourCounter
}

// NewServer creates a Server bound to box with the given capacity, using
// service to sample each load's service duration.
func NewServer(box *sandbox.Sandbox, capacity int, service randvar.LoadSampler) *Server {
	if capacity <= 0 {
		log.Panic("domain: server capacity must be positive")
	}
	if service == nil {
		log.Panic("domain: server requires a non-nil service-time sampler")
	}

	return &Server{
		box:                  box,
		capacity:             capacity,
		service:              service,
		serving:              make(map[interface{}]struct{}),
		pendingToDepart:      make(map[interface{}]struct{}),
		servingHours:         box.AddHourCounter(false),
		pendingToDepartHours: box.AddHourCounter(false),
	}
}

// Capacity returns the server's maximum number of concurrently occupied
// slots (serving + pending-to-depart).
func (s *Server) Capacity() int { return s.capacity }

// PendingLen returns the number of loads waiting for a free slot.
func (s *Server) PendingLen() int { return len(s.pending) }

// ServingLen returns the number of loads currently in service.
func (s *Server) ServingLen() int { return len(s.serving) }

// PendingToDepartLen returns the number of loads that finished service but
// have not yet been collected via Depart.
func (s *Server) PendingToDepartLen() int { return len(s.pendingToDepart) }

// ServingHours exposes the hour-counter tracking the serving set's size.
func (s *Server) ServingHours() sandbox.ReadOnlyHourCounter {
	return s.servingHours.AsReadOnly()
}

// PendingToDepartHours exposes the hour-counter tracking the
// pending-to-depart set's size.
func (s *Server) PendingToDepartHours() sandbox.ReadOnlyHourCounter {
	return s.pendingToDepartHours.AsReadOnly()
}

// OnStarted registers h to be called whenever a load begins service.
func (s *Server) OnStarted(h StartHandler) {
	s.onStarted = append(s.onStarted, h)
}

// OnReadyToDepart registers h to be called whenever a load finishes
// service and enters the pending-to-depart set.
func (s *Server) OnReadyToDepart(h DepartHandler) {
	s.onReadyToDepart = append(s.onReadyToDepart, h)
}

// RqstStart appends load to the pending list and attempts to start it.
func (s *Server) RqstStart(load interface{}) {
	s.pending = append(s.pending, load)
	s.attempt()
}

// Depart removes load from the pending-to-depart set, freeing a capacity
// slot and retriggering a start attempt for the pending list. It is a
// no-op if load isn't in the pending-to-depart set.
func (s *Server) Depart(load interface{}) {
	if _, ok := s.pendingToDepart[load]; !ok {
		return
	}

	delete(s.pendingToDepart, load)
	s.pendingToDepartHours.ObserveChange(-1)
	s.attempt()
}

func (s *Server) occupied() int {
	return len(s.serving) + len(s.pendingToDepart)
}

func (s *Server) attempt() {
	if len(s.pending) == 0 || s.occupied() >= s.capacity {
		return
	}

	load := s.pending[0]
	s.pending = s.pending[1:]
	s.serving[load] = struct{}{}
	s.servingHours.ObserveChange(1)

	duration := sandbox.SimTime(s.service(s.box.DefaultRng(), load))
	s.box.Schedule(func() { s.readyToDepart(load) }, duration, "server.readyToDepart")

	for _, h := range s.onStarted {
		h(load)
	}
}

func (s *Server) readyToDepart(load interface{}) {
	if _, ok := s.serving[load]; !ok {
		return
	}

	delete(s.serving, load)
	s.servingHours.ObserveChange(-1)

	s.pendingToDepart[load] = struct{}{}
	s.pendingToDepartHours.ObserveChange(1)

	for _, h := range s.onReadyToDepart {
		h(load)
	}
}
