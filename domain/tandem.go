package domain

import (
	"github.com/sandboxsim/sandboxsim/internal/randvar"
	"github.com/sandboxsim/sandboxsim/sandbox"
)

// tandemLoad is the unit of work flowing through a TandemQueue: an
// opaque token the demo stamps with its arrival time so the end-to-end
// hours-in-system metric can be computed without reaching for Little's
// law on a compound, multi-stage occupancy counter.
type tandemLoad struct {
	id          int
	arrivalTime sandbox.SimTime
}

// Stage is one Queue+Server pair in a TandemQueue.
type Stage struct {
	Queue  *Queue
	Server *Server
}

// ArrivalSource is the common surface Generator and PatternGenerator both
// satisfy, letting a TandemQueue be fed by either a homogeneous or a
// seasonal non-homogeneous arrival process interchangeably.
type ArrivalSource interface {
	Start()
	End()
	IsOn() bool
	Count() int
	OnArrive(ArriveHandler)
}

var (
	_ ArrivalSource = (*Generator)(nil)
	_ ArrivalSource = (*PatternGenerator)(nil)
)

// TandemQueue wires an ArrivalSource into a series of Queue+Server
// stages: an arrival is enqueued at the first stage, moves to service
// once admitted, and on completion either forwards into the next stage's
// queue or, at the last stage, departs the system. It is the supplemented
// demo SPEC_FULL.md names for spec.md §2's "tandem demo" row, and is
// exactly what Scenario D (spec.md §8) exercises with a single stage.
type TandemQueue struct {
	box     *sandbox.Sandbox
	Arrival ArrivalSource
	Stages  []*Stage

	nextID int

	departedCount    int
	totalSystemHours float64
}

// TandemStageSpec configures one stage of a TandemQueue.
type TandemStageSpec struct {
	QueueCapacity  int
	ServerCapacity int
	ServiceTime    randvar.LoadSampler
}

// BuildTandemQueue constructs a Generator drawing inter-arrival times from
// arrivalIAT and a series of Queue+Server stages per specs. It is
// shorthand for BuildTandemQueueWithSource for the common homogeneous
// case.
func BuildTandemQueue(box *sandbox.Sandbox, arrivalIAT randvar.Sampler, specs []TandemStageSpec) *TandemQueue {
	return BuildTandemQueueWithSource(box, NewGenerator(box, arrivalIAT), specs)
}

// BuildTandemQueueWithSource wires arrival into a series of Queue+Server
// stages per specs, chaining each stage's completion into the next
// stage's admission (or into system departure, for the last stage).
func BuildTandemQueueWithSource(box *sandbox.Sandbox, arrival ArrivalSource, specs []TandemStageSpec) *TandemQueue {
	t := &TandemQueue{box: box, Arrival: arrival}

	for _, spec := range specs {
		stage := &Stage{
			Queue:  NewQueue(box, spec.QueueCapacity),
			Server: NewServer(box, spec.ServerCapacity, spec.ServiceTime),
		}
		t.Stages = append(t.Stages, stage)
	}

	for i, stage := range t.Stages {
		stage := stage
		isLast := i == len(t.Stages)-1

		stage.Queue.OnEnqueued(func(load interface{}) {
			stage.Server.RqstStart(load)
		})
		stage.Server.OnStarted(func(load interface{}) {
			stage.Queue.Dequeue(load)
		})

		if isLast {
			stage.Server.OnReadyToDepart(func(load interface{}) {
				t.finish(load.(*tandemLoad))
				stage.Server.Depart(load)
			})
		} else {
			next := t.Stages[i+1]
			stage.Server.OnReadyToDepart(func(load interface{}) {
				next.Queue.RqstEnqueue(load)
				stage.Server.Depart(load)
			})
		}
	}

	arrival.OnArrive(func(int) {
		t.nextID++
		load := &tandemLoad{id: t.nextID, arrivalTime: box.ClockTime()}
		t.Stages[0].Queue.RqstEnqueue(load)
	})

	return t
}

func (t *TandemQueue) finish(load *tandemLoad) {
	t.departedCount++
	t.totalSystemHours += float64(t.box.ClockTime() - load.arrivalTime)
}

// AvgHoursInSystem returns the mean time a load spends between arrival and
// final departure, across every load that has departed so far. It returns
// 0 if none has departed yet.
func (t *TandemQueue) AvgHoursInSystem() float64 {
	if t.departedCount == 0 {
		return 0
	}
	return t.totalSystemHours / float64(t.departedCount)
}

// DepartedCount returns the number of loads that have completed every
// stage.
func (t *TandemQueue) DepartedCount() int { return t.departedCount }
