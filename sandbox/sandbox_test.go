package sandbox_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

var _ = Describe("Sandbox", func() {
	var root *sandbox.Sandbox

	BeforeEach(func() {
		root = sandbox.New("root", 1)
	})

	It("advances the clock to exactly oldClock+duration (Scenario B)", func() {
		root.RunDuration(2)
		Expect(root.ClockTime()).To(BeNumerically("==", sandbox.SimTime(2)))
	})

	It("returns false and advances the clock to the horizon when there are no events", func() {
		more := root.RunUntil(5)
		Expect(more).To(BeFalse())
		Expect(root.ClockTime()).To(BeNumerically("==", sandbox.SimTime(5)))
	})

	It("executes same-timestamp events in strict scheduling order", func() {
		var order []int

		root.Schedule(func() { order = append(order, 1) }, 0, "a")
		root.Schedule(func() { order = append(order, 2) }, 0, "b")
		root.Schedule(func() { order = append(order, 3) }, 0, "c")

		root.RunEvents(3)

		Expect(order).To(Equal([]int{1, 2, 3}))
	})

	It("never lets the clock retreat across run() calls", func() {
		var clocks []sandbox.SimTime

		root.Schedule(func() { clocks = append(clocks, root.ClockTime()) }, 3, "")
		root.Schedule(func() { clocks = append(clocks, root.ClockTime()) }, 1, "")
		root.Schedule(func() { clocks = append(clocks, root.ClockTime()) }, 2, "")

		for root.Run() {
		}

		Expect(clocks).To(Equal([]sandbox.SimTime{1, 2, 3}))
	})

	It("rejects scheduling with a negative delay", func() {
		Expect(func() { root.Schedule(func() {}, -1, "") }).To(Panic())
	})

	It("panics on reentrant run() calls from inside an event action", func() {
		root.Schedule(func() { root.Run() }, 0, "")
		Expect(func() { root.Run() }).To(Panic())
	})

	It("panics on a reentrant RunDuration call even with no other event pending", func() {
		root.Schedule(func() { root.RunDuration(5) }, 0, "")
		Expect(func() { root.Run() }).To(Panic())
	})

	It("panics on a reentrant RunEvents call even with no other event pending", func() {
		root.Schedule(func() { root.RunEvents(1) }, 0, "")
		Expect(func() { root.Run() }).To(Panic())
	})

	It("merges a child's events into the global head-event order", func() {
		child := root.AddChild(sandbox.New("child", 2))

		var order []string
		root.Schedule(func() { order = append(order, "root@1") }, 1, "")
		child.Schedule(func() { order = append(order, "child@0") }, 0, "")

		root.RunEvents(2)

		Expect(order).To(Equal([]string{"child@0", "root@1"}))
	})

	It("runs up to N events and stops early if the tree empties", func() {
		root.Schedule(func() {}, 0, "")
		root.Schedule(func() {}, 0, "")

		Expect(root.RunEvents(5)).To(BeFalse())
	})

	It("reseeding and replaying from the same seed yields identical traces", func() {
		record := func(seed int64) []float64 {
			s := sandbox.New("r", seed)
			rng := s.DefaultRng()
			out := make([]float64, 5)
			for i := range out {
				out[i] = rng.Float64()
			}
			return out
		}

		Expect(record(42)).To(Equal(record(42)))
	})
})
