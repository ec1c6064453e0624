package sandbox_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

type countingHandler struct {
	calls *int
}

func (h countingHandler) WarmedUp() { *h.calls++ }

var _ = Describe("Warm-up propagation (Scenario C)", func() {
	It("invokes every descendant's handler exactly once and advances the clock", func() {
		a := sandbox.New("A", 1)
		b := sandbox.New("B", 2)
		c := sandbox.New("C", 3)
		d := sandbox.New("D", 4)

		a.AddChild(b)
		a.AddChild(c)
		b.AddChild(d)

		var callsA, callsB, callsC, callsD int
		a.SetWarmedUpHandler(countingHandler{&callsA})
		b.SetWarmedUpHandler(countingHandler{&callsB})
		c.SetWarmedUpHandler(countingHandler{&callsC})
		d.SetWarmedUpHandler(countingHandler{&callsD})

		a.WarmUp(1)

		Expect(a.ClockTime()).To(BeNumerically("==", sandbox.SimTime(1)))
		Expect(callsA).To(Equal(1))
		Expect(callsB).To(Equal(1))
		Expect(callsC).To(Equal(1))
		Expect(callsD).To(Equal(1))
	})

	It("resets every registered hour-counter's accumulators but keeps lastCount", func() {
		root := sandbox.New("root", 1)
		hc := root.AddHourCounter(false)

		hc.ObserveCount(5)
		root.RunDuration(2)
		hc.ObserveCount(7)

		root.WarmUp(1)

		Expect(root.ClockTime()).To(BeNumerically("==", sandbox.SimTime(3)))
		Expect(hc.TotalHours()).To(BeNumerically("==", 0))
		Expect(hc.TotalIncrement()).To(BeNumerically("==", 0))
		Expect(hc.TotalDecrement()).To(BeNumerically("==", 0))
		Expect(hc.CumValue()).To(BeNumerically("==", 0))
		Expect(hc.LastCount()).To(BeNumerically("==", 7))
	})
})
