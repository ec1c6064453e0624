package sandbox_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

var _ = Describe("HourCounter", func() {
	var (
		root *sandbox.Sandbox
		hc   *sandbox.HourCounter
	)

	BeforeEach(func() {
		root = sandbox.New("root", 1)
		hc = root.AddHourCounter(false)
	})

	It("matches the literal worked example (Scenario A)", func() {
		root.RunDuration(1)
		hc.ObserveCount(1)

		root.RunDuration(1)
		hc.Pause()

		root.RunDuration(1)
		hc.ObserveCount(2)

		root.RunDuration(1)
		hc.Resume()

		root.RunDuration(1)
		hc.ObserveCount(0)

		root.RunDuration(5)
		hc.ObserveCount(0)

		Expect(hc.AverageCount()).To(BeNumerically("~", 0.375, 1e-9))
		Expect(hc.TotalIncrement()).To(BeNumerically("==", 1))
		Expect(hc.TotalDecrement()).To(BeNumerically("==", 2))
	})

	It("treats totalHours as the sum of hoursForCount up to the open interval", func() {
		hc.ObserveCount(1)
		root.RunDuration(3)
		hc.ObserveCount(2)

		sum := 0.0
		for _, v := range hc.HoursForCount() {
			sum += v
		}
		Expect(hc.TotalHours()).To(BeNumerically("~", sum, 1e-9))
	})

	It("is idempotent across repeated pause calls", func() {
		root.RunDuration(1)
		hc.ObserveCount(1)
		hc.Pause()
		before := hc.TotalHours()
		hc.Pause()
		Expect(hc.TotalHours()).To(Equal(before))
	})

	It("is idempotent across repeated resume calls", func() {
		root.RunDuration(1)
		hc.Pause()
		hc.Resume()
		before := hc.LastTime()
		hc.Resume()
		Expect(hc.LastTime()).To(Equal(before))
	})

	It("ignores elapsed time while paused", func() {
		root.RunDuration(1)
		hc.ObserveCount(5)
		hc.Pause()
		root.RunDuration(100)
		Expect(hc.TotalHours()).To(BeNumerically("~", 1, 1e-9))
	})

	It("keeps averageCount within the observed range once active", func() {
		root.RunDuration(1)
		hc.ObserveCount(4)
		root.RunDuration(1)
		hc.ObserveCount(10)

		avg := hc.AverageCount()
		Expect(avg).To(BeNumerically(">=", 0))
		Expect(avg).To(BeNumerically("<=", 10))
	})

	It("keeps workingTimeRatio within [0, 1]", func() {
		root.RunDuration(1)
		hc.ObserveCount(1)
		root.RunDuration(1)
		hc.Pause()
		root.RunDuration(5)

		ratio := hc.WorkingTimeRatio()
		Expect(ratio).To(BeNumerically(">=", 0))
		Expect(ratio).To(BeNumerically("<=", 1))
	})

	It("returns an empty histogram for a counter with no recorded hours", func() {
		Expect(hc.Histogram(1)).To(BeEmpty())
	})

	It("bins histogram entries as [k*w, (k+1)*w)", func() {
		root.RunDuration(1)
		hc.ObserveCount(1) // 1 hour held at count 0
		root.RunDuration(2)
		hc.ObserveCount(0) // 2 hours held at count 1

		bins := hc.Histogram(1)

		Expect(bins).To(HaveLen(2))
		Expect(bins[0].LowerBound).To(Equal(0.0))
		Expect(bins[0].Hours).To(BeNumerically("~", 1, 1e-9))
		Expect(bins[1].LowerBound).To(Equal(1.0))
		Expect(bins[1].Hours).To(BeNumerically("~", 2, 1e-9))
		Expect(bins[1].CumulativeProbability).To(BeNumerically("~", 1, 1e-9))
	})

	It("returns 0 for percentile on a counter with no recorded hours", func() {
		Expect(hc.Percentile(50)).To(BeNumerically("==", 0))
	})

	It("returns the smallest count whose cumulative hours meet the requested percentile", func() {
		root.RunDuration(1)
		hc.ObserveCount(1) // 1 hour held at count 0
		root.RunDuration(2)
		hc.ObserveCount(0) // 2 hours held at count 1 (total 3 hours)

		Expect(hc.Percentile(25)).To(BeNumerically("==", 0))  // threshold 0.75 <= 1 hour at count 0
		Expect(hc.Percentile(50)).To(BeNumerically("==", 1))  // threshold 1.5 > 1 hour, rolls into count 1
		Expect(hc.Percentile(100)).To(BeNumerically("==", 1)) // threshold 3 met exactly at count 1
	})

	It("returns 0 for averageDuration when the decrement rate is degenerate", func() {
		Expect(hc.AverageDuration()).To(BeNumerically("==", 0))
	})

	It("is a no-op on rates beyond time advancement for a repeated observeCount", func() {
		root.RunDuration(1)
		hc.ObserveCount(3)
		before := hc.AverageCount()
		hc.ObserveCount(3)
		Expect(hc.AverageCount()).To(Equal(before))
	})
})
