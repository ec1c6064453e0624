package sandbox

import (
	"log"
	"math"
	"sort"
)

// HourCounter is a piecewise-constant, time-weighted integrator of a scalar
// count against its bound Sandbox's clock. Between observations the count
// is held at its last observed value; every derived metric is expressed in
// count-hours or a ratio of hours.
type HourCounter struct {
	sandbox *Sandbox

	initialTime SimTime
	lastTime    SimTime
	lastCount   float64

	totalIncrement float64
	totalDecrement float64
	totalHours     float64
	cumValue       float64

	paused        bool
	keepHistory   bool
	history       map[SimTime]float64
	hoursForCount map[float64]float64
}

func newHourCounter(s *Sandbox, keepHistory bool) *HourCounter {
	now := s.ClockTime()

	hc := &HourCounter{
		sandbox:       s,
		initialTime:   now,
		lastTime:      now,
		keepHistory:   keepHistory,
		hoursForCount: make(map[float64]float64),
	}

	if keepHistory {
		hc.history = make(map[SimTime]float64)
	}

	return hc
}

// ObserveCount records that the tracked quantity is now count, as of the
// bound sandbox's current clock time. The clock may not have gone
// backwards since the last observation; violating that is a logic error and
// is fatal, matching the teacher's "cannot run event in the past" panics in
// sim/timing/serialengine.go.
func (h *HourCounter) ObserveCount(count float64) {
	t := h.sandbox.ClockTime()
	if t < h.lastTime {
		log.Panic("hourcounter: observation time precedes the last observation")
	}

	if !h.paused {
		deltaHours := float64(t - h.lastTime)
		h.totalHours += deltaHours
		h.cumValue += deltaHours * h.lastCount

		if count > h.lastCount {
			h.totalIncrement += count - h.lastCount
		} else {
			h.totalDecrement += h.lastCount - count
		}

		h.hoursForCount[h.lastCount] += deltaHours
	}

	h.lastTime = t
	h.lastCount = count

	if h.keepHistory {
		h.history[t] = count
	}
}

// ObserveChange is equivalent to ObserveCount(LastCount() + delta).
func (h *HourCounter) ObserveChange(delta float64) {
	h.ObserveCount(h.lastCount + delta)
}

// Pause closes the currently-open interval with a virtual observation at the
// last count, then stops accumulation. It is idempotent.
func (h *HourCounter) Pause() {
	if h.paused {
		return
	}
	h.ObserveCount(h.lastCount)
	h.paused = true
}

// Resume restarts accumulation from the current clock time. It is
// idempotent.
func (h *HourCounter) Resume() {
	if !h.paused {
		return
	}
	h.lastTime = h.sandbox.ClockTime()
	h.paused = false
}

// sync closes the interval up to the current clock without changing the
// tracked count, so that derived metrics reflect "now" even if nothing has
// observed a new count since the clock last moved. It is safe to call
// repeatedly: a second call with the clock unchanged is a no-op beyond
// re-recording the same history entry.
func (h *HourCounter) sync() {
	h.ObserveCount(h.lastCount)
}

// LastTime returns the timestamp of the most recent observation (real or
// synced).
func (h *HourCounter) LastTime() SimTime { return h.lastTime }

// LastCount returns the most recently observed count.
func (h *HourCounter) LastCount() float64 { return h.lastCount }

// TotalIncrement returns the running total of all positive count deltas
// observed.
func (h *HourCounter) TotalIncrement() float64 {
	h.sync()
	return h.totalIncrement
}

// TotalDecrement returns the running total of all negative count deltas
// observed (as a positive magnitude).
func (h *HourCounter) TotalDecrement() float64 {
	h.sync()
	return h.totalDecrement
}

// CumValue returns the accumulated integral of count over time, in
// count-hours.
func (h *HourCounter) CumValue() float64 {
	h.sync()
	return h.cumValue
}

// Paused reports whether the counter is currently paused.
func (h *HourCounter) Paused() bool { return h.paused }

// KeepHistory reports whether this counter records a full observation
// history.
func (h *HourCounter) KeepHistory() bool { return h.keepHistory }

// History returns the recorded timestamp->count observations, or nil if
// KeepHistory is false.
func (h *HourCounter) History() map[SimTime]float64 { return h.history }

// HoursForCount returns, for each distinct observed count value, the total
// hours the counter held that value.
func (h *HourCounter) HoursForCount() map[float64]float64 { return h.hoursForCount }

// TotalHours returns the accumulated active duration, in hours.
func (h *HourCounter) TotalHours() float64 {
	h.sync()
	return h.totalHours
}

// AverageCount returns the time-weighted average of the tracked count. When
// no active time has elapsed it returns the last observed count rather than
// dividing by zero.
func (h *HourCounter) AverageCount() float64 {
	h.sync()
	if h.totalHours == 0 {
		return h.lastCount
	}
	return h.cumValue / h.totalHours
}

// IncrementRate returns the total increment per active hour. NaN is
// tolerated when no active time has elapsed.
func (h *HourCounter) IncrementRate() float64 {
	h.sync()
	return h.totalIncrement / h.totalHours
}

// DecrementRate returns the total decrement per active hour. NaN is
// tolerated when no active time has elapsed.
func (h *HourCounter) DecrementRate() float64 {
	h.sync()
	return h.totalDecrement / h.totalHours
}

// WorkingTimeRatio returns the fraction of wall-clock-since-creation that
// this counter was actively accumulating. Resolved Open Question (spec.md
// §9): initialTime is anchored at the clock time of creation (or of the last
// warm-up), so active hours cannot exceed elapsed hours; the ratio is still
// clamped to 1 so floating-point rounding cannot push it above the
// "fraction of time" contract.
func (h *HourCounter) WorkingTimeRatio() float64 {
	h.sync()

	denom := float64(h.lastTime - h.initialTime)
	if denom == 0 {
		return 0
	}

	ratio := h.totalHours / denom
	if ratio > 1 {
		ratio = 1
	}

	return ratio
}

// AverageDuration applies Little's law (average count / decrement rate) to
// estimate the average duration a unit of the tracked quantity spends in the
// system, in hours. Numerical degeneracy (spec.md §7: NaN or infinite
// decrement rate) yields 0 rather than propagating.
func (h *HourCounter) AverageDuration() float64 {
	rate := h.DecrementRate()
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}

	result := h.AverageCount() / rate
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}

	return result
}

// Percentile returns the smallest observed count value k such that the
// cumulative hours held at values <= k meet or exceed p percent of the
// total hours recorded in HoursForCount.
func (h *HourCounter) Percentile(p float64) float64 {
	h.sync()

	if len(h.hoursForCount) == 0 {
		return 0
	}

	keys := make([]float64, 0, len(h.hoursForCount))
	total := 0.0
	for k, v := range h.hoursForCount {
		keys = append(keys, k)
		total += v
	}
	sort.Float64s(keys)

	threshold := p / 100 * total
	cum := 0.0
	for _, k := range keys {
		cum += h.hoursForCount[k]
		if cum >= threshold {
			return k
		}
	}

	return keys[len(keys)-1]
}

// HistogramBin is one bin of a HourCounter.Histogram result: the bin
// [LowerBound, LowerBound+binWidth) held the tracked count for Hours
// simulated hours, which is Probability of the total and CumulativeProbability
// when summed with every lower bin.
type HistogramBin struct {
	LowerBound            float64
	Hours                 float64
	Probability           float64
	CumulativeProbability float64
}

// Histogram partitions the observed counts into bins of width binWidth
// starting at 0. Resolved Open Question (spec.md §9): bin k is defined
// crisply as [k*binWidth, (k+1)*binWidth), including the final, possibly
// partially filled, bin — unlike the source implementation this is modeled
// on, whose advance condition could miscount it.
func (h *HourCounter) Histogram(binWidth float64) []HistogramBin {
	h.sync()

	total := 0.0
	for _, hours := range h.hoursForCount {
		total += hours
	}
	if total == 0 {
		return nil
	}

	maxCount := 0.0
	for k := range h.hoursForCount {
		if k > maxCount {
			maxCount = k
		}
	}

	numBins := int(math.Floor(maxCount/binWidth)) + 1
	bins := make([]HistogramBin, numBins)
	for i := range bins {
		bins[i].LowerBound = float64(i) * binWidth
	}

	for count, hours := range h.hoursForCount {
		idx := int(math.Floor(count / binWidth))
		if idx >= numBins {
			idx = numBins - 1
		}
		bins[idx].Hours += hours
	}

	cum := 0.0
	for i := range bins {
		if total > 0 {
			bins[i].Probability = bins[i].Hours / total
		}
		cum += bins[i].Probability
		bins[i].CumulativeProbability = cum
	}

	return bins
}

// AsReadOnly returns a non-mutating view exposing only HourCounter's
// derived-metric queries.
func (h *HourCounter) AsReadOnly() ReadOnlyHourCounter {
	return readOnlyHourCounter{h}
}

// warmedUp resets all accumulators and re-anchors the counter to the
// current clock, preserving LastCount, per spec.md §4.3.
func (h *HourCounter) warmedUp() {
	now := h.sandbox.ClockTime()

	h.initialTime = now
	h.lastTime = now
	h.totalIncrement = 0
	h.totalDecrement = 0
	h.totalHours = 0
	h.cumValue = 0
	h.hoursForCount = make(map[float64]float64)

	if h.keepHistory {
		h.history = make(map[SimTime]float64)
	}
}

func (h *HourCounter) dispose() {
	h.history = nil
	h.hoursForCount = nil
}
