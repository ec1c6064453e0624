package domain

import (
	"log"
	"math"
	"time"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

// patternEpoch anchors the synthetic wall-clock calendar the thinning
// algorithm reads hour-of-day/day-of-week/day-of-month/month-of-year/year
// components from. Its absolute value is arbitrary — only the calendar
// arithmetic derived from it matters — so it is fixed once here rather
// than configurable.
var patternEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Cycle is a user-supplied seasonal multiplier list applied over a fixed
// period of Interval hours, for seasonality PatternGenerator's built-in
// calendar granularities don't cover.
type Cycle struct {
	Interval float64
	Factors  []float64
}

// PatternGeneratorConfig declares a baseline hourly rate and any number of
// multiplicative seasonal factor lists, per spec.md §4.6.
type PatternGeneratorConfig struct {
	MeanHourlyRate float64

	HourOfDay   []float64 // length 24
	DayOfWeek   []float64 // length 7
	DayOfMonth  []float64 // length 31
	MonthOfYear []float64 // length 12
	Year        []float64 // arbitrary length

	Custom []Cycle
}

// dimension is a normalized seasonal factor list paired with its maximum,
// cached so the thinning test doesn't recompute max(factors) on every
// candidate draw.
type dimension struct {
	factors []float64
	max     float64
}

func newDimension(raw []float64, length int) dimension {
	if length <= 0 {
		length = 1
	}

	out := make([]float64, length)
	for i := range out {
		if i < len(raw) && raw[i] > 0 {
			out[i] = raw[i]
		}
	}

	sum := 0.0
	for _, v := range out {
		sum += v
	}

	if sum == 0 {
		for i := range out {
			out[i] = 1
		}
		return dimension{factors: out, max: 1}
	}

	mean := sum / float64(length)
	max := 0.0
	for i := range out {
		out[i] /= mean
		if out[i] > max {
			max = out[i]
		}
	}

	return dimension{factors: out, max: max}
}

type customCycle struct {
	interval float64
	dim      dimension
}

// PatternGenerator is a Generator variant whose arrivals follow a
// non-homogeneous Poisson process, produced via thinning against a peak
// rate computed from the product of every configured seasonal dimension's
// maximum multiplier.
type PatternGenerator struct {
	box *sandbox.Sandbox

	meanHourlyRate float64
	peakRate       float64

	hourOfDay   dimension
	dayOfWeek   dimension
	dayOfMonth  dimension
	monthOfYear dimension
	year        dimension
	custom      []customCycle

	on        bool
	startTime sandbox.SimTime
	count     int

	onArrive []ArriveHandler
}

// NewPatternGenerator constructs a PatternGenerator bound to box from cfg.
// Every factor list is normalized at construction time: clamped
// non-negative, padded/truncated to its fixed length (arbitrary length for
// Year and each Custom cycle), and rescaled so its arithmetic mean is 1; an
// all-zero or empty list becomes a list of 1s.
func NewPatternGenerator(box *sandbox.Sandbox, cfg PatternGeneratorConfig) *PatternGenerator {
	if cfg.MeanHourlyRate <= 0 {
		log.Panic("domain: pattern generator requires a positive mean hourly rate")
	}

	pg := &PatternGenerator{
		box:            box,
		meanHourlyRate: cfg.MeanHourlyRate,
		hourOfDay:      newDimension(cfg.HourOfDay, 24),
		dayOfWeek:      newDimension(cfg.DayOfWeek, 7),
		dayOfMonth:     newDimension(cfg.DayOfMonth, 31),
		monthOfYear:    newDimension(cfg.MonthOfYear, 12),
		year:           newDimension(cfg.Year, len(cfg.Year)),
	}

	for _, c := range cfg.Custom {
		if c.Interval <= 0 {
			log.Panic("domain: custom seasonal cycle requires a positive interval")
		}
		pg.custom = append(pg.custom, customCycle{
			interval: c.Interval,
			dim:      newDimension(c.Factors, len(c.Factors)),
		})
	}

	peak := pg.meanHourlyRate * pg.hourOfDay.max * pg.dayOfWeek.max *
		pg.dayOfMonth.max * pg.monthOfYear.max * pg.year.max
	for _, c := range pg.custom {
		peak *= c.dim.max
	}
	pg.peakRate = peak

	box.SetWarmedUpHandler(patternGeneratorWarmupHandler{pg})

	return pg
}

// PeakRate returns λ*, the rate the thinning loop draws exponential
// candidates against.
func (pg *PatternGenerator) PeakRate() float64 { return pg.peakRate }

// OnArrive registers h to be called on every accepted arrival.
func (pg *PatternGenerator) OnArrive(h ArriveHandler) {
	pg.onArrive = append(pg.onArrive, h)
}

// IsOn reports whether the generator is currently emitting arrivals.
func (pg *PatternGenerator) IsOn() bool { return pg.on }

// Count returns the number of arrivals emitted since the last Start (or
// the last warm-up).
func (pg *PatternGenerator) Count() int { return pg.count }

// Start turns the generator on and schedules its first arrival.
func (pg *PatternGenerator) Start() {
	if pg.on {
		return
	}

	pg.on = true
	pg.startTime = pg.box.ClockTime()
	pg.count = 0
	pg.scheduleNext()
}

// End turns the generator off; an already-scheduled arrival still fires
// but is ignored by the on-guard.
func (pg *PatternGenerator) End() {
	pg.on = false
}

func (pg *PatternGenerator) scheduleNext() {
	now := float64(pg.box.ClockTime())
	rng := pg.box.DefaultRng()

	next := pg.drawAcceptedTime(now, rng)
	delay := sandbox.SimTime(next - now)
	pg.box.Schedule(pg.fire, delay, "patterngenerator.arrive")
}

func (pg *PatternGenerator) fire() {
	if !pg.on {
		return
	}

	pg.count++
	pg.scheduleNext()

	for _, h := range pg.onArrive {
		h(pg.count)
	}
}

// drawAcceptedTime runs the thinning loop: draw a candidate exponential
// interarrival at the peak rate, and reject/re-draw from the rejected
// candidate until every seasonal dimension's acceptance test passes.
func (pg *PatternGenerator) drawAcceptedTime(t float64, rng interface {
	ExpFloat64() float64
	Float64() float64
}) float64 {
	for {
		delta := rng.ExpFloat64() / pg.peakRate
		candidate := t + delta

		if pg.accept(candidate, rng) {
			return candidate
		}

		t = candidate
	}
}

func (pg *PatternGenerator) accept(candidate float64, rng interface{ Float64() float64 }) bool {
	when := patternEpoch.Add(time.Duration(candidate * float64(time.Hour)))

	if !testDimension(pg.hourOfDay, when.Hour(), rng) {
		return false
	}
	if !testDimension(pg.dayOfWeek, int(when.Weekday()), rng) {
		return false
	}
	if !pg.testDayOfMonth(when, rng) {
		return false
	}
	if !testDimension(pg.monthOfYear, int(when.Month())-1, rng) {
		return false
	}
	if !testDimension(pg.year, yearIndex(when.Year(), len(pg.year.factors)), rng) {
		return false
	}
	for _, c := range pg.custom {
		idx := cyclePhase(candidate, c.interval, len(c.dim.factors))
		if !testDimension(c.dim, idx, rng) {
			return false
		}
	}

	return true
}

// testDayOfMonth applies the day-of-month factor with the additional
// 31/daysInMonth(year, month) rescale spec.md §4.6 requires to preserve
// the configured list's monthly mean across months of different lengths.
func (pg *PatternGenerator) testDayOfMonth(when time.Time, rng interface{ Float64() float64 }) bool {
	idx := (when.Day() - 1) % len(pg.dayOfMonth.factors)
	days := daysInMonth(when.Year(), when.Month())
	scaled := pg.dayOfMonth.factors[idx] * 31.0 / float64(days)

	u := rng.Float64()
	return u <= scaled/pg.dayOfMonth.max
}

func testDimension(dim dimension, idx int, rng interface{ Float64() float64 }) bool {
	idx = ((idx % len(dim.factors)) + len(dim.factors)) % len(dim.factors)
	u := rng.Float64()
	return u <= dim.factors[idx]/dim.max
}

// cyclePhase computes a custom cycle's active index directly from the
// absolute candidate time rather than an incrementing counter, so the
// phase tracks continuously across accepted and rejected draws alike —
// spec.md §4.6's "maintain a phase remainder" requirement.
func cyclePhase(candidate, interval float64, length int) int {
	idx := int(math.Floor(candidate / interval))
	return ((idx % length) + length) % length
}

func yearIndex(year, length int) int {
	if length == 0 {
		return 0
	}
	idx := (year - patternEpoch.Year()) % length
	if idx < 0 {
		idx += length
	}
	return idx
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type patternGeneratorWarmupHandler struct{ pg *PatternGenerator }

func (h patternGeneratorWarmupHandler) WarmedUp() {
	h.pg.count = 0
}
