package sandbox

// ReadOnlyHourCounter is a non-mutating façade over an HourCounter's derived
// metrics, grounded on the teacher's pattern of narrow read-only interfaces
// over a richer concrete type (e.g. sim/queueing/buffer.go's Buffer
// interface segregated from bufferImpl). Handed to collaborators that
// should observe statistics but never drive pause/resume/observe
// themselves.
type ReadOnlyHourCounter interface {
	LastTime() SimTime
	LastCount() float64
	TotalIncrement() float64
	TotalDecrement() float64
	IncrementRate() float64
	DecrementRate() float64
	TotalHours() float64
	WorkingTimeRatio() float64
	CumValue() float64
	AverageCount() float64
	AverageDuration() float64
	Paused() bool
	KeepHistory() bool
	History() map[SimTime]float64
	HoursForCount() map[float64]float64
	Percentile(p float64) float64
	Histogram(binWidth float64) []HistogramBin
}

type readOnlyHourCounter struct {
	hc *HourCounter
}

func (v readOnlyHourCounter) LastTime() SimTime                     { return v.hc.LastTime() }
func (v readOnlyHourCounter) LastCount() float64                    { return v.hc.LastCount() }
func (v readOnlyHourCounter) TotalIncrement() float64                { return v.hc.TotalIncrement() }
func (v readOnlyHourCounter) TotalDecrement() float64                { return v.hc.TotalDecrement() }
func (v readOnlyHourCounter) IncrementRate() float64                 { return v.hc.IncrementRate() }
func (v readOnlyHourCounter) DecrementRate() float64                 { return v.hc.DecrementRate() }
func (v readOnlyHourCounter) TotalHours() float64                    { return v.hc.TotalHours() }
func (v readOnlyHourCounter) WorkingTimeRatio() float64              { return v.hc.WorkingTimeRatio() }
func (v readOnlyHourCounter) CumValue() float64                      { return v.hc.CumValue() }
func (v readOnlyHourCounter) AverageCount() float64                  { return v.hc.AverageCount() }
func (v readOnlyHourCounter) AverageDuration() float64               { return v.hc.AverageDuration() }
func (v readOnlyHourCounter) Paused() bool                          { return v.hc.Paused() }
func (v readOnlyHourCounter) KeepHistory() bool                     { return v.hc.KeepHistory() }
func (v readOnlyHourCounter) History() map[SimTime]float64          { return v.hc.History() }
func (v readOnlyHourCounter) HoursForCount() map[float64]float64    { return v.hc.HoursForCount() }
func (v readOnlyHourCounter) Percentile(p float64) float64          { return v.hc.Percentile(p) }
func (v readOnlyHourCounter) Histogram(binWidth float64) []HistogramBin {
	return v.hc.Histogram(binWidth)
}
