package randvar

import "math/rand"

// Exponential returns a Sampler drawing from an exponential distribution
// with the given rate (events per hour), via rng.ExpFloat64 scaled by
// 1/rate, grounded on inference-sim's PoissonSampler
// (sim/workload/arrival.go), which scales rng.ExpFloat64() by the
// reciprocal of a rate in the same way.
func Exponential(ratePerHour float64) Sampler {
	return func(rng *rand.Rand) float64 {
		return rng.ExpFloat64() / ratePerHour
	}
}

// Constant returns a Sampler that always yields value, useful for
// deterministic service times in tests and demos.
func Constant(value float64) Sampler {
	return func(rng *rand.Rand) float64 {
		return value
	}
}

// AsLoadSampler adapts a load-independent Sampler to the LoadSampler
// contract Server requires, ignoring the load argument.
func AsLoadSampler(s Sampler) LoadSampler {
	return func(rng *rand.Rand, _ interface{}) float64 {
		return s(rng)
	}
}
