// Package randvar holds the random-variable sampler contract that every
// domain module's stochastic inputs (inter-arrival times, service times)
// are built against, plus a small set of concrete samplers grounded on
// inference-sim's workload package.
package randvar

import "math/rand"

// Sampler draws a single non-negative duration (in hours) from a
// distribution, consuming rng. spec.md leaves the exact sampler contract
// out of scope ("out of scope" per §1's boundary on random-variable
// machinery) beyond requiring it take the sandbox's own rng; this is the
// minimal function type that satisfies every call site in §4.5-§4.7.
type Sampler func(rng *rand.Rand) float64

// LoadSampler draws a duration that may depend on the specific load being
// serviced, matching Server's `f(rng, load) → duration` contract in
// spec.md §4.7.
type LoadSampler func(rng *rand.Rand, load interface{}) float64
