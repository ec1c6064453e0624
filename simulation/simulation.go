// Package simulation provides the assembly layer above package sandbox: a
// fluent Builder, a Simulation registry holding the root sandbox and its
// logger, and YAML-decoded configuration for the reference domain
// modules.
package simulation

import (
	"github.com/sirupsen/logrus"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

// Simulation is the top-level handle returned by Builder.Build: the root
// sandbox plus the identity and logging context it was assembled with,
// grounded on the teacher's simulation/simulation.go registry (akita's
// Simulation wraps an engine, a data recorder, and a monitor; this one
// wraps a sandbox tree's root and its logger, since persistence and
// monitoring are out of scope per spec.md's Non-goals).
type Simulation struct {
	id     string
	root   *sandbox.Sandbox
	logger logrus.FieldLogger
}

// ID returns the simulation's identifier.
func (s *Simulation) ID() string { return s.id }

// Root returns the root sandbox of this simulation's tree.
func (s *Simulation) Root() *sandbox.Sandbox { return s.root }

// Logger returns the structured logger attached to this simulation, or
// nil if none was configured.
func (s *Simulation) Logger() logrus.FieldLogger { return s.logger }
