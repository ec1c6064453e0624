package simulation

import (
	"log"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/sandboxsim/sandboxsim/sandbox"
)

// Builder fluently assembles a Simulation's root sandbox, grounded on the
// teacher's simulation/builder.go Builder, which accumulates options on a
// value receiver and returns a modified copy from each With* method so
// that partially-configured builders can be shared and extended safely.
type Builder struct {
	id     string
	seed   int64
	logger logrus.FieldLogger
}

// MakeBuilder creates a Builder with seed 0 and no logger.
func MakeBuilder() Builder {
	return Builder{}
}

// WithID sets the simulation's identifier. An empty id (the default)
// causes Build to generate one.
func (b Builder) WithID(id string) Builder {
	b.id = id
	return b
}

// WithSeed sets the seed the root sandbox's default RNG is constructed
// from.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithLogger attaches a structured logging sink to the root sandbox.
func (b Builder) WithLogger(logger logrus.FieldLogger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.logger == nil {
		return
	}
	if _, ok := b.logger.(*logrus.Logger); !ok {
		if _, ok := b.logger.(*logrus.Entry); !ok {
			log.Panic("simulation: logger must be a *logrus.Logger or *logrus.Entry")
		}
	}
}

// Build constructs the Simulation: a root sandbox seeded and logged per
// the builder's configuration, wrapped with an identifier.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	id := b.id
	if id == "" {
		id = xid.New().String()
	}

	root := sandbox.New(id, b.seed)
	if b.logger != nil {
		root.SetLogger(b.logger)
	}

	return &Simulation{
		id:     id,
		root:   root,
		logger: b.logger,
	}
}
