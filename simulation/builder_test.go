package simulation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/sandboxsim/sandboxsim/simulation"
)

var _ = Describe("Builder", func() {
	It("generates an id when none is supplied", func() {
		sim := simulation.MakeBuilder().Build()
		Expect(sim.ID()).NotTo(BeEmpty())
	})

	It("uses the supplied id verbatim", func() {
		sim := simulation.MakeBuilder().WithID("fixed-id").Build()
		Expect(sim.ID()).To(Equal("fixed-id"))
	})

	It("seeds the root sandbox's RNG deterministically", func() {
		a := simulation.MakeBuilder().WithSeed(42).Build()
		b := simulation.MakeBuilder().WithSeed(42).Build()

		Expect(a.Root().DefaultRng().Float64()).To(Equal(b.Root().DefaultRng().Float64()))
	})

	It("attaches the configured logger to the root sandbox", func() {
		logger := logrus.New()
		sim := simulation.MakeBuilder().WithLogger(logger).Build()

		Expect(sim.Root().Logger()).To(Equal(logrus.FieldLogger(logger)))
	})

	It("does not mutate a previously built configuration when extended", func() {
		base := simulation.MakeBuilder().WithSeed(1)
		withLogger := base.WithLogger(logrus.New())

		plain := base.Build()
		Expect(plain.Logger()).To(BeNil())

		withLog := withLogger.Build()
		Expect(withLog.Logger()).NotTo(BeNil())
	})
})
