package simulation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sandboxsim/sandboxsim/domain"
	"github.com/sandboxsim/sandboxsim/simulation"
)

var _ = Describe("AssembleTandemQueue", func() {
	It("builds a runnable tandem queue from config", func() {
		sim := simulation.MakeBuilder().WithSeed(3).Build()

		cfg := &simulation.Config{
			Arrival: simulation.ArrivalConfig{RatePerHour: 4},
			Stages: []simulation.StageConfig{
				{QueueCapacity: 1000, ServerCapacity: 1, ServiceRatePerHr: 5},
			},
		}

		tq := sim.AssembleTandemQueue(cfg)
		tq.Arrival.Start()

		sim.Root().RunDuration(200)

		Expect(tq.DepartedCount()).To(BeNumerically(">", 0))
	})

	It("uses a PatternGenerator when Pattern is configured", func() {
		sim := simulation.MakeBuilder().WithSeed(4).Build()

		cfg := &simulation.Config{
			Arrival: simulation.ArrivalConfig{
				RatePerHour: 4,
				Pattern:     &simulation.PatternConfig{HourOfDay: make([]float64, 24)},
			},
			Stages: []simulation.StageConfig{
				{QueueCapacity: 1000, ServerCapacity: 1, ServiceRatePerHr: 5},
			},
		}

		tq := sim.AssembleTandemQueue(cfg)
		Expect(tq.Arrival).NotTo(BeNil())
		Expect(tq.Arrival).To(BeAssignableToTypeOf(&domain.PatternGenerator{}))
	})
})
