package simulation_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sandboxsim/sandboxsim/simulation"
)

var _ = Describe("Config", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "config.yaml")
	})

	It("decodes a single-stage M/M/1 configuration", func() {
		yaml := `
seed: 7
warm_up_hours: 1000
run_hours: 20000
arrival:
  rate_per_hour: 4
stages:
  - queue_capacity: 1000000
    server_capacity: 1
    service_rate_per_hour: 5
`
		Expect(os.WriteFile(path, []byte(yaml), 0o600)).To(Succeed())

		cfg, err := simulation.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Seed).To(BeNumerically("==", 7))
		Expect(cfg.WarmUpHours).To(Equal(1000.0))
		Expect(cfg.RunHours).To(Equal(20000.0))
		Expect(cfg.Arrival.RatePerHour).To(Equal(4.0))
		Expect(cfg.Stages).To(HaveLen(1))
		Expect(cfg.Stages[0].ServerCapacity).To(Equal(1))
	})

	It("decodes optional pattern seasonality", func() {
		yaml := `
arrival:
  rate_per_hour: 1
  pattern:
    hour_of_day: [1, 1, 1]
    custom:
      - interval_hours: 168
        factors: [1, 2]
stages: []
`
		Expect(os.WriteFile(path, []byte(yaml), 0o600)).To(Succeed())

		cfg, err := simulation.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Arrival.Pattern).NotTo(BeNil())
		Expect(cfg.Arrival.Pattern.Custom).To(HaveLen(1))
	})

	It("returns an error for a missing file", func() {
		_, err := simulation.LoadConfig(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(HaveOccurred())
	})
})
