package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sandboxsim/sandboxsim/domain"
	"github.com/sandboxsim/sandboxsim/simulation"
)

var (
	seed           int64
	logLevel       string
	configPath     string
	arrivalRate    float64
	serviceRate    float64
	queueCapacity  int
	serverCapacity int
	warmUpHours    float64
	runHours       float64
)

// runCmd assembles and executes a tandem-queue simulation, either from a
// YAML config file (--config, any number of stages) or from the flags below
// (a single stage),
// printing the queue/server hour-counter metrics once the run completes.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a tandem-queue simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logger := logrus.New()
		logger.SetLevel(level)

		cfg, err := loadOrBuildConfig(logger)
		if err != nil {
			logrus.Fatalf("unable to load config: %v", err)
		}

		sim := simulation.MakeBuilder().
			WithSeed(cfg.Seed).
			WithLogger(logger).
			Build()

		tq := sim.AssembleTandemQueue(cfg)
		tq.Arrival.Start()

		if cfg.WarmUpHours > 0 {
			sim.Root().WarmUp(sandboxSimTime(cfg.WarmUpHours))
		}
		sim.Root().RunDuration(sandboxSimTime(cfg.RunHours))

		printReport(tq)
	},
}

func loadOrBuildConfig(logger *logrus.Logger) (*simulation.Config, error) {
	if configPath != "" {
		logger.Infof("loading config from %s", configPath)
		return simulation.LoadConfig(configPath)
	}

	return &simulation.Config{
		Seed:        seed,
		WarmUpHours: warmUpHours,
		RunHours:    runHours,
		Arrival:     simulation.ArrivalConfig{RatePerHour: arrivalRate},
		Stages: []simulation.StageConfig{
			{
				QueueCapacity:    queueCapacity,
				ServerCapacity:   serverCapacity,
				ServiceRatePerHr: serviceRate,
			},
		},
	}, nil
}

func printReport(tq *domain.TandemQueue) {
	fmt.Printf("departed: %d\n", tq.DepartedCount())
	fmt.Printf("avgHoursInSystem: %.4f\n", tq.AvgHoursInSystem())

	for i, stage := range tq.Stages {
		fmt.Printf("stage %d: avgNQueueing=%.4f avgNServing=%.4f\n",
			i, stage.Queue.QueueingHours().AverageCount(), stage.Server.ServingHours().AverageCount())
	}
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 1, "seed for the root sandbox's default RNG")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML simulation config; overrides the flags below")

	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 4, "arrivals per hour")
	runCmd.Flags().Float64Var(&serviceRate, "service-rate", 5, "services per hour")
	runCmd.Flags().IntVar(&queueCapacity, "queue-capacity", 1<<20, "queue capacity")
	runCmd.Flags().IntVar(&serverCapacity, "server-capacity", 1, "server capacity")
	runCmd.Flags().Float64Var(&warmUpHours, "warm-up-hours", 1000, "warm-up duration in hours before metrics are reset")
	runCmd.Flags().Float64Var(&runHours, "run-hours", 20000, "simulation duration in hours after warm-up")
}
