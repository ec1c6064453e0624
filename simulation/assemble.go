package simulation

import (
	"github.com/sandboxsim/sandboxsim/domain"
	"github.com/sandboxsim/sandboxsim/internal/randvar"
)

// AssembleTandemQueue builds a domain.TandemQueue on top of sim's root
// sandbox from cfg: an exponential Generator or seasonal PatternGenerator
// feeding a chain of Queue+Server stages, each sampling exponential
// service times at its configured rate.
func (s *Simulation) AssembleTandemQueue(cfg *Config) *domain.TandemQueue {
	specs := make([]domain.TandemStageSpec, len(cfg.Stages))
	for i, stage := range cfg.Stages {
		specs[i] = domain.TandemStageSpec{
			QueueCapacity:  stage.QueueCapacity,
			ServerCapacity: stage.ServerCapacity,
			ServiceTime:    randvar.AsLoadSampler(randvar.Exponential(stage.ServiceRatePerHr)),
		}
	}

	var source domain.ArrivalSource
	if cfg.Arrival.Pattern != nil {
		source = domain.NewPatternGenerator(s.root, cfg.Arrival.Pattern.toDomainConfig(cfg.Arrival.RatePerHour))
	} else {
		source = domain.NewGenerator(s.root, randvar.Exponential(cfg.Arrival.RatePerHour))
	}

	return domain.BuildTandemQueueWithSource(s.root, source, specs)
}
