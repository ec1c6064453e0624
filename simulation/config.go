package simulation

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sandboxsim/sandboxsim/domain"
)

// Config is the YAML-decoded description of a tandem-queue run, grounded
// on inference-sim's cmd/workload_config.go (a plain struct decoded with
// gopkg.in/yaml.v3, loaded with a dedicated Load function rather than
// cobra flag binding for every field).
type Config struct {
	Seed        int64   `yaml:"seed"`
	LogLevel    string  `yaml:"log_level"`
	WarmUpHours float64 `yaml:"warm_up_hours"`
	RunHours    float64 `yaml:"run_hours"`

	Arrival ArrivalConfig `yaml:"arrival"`
	Stages  []StageConfig `yaml:"stages"`
}

// ArrivalConfig describes the generator feeding the first stage. Pattern
// is optional; when nil the run uses a plain exponential Generator at
// RatePerHour.
type ArrivalConfig struct {
	RatePerHour float64        `yaml:"rate_per_hour"`
	Pattern     *PatternConfig `yaml:"pattern,omitempty"`
}

// PatternConfig mirrors domain.PatternGeneratorConfig's seasonal factor
// lists for YAML decoding.
type PatternConfig struct {
	HourOfDay   []float64     `yaml:"hour_of_day,omitempty"`
	DayOfWeek   []float64     `yaml:"day_of_week,omitempty"`
	DayOfMonth  []float64     `yaml:"day_of_month,omitempty"`
	MonthOfYear []float64     `yaml:"month_of_year,omitempty"`
	Year        []float64     `yaml:"year,omitempty"`
	Custom      []CycleConfig `yaml:"custom,omitempty"`
}

// CycleConfig mirrors domain.Cycle for YAML decoding.
type CycleConfig struct {
	IntervalHours float64   `yaml:"interval_hours"`
	Factors       []float64 `yaml:"factors"`
}

// StageConfig describes one Queue+Server stage of a tandem queue.
type StageConfig struct {
	QueueCapacity    int     `yaml:"queue_capacity"`
	ServerCapacity   int     `yaml:"server_capacity"`
	ServiceRatePerHr float64 `yaml:"service_rate_per_hour"`
}

// LoadConfig reads and decodes a Config from the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:    "info",
		WarmUpHours: 0,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// toDomainConfig converts the YAML-decoded seasonal configuration into
// domain.PatternGeneratorConfig.
func (c *PatternConfig) toDomainConfig(meanHourlyRate float64) domain.PatternGeneratorConfig {
	cfg := domain.PatternGeneratorConfig{
		MeanHourlyRate: meanHourlyRate,
		HourOfDay:      c.HourOfDay,
		DayOfWeek:      c.DayOfWeek,
		DayOfMonth:     c.DayOfMonth,
		MonthOfYear:    c.MonthOfYear,
		Year:           c.Year,
	}
	for _, cycle := range c.Custom {
		cfg.Custom = append(cfg.Custom, domain.Cycle{
			Interval: cycle.IntervalHours,
			Factors:  cycle.Factors,
		})
	}
	return cfg
}
