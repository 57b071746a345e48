package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSize        = 32
	DefaultTemperature = 2.27
	DefaultCoupling    = 1.0
	DefaultField       = 0.0
	DefaultSteps       = 1000
	DefaultWarmup      = 0
	DefaultReportEvery = 100
)

// Init selects how the starting grid is prepared.
const (
	InitRandom = "random"
	InitUp     = "up"
	InitDown   = "down"
)

type Config struct {
	Size        int     `yaml:"size"`
	Temperature float64 `yaml:"temperature"`
	Coupling    float64 `yaml:"coupling"`
	Field       float64 `yaml:"field"`
	Steps       int     `yaml:"steps"`
	Warmup      int     `yaml:"warmup"`
	ReportEvery int     `yaml:"report_every"`
	Seed        int64   `yaml:"seed"`
	Init        string  `yaml:"init"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:        DefaultSize,
		Temperature: DefaultTemperature,
		Coupling:    DefaultCoupling,
		Field:       DefaultField,
		Steps:       DefaultSteps,
		Warmup:      DefaultWarmup,
		ReportEvery: DefaultReportEvery,
		Init:        InitRandom,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the engine would reject anyway, so a bad
// config file fails at load time with a readable message.
func (c *Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", c.Size)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %g", c.Temperature)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must be non-negative, got %d", c.Warmup)
	}
	if c.ReportEvery < 0 {
		return fmt.Errorf("report_every must be non-negative, got %d", c.ReportEvery)
	}
	switch c.Init {
	case "", InitRandom, InitUp, InitDown:
	default:
		return fmt.Errorf("unknown init %q (want %s, %s or %s)", c.Init, InitRandom, InitUp, InitDown)
	}
	return nil
}
