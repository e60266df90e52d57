package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/beamenv/internal/beam"
)

const (
	DefaultCurrent = 0.014
	DefaultBeta    = 0.073
	DefaultGamma   = 1.00266
	DefaultR0      = 0.005
	DefaultRP0     = 0.001
	DefaultStepper = "ralston"
)

type Config struct {
	Current        float64 `yaml:"current"`
	Beta           float64 `yaml:"beta"`
	Gamma          float64 `yaml:"gamma"`
	R0             float64 `yaml:"r0"`
	RP0            float64 `yaml:"rp0"`
	Emittance      float64 `yaml:"emittance"`
	Steps          int     `yaml:"steps"`
	FinalZ         float64 `yaml:"final_z"`
	Neutralization float64 `yaml:"neutralization"`
	Stepper        string  `yaml:"stepper"`
}

func DefaultConfig() *Config {
	return &Config{
		Current:   DefaultCurrent,
		Beta:      DefaultBeta,
		Gamma:     DefaultGamma,
		R0:        DefaultR0,
		RP0:       DefaultRP0,
		Emittance: beam.DefaultEmittance,
		Steps:     beam.DefaultSteps,
		FinalZ:    beam.DefaultFinalZ,
		Stepper:   DefaultStepper,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the file representation into the integration inputs.
func (c *Config) Params() beam.Params {
	return beam.Params{
		Current:        c.Current,
		Beta:           c.Beta,
		Gamma:          c.Gamma,
		R0:             c.R0,
		RP0:            c.RP0,
		Emittance:      c.Emittance,
		Steps:          c.Steps,
		FinalZ:         c.FinalZ,
		Neutralization: c.Neutralization,
	}
}
