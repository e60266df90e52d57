package config

var Presets = map[string]*Config{
	// The 14 mA KV reference beam the overlay comparison was built for.
	"kv-14ma": {
		Current: 0.014, Beta: 0.073, Gamma: 1.00266,
		R0: 0.005, RP0: 0.001, Emittance: 1.2e-6,
		Steps: 1000, FinalZ: 1.0, Stepper: "ralston",
	},
	// Same beam with the current switched off: emittance-only growth.
	"ballistic": {
		Current: 0, Beta: 0.073, Gamma: 1.00266,
		R0: 0.005, RP0: 0.001, Emittance: 1.2e-6,
		Steps: 1000, FinalZ: 1.0, Stepper: "ralston",
	},
	// High current, small emittance: growth dominated by the log term.
	"space-charge": {
		Current: 0.1, Beta: 0.073, Gamma: 1.00266,
		R0: 0.005, RP0: 0.001, Emittance: 1.2e-7,
		Steps: 2000, FinalZ: 2.0, Stepper: "ralston",
	},
	// Hot beam: emittance term dominates the perveance term.
	"emittance-dominated": {
		Current: 0.001, Beta: 0.073, Gamma: 1.00266,
		R0: 0.005, RP0: 0.002, Emittance: 6e-6,
		Steps: 1000, FinalZ: 1.0, Stepper: "ralston",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
