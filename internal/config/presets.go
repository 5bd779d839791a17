package config

var Presets = map[string]map[string]*Config{
	"plow": {
		"field": {
			Strategy: "plow", Drones: 1,
			Physics: PhysicsConfig{Dt: 0.2, SimSpeed: 20, Drag: DefaultDrag, Kp: DefaultKP},
			Area:    AreaConfig{Size: 800, Jaggedness: 0.1, Vertices: 4, Objects: 20, Distribution: "pseudorandom"},
		},
		"jagged": {
			Strategy: "plow", Drones: 1,
			Physics: PhysicsConfig{Dt: 0.2, SimSpeed: 20, Drag: DefaultDrag, Kp: DefaultKP},
			Area:    AreaConfig{Size: 800, Jaggedness: 0.4, Vertices: 10, Objects: 20, Distribution: "pseudorandom"},
		},
	},
	"decompose": {
		"concave": {
			Strategy: "decompose", Drones: 1,
			Physics: PhysicsConfig{Dt: 0.2, SimSpeed: 20, Drag: DefaultDrag, Kp: DefaultKP},
			Area:    AreaConfig{Size: 1200, Jaggedness: 0.5, Vertices: 12, Objects: 30, Distribution: "pseudorandom"},
		},
		"clustered": {
			Strategy: "decompose", Drones: 2,
			Physics: PhysicsConfig{Dt: 0.2, SimSpeed: 20, Drag: DefaultDrag, Kp: DefaultKP},
			Area:    AreaConfig{Size: 1200, Jaggedness: 0.3, Vertices: 10, Objects: 30, Distribution: "gaussian"},
		},
	},
	"direct": {
		"sparse": {
			Strategy: "direct", Drones: 1,
			Physics: PhysicsConfig{Dt: 0.2, SimSpeed: 20, Drag: DefaultDrag, Kp: DefaultKP},
			Area:    AreaConfig{Size: 600, Jaggedness: 0.2, Vertices: 6, Objects: 10, Distribution: "edge"},
		},
	},
	"relay": {
		"team": {
			Strategy: "relay", Drones: 4,
			Physics: PhysicsConfig{Dt: 0.2, SimSpeed: 20, Drag: DefaultDrag, Kp: DefaultKP},
			Area:    AreaConfig{Size: 1600, Jaggedness: 0.2, Vertices: 8, Objects: 40, Distribution: "multimodal"},
		},
	},
}

func GetPreset(strategy, preset string) *Config {
	strategyPresets, ok := Presets[strategy]
	if !ok {
		return nil
	}
	cfg, ok := strategyPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(strategy string) []string {
	strategyPresets, ok := Presets[strategy]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(strategyPresets))
	for name := range strategyPresets {
		names = append(names, name)
	}
	return names
}
