package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.2
	DefaultSimSpeed   = 20
	DefaultDrag       = 0.061
	DefaultKP         = 0.125
	DefaultDrones     = 3
	DefaultVertices   = 8
	DefaultAreaSize   = 800
	DefaultJaggedness = 0.2
	DefaultObjects    = 20
	DefaultThreshold  = 0.5
)

type Config struct {
	Strategy  string          `yaml:"strategy"`
	Drones    int             `yaml:"drones"`
	Seed      int64           `yaml:"seed"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Area      AreaConfig      `yaml:"area"`
	Detection DetectionConfig `yaml:"detection"`
}

type PhysicsConfig struct {
	Dt       float64 `yaml:"dt"`
	SimSpeed int     `yaml:"sim_speed"`
	Drag     float64 `yaml:"drag"`
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
}

type AreaConfig struct {
	Size         int     `yaml:"size"`
	Jaggedness   float64 `yaml:"jaggedness"`
	Vertices     int     `yaml:"vertices"`
	Objects      int     `yaml:"objects"`
	Distribution string  `yaml:"distribution"`
	File         string  `yaml:"file"`
}

type DetectionConfig struct {
	Threshold float64 `yaml:"threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Strategy: "plow",
		Drones:   DefaultDrones,
		Physics: PhysicsConfig{
			Dt:       DefaultDt,
			SimSpeed: DefaultSimSpeed,
			Drag:     DefaultDrag,
			Kp:       DefaultKP,
		},
		Area: AreaConfig{
			Size:         DefaultAreaSize,
			Jaggedness:   DefaultJaggedness,
			Vertices:     DefaultVertices,
			Objects:      DefaultObjects,
			Distribution: "pseudorandom",
		},
		Detection: DetectionConfig{
			Threshold: DefaultThreshold,
		},
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

func (c *Config) Validate() error {
	if c.Drones < 1 {
		return fmt.Errorf("config: drones must be at least 1, got %d", c.Drones)
	}
	if c.Physics.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %v", c.Physics.Dt)
	}
	if c.Physics.SimSpeed < 1 || c.Physics.SimSpeed > 100 {
		return fmt.Errorf("config: sim_speed must be in [1,100], got %d", c.Physics.SimSpeed)
	}
	if c.Physics.Drag < 0 || c.Physics.Drag > 1 {
		return fmt.Errorf("config: drag must be in [0,1], got %v", c.Physics.Drag)
	}
	if c.Physics.Kp <= 0 {
		return fmt.Errorf("config: kp must be positive, got %v", c.Physics.Kp)
	}
	if c.Area.Size < 100 {
		return fmt.Errorf("config: area size must be at least 100, got %d", c.Area.Size)
	}
	if c.Area.Jaggedness < 0 || c.Area.Jaggedness > 1 {
		return fmt.Errorf("config: jaggedness must be in [0,1], got %v", c.Area.Jaggedness)
	}
	if c.Area.Vertices < 3 {
		return fmt.Errorf("config: area vertices must be at least 3, got %d", c.Area.Vertices)
	}
	if c.Area.Objects < 1 {
		return fmt.Errorf("config: objects must be at least 1, got %d", c.Area.Objects)
	}
	if c.Detection.Threshold < 0 || c.Detection.Threshold > 1 {
		return fmt.Errorf("config: detection threshold must be in [0,1], got %v", c.Detection.Threshold)
	}
	return nil
}
