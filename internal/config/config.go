package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/projsim/internal/physics"
	"github.com/san-kum/projsim/internal/projectile"
)

const (
	DefaultSpeed  = 30.0
	DefaultAngle  = 45.0
	DefaultMass   = 1.0
	DefaultRadius = 0.1
	DefaultDt     = 0.01
)

type Config struct {
	Launch LaunchConfig `yaml:"launch"`
	Engine EngineConfig `yaml:"engine"`
	Logger LoggerConfig `yaml:"logger"`
}

type LaunchConfig struct {
	Speed  float64 `yaml:"speed"`  // m/s
	Angle  float64 `yaml:"angle"`  // degrees above horizontal
	Mass   float64 `yaml:"mass"`   // kg
	Radius float64 `yaml:"radius"` // m
	Height float64 `yaml:"height"` // m
}

type EngineConfig struct {
	Gravity         float64 `yaml:"gravity"`
	Drag            bool    `yaml:"drag"`
	Method          string  `yaml:"method"`
	Dt              float64 `yaml:"dt"`
	MaxSteps        int     `yaml:"max_steps"`
	AirDensity      float64 `yaml:"air_density"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Launch: LaunchConfig{
			Speed:  DefaultSpeed,
			Angle:  DefaultAngle,
			Mass:   DefaultMass,
			Radius: DefaultRadius,
		},
		Engine: EngineConfig{
			Gravity:         physics.DefaultGravity,
			Method:          physics.RK4.String(),
			Dt:              DefaultDt,
			MaxSteps:        physics.DefaultMaxSteps,
			AirDensity:      physics.AirDensity,
			DragCoefficient: physics.SphereDragCoefficient,
		},
		Logger: DefaultLoggerConfig(),
	}
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      "info",
		Format:     "console",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
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

// Validate checks everything that can be checked without running the
// engine: the launch parameters and the method name.
func (c *Config) Validate() error {
	if _, err := c.Projectile(); err != nil {
		return err
	}
	if _, err := physics.ParseMethod(c.Engine.Method); err != nil {
		return err
	}
	if c.Engine.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Engine.Dt)
	}
	return nil
}

// Projectile builds the launch state described by the config.
func (c *Config) Projectile() (projectile.Projectile, error) {
	l := c.Launch
	return projectile.Launch(l.Mass, l.Radius, l.Speed, l.Angle, l.Height)
}

// EngineOptions translates the engine section into physics options.
func (c *Config) EngineOptions() ([]physics.Option, error) {
	m, err := physics.ParseMethod(c.Engine.Method)
	if err != nil {
		return nil, err
	}
	opts := []physics.Option{
		physics.WithGravity(c.Engine.Gravity),
		physics.WithDrag(c.Engine.Drag),
		physics.WithMethod(m),
		physics.WithAtmosphere(c.Engine.AirDensity, c.Engine.DragCoefficient),
	}
	if c.Engine.MaxSteps > 0 {
		opts = append(opts, physics.WithMaxSteps(c.Engine.MaxSteps))
	}
	return opts, nil
}
