package config

import "sort"

var Presets = map[string]*Config{
	"reference": {
		Launch: LaunchConfig{Speed: 30, Angle: 45, Mass: 1, Radius: 0.1},
		Engine: EngineConfig{Gravity: 9.81, Method: "rk4", Dt: 0.01},
	},
	"baseball": {
		Launch: LaunchConfig{Speed: 40, Angle: 35, Mass: 0.145, Radius: 0.0366, Height: 1},
		Engine: EngineConfig{Gravity: 9.81, Drag: true, Method: "rk4", Dt: 0.005},
	},
	"cannonball": {
		Launch: LaunchConfig{Speed: 120, Angle: 40, Mass: 5.4, Radius: 0.055},
		Engine: EngineConfig{Gravity: 9.81, Drag: true, Method: "rk4", Dt: 0.01},
	},
	"pingpong": {
		Launch: LaunchConfig{Speed: 12, Angle: 30, Mass: 0.0027, Radius: 0.02, Height: 0.3},
		Engine: EngineConfig{Gravity: 9.81, Drag: true, Method: "rk4", Dt: 0.001},
	},
	"moon": {
		Launch: LaunchConfig{Speed: 30, Angle: 45, Mass: 1, Radius: 0.1},
		Engine: EngineConfig{Gravity: 1.62, Method: "rk4", Dt: 0.01},
	},
	"euler-coarse": {
		Launch: LaunchConfig{Speed: 30, Angle: 45, Mass: 1, Radius: 0.1},
		Engine: EngineConfig{Gravity: 9.81, Method: "euler", Dt: 0.1},
	},
}

// GetPreset returns a copy of the named preset merged over the defaults, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Launch = p.Launch
	eng := cfg.Engine
	eng.Gravity = p.Engine.Gravity
	eng.Drag = p.Engine.Drag
	eng.Method = p.Engine.Method
	eng.Dt = p.Engine.Dt
	cfg.Engine = eng
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
