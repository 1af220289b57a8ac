package swarm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultParticles is the particle count used when none is configured.
const DefaultParticles = 3000

// Config controls a Session.
type Config struct {
	// Particles is the fixed particle count for the session.
	Particles int `json:"particles"`
	// TimeStep is the simulated seconds added per tick.
	TimeStep float64 `json:"time_step"`
	// TickRate is the scheduler cadence in ticks per second.
	TickRate int     `json:"tick_rate"`
	Shape    Shape   `json:"shape"`
	Palette  Palette `json:"palette"`
	// Seed seeds the session RNG. Zero picks a time-based seed.
	Seed    uint64        `json:"seed"`
	Physics PhysicsConfig `json:"physics"`
	Log     LogConfig     `json:"log"`
	// Debug logs tick statistics every DebugEvery ticks.
	Debug      bool `json:"debug"`
	DebugEvery int  `json:"debug_every"`
}

// DefaultConfig returns a Config with the stock values.
func DefaultConfig() Config {
	return Config{
		Particles:  DefaultParticles,
		TimeStep:   1.0 / 60.0,
		TickRate:   60,
		Shape:      ShapeSphere,
		Palette:    PaletteRainbow,
		Physics:    DefaultPhysics(),
		Log:        LogConfig{Level: "info"},
		DebugEvery: 120,
	}
}

// LoadConfig reads a JSON config file. Fields absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes JSON config data over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Particles < 0:
		return fmt.Errorf("%w: particles = %d", ErrInvalidConfig, c.Particles)
	case c.TimeStep <= 0:
		return fmt.Errorf("%w: time_step = %v", ErrInvalidConfig, c.TimeStep)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate = %d", ErrInvalidConfig, c.TickRate)
	case !c.Shape.Valid():
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Shape)
	case !c.Palette.Valid():
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Palette)
	case c.Physics.Damping < 0 || c.Physics.Damping > 1:
		return fmt.Errorf("%w: physics.damping = %v", ErrInvalidConfig, c.Physics.Damping)
	case c.Physics.Spring <= 0:
		return fmt.Errorf("%w: physics.spring = %v", ErrInvalidConfig, c.Physics.Spring)
	case c.Physics.ExplosionDecay < 0 || c.Physics.ExplosionDecay >= 1:
		return fmt.Errorf("%w: physics.explosion_decay = %v", ErrInvalidConfig, c.Physics.ExplosionDecay)
	case c.Debug && c.DebugEvery <= 0:
		return fmt.Errorf("%w: debug_every = %d", ErrInvalidConfig, c.DebugEvery)
	}
	return nil
}

// TickInterval returns the wall-clock interval between scheduled ticks.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
