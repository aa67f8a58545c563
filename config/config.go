// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Clock     ClockConfig     `yaml:"clock"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	Prey      SpeciesConfig   `yaml:"prey"`
	Tiger     SpeciesConfig   `yaml:"tiger"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	TargetFPS   int `yaml:"target_fps"`
	TickDelayMs int `yaml:"tick_delay_ms"` // Wall-clock delay between ticks in the GUI
}

// WorldConfig holds world dimensions and initial population.
type WorldConfig struct {
	Width         int     `yaml:"width"`         // Grid columns; positions range over [0, width]
	Height        int     `yaml:"height"`        // Grid rows; positions range over [0, height]
	RockFraction  float64 `yaml:"rock_fraction"` // Chance a patch is barren rock instead of grass
	InitialPrey   int     `yaml:"initial_prey"`
	InitialTigers int     `yaml:"initial_tigers"`
}

// ClockConfig holds the per-tick bookkeeping rates.
type ClockConfig struct {
	AgePerTick           float64 `yaml:"age_per_tick"`           // Years added to age each tick
	FoodPerTick          float64 `yaml:"food_per_tick"`          // Base metabolic cost per tick
	GestationFoodDivisor float64 `yaml:"gestation_food_divisor"` // Pregnancy costs food_per_tick/this extra
	GrassRegrowYears     float64 `yaml:"grass_regrow_years"`     // Years before a munched patch regrows
	SpeedRefreshTicks    int     `yaml:"speed_refresh_ticks"`    // Recompute animal speed every N ticks
	MaxTicks             int     `yaml:"max_ticks"`              // Default run length; 0 = unbounded
}

// BehaviorConfig holds target selection thresholds shared by both species.
type BehaviorConfig struct {
	ReachDistance   float64 `yaml:"reach_distance"`   // Target counts as reached below this distance
	SocialRadius    float64 `yaml:"social_radius"`    // Neighborhood radius for mate scan and wandering
	HungerThreshold float64 `yaml:"hunger_threshold"` // Forage and eat only while food is below this
	GrazeGain       float64 `yaml:"graze_gain"`       // Food gained by a prey eating a grass patch
	KillGain        float64 `yaml:"kill_gain"`        // Flat food gained by a tiger killing a prey
	KillFoodShare   float64 `yaml:"kill_food_share"`  // Fraction of the victim's food the tiger also gains
	MateFoodMin     float64 `yaml:"mate_food_min"`    // Female needs more food than this to mate
	MateAgeMin      float64 `yaml:"mate_age_min"`     // Female must be strictly older than this
	MateAgeMax      float64 `yaml:"mate_age_max"`     // Female must be strictly younger than this
	PregnancyStart  float64 `yaml:"pregnancy_start"`  // Pregnancy progress set at mating
}

// SpeciesConfig holds the traits that differ between prey and tigers.
type SpeciesConfig struct {
	MaxSpeed     float64 `yaml:"max_speed"`     // Peak adult speed in world units per tick
	InitialFood  float64 `yaml:"initial_food"`  // Stomach contents at spawn
	MeanLifespan float64 `yaml:"mean_lifespan"` // Center of the per-animal max age distribution
	ForageRadius float64 `yaml:"forage_radius"` // Scan radius when hungry
	LitterSize   float64 `yaml:"litter_size"`   // Center of the babies-per-pregnancy distribution
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // Aggregate stats over windows of this many ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	RegrowDelayTicks int     // GrassRegrowYears expressed in ticks
	CellSize         float64 // Spatial index cell size
	WorldW           float64 // World.Width as float64
	WorldH           float64 // World.Height as float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects configurations that cannot produce a well-formed world.
// Runs before any world is constructed so a bad file never yields a partial run.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.RockFraction < 0 || c.World.RockFraction > 1 {
		return fmt.Errorf("config: world.rock_fraction must be in [0,1], got %v", c.World.RockFraction)
	}
	if c.World.InitialPrey < 0 || c.World.InitialTigers < 0 {
		return fmt.Errorf("config: initial populations must be non-negative, got prey=%d tigers=%d",
			c.World.InitialPrey, c.World.InitialTigers)
	}
	if c.Clock.AgePerTick <= 0 {
		return fmt.Errorf("config: clock.age_per_tick must be positive, got %v", c.Clock.AgePerTick)
	}
	if c.Clock.FoodPerTick < 0 {
		return fmt.Errorf("config: clock.food_per_tick must be non-negative, got %v", c.Clock.FoodPerTick)
	}
	if c.Clock.GestationFoodDivisor <= 0 {
		return fmt.Errorf("config: clock.gestation_food_divisor must be positive, got %v", c.Clock.GestationFoodDivisor)
	}
	if c.Clock.GrassRegrowYears < 0 {
		return fmt.Errorf("config: clock.grass_regrow_years must be non-negative, got %v", c.Clock.GrassRegrowYears)
	}
	if c.Clock.SpeedRefreshTicks < 1 {
		return fmt.Errorf("config: clock.speed_refresh_ticks must be at least 1, got %d", c.Clock.SpeedRefreshTicks)
	}
	if c.Clock.MaxTicks < 0 {
		return fmt.Errorf("config: clock.max_ticks must be non-negative, got %d", c.Clock.MaxTicks)
	}
	if c.Behavior.ReachDistance <= 0 {
		return fmt.Errorf("config: behavior.reach_distance must be positive, got %v", c.Behavior.ReachDistance)
	}
	if c.Behavior.SocialRadius <= 0 {
		return fmt.Errorf("config: behavior.social_radius must be positive, got %v", c.Behavior.SocialRadius)
	}
	if c.Behavior.PregnancyStart <= 0 || c.Behavior.PregnancyStart >= 1 {
		return fmt.Errorf("config: behavior.pregnancy_start must be in (0,1), got %v", c.Behavior.PregnancyStart)
	}
	if c.Behavior.MateAgeMin < 0 || c.Behavior.MateAgeMax <= c.Behavior.MateAgeMin {
		return fmt.Errorf("config: behavior mate age window invalid, got (%v, %v)",
			c.Behavior.MateAgeMin, c.Behavior.MateAgeMax)
	}
	if err := c.Prey.validate("prey"); err != nil {
		return err
	}
	if err := c.Tiger.validate("tiger"); err != nil {
		return err
	}
	if c.Telemetry.WindowTicks < 1 {
		return fmt.Errorf("config: telemetry.window_ticks must be at least 1, got %d", c.Telemetry.WindowTicks)
	}
	return nil
}

func (s *SpeciesConfig) validate(name string) error {
	if s.MaxSpeed < 0 {
		return fmt.Errorf("config: %s.max_speed must be non-negative, got %v", name, s.MaxSpeed)
	}
	if s.InitialFood <= 0 {
		return fmt.Errorf("config: %s.initial_food must be positive, got %v", name, s.InitialFood)
	}
	if s.MeanLifespan <= 0 {
		return fmt.Errorf("config: %s.mean_lifespan must be positive, got %v", name, s.MeanLifespan)
	}
	if s.ForageRadius < 0 {
		return fmt.Errorf("config: %s.forage_radius must be non-negative, got %v", name, s.ForageRadius)
	}
	if s.LitterSize < 0 {
		return fmt.Errorf("config: %s.litter_size must be non-negative, got %v", name, s.LitterSize)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config. Load calls
// it automatically; call it again after mutating fields directly.
func (c *Config) ComputeDerived() {
	// Floor of the exact quotient, not of the rounded IEEE quotient: at the
	// defaults 2/0.005 rounds up to 400.0 even though 400 ticks overshoot
	// two years (0.005 is slightly above five thousandths), so the delay
	// must floor to 399.
	n := int(c.Clock.GrassRegrowYears / c.Clock.AgePerTick)
	for n > 0 && float64(n)*c.Clock.AgePerTick > c.Clock.GrassRegrowYears {
		n--
	}
	c.Derived.RegrowDelayTicks = n
	c.Derived.CellSize = c.Behavior.SocialRadius
	c.Derived.WorldW = float64(c.World.Width)
	c.Derived.WorldH = float64(c.World.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
