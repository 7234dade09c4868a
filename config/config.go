// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/traits"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownCondition is returned for a value gate that is not recognised.
var ErrUnknownCondition = errors.New("config: unknown value condition")

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Vision     VisionConfig     `yaml:"vision"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Grass      GrassConfig      `yaml:"grass"`
	Scent      ScentConfig      `yaml:"scent"`
	Decision   DecisionConfig   `yaml:"decision"`
	Profiles   ProfilesConfig   `yaml:"profiles"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Stream     StreamConfig     `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid extent.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds initial and maximum population sizes.
type PopulationConfig struct {
	InitialPrey int     `yaml:"initial_prey"`
	InitialPred int     `yaml:"initial_pred"`
	MaxPrey     int     `yaml:"max_prey"`
	MaxPred     int     `yaml:"max_pred"`
	AdultShare  float64 `yaml:"adult_share"` // Fraction of founders spawned as adults
	RemotePrey  int     `yaml:"remote_prey"` // Founding prey decided outside the process
}

// VisionConfig holds per-species sight radius in cells (square neighbourhood).
type VisionConfig struct {
	PreyRadius int `yaml:"prey_radius"`
	PredRadius int `yaml:"pred_radius"`
}

// LifecycleConfig holds aging, health and reproduction parameters.
type LifecycleConfig struct {
	MaturityAge   int     `yaml:"maturity_age"`   // Ticks until adult
	MaxAge        int     `yaml:"max_age"`        // Ticks until death of old age
	Gestation     int     `yaml:"gestation"`      // Ticks from mating to birth
	LitterSize    int     `yaml:"litter_size"`    // Offspring per birth
	HealthDecay   float64 `yaml:"health_decay"`   // Health lost per tick
	GrazeGain     float64 `yaml:"graze_gain"`     // Health gained per grass unit eaten
	GrazeBite     int     `yaml:"graze_bite"`     // Grass units eaten per tick
	KillGain      float64 `yaml:"kill_gain"`      // Health gained per prey eaten
	NewbornHealth float64 `yaml:"newborn_health"` // Starting health of offspring
	MatingRange   int     `yaml:"mating_range"`   // Max distance between mates
}

// GrassConfig holds grass field parameters.
type GrassConfig struct {
	MaxFood      int     `yaml:"max_food"`      // Cap on food per cell
	MinThreshold int     `yaml:"min_threshold"` // Edible threshold lower bound
	MaxThreshold int     `yaml:"max_threshold"` // Edible threshold upper bound
	RegenEvery   int     `yaml:"regen_every"`   // Ticks between +1 food
	NoiseScale   float64 `yaml:"noise_scale"`   // Spatial frequency of threshold patches
}

// ScentConfig holds scent marking parameters.
type ScentConfig struct {
	Deposit int `yaml:"deposit"` // Scent left per tick on a predator's cell
	Decay   int `yaml:"decay"`   // Scent lost per tick everywhere
	Max     int `yaml:"max"`
}

// DecisionConfig holds decision core thresholds.
type DecisionConfig struct {
	HungerThreshold float64 `yaml:"hunger_threshold"`
	Parallel        bool    `yaml:"parallel"` // Decide in worker goroutines above the threshold
	Chunks          int     `yaml:"chunks"`   // Fixed work split, each chunk with its own rand source
	Workers         int     `yaml:"workers"`  // Goroutines; 0 = GOMAXPROCS, never more than chunks
}

// ValueConfig is one attitude value, optionally gated on the observer's state.
type ValueConfig struct {
	Value int    `yaml:"value"`
	When  string `yaml:"when,omitempty"` // "", "hungry" or "wants_to_mate"
}

// TableConfig maps every attitude to a value for one life stage.
type TableConfig struct {
	Threat ValueConfig `yaml:"threat"`
	Rival  ValueConfig `yaml:"rival"`
	Mate   ValueConfig `yaml:"mate"`
	Food   ValueConfig `yaml:"food"`
}

// ProfileConfig holds the adult and juvenile tables of one species.
type ProfileConfig struct {
	Adult    TableConfig `yaml:"adult"`
	Juvenile TableConfig `yaml:"juvenile"`
}

// ProfilesConfig holds value profiles per species.
type ProfilesConfig struct {
	Prey     ProfileConfig `yaml:"prey"`
	Predator ProfileConfig `yaml:"predator"`
}

// For returns the profile config of s.
func (pc ProfilesConfig) For(s traits.Species) ProfileConfig {
	if s == traits.Predator {
		return pc.Predator
	}
	return pc.Prey
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
}

// StreamConfig holds live stream parameters.
type StreamConfig struct {
	Every int `yaml:"every"` // Broadcast every N ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells    int                            // World.Width * World.Height
	Profiles map[traits.Species]*ai.Profile // Built value profiles, read-only
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
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges YAML data over the embedded defaults. Empty data yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Rebuild(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rebuild validates the config and recomputes derived values. Call it after
// changing fields of a loaded config.
func (c *Config) Rebuild() error {
	if err := c.validate(); err != nil {
		return err
	}
	return c.computeDerived()
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world: invalid size %dx%d", c.World.Width, c.World.Height)
	}
	if c.Grass.MinThreshold > c.Grass.MaxThreshold {
		return fmt.Errorf("grass: min_threshold %d above max_threshold %d", c.Grass.MinThreshold, c.Grass.MaxThreshold)
	}
	if c.Decision.HungerThreshold <= 0 || c.Decision.HungerThreshold > 1 {
		return fmt.Errorf("decision: hunger_threshold %v outside (0, 1]", c.Decision.HungerThreshold)
	}
	if c.Decision.Chunks <= 0 {
		return fmt.Errorf("decision: chunks must be positive, got %d", c.Decision.Chunks)
	}
	if c.Decision.Workers < 0 {
		return fmt.Errorf("decision: workers must not be negative, got %d", c.Decision.Workers)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.Cells = c.World.Width * c.World.Height

	species := traits.AllSpecies()
	c.Derived.Profiles = make(map[traits.Species]*ai.Profile, len(species))
	for _, s := range species {
		p, err := c.Profiles.For(s).Build(c.Decision.HungerThreshold)
		if err != nil {
			return fmt.Errorf("profiles.%v: %w", s, err)
		}
		c.Derived.Profiles[s] = p
	}
	return nil
}

// Profile returns the built value profile for a species.
func (c *Config) Profile(s traits.Species) *ai.Profile {
	return c.Derived.Profiles[s]
}

// Build turns the YAML tables into a value profile.
func (pc ProfileConfig) Build(hungerThreshold float64) (*ai.Profile, error) {
	adult, err := pc.Adult.build(hungerThreshold)
	if err != nil {
		return nil, fmt.Errorf("adult: %w", err)
	}
	juvenile, err := pc.Juvenile.build(hungerThreshold)
	if err != nil {
		return nil, fmt.Errorf("juvenile: %w", err)
	}
	p := &ai.Profile{Adult: adult, Juvenile: juvenile}
	return p, p.Validate()
}

func (tc TableConfig) build(hungerThreshold float64) (ai.Table, error) {
	var t ai.Table
	for a, vc := range map[ai.Attitude]ValueConfig{
		ai.Threat:     tc.Threat,
		ai.Rival:      tc.Rival,
		ai.Mate:       tc.Mate,
		ai.FoodSource: tc.Food,
	} {
		fn, err := vc.build(hungerThreshold)
		if err != nil {
			return t, fmt.Errorf("%v: %w", a, err)
		}
		t[a] = fn
	}
	return t, nil
}

func (vc ValueConfig) build(hungerThreshold float64) (ai.ValueFunc, error) {
	switch vc.When {
	case "", "always":
		return ai.Const(vc.Value), nil
	case "hungry":
		return ai.WhenHungry(vc.Value, hungerThreshold), nil
	case "wants_to_mate":
		return ai.WhenWantsToMate(vc.Value), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, vc.When)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
