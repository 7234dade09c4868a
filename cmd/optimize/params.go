// Package main provides CMA-ES optimization for grid world parameters.
package main

import (
	"math"

	"github.com/pthm-cable/taiga/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before use
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Decision
			{Name: "hunger_threshold", Path: "decision.hunger_threshold", Min: 0.2, Max: 0.9, Default: 0.5},
			// Health
			{Name: "health_decay", Path: "lifecycle.health_decay", Min: 0.002, Max: 0.03, Default: 0.01},
			{Name: "graze_gain", Path: "lifecycle.graze_gain", Min: 0.01, Max: 0.15, Default: 0.05},
			{Name: "kill_gain", Path: "lifecycle.kill_gain", Min: 0.2, Max: 1.0, Default: 0.6},
			// Reproduction
			{Name: "maturity_age", Path: "lifecycle.maturity_age", Min: 20, Max: 200, Default: 60, Integer: true},
			{Name: "gestation", Path: "lifecycle.gestation", Min: 10, Max: 80, Default: 30, Integer: true},
			{Name: "litter_size", Path: "lifecycle.litter_size", Min: 1, Max: 4, Default: 2, Integer: true},
			// Perception
			{Name: "prey_radius", Path: "vision.prey_radius", Min: 2, Max: 8, Default: 5, Integer: true},
			{Name: "pred_radius", Path: "vision.pred_radius", Min: 3, Max: 10, Default: 7, Integer: true},
			// Fields
			{Name: "regen_every", Path: "grass.regen_every", Min: 1, Max: 12, Default: 4, Integer: true},
			{Name: "scent_deposit", Path: "scent.deposit", Min: 0, Max: 20, Default: 8, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and rebuilds
// its derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0
	next := func() float64 {
		v := clamped[i]
		i++
		return v
	}

	cfg.Decision.HungerThreshold = next()

	cfg.Lifecycle.HealthDecay = next()
	cfg.Lifecycle.GrazeGain = next()
	cfg.Lifecycle.KillGain = next()

	cfg.Lifecycle.MaturityAge = int(next())
	cfg.Lifecycle.Gestation = int(next())
	cfg.Lifecycle.LitterSize = int(next())

	cfg.Vision.PreyRadius = int(next())
	cfg.Vision.PredRadius = int(next())

	cfg.Grass.RegenEvery = int(next())
	cfg.Scent.Deposit = int(next())

	return cfg.Rebuild()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Decision.HungerThreshold,
		cfg.Lifecycle.HealthDecay,
		cfg.Lifecycle.GrazeGain,
		cfg.Lifecycle.KillGain,
		float64(cfg.Lifecycle.MaturityAge),
		float64(cfg.Lifecycle.Gestation),
		float64(cfg.Lifecycle.LitterSize),
		float64(cfg.Vision.PreyRadius),
		float64(cfg.Vision.PredRadius),
		float64(cfg.Grass.RegenEvery),
		float64(cfg.Scent.Deposit),
	}
}
