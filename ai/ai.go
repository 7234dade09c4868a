package ai

import (
	"math/rand"

	"github.com/pthm-cable/taiga/geo"
)

// AI is the decision capability of one creature kind, parameterized by the
// concrete self-view T of that kind.
type AI[T Agent] interface {
	// Evaluate returns the full aggregated value map.
	Evaluate(me T, v *Visibility) ValueMap
	// Move returns the step to take; ok is false when there is no useful move.
	Move(me T, v *Visibility) (dir geo.Direction, ok bool)
	// Feed returns what to eat this tick; ok is false when not eating.
	Feed(me T, v *Visibility) (food Food, ok bool)
	// Aim returns ranged targets. Grid melee creatures never aim.
	Aim(me T, v *Visibility) []geo.Position
}

// Decision is the combined outcome of one creature's turn.
type Decision struct {
	Dir   geo.Direction
	Moves bool
	Food  Food
	Eats  bool
}

// Decide runs Move and Feed against the same snapshot.
func Decide[T Agent](a AI[T], me T, v *Visibility) Decision {
	var d Decision
	d.Dir, d.Moves = a.Move(me, v)
	d.Food, d.Eats = a.Feed(me, v)
	return d
}

// engine is the scoring and movement machinery shared by the concrete AIs.
type engine struct {
	profile         *Profile
	terrain         TerrainFunc
	hungerThreshold float64
	rng             *rand.Rand // nil: package-level source
}

func (e *engine) evaluate(me AgentInfo, v *Visibility) ValueMap {
	return BuildValueMap(me, v, e.profile, e.terrain)
}

func (e *engine) move(me AgentInfo, v *Visibility) (geo.Direction, bool) {
	best := e.evaluate(me, v).Best()
	if len(best) == 0 {
		return 0, false
	}
	return Step(me.Position, best[0], v.Width(), v.Height(), e.rng)
}

func (e *engine) hungry(me AgentInfo) bool {
	return Hungry(me, e.hungerThreshold)
}

// Step resolves one direction from from toward target inside a width x height
// world. Directions are tried in a fresh random order so equally good steps
// carry no systematic bias. ok is false when standing on the target.
func Step(from, target geo.Position, width, height int, rng *rand.Rand) (geo.Direction, bool) {
	dirs := geo.InBounds(geo.Shuffled(rng), from, width, height)
	return geo.Toward(from, target, dirs)
}

// Options tune a concrete AI.
type Options struct {
	// HungerThreshold is the health fraction below which the creature eats.
	// Zero means DefaultHungerThreshold.
	HungerThreshold float64
	// Rand breaks direction ties. A *rand.Rand is not safe for concurrent
	// use; leave nil to share the package-level source between goroutines.
	Rand *rand.Rand
}

func newEngine(profile *Profile, terrain TerrainFunc, opts Options) engine {
	threshold := opts.HungerThreshold
	if threshold == 0 {
		threshold = DefaultHungerThreshold
	}
	return engine{
		profile:         profile,
		terrain:         terrain,
		hungerThreshold: threshold,
		rng:             opts.Rand,
	}
}

// PreyAI drives grazing creatures: it flees threats, avoids rivals, seeks
// mates and ripe grass.
type PreyAI struct {
	engine
}

var _ AI[PreyInfo] = (*PreyAI)(nil)

// NewPreyAI creates a grazer AI. A nil profile uses DefaultPreyProfile.
func NewPreyAI(profile *Profile, opts Options) *PreyAI {
	if profile == nil {
		profile = DefaultPreyProfile()
	}
	return &PreyAI{engine: newEngine(profile, grassTerrain(profile), opts)}
}

// Evaluate implements AI.
func (a *PreyAI) Evaluate(me PreyInfo, v *Visibility) ValueMap {
	return a.evaluate(me.AgentInfo, v)
}

// Move implements AI.
func (a *PreyAI) Move(me PreyInfo, v *Visibility) (geo.Direction, bool) {
	return a.move(me.AgentInfo, v)
}

// Feed implements AI.
func (a *PreyAI) Feed(me PreyInfo, v *Visibility) (Food, bool) {
	return a.feedOnGrass(me.AgentInfo, v)
}

// Aim implements AI.
func (a *PreyAI) Aim(PreyInfo, *Visibility) []geo.Position {
	return nil
}

// PredatorAI drives hunting creatures: it chases prey when hungry, seeks
// mates, keeps clear of rivals and follows scent.
type PredatorAI struct {
	engine
}

var _ AI[PredatorInfo] = (*PredatorAI)(nil)

// NewPredatorAI creates a hunter AI. A nil profile uses DefaultPredatorProfile.
func NewPredatorAI(profile *Profile, opts Options) *PredatorAI {
	if profile == nil {
		profile = DefaultPredatorProfile()
	}
	return &PredatorAI{engine: newEngine(profile, scentTerrain, opts)}
}

// Evaluate implements AI.
func (a *PredatorAI) Evaluate(me PredatorInfo, v *Visibility) ValueMap {
	return a.evaluate(me.AgentInfo, v)
}

// Move implements AI.
func (a *PredatorAI) Move(me PredatorInfo, v *Visibility) (geo.Direction, bool) {
	return a.move(me.AgentInfo, v)
}

// Feed implements AI.
func (a *PredatorAI) Feed(me PredatorInfo, v *Visibility) (Food, bool) {
	return a.feedOnPrey(me.AgentInfo, v)
}

// Aim implements AI.
func (a *PredatorAI) Aim(PredatorInfo, *Visibility) []geo.Position {
	return nil
}

// RemoteAI stands in for creatures whose decisions are made elsewhere.
// Every operation reports nothing to do.
type RemoteAI[T Agent] struct{}

// Evaluate implements AI.
func (RemoteAI[T]) Evaluate(T, *Visibility) ValueMap { return ValueMap{} }

// Move implements AI.
func (RemoteAI[T]) Move(T, *Visibility) (geo.Direction, bool) { return 0, false }

// Feed implements AI.
func (RemoteAI[T]) Feed(T, *Visibility) (Food, bool) { return Food{}, false }

// Aim implements AI.
func (RemoteAI[T]) Aim(T, *Visibility) []geo.Position { return nil }
