package ai

import "fmt"

// DefaultHungerThreshold is the health fraction below which a creature wants to eat.
const DefaultHungerThreshold = 0.5

// ValueFunc computes an attitude's value from the observer's own state.
type ValueFunc func(me AgentInfo) int

// Table maps every attitude to its value for one life stage.
type Table [attitudeCount]ValueFunc

// Profile holds the adult and juvenile value tables of one species. A Profile
// is built once and only read afterwards, so it is safe to share between
// goroutines.
type Profile struct {
	Adult    Table
	Juvenile Table
}

// Value returns the life-stage specific value of a for me.
func (p *Profile) Value(me AgentInfo, a Attitude) int {
	if me.Adult {
		return p.Adult[a](me)
	}
	return p.Juvenile[a](me)
}

// Base returns the epicenter value of a proliferating attitude. It always
// comes from the adult table, whatever the observer's life stage.
func (p *Profile) Base(me AgentInfo, a Attitude) int {
	return p.Adult[a](me)
}

// Validate checks that both tables are total.
func (p *Profile) Validate() error {
	for _, a := range Attitudes() {
		if p.Adult[a] == nil {
			return fmt.Errorf("adult table: missing %v", a)
		}
		if p.Juvenile[a] == nil {
			return fmt.Errorf("juvenile table: missing %v", a)
		}
	}
	return nil
}

// Const is a fixed value.
func Const(v int) ValueFunc {
	return func(AgentInfo) int { return v }
}

// WhenHungry is v while the observer's health is below threshold, else 0.
func WhenHungry(v int, threshold float64) ValueFunc {
	return func(me AgentInfo) int {
		if Hungry(me, threshold) {
			return v
		}
		return 0
	}
}

// WhenWantsToMate is v while the observer wants to reproduce, else 0.
func WhenWantsToMate(v int) ValueFunc {
	return func(me AgentInfo) int {
		if WantsToMate(me) {
			return v
		}
		return 0
	}
}

// Hungry reports whether me's health fraction is below threshold.
func Hungry(me AgentInfo, threshold float64) bool {
	return me.Health < threshold
}

// WantsToMate: adult and not already pregnant.
func WantsToMate(me AgentInfo) bool {
	return me.Adult && !me.Pregnant()
}

// DefaultPreyProfile returns the grazer value tables.
func DefaultPreyProfile() *Profile {
	return &Profile{
		Adult: Table{
			Threat:     Const(-50),
			Rival:      Const(-5),
			Mate:       Const(10),
			FoodSource: Const(30),
		},
		Juvenile: Table{
			Threat:     Const(-50),
			Rival:      Const(0),
			Mate:       Const(0),
			FoodSource: Const(30),
		},
	}
}

// DefaultPredatorProfile returns the hunter value tables. Predators have no
// natural enemy, so Threat is neutral.
func DefaultPredatorProfile() *Profile {
	return &Profile{
		Adult: Table{
			Threat:     Const(0),
			Rival:      Const(-5),
			Mate:       WhenWantsToMate(20),
			FoodSource: WhenHungry(50, DefaultHungerThreshold),
		},
		Juvenile: Table{
			Threat:     Const(0),
			Rival:      Const(0),
			Mate:       Const(0),
			FoodSource: WhenHungry(50, DefaultHungerThreshold),
		},
	}
}
