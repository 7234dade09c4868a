package ai

import (
	"testing"

	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

func TestDefaultProfilesAreTotal(t *testing.T) {
	for name, p := range map[string]*Profile{
		"prey":     DefaultPreyProfile(),
		"predator": DefaultPredatorProfile(),
	} {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if err := (&Profile{}).Validate(); err == nil {
		t.Error("empty profile should not validate")
	}
}

func TestPredatorDynamicValues(t *testing.T) {
	p := DefaultPredatorProfile()
	me := self(traits.Predator, traits.Male, 1.0, geo.Pos(0, 0))

	tests := []struct {
		name   string
		mutate func(*AgentInfo)
		att    Attitude
		want   int
	}{
		{"fed adult ignores food", func(*AgentInfo) {}, FoodSource, 0},
		{"hungry adult wants food", func(a *AgentInfo) { a.Health = 0.3 }, FoodSource, 50},
		{"health at threshold is not hungry", func(a *AgentInfo) { a.Health = 0.5 }, FoodSource, 0},
		{"adult wants a mate", func(*AgentInfo) {}, Mate, 20},
		{"pregnant adult does not", func(a *AgentInfo) { a.Pregnancy = &Pregnancy{} }, Mate, 0},
		{"juvenile never mates", func(a *AgentInfo) { a.Adult = false }, Mate, 0},
		{"hungry juvenile wants food", func(a *AgentInfo) { a.Adult = false; a.Health = 0.1 }, FoodSource, 50},
		{"adult rival", func(*AgentInfo) {}, Rival, -5},
		{"juvenile rival is neutral", func(a *AgentInfo) { a.Adult = false }, Rival, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := me
			tt.mutate(&m)
			if got := p.Value(m, tt.att); got != tt.want {
				t.Errorf("Value(%v) = %d, want %d", tt.att, got, tt.want)
			}
		})
	}
}

func TestBaseUsesAdultTable(t *testing.T) {
	p := DefaultPreyProfile()
	kid := self(traits.Prey, traits.Female, 1, geo.Pos(0, 0))
	kid.Adult = false
	if got := p.Value(kid, Rival); got != 0 {
		t.Errorf("juvenile rival value = %d, want 0", got)
	}
	if got := p.Base(kid, Rival); got != -5 {
		t.Errorf("rival base = %d, want -5", got)
	}
}
