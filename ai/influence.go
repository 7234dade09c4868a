package ai

import "github.com/pthm-cable/taiga/geo"

// ValueMap is the aggregated desirability of each visible position.
type ValueMap map[geo.Position]int

// TerrainFunc scores a visible cell on its own, independent of any unit.
type TerrainFunc func(me AgentInfo, c Cell) int

// BuildValueMap folds every contribution source into one map:
// the terrain score of each visible cell, the direct attitude values at
// occupied positions, and the distance-decayed values of proliferating
// attitudes spread from their epicenters over all other visible cells.
// An epicenter is never worth more than the value it spreads, so the
// gradient around it always points away.
// Keys are visible cell positions plus occupied positions, all in bounds.
func BuildValueMap(me AgentInfo, v *Visibility, profile *Profile, terrain TerrainFunc) ValueMap {
	occupied := occupiedAttitudes(me, v.Units())
	values := make(ValueMap, len(v.Cells())+len(occupied))

	for _, c := range v.Cells() {
		values[c.Position] += terrain(me, c)
	}

	for pos, set := range occupied {
		for _, a := range set.Slice() {
			val := profile.Value(me, a)
			if a.Proliferates() {
				val = min(val, profile.Base(me, a))
			}
			values[pos] += val
		}
	}

	for epicenter, set := range occupied {
		for _, a := range set.Slice() {
			if !a.Proliferates() {
				continue
			}
			proliferate(values, v.Cells(), epicenter, profile.Base(me, a))
		}
	}

	return values
}

// occupiedAttitudes classifies every unit and unions the attitudes found at
// each position. Positions whose units classify to nothing are left out.
func occupiedAttitudes(me AgentInfo, units []Unit) map[geo.Position]AttitudeSet {
	occupied := make(map[geo.Position]AttitudeSet)
	for _, u := range units {
		if isSelf(me, u) {
			continue
		}
		set := Classify(me, u)
		if set.Empty() {
			continue
		}
		occupied[u.Position] = occupied[u.Position].Union(set)
	}
	return occupied
}

// proliferate adds base+distance to every visible cell other than the
// epicenter. With a negative base the penalty fades with range.
func proliferate(values ValueMap, cells []Cell, epicenter geo.Position, base int) {
	for _, c := range cells {
		if c.Position == epicenter {
			continue
		}
		values[c.Position] += base + epicenter.Distance(c.Position)
	}
}

// grassTerrain scores a ripe cell with the observer's food value.
func grassTerrain(profile *Profile) TerrainFunc {
	return func(me AgentInfo, c Cell) int {
		if c.Grass.Ripe() {
			return profile.Value(me, FoodSource)
		}
		return 0
	}
}

// scentTerrain draws hunters toward marked ground.
func scentTerrain(_ AgentInfo, c Cell) int {
	return c.Scent / 2
}
