package ai

// feedOnGrass eats from the creature's own cell when hungry and the grass
// there is ripe.
func (e *engine) feedOnGrass(me AgentInfo, v *Visibility) (Food, bool) {
	if !e.hungry(me) {
		return Food{}, false
	}
	c, ok := v.CellAt(me.Position)
	if !ok || !c.Grass.Ripe() {
		return Food{}, false
	}
	return Food{Kind: FoodGrass, Position: c.Position, Grass: c.Grass}, true
}

// feedOnPrey eats any visible prey when hungry. There is no adjacency
// requirement; the nearest prey is taken, visibility order breaking ties.
func (e *engine) feedOnPrey(me AgentInfo, v *Visibility) (Food, bool) {
	if !e.hungry(me) {
		return Food{}, false
	}
	var (
		found bool
		prey  Unit
		dist  int
	)
	for _, u := range v.Units() {
		if isSelf(me, u) || !Classify(me, u).Has(FoodSource) {
			continue
		}
		if d := me.Position.Distance(u.Position); !found || d < dist {
			prey, dist, found = u, d, true
		}
	}
	if !found {
		return Food{}, false
	}
	return Food{Kind: FoodPrey, Position: prey.Position, Unit: prey}, true
}
