package systems

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/config"
	"github.com/pthm-cable/taiga/geo"
)

// GrassField is the per-cell food grid grazed by prey. Edible thresholds
// vary in coherent patches so good pasture clusters together.
type GrassField struct {
	W, H int

	// Current food per cell
	Food []int
	// Amount at which a cell counts as edible
	Threshold []int

	MaxFood    int
	RegenEvery int // ticks between +1 food on every cell

	ticks int
}

// NewGrassField creates a grass field seeded from config.
func NewGrassField(w, h int, seed int64, cfg *config.Config) *GrassField {
	gc := cfg.Grass
	gf := &GrassField{
		W: w, H: h,
		Food:      make([]int, w*h),
		Threshold: make([]int, w*h),

		MaxFood:    gc.MaxFood,
		RegenEvery: max(gc.RegenEvery, 1),
	}

	noise := opensimplex.NewNormalized(seed)
	rng := rand.New(rand.NewSource(seed))
	span := gc.MaxThreshold - gc.MinThreshold
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			n := noise.Eval2(float64(x)*gc.NoiseScale, float64(y)*gc.NoiseScale)
			gf.Threshold[i] = gc.MinThreshold + int(n*float64(span+1))
			if gf.Threshold[i] > gc.MaxThreshold {
				gf.Threshold[i] = gc.MaxThreshold
			}
			gf.Food[i] = rng.Intn(gf.MaxFood + 1)
		}
	}

	return gf
}

// At returns the grass descriptor at p.
func (gf *GrassField) At(p geo.Position) ai.Grass {
	i := p.Y*gf.W + p.X
	return ai.Grass{Current: gf.Food[i], Threshold: gf.Threshold[i]}
}

// Graze removes up to bite units from p and returns the amount eaten.
func (gf *GrassField) Graze(p geo.Position, bite int) int {
	i := p.Y*gf.W + p.X
	eaten := min(bite, gf.Food[i])
	gf.Food[i] -= eaten
	return eaten
}

// Update regrows every cell by one unit every RegenEvery ticks.
func (gf *GrassField) Update() {
	gf.ticks++
	if gf.ticks%gf.RegenEvery != 0 {
		return
	}
	for i := range gf.Food {
		if gf.Food[i] < gf.MaxFood {
			gf.Food[i]++
		}
	}
}

// Total returns the food summed over all cells.
func (gf *GrassField) Total() int {
	total := 0
	for _, f := range gf.Food {
		total += f
	}
	return total
}
