package geo

import "math/rand"

// Direction is one of the eight king-move steps.
// Order: N, NE, E, SE, S, SW, W, NW (Y grows southwards).
type Direction int8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	// DirectionCount is the number of step directions.
	DirectionCount = 8
)

var dirVectors = [DirectionCount][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

var dirNames = [DirectionCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Vector returns the (dx, dy) step of d.
func (d Direction) Vector() [2]int {
	return dirVectors[d]
}

func (d Direction) String() string {
	if d < 0 || d >= DirectionCount {
		return "?"
	}
	return dirNames[d]
}

// Directions returns all directions in declaration order.
func Directions() []Direction {
	dirs := make([]Direction, DirectionCount)
	for i := range dirs {
		dirs[i] = Direction(i)
	}
	return dirs
}

// Shuffled returns all directions in a random order. A nil rng uses the
// package-level source, which is safe for concurrent use.
func Shuffled(rng *rand.Rand) []Direction {
	var perm []int
	if rng != nil {
		perm = rng.Perm(DirectionCount)
	} else {
		perm = rand.Perm(DirectionCount)
	}
	dirs := make([]Direction, DirectionCount)
	for i, v := range perm {
		dirs[i] = Direction(v)
	}
	return dirs
}

// InBounds keeps the directions whose step from p stays inside the extent.
func InBounds(dirs []Direction, p Position, width, height int) []Direction {
	out := dirs[:0:0]
	for _, d := range dirs {
		if p.By(d).In(width, height) {
			out = append(out, d)
		}
	}
	return out
}

// Toward picks the direction among dirs whose step from p lands closest to
// target. Earlier entries win ties, so callers pass a shuffled slice to avoid
// directional bias. ok is false when no step gets closer than staying put.
func Toward(p, target Position, dirs []Direction) (best Direction, ok bool) {
	bestDist := p.Distance(target)
	for _, d := range dirs {
		if dist := p.By(d).Distance(target); dist < bestDist {
			best, bestDist, ok = d, dist, true
		}
	}
	return best, ok
}
