// Package geo defines integer grid coordinates and the 8-way step directions.
package geo

import "fmt"

// Position is a grid coordinate. Positions compare by value.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// By returns the position one step away in direction d.
func (p Position) By(d Direction) Position {
	v := d.Vector()
	return Position{X: p.X + v[0], Y: p.Y + v[1]}
}

// Distance returns the number of king moves between p and q (Chebyshev distance).
func (p Position) Distance(q Position) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

// In reports whether p lies within [0, width) x [0, height).
func (p Position) In(width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// Clamp returns p moved to the nearest position inside [0, width) x [0, height).
func (p Position) Clamp(width, height int) Position {
	return Position{
		X: min(max(p.X, 0), width-1),
		Y: min(max(p.Y, 0), height-1),
	}
}

// Less orders positions by X, then Y.
func (p Position) Less(q Position) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
