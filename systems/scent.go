package systems

import "github.com/pthm-cable/taiga/geo"

// ScentField holds the scent marks predators leave behind.
type ScentField struct {
	W, H  int
	Level []int

	Deposit int // added per tick on an occupied cell
	Decay   int // removed per tick from every cell
	Max     int
}

// NewScentField creates an empty scent field.
func NewScentField(w, h, deposit, decay, maxLevel int) *ScentField {
	return &ScentField{
		W: w, H: h,
		Level:   make([]int, w*h),
		Deposit: deposit,
		Decay:   decay,
		Max:     maxLevel,
	}
}

// At returns the scent level at p.
func (sf *ScentField) At(p geo.Position) int {
	return sf.Level[p.Y*sf.W+p.X]
}

// Mark deposits scent at p.
func (sf *ScentField) Mark(p geo.Position) {
	i := p.Y*sf.W + p.X
	sf.Level[i] = min(sf.Level[i]+sf.Deposit, sf.Max)
}

// Update fades every mark.
func (sf *ScentField) Update() {
	for i, v := range sf.Level {
		sf.Level[i] = max(v-sf.Decay, 0)
	}
}

// Total returns the scent summed over all cells.
func (sf *ScentField) Total() int {
	total := 0
	for _, v := range sf.Level {
		total += v
	}
	return total
}
