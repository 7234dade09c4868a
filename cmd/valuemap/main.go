// Value map inspector: loads a hand-written perception, runs the decision
// core on it and prints the scored grid.
//
// Usage: go run ./cmd/valuemap -scenario scenario.yaml [-csv values.csv]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/config"
	"github.com/pthm-cable/taiga/geo"
	"github.com/pthm-cable/taiga/traits"
)

// ValueRow is one cell of the value map in CSV form.
type ValueRow struct {
	X     int  `csv:"x"`
	Y     int  `csv:"y"`
	Value int  `csv:"value"`
	Best  bool `csv:"best"`
}

// Result is everything the decision core produced for a scenario.
type Result struct {
	Values ValueMapView
	Dir    geo.Direction
	Moves  bool
	Food   ai.Food
	Eats   bool
}

// ValueMapView pairs a value map with the extent it covers.
type ValueMapView struct {
	Width, Height int
	Values        ai.ValueMap
	Best          []geo.Position
	Self          geo.Position
}

func main() {
	scenarioPath := flag.String("scenario", "", "Path to scenario YAML (required)")
	configPath := flag.String("config", "", "Path to config.yaml for value profiles (empty = use defaults)")
	csvPath := flag.String("csv", "", "Write the value map as CSV to this path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s, err := LoadScenario(*scenarioPath)
	if err != nil {
		slog.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}

	res, err := Run(s, config.Cfg())
	if err != nil {
		slog.Error("scenario rejected", "error", err)
		os.Exit(1)
	}

	Print(os.Stdout, res)

	if *csvPath != "" {
		if err := WriteCSV(*csvPath, res.Values); err != nil {
			slog.Error("failed to write csv", "error", err)
			os.Exit(1)
		}
	}
}

// Run evaluates the scenario with the species' AI.
func Run(s *Scenario, cfg *config.Config) (*Result, error) {
	v, err := s.Visibility()
	if err != nil {
		return nil, err
	}
	me := s.Agent()
	opts := ai.Options{HungerThreshold: cfg.Decision.HungerThreshold}

	res := &Result{}
	var values ai.ValueMap
	switch me.Species {
	case traits.Predator:
		a := ai.NewPredatorAI(cfg.Profile(traits.Predator), opts)
		p := ai.PredatorInfo{AgentInfo: me}
		values = a.Evaluate(p, v)
		d := ai.Decide[ai.PredatorInfo](a, p, v)
		res.Dir, res.Moves, res.Food, res.Eats = d.Dir, d.Moves, d.Food, d.Eats
	default:
		a := ai.NewPreyAI(cfg.Profile(traits.Prey), opts)
		p := ai.PreyInfo{AgentInfo: me}
		values = a.Evaluate(p, v)
		d := ai.Decide[ai.PreyInfo](a, p, v)
		res.Dir, res.Moves, res.Food, res.Eats = d.Dir, d.Moves, d.Food, d.Eats
	}

	res.Values = ValueMapView{
		Width:  s.Width,
		Height: s.Height,
		Values: values,
		Best:   values.Best(),
		Self:   me.Position,
	}
	return res, nil
}

// Print writes the grid and the decision. The observer's cell is bracketed
// and best cells are starred.
func Print(w io.Writer, res *Result) {
	vm := res.Values
	best := make(map[geo.Position]bool, len(vm.Best))
	for _, p := range vm.Best {
		best[p] = true
	}

	for y := 0; y < vm.Height; y++ {
		var b strings.Builder
		for x := 0; x < vm.Width; x++ {
			p := geo.Pos(x, y)
			mark := " "
			if best[p] {
				mark = "*"
			}
			cell := fmt.Sprintf("%d%s", vm.Values[p], mark)
			if p == vm.Self {
				cell = "[" + cell + "]"
			}
			fmt.Fprintf(&b, "%7s", cell)
		}
		fmt.Fprintln(w, b.String())
	}

	if res.Moves {
		fmt.Fprintf(w, "move: %v\n", res.Dir)
	} else {
		fmt.Fprintln(w, "move: none")
	}
	switch {
	case !res.Eats:
		fmt.Fprintln(w, "feed: none")
	case res.Food.Kind == ai.FoodPrey:
		fmt.Fprintf(w, "feed: unit %d at %v\n", res.Food.Unit.ID, res.Food.Position)
	default:
		fmt.Fprintf(w, "feed: grass at %v (%d/%d)\n", res.Food.Position, res.Food.Grass.Current, res.Food.Grass.Threshold)
	}
}

// Rows flattens a value map in row-major order.
func Rows(vm ValueMapView) []ValueRow {
	best := make(map[geo.Position]bool, len(vm.Best))
	for _, p := range vm.Best {
		best[p] = true
	}
	rows := make([]ValueRow, 0, vm.Width*vm.Height)
	for y := 0; y < vm.Height; y++ {
		for x := 0; x < vm.Width; x++ {
			p := geo.Pos(x, y)
			rows = append(rows, ValueRow{X: x, Y: y, Value: vm.Values[p], Best: best[p]})
		}
	}
	return rows
}

// WriteCSV saves the value map with gocsv.
func WriteCSV(path string, vm ValueMapView) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	rows := Rows(vm)
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
