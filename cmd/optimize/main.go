// Command optimize searches lifecycle, perception and decision parameters
// with CMA-ES for worlds where prey and predators coexist longest.
//
// Every evaluation is appended to evals.csv (one row per evaluation) and
// params.csv (one row per parameter). The best vector found is written as
// best_config.yaml next to best_seeds.csv, its per-seed breakdown.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/taiga/config"
)

type options struct {
	configPath string
	outputDir  string
	maxTicks   int
	seeds      int
	maxEvals   int
	population int
	stepSize   float64
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&o.outputDir, "output", "", "Output directory for results")
	flag.IntVar(&o.maxTicks, "max-ticks", 20000, "Tick cap per run")
	flag.IntVar(&o.seeds, "seeds", 3, "Seeds per evaluation")
	flag.IntVar(&o.maxEvals, "max-evals", 200, "Evaluation budget")
	flag.IntVar(&o.population, "population", 0, "CMA-ES population size (0 = 4 + 3*dim/2)")
	flag.Float64Var(&o.stepSize, "step", 0.3, "Initial CMA-ES step size in normalized space")
	flag.Parse()
	return o
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(parseFlags()); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()
	seeds := make([]int64, o.seeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}

	log, err := newRunLog(o.outputDir)
	if err != nil {
		return err
	}
	defer log.Close()

	t := &tuner{
		params:   params,
		eval:     NewFitnessEvaluator(params, int32(o.maxTicks), seeds, config.Cfg()),
		log:      log,
		maxEvals: o.maxEvals,
		start:    time.Now(),
	}

	pop := o.population
	if pop == 0 {
		pop = 4 + 3*params.Dim()/2
	}
	slog.Info("starting",
		"params", params.Dim(),
		"population", pop,
		"max_evals", o.maxEvals,
		"seeds", o.seeds,
		"max_ticks", o.maxTicks,
	)

	_, err = optimize.Minimize(
		optimize.Problem{Func: t.objective},
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: o.maxEvals, Concurrent: 1},
		&optimize.CmaEsChol{InitStepSize: o.stepSize, Population: pop},
	)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if t.best == nil {
		return fmt.Errorf("no evaluation completed in %d attempts", t.count)
	}

	return t.writeBest(o)
}

// tuner is the CMA-ES objective. It keeps the best evaluation seen, since
// the optimizer's final point need not be the best one visited.
type tuner struct {
	params   *ParamVector
	eval     *FitnessEvaluator
	log      *runLog
	maxEvals int
	start    time.Time

	count int
	best  *candidate
}

type candidate struct {
	raw []float64
	ev  Evaluation
}

// worstFitness is what a rejected or unrunnable vector scores: no coexistence.
const worstFitness = 0

func (t *tuner) objective(x []float64) float64 {
	t.count++
	raw := t.params.Clamp(t.params.Denormalize(x))

	ev, err := t.eval.Evaluate(raw)
	if err != nil {
		slog.Warn("evaluation rejected", "eval", t.count, "error", err)
		ev.Fitness = worstFitness
	}
	if logErr := t.log.record(t.count, t.params, raw, ev, time.Since(t.start)); logErr != nil {
		slog.Warn("writing evaluation log", "error", logErr)
	}
	if err != nil {
		return worstFitness
	}

	if t.best == nil || ev.Fitness < t.best.ev.Fitness {
		t.best = &candidate{raw: raw, ev: ev}
	}

	elapsed := time.Since(t.start)
	eta := time.Duration(t.maxEvals-t.count) * (elapsed / time.Duration(t.count))
	slog.Info("eval",
		"n", t.count,
		"prey_ticks", int(ev.PreyTicks),
		"pred_ticks", int(ev.PredTicks),
		"quality", fmt.Sprintf("%.3f", ev.Quality),
		"failed", ev.Failed,
		"best", int(t.best.ev.Fitness),
		"elapsed", elapsed.Round(time.Second),
		"eta", eta.Round(time.Second),
	)
	return ev.Fitness
}

// writeBest saves the best vector as a loadable config plus its seed table.
func (t *tuner) writeBest(o options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	if err := t.params.ApplyToConfig(cfg, t.best.raw); err != nil {
		return fmt.Errorf("applying best parameters: %w", err)
	}
	cfgPath := filepath.Join(o.outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(cfgPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}

	seedsPath := filepath.Join(o.outputDir, "best_seeds.csv")
	if err := writeSeeds(seedsPath, t.best.ev.Seeds); err != nil {
		return err
	}

	for i, spec := range t.params.Specs {
		slog.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", t.best.raw[i])
	}
	slog.Info("done",
		"evals", t.count,
		"prey_ticks", int(t.best.ev.PreyTicks),
		"pred_ticks", int(t.best.ev.PredTicks),
		"quality", t.best.ev.Quality,
		"config", cfgPath,
		"seeds", seedsPath,
		"took", time.Since(t.start).Round(time.Second),
	)
	return nil
}

// EvalRow is one line of evals.csv.
type EvalRow struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	Quality   float64 `csv:"quality"`
	PreyTicks float64 `csv:"prey_ticks"`
	PredTicks float64 `csv:"pred_ticks"`
	Failed    int     `csv:"failed_seeds"`
	Seconds   float64 `csv:"elapsed_s"`
}

// ParamRow is one line of params.csv.
type ParamRow struct {
	Eval  int     `csv:"eval"`
	Name  string  `csv:"param"`
	Value float64 `csv:"value"`
}

// runLog appends evaluation records as they happen.
type runLog struct {
	evals  *csvAppender
	params *csvAppender
}

func newRunLog(dir string) (*runLog, error) {
	evals, err := newCSVAppender(filepath.Join(dir, "evals.csv"))
	if err != nil {
		return nil, err
	}
	params, err := newCSVAppender(filepath.Join(dir, "params.csv"))
	if err != nil {
		evals.Close()
		return nil, err
	}
	return &runLog{evals: evals, params: params}, nil
}

func (l *runLog) record(n int, pv *ParamVector, raw []float64, ev Evaluation, elapsed time.Duration) error {
	row := []EvalRow{{
		Eval:      n,
		Fitness:   ev.Fitness,
		Quality:   ev.Quality,
		PreyTicks: ev.PreyTicks,
		PredTicks: ev.PredTicks,
		Failed:    ev.Failed,
		Seconds:   elapsed.Seconds(),
	}}
	if err := l.evals.append(&row); err != nil {
		return err
	}

	rows := make([]ParamRow, len(pv.Specs))
	for i, spec := range pv.Specs {
		rows[i] = ParamRow{Eval: n, Name: spec.Name, Value: raw[i]}
	}
	return l.params.append(&rows)
}

func (l *runLog) Close() {
	l.evals.Close()
	l.params.Close()
}

// csvAppender writes the header with the first batch only.
type csvAppender struct {
	f      *os.File
	header bool
}

func newCSVAppender(path string) (*csvAppender, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &csvAppender{f: f}, nil
}

func (a *csvAppender) append(rows any) error {
	if !a.header {
		a.header = true
		return gocsv.Marshal(rows, a.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, a.f)
}

func (a *csvAppender) Close() error {
	return a.f.Close()
}

func writeSeeds(path string, seeds []SeedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&seeds, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
