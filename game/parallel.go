package game

import (
	"log/slog"
	"math/rand"
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/taiga/ai"
	"github.com/pthm-cable/taiga/components"
	"github.com/pthm-cable/taiga/config"
	"github.com/pthm-cable/taiga/systems"
	"github.com/pthm-cable/taiga/telemetry"
	"github.com/pthm-cable/taiga/traits"
)

// parallelThreshold is the minimum creature count to decide in parallel.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// creatureSnapshot captures read-only state for the decide phase.
type creatureSnapshot struct {
	Entity ecs.Entity
	Info   ai.AgentInfo
	Radius int
	Remote bool
}

// intent captures a decision to apply after the decide phase.
type intent struct {
	ai.Decision
	Err error
}

// chunkAI holds the AIs of one chunk. Each chunk has its own random source,
// so a chunk must only ever be processed by one goroutine at a time.
type chunkAI struct {
	prey       *ai.PreyAI
	pred       *ai.PredatorAI
	remotePrey ai.RemoteAI[ai.PreyInfo]
	remotePred ai.RemoteAI[ai.PredatorInfo]
}

func (a *chunkAI) decide(snap *creatureSnapshot, v *ai.Visibility) ai.Decision {
	switch snap.Info.Species {
	case traits.Predator:
		me := ai.PredatorInfo{AgentInfo: snap.Info}
		if snap.Remote {
			return ai.Decide[ai.PredatorInfo](a.remotePred, me, v)
		}
		return ai.Decide[ai.PredatorInfo](a.pred, me, v)
	default:
		me := ai.PreyInfo{AgentInfo: snap.Info}
		if snap.Remote {
			return ai.Decide[ai.PreyInfo](a.remotePrey, me, v)
		}
		return ai.Decide[ai.PreyInfo](a.prey, me, v)
	}
}

// workChunk represents a range of creatures for a worker to process.
type workChunk struct {
	index      int
	start, end int
}

// parallelState holds resources for the snapshot/decide/apply cycle.
type parallelState struct {
	snapshots []creatureSnapshot
	intents   []intent
	units     []ai.Unit
	index     systems.UnitIndex
	byID      map[uint32]ecs.Entity

	// One AI set per chunk. The chunk count is fixed by config; workers
	// only change who runs a chunk, never its rand source.
	chunks     []chunkAI
	numWorkers int
	enabled    bool

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(cfg *config.Config, rng *rand.Rand) *parallelState {
	chunks := make([]chunkAI, cfg.Decision.Chunks)
	numWorkers := cfg.Decision.Workers
	if numWorkers == 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	numWorkers = min(numWorkers, len(chunks))
	for i := range chunks {
		opts := ai.Options{
			HungerThreshold: cfg.Decision.HungerThreshold,
			Rand:            rand.New(rand.NewSource(rng.Int63())),
		}
		chunks[i].prey = ai.NewPreyAI(cfg.Profile(traits.Prey), opts)
		chunks[i].pred = ai.NewPredatorAI(cfg.Profile(traits.Predator), opts)
	}
	return &parallelState{
		numWorkers: numWorkers,
		enabled:    cfg.Decision.Parallel,
		chunks:     chunks,
		snapshots:  make([]creatureSnapshot, 0, 512),
		intents:    make([]intent, 0, 512),
		units:      make([]ai.Unit, 0, 512),
		byID:       make(map[uint32]ecs.Entity, 512),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, len(p.chunks))
	p.doneChan = make(chan struct{}, len(p.chunks))
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// snapshot captures every living creature and indexes them by position.
func (g *Game) snapshot() {
	cfg := g.config()
	p := g.parallel

	p.snapshots = p.snapshots[:0]
	p.units = p.units[:0]
	clear(p.byID)

	query := g.creatureFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, c, h, gest := query.Get()
		if c.Dead {
			continue
		}

		info := ai.AgentInfo{
			ID:        c.ID,
			Species:   c.Species,
			Sex:       c.Sex,
			Adult:     c.Adult(cfg.Lifecycle.MaturityAge),
			Health:    h.Value,
			Pregnancy: gest.Pregnancy(),
			Position:  pos.Geo(),
		}
		radius := cfg.Vision.PreyRadius
		if c.Species == traits.Predator {
			radius = cfg.Vision.PredRadius
		}

		p.snapshots = append(p.snapshots, creatureSnapshot{
			Entity: entity,
			Info:   info,
			Radius: radius,
			Remote: c.Controller == components.ControllerRemote,
		})
		p.units = append(p.units, ai.Unit{
			ID:       c.ID,
			Position: info.Position,
			Species:  c.Species,
			Sex:      c.Sex,
			Adult:    info.Adult,
			Pregnant: gest.Pregnant(),
		})
		p.byID[c.ID] = entity
	}

	p.index = systems.NewUnitIndex(p.units)
}

// decide computes an intent for every snapshot. The work is always split into
// the same number of chunks, each with its own AI set, so the outcome for a
// given seed depends neither on the worker count nor on running serially.
func (g *Game) decide() {
	p := g.parallel
	n := len(p.snapshots)
	if cap(p.intents) < n {
		p.intents = make([]intent, n)
	}
	p.intents = p.intents[:n]
	if n == 0 {
		return
	}

	numChunks := len(p.chunks)
	chunkSize := (n + numChunks - 1) / numChunks
	var work []workChunk
	for k := 0; k < numChunks; k++ {
		start := k * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}
		work = append(work, workChunk{index: k, start: start, end: end})
	}

	if !p.enabled || n < parallelThreshold {
		for _, chunk := range work {
			g.computeChunk(chunk)
		}
		return
	}

	if !p.running {
		p.startWorkers(g)
	}
	for _, chunk := range work {
		p.workChan <- chunk
	}
	for range work {
		<-p.doneChan
	}
}

// computeChunk builds perception and runs the AI for a range of creatures.
// It only reads the fields and the unit index.
func (g *Game) computeChunk(chunk workChunk) {
	p := g.parallel
	a := &p.chunks[chunk.index]

	for i := chunk.start; i < chunk.end; i++ {
		snap := &p.snapshots[i]
		in := &p.intents[i]
		*in = intent{}

		v, err := g.vision.Snapshot(snap.Info.ID, snap.Info.Position, snap.Radius, p.index)
		if err != nil {
			in.Err = err
			continue
		}
		in.Decision = a.decide(snap, v)
	}
}

// applyIntents feeds and moves creatures in snapshot order.
func (g *Game) applyIntents() {
	cfg := g.config()
	p := g.parallel

	for i := range p.snapshots {
		snap := &p.snapshots[i]
		in := &p.intents[i]
		if in.Err != nil {
			slog.Warn("decision skipped", "id", snap.Info.ID, "error", in.Err)
			continue
		}

		pos, c, h, _ := g.creatureMapper.Get(snap.Entity)
		if c.Dead {
			// Eaten earlier this tick.
			continue
		}

		if in.Eats {
			g.feed(pos, c, h, in.Food)
		}
		if in.Moves {
			pos.Set(pos.Geo().By(in.Dir).Clamp(cfg.World.Width, cfg.World.Height))
		}
		g.collector.RecordMove(in.Moves)
	}
}

// feed applies one eating decision.
func (g *Game) feed(pos *components.Position, c *components.Creature, h *components.Health, food ai.Food) {
	lc := g.config().Lifecycle

	switch food.Kind {
	case ai.FoodGrass:
		if !c.Species.Grazes() {
			return
		}
		eaten := g.grass.Graze(pos.Geo(), lc.GrazeBite)
		if eaten == 0 {
			return
		}
		h.Value += float64(eaten) * lc.GrazeGain
		h.Clamp()
		g.collector.RecordGraze(eaten)

	case ai.FoodPrey:
		target, ok := g.parallel.byID[food.Unit.ID]
		if !ok || !g.world.Alive(target) {
			return
		}
		_, tc, _, _ := g.creatureMapper.Get(target)
		if tc.Dead || !c.Species.Eats(tc.Species) {
			return
		}
		tc.Dead = true
		h.Value += lc.KillGain
		h.Clamp()
		g.collector.RecordDeath(tc.Species, telemetry.CauseEaten)
	}
}
