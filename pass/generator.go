package pass

import (
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sslteam/stp/conf"
	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

type Config struct {
	NumPasses         int           `json:"num_passes"`
	IterationsPerTick int           `json:"iterations_per_tick"`
	TimeBudget        conf.Duration `json:"time_budget"`
	Workers           int           `json:"workers"`
	ReseedInterval    int           `json:"reseed_interval"`

	MinSpeed      float64       `json:"min_speed"`
	MaxSpeed      float64       `json:"max_speed"`
	MaxStartDelay conf.Duration `json:"max_start_delay"`

	// StepSize is the standard deviation, in meters, of the receiver
	// point perturbation.
	StepSize float64 `json:"step_size"`

	Seed  int64 `json:"seed"`
	Debug int   `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		NumPasses:         20,
		IterationsPerTick: 5,
		TimeBudget:        conf.Duration(5 * time.Millisecond),
		Workers:           4,
		ReseedInterval:    25,
		MinSpeed:          1.5,
		MaxSpeed:          5.5,
		MaxStartDelay:     conf.Duration(time.Second),
		StepSize:          0.2,
	}
}

func (c *Config) fill() {
	def := DefaultConfig()
	if c.NumPasses <= 0 {
		c.NumPasses = def.NumPasses
	}
	if c.IterationsPerTick <= 0 {
		c.IterationsPerTick = def.IterationsPerTick
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.MaxSpeed <= 0 {
		c.MinSpeed, c.MaxSpeed = def.MinSpeed, def.MaxSpeed
	}
	if c.StepSize <= 0 {
		c.StepSize = def.StepSize
	}
}

type Stats struct {
	Iterations int
	Evaluated  uint64
	Reseeds    int
	Elapsed    time.Duration
}

// candidate is a pass relative to "now": it becomes a Pass once the
// current passer point and timestamp are known.
type candidate struct {
	receiver geom.Point
	speed    float64
	delay    time.Duration
}

// Generator is an anytime search for the best pass from a passer point
// into a target region. Each SetWorld advances the search by at most
// IterationsPerTick iterations or TimeBudget, whichever comes first, so
// the search makes progress only while someone keeps feeding it and
// leaves nothing running once they stop.
type Generator struct {
	cfg  Config
	rand *rand.Rand

	w      world.World
	passer geom.Point
	params Params

	pop     []candidate
	ratings []float64

	best       candidate
	bestRating float64
	hasBest    bool

	st Stats

	mu        sync.Mutex
	published WithRating
}

func NewGenerator(w *world.World, passer geom.Point, typ Type, cfg Config) *Generator {
	cfg.fill()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		cfg:    cfg,
		rand:   rand.New(rand.NewSource(seed)),
		w:      w.Clone(),
		passer: passer,
		params: Params{
			Type:     typ,
			MinSpeed: cfg.MinSpeed,
			MaxSpeed: cfg.MaxSpeed,
		},
	}
	if cfg.Debug > 0 {
		log.Printf("[passgen] seed=%d type=%s", seed, typ)
	}
	g.reseedAll()
	return g
}

// SetWorld replaces the snapshot the search rates against and runs this
// tick's share of the search. The snapshot is copied.
func (g *Generator) SetWorld(w *world.World) {
	g.w = w.Clone()
	g.rerate()
	g.optimize()
}

func (g *Generator) SetPasserPoint(p geom.Point) {
	g.passer = p
}

func (g *Generator) SetPasserRobotID(id world.RobotID) {
	g.params.Passer = id
	g.params.HasPasser = true
	g.rerate()
}

func (g *Generator) SetTargetRegion(r geom.Rectangle) {
	g.params.Region = r
	g.params.HasRegion = true
	g.reseedAll()
}

func (g *Generator) SetPassType(t Type) {
	if g.params.Type == t {
		return
	}
	g.params.Type = t
	g.reseedAll()
}

// BestPassSoFar returns the best pass found, rated against the most
// recent world. It never waits on the search.
func (g *Generator) BestPassSoFar() WithRating {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.published
}

func (g *Generator) Stats() Stats { return g.st }

func (g *Generator) materialize(c candidate) Pass {
	return New(g.passer, c.receiver, c.speed, g.w.Timestamp.Add(c.delay))
}

func (g *Generator) rate(c candidate) float64 {
	return Rate(&g.w, g.materialize(c), g.params)
}

// rateAll rates cs in parallel. Ratings are pure functions of the
// candidate and the generator's current inputs, so the result does not
// depend on scheduling.
func (g *Generator) rateAll(cs []candidate) []float64 {
	out := make([]float64, len(cs))
	chunk := (len(cs) + g.cfg.Workers - 1) / g.cfg.Workers
	var grp errgroup.Group
	for lo := 0; lo < len(cs); lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > len(cs) {
			hi = len(cs)
		}
		grp.Go(func() error {
			for i := lo; i < hi; i++ {
				out[i] = g.rate(cs[i])
			}
			return nil
		})
	}
	// Rating cannot fail; the group is only used to fan out.
	_ = grp.Wait()
	g.st.Evaluated += uint64(len(cs))
	return out
}

func (g *Generator) searchArea() geom.Rectangle {
	if g.params.HasRegion {
		return g.params.Region
	}
	return g.w.Field.Lines()
}

func (g *Generator) random() candidate {
	area := g.searchArea()
	return candidate{
		receiver: geom.Pt(
			area.Min.X+g.rand.Float64()*area.XLength(),
			area.Min.Y+g.rand.Float64()*area.YLength(),
		),
		speed: g.cfg.MinSpeed + g.rand.Float64()*(g.cfg.MaxSpeed-g.cfg.MinSpeed),
		delay: time.Duration(g.rand.Float64() * float64(g.cfg.MaxStartDelay.D())),
	}
}

func (g *Generator) perturb(c candidate) candidate {
	lines := g.w.Field.Lines()
	c.receiver = lines.Clamp(geom.Pt(
		c.receiver.X+g.rand.NormFloat64()*g.cfg.StepSize,
		c.receiver.Y+g.rand.NormFloat64()*g.cfg.StepSize,
	))
	c.speed = math.Max(g.cfg.MinSpeed, math.Min(g.cfg.MaxSpeed,
		c.speed+g.rand.NormFloat64()*0.3))
	c.delay += time.Duration(g.rand.NormFloat64() * float64(100*time.Millisecond))
	if c.delay < 0 {
		c.delay = 0
	} else if c.delay > g.cfg.MaxStartDelay.D() {
		c.delay = g.cfg.MaxStartDelay.D()
	}
	return c
}

func (g *Generator) reseedAll() {
	g.pop = make([]candidate, g.cfg.NumPasses)
	for i := range g.pop {
		g.pop[i] = g.random()
	}
	g.ratings = g.rateAll(g.pop)
	g.hasBest = false
	g.updateBest()
}

// reseed replaces the worse half of the population with fresh random
// candidates.
func (g *Generator) reseed() {
	idx := make([]int, len(g.pop))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return g.ratings[idx[a]] > g.ratings[idx[b]]
	})
	worse := idx[len(idx)/2:]
	fresh := make([]candidate, len(worse))
	for i := range fresh {
		fresh[i] = g.random()
	}
	rs := g.rateAll(fresh)
	for i, j := range worse {
		g.pop[j] = fresh[i]
		g.ratings[j] = rs[i]
	}
	g.st.Reseeds++
}

func (g *Generator) rerate() {
	g.ratings = g.rateAll(g.pop)
	if g.hasBest {
		g.bestRating = g.rate(g.best)
	}
	g.updateBest()
}

func (g *Generator) optimize() {
	start := time.Now()
	for i := 0; i < g.cfg.IterationsPerTick; i++ {
		if g.cfg.TimeBudget > 0 && i > 0 && time.Since(start) > g.cfg.TimeBudget.D() {
			if g.cfg.Debug > 2 {
				log.Printf("[passgen] time cutoff: iterations=%d used=%s", i, time.Since(start))
			}
			break
		}
		g.iterate()
	}
	g.st.Elapsed += time.Since(start)
	if g.cfg.Debug > 2 {
		best := g.BestPassSoFar()
		log.Printf("[passgen] iterations=%d evaluated=%d best=%s rating=%.3f",
			g.st.Iterations, g.st.Evaluated, best.Pass, best.Rating)
	}
}

func (g *Generator) iterate() {
	next := make([]candidate, len(g.pop))
	for i, c := range g.pop {
		next[i] = g.perturb(c)
	}
	rs := g.rateAll(next)
	for i := range next {
		if rs[i] > g.ratings[i] {
			g.pop[i] = next[i]
			g.ratings[i] = rs[i]
		}
	}
	g.st.Iterations++
	if g.cfg.ReseedInterval > 0 && g.st.Iterations%g.cfg.ReseedInterval == 0 {
		g.reseed()
	}
	g.updateBest()
}

func (g *Generator) updateBest() {
	for i, c := range g.pop {
		if !g.hasBest || g.ratings[i] > g.bestRating {
			g.best = c
			g.bestRating = g.ratings[i]
			g.hasBest = true
		}
	}
	g.mu.Lock()
	g.published = WithRating{Pass: g.materialize(g.best), Rating: g.bestRating}
	g.mu.Unlock()
}
