package pass

import (
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

func team(pts ...geom.Point) world.Team {
	var t world.Team
	for i, p := range pts {
		t.Robots = append(t.Robots, world.Robot{ID: world.RobotID(i), Position: p})
	}
	return t
}

func cornerWorld() *world.World {
	return &world.World{
		Field: world.DivisionB(),
		Ball:  world.Ball{Position: geom.Pt(4.4, 2.9)},
		Friendly: team(
			geom.Pt(-4.2, 0), geom.Pt(4.2, 2.8), geom.Pt(2.5, -1),
			geom.Pt(2, 1.5), geom.Pt(0, -1.5), geom.Pt(1.5, 0),
		),
		Enemy: team(
			geom.Pt(4.4, 0), geom.Pt(3.2, 0.6), geom.Pt(3.2, -0.6),
			geom.Pt(2.5, 1.8),
		),
		GameState: world.GameState{State: world.Ready, Restart: world.DirectFree, Ours: true},
	}
}

func defaultParams() Params {
	cfg := DefaultConfig()
	return Params{Type: OneTouchShot, MinSpeed: cfg.MinSpeed, MaxSpeed: cfg.MaxSpeed}
}

func TestPassGeometry(t *testing.T) {
	p := New(geom.Pt(0, 0), geom.Pt(3, 4), 2.5, world.FromSeconds(1))
	assert.Equal(t, 5.0, p.Length())
	assert.Equal(t, 2*time.Second, p.TravelTime())
	assert.Equal(t, world.FromSeconds(3), p.ReceiveTime())
	assert.InDelta(t, math.Pi, float64(p.PasserOrientation().Diff(p.ReceiverOrientation())), 1e-9)
	assert.Equal(t, time.Duration(0), New(geom.Pt(0, 0), geom.Pt(1, 0), 0, 0).TravelTime())
}

func TestRateBounds(t *testing.T) {
	w := cornerWorld()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		p := New(
			geom.Pt(rng.Float64()*12-6, rng.Float64()*8-4),
			geom.Pt(rng.Float64()*12-6, rng.Float64()*8-4),
			rng.Float64()*10-1,
			world.FromSeconds(rng.Float64()*3-1),
		)
		params := defaultParams()
		if i%2 == 0 {
			params.Type = ReceiveAndDribble
			params.Region = geom.Rect(geom.Pt(1, 3), geom.Pt(4.5, -3))
			params.HasRegion = true
		}
		r := Rate(w, p, params)
		require.False(t, math.IsNaN(r), "%s", p)
		require.GreaterOrEqual(t, r, 0.0, "%s", p)
		require.LessOrEqual(t, r, 1.0, "%s", p)
	}
}

// openWorld has a single receiver with a clear line from the ball.
func openWorld() *world.World {
	return &world.World{
		Field:     world.DivisionB(),
		Ball:      world.Ball{Position: geom.Pt(4.4, 2.9)},
		Friendly:  team(geom.Pt(-4.2, 0), geom.Pt(4.2, 2.8), geom.Pt(2.5, 1)),
		Enemy:     team(geom.Pt(4.4, 0), geom.Pt(0, -2)),
		GameState: world.GameState{State: world.Ready, Restart: world.DirectFree, Ours: true},
	}
}

func TestRateOrdering(t *testing.T) {
	w := openWorld()
	params := defaultParams()
	ball := w.Ball.Position
	open := New(ball, geom.Pt(2.5, 1), 4, world.FromSeconds(0.2))

	base := Rate(w, open, params)
	assert.Greater(t, base, 0.1)

	t.Run("out of the field", func(t *testing.T) {
		assert.Less(t, Rate(w, New(ball, geom.Pt(2.5, 4), 4, 0), params), base)
	})
	t.Run("too short", func(t *testing.T) {
		assert.Less(t, Rate(w, New(ball, geom.Pt(4.3, 2.8), 4, 0), params), base)
	})
	t.Run("too slow", func(t *testing.T) {
		assert.Less(t, Rate(w, New(ball, geom.Pt(2.5, 1), 0.5, world.FromSeconds(0.2)), params), base)
	})
	t.Run("intercepted", func(t *testing.T) {
		blocked := w.Clone()
		mid := ball.Add(ball.To(open.ReceiverPoint()).Scale(0.5))
		blocked.Enemy.Robots = append(blocked.Enemy.Robots, world.Robot{ID: 9, Position: mid})
		assert.Less(t, Rate(&blocked, open, params), base)
	})
	t.Run("no receiver", func(t *testing.T) {
		alone := w.Clone()
		alone.Friendly.Robots = alone.Friendly.Robots[1:2]
		p := params
		p.Passer, p.HasPasser = 1, true
		assert.Equal(t, 0.0, Rate(&alone, open, p))
	})
}

func TestStaticPositionQuality(t *testing.T) {
	f := world.DivisionB()
	near := StaticPositionQuality(f, geom.Pt(2.5, 1))
	far := StaticPositionQuality(f, geom.Pt(-2.5, 1))
	assert.Greater(t, near, far)
	assert.Less(t, StaticPositionQuality(f, geom.Pt(4.2, 0)), near)
	assert.Less(t, StaticPositionQuality(f, geom.Pt(2.5, 2.99)), near)
}

func TestShootQuality(t *testing.T) {
	w := cornerWorld()
	w.Enemy.Robots = nil
	clear := ShootQuality(w, geom.Pt(3, 0))
	assert.InDelta(t, 1, clear, 0.01)

	w.Enemy.Robots = []world.Robot{{Position: geom.Pt(4.4, 0)}}
	assert.Less(t, ShootQuality(w, geom.Pt(3, 0)), clear)

	// Almost on the goal line, the mouth is barely visible.
	w.Enemy.Robots = nil
	assert.Less(t, ShootQuality(w, geom.Pt(4.45, 2.5)), 0.5)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TimeBudget = 0
	cfg.Seed = 42
	return cfg
}

func TestGeneratorDeterministic(t *testing.T) {
	w := cornerWorld()
	run := func() WithRating {
		g := NewGenerator(w, w.Ball.Position, OneTouchShot, testConfig())
		g.SetTargetRegion(geom.Rect(geom.Pt(1, 3), w.Field.EnemyCornerNeg()))
		g.SetPasserRobotID(1)
		for i := 0; i < 10; i++ {
			g.SetWorld(w)
		}
		return g.BestPassSoFar()
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestGeneratorAnytime(t *testing.T) {
	w := cornerWorld()
	cfg := testConfig()
	g := NewGenerator(w, w.Ball.Position, OneTouchShot, cfg)
	g.SetPasserRobotID(1)

	prev := g.BestPassSoFar()
	assert.Equal(t, w.Ball.Position, prev.Pass.PasserPoint())
	for i := 0; i < 20; i++ {
		w.Timestamp = w.Timestamp.Add(time.Second / 60)
		g.SetWorld(w)
		cur := g.BestPassSoFar()
		assert.GreaterOrEqual(t, cur.Rating, prev.Rating-1e-9)
		assert.GreaterOrEqual(t, cur.Pass.StartTime(), w.Timestamp)
		prev = cur
	}
	assert.Equal(t, 20*cfg.IterationsPerTick, g.Stats().Iterations)
	assert.Greater(t, g.Stats().Reseeds, 0)
}

func TestGeneratorTargetRegion(t *testing.T) {
	w := cornerWorld()
	g := NewGenerator(w, w.Ball.Position, OneTouchShot, testConfig())
	region := geom.Rect(geom.Pt(1, 0), geom.Pt(3, -2.5))
	g.SetTargetRegion(region)
	assert.True(t, region.Contains(g.BestPassSoFar().Pass.ReceiverPoint()))

	g.SetPassType(ReceiveAndDribble)
	assert.True(t, region.Contains(g.BestPassSoFar().Pass.ReceiverPoint()))
}

func TestGeneratorTracksPasser(t *testing.T) {
	w := cornerWorld()
	g := NewGenerator(w, w.Ball.Position, OneTouchShot, testConfig())
	g.SetPasserPoint(geom.Pt(4, 2))
	g.SetWorld(w)
	assert.Equal(t, geom.Pt(4, 2), g.BestPassSoFar().Pass.PasserPoint())
}

func TestGeneratorConcurrentReads(t *testing.T) {
	w := cornerWorld()
	g := NewGenerator(w, w.Ball.Position, OneTouchShot, testConfig())
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				r := g.BestPassSoFar().Rating
				if r < 0 || r > 1 {
					t.Errorf("rating out of range: %f", r)
				}
			}
		}
	}()
	for i := 0; i < 10; i++ {
		g.SetWorld(w)
	}
	close(stop)
	wg.Wait()
}

func TestRateAllMatchesSequential(t *testing.T) {
	w := cornerWorld()
	for _, workers := range []int{1, 3, 7, 64} {
		cfg := testConfig()
		cfg.Workers = workers
		g := NewGenerator(w, w.Ball.Position, OneTouchShot, cfg)
		before := g.st.Evaluated
		got := g.rateAll(g.pop)
		require.Len(t, got, len(g.pop))
		for i, c := range g.pop {
			assert.Equal(t, g.rate(c), got[i], "workers=%d candidate %d", workers, i)
		}
		assert.Equal(t, before+uint64(len(g.pop)), g.st.Evaluated)
	}
}

func TestConfigFill(t *testing.T) {
	var cfg Config
	cfg.fill()
	def := DefaultConfig()
	assert.Equal(t, def.NumPasses, cfg.NumPasses)
	assert.Equal(t, def.MaxSpeed, cfg.MaxSpeed)
	assert.Equal(t, 1, cfg.Workers)
}
