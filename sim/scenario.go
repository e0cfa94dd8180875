package sim

import (
	"math/rand"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

const jitter = 0.2

var (
	friendlyHome = []geom.Point{
		{X: -4.2, Y: 0}, {X: -2, Y: 1}, {X: -2, Y: -1},
		{X: 0, Y: 1.5}, {X: 0, Y: -1.5}, {X: 1.5, Y: 0},
	}
	enemyHome = []geom.Point{
		{X: 4.4, Y: 0}, {X: 3.2, Y: 0.6}, {X: 3.2, Y: -0.6},
		{X: 2.5, Y: 1.8}, {X: 2.0, Y: -1.5}, {X: 0.5, Y: 0},
	}
)

// CornerKick builds a division B world set up for our free kick from the
// attacking corner on the +y side, or the -y side if posY is false.
// Robot positions are jittered by seed.
func CornerKick(posY bool, seed int64) world.World {
	rng := rand.New(rand.NewSource(seed))
	f := world.DivisionB()
	corner := f.EnemyCornerNeg().Add(geom.Vec(-0.1, 0.1))
	flip := -1.0
	if posY {
		corner = f.EnemyCornerPos().Add(geom.Vec(-0.1, -0.1))
		flip = 1.0
	}

	w := world.World{
		Field: f,
		Ball:  world.Ball{Position: corner},
		GameState: world.GameState{
			State:   world.Ready,
			Restart: world.DirectFree,
			Ours:    true,
		},
	}
	w.Friendly.HasGoalie = true
	w.Friendly.Goalie = 0
	for i, p := range friendlyHome {
		w.Friendly.Robots = append(w.Friendly.Robots, world.Robot{
			ID:       world.RobotID(i),
			Position: jittered(rng, p, i != 0),
		})
	}
	w.Enemy.HasGoalie = true
	w.Enemy.Goalie = 0
	for i, p := range enemyHome {
		p.Y *= flip
		home := jittered(rng, p, i != 0)
		w.Enemy.Robots = append(w.Enemy.Robots, world.Robot{
			ID:          world.RobotID(i),
			Position:    home,
			Orientation: home.To(corner).Orientation(),
		})
	}
	return w
}

func jittered(rng *rand.Rand, p geom.Point, on bool) geom.Point {
	if !on {
		return p
	}
	return p.Add(geom.Vec((rng.Float64()*2-1)*jitter, (rng.Float64()*2-1)*jitter))
}
