package pass

import (
	"math"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

const (
	// minPassLength is the shortest pass worth making; anything shorter
	// is better dribbled.
	minPassLength = 0.5

	lineMargin = 0.3

	goalSamples = 10
)

// Params is the context a pass is rated in besides the world itself.
type Params struct {
	Type Type

	Region    geom.Rectangle
	HasRegion bool

	// Passer is excluded from the set of potential receivers.
	Passer    world.RobotID
	HasPasser bool

	MinSpeed float64
	MaxSpeed float64
}

// sigmoid rises from ~0 at offset-width/2 to ~1 at offset+width/2.
func sigmoid(v, offset, width float64) float64 {
	return 1 / (1 + math.Exp(-(v-offset)*8/width))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Rate scores p in w. The result is always in [0,1].
func Rate(w *world.World, p Pass, params Params) float64 {
	r := StaticPositionQuality(w.Field, p.ReceiverPoint()) *
		friendlyCapability(w, p, params) *
		(1 - enemyRisk(w, p)) *
		speedQuality(p, params) *
		sigmoid(p.Length(), minPassLength, 0.2)
	if params.HasRegion {
		r *= sigmoid(-params.Region.Dist(p.ReceiverPoint()), -0.1, 0.2)
	}
	if params.Type == OneTouchShot {
		r *= 0.5 + 0.5*ShootQuality(w, p.ReceiverPoint())
	}
	if math.IsNaN(r) {
		return 0
	}
	return clamp01(r)
}

// StaticPositionQuality rates where a receiver stands, ignoring every
// robot on the field: points near the enemy goal are better, points
// near the field lines or inside a defense area are worse.
func StaticPositionQuality(f world.Field, pt geom.Point) float64 {
	lines := f.Lines()
	q := sigmoid(pt.X-lines.Min.X, lineMargin, lineMargin) *
		sigmoid(lines.Max.X-pt.X, lineMargin, lineMargin) *
		sigmoid(pt.Y-lines.Min.Y, lineMargin, lineMargin) *
		sigmoid(lines.Max.Y-pt.Y, lineMargin, lineMargin)

	goal := pt.Dist(f.EnemyGoalCenter()) / f.XLength()
	q *= 0.4 + 0.6*clamp01(1-goal)

	q *= sigmoid(f.EnemyDefenseArea().Dist(pt), 0.1, 0.2)
	q *= sigmoid(f.FriendlyDefenseArea().Dist(pt), 0.1, 0.2)
	return clamp01(q)
}

func secondsUntil(w *world.World, t world.Timestamp) float64 {
	return t.Sub(w.Timestamp).Seconds()
}

// friendlyCapability is high when some friendly robot other than the
// passer can be at the receiver point before the ball.
func friendlyCapability(w *world.World, p Pass, params Params) float64 {
	ballTime := secondsUntil(w, p.ReceiveTime())
	best := math.Inf(1)
	for _, r := range w.Friendly.Robots {
		if params.HasPasser && r.ID == params.Passer {
			continue
		}
		if t := r.TimeToReach(p.ReceiverPoint()).Seconds(); t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return sigmoid(ballTime-best, 0, 1.0)
}

// enemyRisk is the highest probability that any enemy robot reaches the
// pass line before the ball does.
func enemyRisk(w *world.World, p Pass) float64 {
	if p.Speed() <= 0 {
		return 1
	}
	start := secondsUntil(w, p.StartTime())
	risk := 0.0
	for _, e := range w.Enemy.Robots {
		closest := geom.ClosestOnSegment(e.Position, p.PasserPoint(), p.ReceiverPoint())
		ballTime := start + p.PasserPoint().Dist(closest)/p.Speed()
		enemyTime := math.Max(0, e.Position.Dist(closest)-world.RobotMaxRadius-world.BallMaxRadius) /
			world.RobotMaxSpeed
		if r := sigmoid(ballTime-enemyTime, 0, 1.0); r > risk {
			risk = r
		}
	}
	return risk
}

func speedQuality(p Pass, params Params) float64 {
	return sigmoid(p.Speed()-params.MinSpeed, 0, 0.2) *
		sigmoid(params.MaxSpeed-p.Speed(), 0, 0.2)
}

// ShootQuality is the fraction of the enemy goal mouth a shot from pt
// could reach without passing an enemy robot, scaled down for shots
// with a narrow view of the goal.
func ShootQuality(w *world.World, pt geom.Point) float64 {
	post1, post2 := w.Field.EnemyGoalpostNeg(), w.Field.EnemyGoalpostPos()
	open := 0
	for i := 0; i < goalSamples; i++ {
		t := (float64(i) + 0.5) / goalSamples
		target := post1.Add(post1.To(post2).Scale(t))
		blocked := false
		for _, e := range w.Enemy.Robots {
			if geom.DistToSegment(e.Position, pt, target) < world.RobotMaxRadius+world.BallMaxRadius {
				blocked = true
				break
			}
		}
		if !blocked {
			open++
		}
	}
	view := pt.To(post1).Orientation().Diff(pt.To(post2).Orientation())
	return float64(open) / goalSamples * sigmoid(view.Degrees(), 5, 10)
}
