package world

import (
	"math"

	"github.com/sslteam/stp/geom"
)

const (
	// PossessionDist is how close the ball must be to a robot's center
	// for the robot to control it.
	PossessionDist = RobotMaxRadius + BallMaxRadius + 0.05

	// PassInProgressSpeed is the slowest a ball can travel and still
	// count as a pass.
	PassInProgressSpeed = 0.5

	passCorridor = math.Pi / 9
)

// TeamHasPossession reports whether some robot on t currently has the
// ball at its dribbler and is moving with it.
func TeamHasPossession(w *World, t *Team) bool {
	for _, r := range t.Robots {
		if r.Position.Dist(w.Ball.Position) > PossessionDist {
			continue
		}
		if w.Ball.Velocity.Sub(r.Velocity).Len() < 1.0 {
			return true
		}
	}
	return false
}

// TeamPassInProgress reports whether the ball is travelling, free of
// any robot, towards a robot on t.
func TeamPassInProgress(w *World, t *Team) bool {
	if TeamHasPossession(w, t) {
		return false
	}
	v := w.Ball.Velocity
	if v.Len() < PassInProgressSpeed {
		return false
	}
	heading := v.Orientation()
	for _, r := range t.Robots {
		to := w.Ball.Position.To(r.Position)
		if to.Len() <= PossessionDist {
			continue
		}
		if to.Orientation().Diff(heading) < passCorridor {
			return true
		}
	}
	return false
}

// BallMovingTowards reports whether the ball is moving at least minSpeed
// and closing on p.
func BallMovingTowards(b Ball, p geom.Point, minSpeed float64) bool {
	if b.Velocity.Len() < minSpeed {
		return false
	}
	return b.Velocity.Dot(b.Position.To(p)) > 0
}
