package world

import (
	"time"

	"github.com/sslteam/stp/geom"
)

const (
	RobotMaxRadius = 0.09
	BallMaxRadius  = 0.0215

	RobotMaxSpeed = 2.0
	BallMaxSpeed  = 6.5
)

type RobotID int

type Robot struct {
	ID          RobotID
	Position    geom.Point
	Velocity    geom.Vector
	Orientation geom.Angle
}

// DribblerPoint is the point at the front of the robot where it
// controls the ball.
func (r Robot) DribblerPoint() geom.Point {
	return r.Position.Add(r.Orientation.Unit().Scale(RobotMaxRadius + BallMaxRadius))
}

// TimeToReach is a rough lower bound on how long r needs to get to p,
// assuming it accelerates instantly to its top speed.
func (r Robot) TimeToReach(p geom.Point) time.Duration {
	d := r.Position.Dist(p) - RobotMaxRadius
	if d < 0 {
		d = 0
	}
	return time.Duration(d / RobotMaxSpeed * float64(time.Second))
}

type Team struct {
	Robots []Robot
	Goalie RobotID

	// HasGoalie reports whether Goalie is meaningful.
	HasGoalie bool
}

func (t *Team) Robot(id RobotID) (Robot, bool) {
	for _, r := range t.Robots {
		if r.ID == id {
			return r, true
		}
	}
	return Robot{}, false
}

// Nearest returns the robot closest to p.
func (t *Team) Nearest(p geom.Point) (Robot, bool) {
	var best Robot
	found := false
	for _, r := range t.Robots {
		if !found || r.Position.Dist(p) < best.Position.Dist(p) {
			best = r
			found = true
		}
	}
	return best, found
}

type Ball struct {
	Position geom.Point
	Velocity geom.Vector
}

// Timestamp is the time elapsed since the start of the game.
type Timestamp time.Duration

func FromSeconds(s float64) Timestamp { return Timestamp(s * float64(time.Second)) }

func (t Timestamp) Sub(o Timestamp) time.Duration { return time.Duration(t - o) }
func (t Timestamp) Add(d time.Duration) Timestamp { return t + Timestamp(d) }
func (t Timestamp) Seconds() float64 { return time.Duration(t).Seconds() }
func (t Timestamp) String() string { return time.Duration(t).String() }

// World is a snapshot of everything known at one tick. It is owned by
// whoever drives the tick loop and must not be retained past the tick.
type World struct {
	Field     Field
	Ball      Ball
	Friendly  Team
	Enemy     Team
	GameState GameState
	Timestamp Timestamp
}

// Clone returns a deep copy of w that is safe to keep past the tick.
func (w *World) Clone() World {
	c := *w
	c.Friendly.Robots = append([]Robot(nil), w.Friendly.Robots...)
	c.Enemy.Robots = append([]Robot(nil), w.Enemy.Robots...)
	return c
}
