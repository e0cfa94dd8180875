package tactic

import (
	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

const (
	MoveDoneDist  = 0.05
	MoveDoneAngle = geom.Angle(0.1)
)

// Move drives a robot to a position and orientation. A Move created with
// loopForever never reports done, which suits robots that should hold a
// position for as long as the play runs.
type Move struct {
	Base
	loopForever bool

	dest        geom.Point
	orientation geom.Angle
	finalSpeed  float64
}

func NewMove(loopForever bool) *Move {
	return &Move{loopForever: loopForever}
}

func (*Move) Name() string { return "move" }

func (m *Move) UpdateControlParams(dest geom.Point, orientation geom.Angle, finalSpeed float64) {
	m.dest = dest
	m.orientation = orientation
	m.finalSpeed = finalSpeed
}

func (m *Move) Destination() (geom.Point, geom.Angle) {
	return m.dest, m.orientation
}

func (m *Move) Target(*world.World) geom.Point { return m.dest }

func (m *Move) Run(w *world.World, r world.Robot) Intent {
	m.done = !m.loopForever &&
		r.Position.Dist(m.dest) <= MoveDoneDist &&
		r.Orientation.Diff(m.orientation) <= MoveDoneAngle
	return Intent{Dest: m.dest, Orientation: m.orientation}
}
