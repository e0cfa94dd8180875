package tactic

import (
	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

type Kick struct {
	Direction geom.Angle
	Speed     float64
}

// Intent is what a tactic wants its robot to do this tick.
type Intent struct {
	Dest        geom.Point
	Orientation geom.Angle
	Dribble     bool
	Kick        *Kick
}

// Tactic is a single-robot behavior. Tactics are long lived: a play
// creates them once and updates their control parameters every tick.
// Each kind has its own UpdateControlParams.
type Tactic interface {
	Name() string
	Done() bool
	AssignedRobot() (world.RobotID, bool)
	// Assign binds a robot. Once bound, a tactic keeps its robot.
	Assign(id world.RobotID)
	// Run computes the robot's intent for this tick and refreshes Done.
	Run(w *world.World, r world.Robot) Intent
}

// Targeter is implemented by tactics that can tell an assigner where
// they want a robot, so it can pick a close one.
type Targeter interface {
	Target(w *world.World) geom.Point
}

type Base struct {
	robot    world.RobotID
	assigned bool
	done     bool
}

func (b *Base) Done() bool { return b.done }

func (b *Base) AssignedRobot() (world.RobotID, bool) {
	return b.robot, b.assigned
}

func (b *Base) Assign(id world.RobotID) {
	if b.assigned {
		return
	}
	b.robot = id
	b.assigned = true
}

// behind returns the position a robot must stand at so that its dribbler
// touches p while facing along a.
func behind(p geom.Point, a geom.Angle) geom.Point {
	return p.Sub(a.Unit().Scale(world.RobotMaxRadius + world.BallMaxRadius))
}
