package tactic

import (
	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/world"
)

const (
	// kickReach is how far the ball may be from the dribbler for a kick
	// to connect.
	kickReach = 0.05

	// ballLeftDist is how far the ball must travel from the passer point
	// before the pass counts as kicked.
	ballLeftDist = 0.1
)

// Passer lines a robot up behind the ball and kicks it along a pass once
// the pass start time arrives. It is done once the ball has left.
type Passer struct {
	Base
	pass pass.Pass
}

func NewPasser(p pass.Pass) *Passer {
	return &Passer{pass: p}
}

func (*Passer) Name() string { return "passer" }

func (p *Passer) UpdateControlParams(ps pass.Pass) {
	p.pass = ps
}

func (p *Passer) Target(*world.World) geom.Point {
	return behind(p.pass.PasserPoint(), p.pass.PasserOrientation())
}

func (p *Passer) Run(w *world.World, r world.Robot) Intent {
	aim := p.pass.PasserOrientation()
	in := Intent{Dest: p.Target(w), Orientation: aim}
	if p.done {
		return in
	}
	ball := w.Ball
	if ball.Position.Dist(p.pass.PasserPoint()) > ballLeftDist &&
		world.BallMovingTowards(ball, p.pass.ReceiverPoint(), world.PassInProgressSpeed) {
		p.done = true
		return in
	}
	if w.Timestamp >= p.pass.StartTime() &&
		r.DribblerPoint().Dist(ball.Position) <= kickReach &&
		r.Orientation.Diff(aim) <= MoveDoneAngle {
		in.Kick = &Kick{Direction: aim, Speed: p.pass.Speed()}
	}
	return in
}
