package tactic

import (
	"time"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/world"
)

const (
	// receivedSpeed is the relative ball speed below which a ball at the
	// dribbler counts as received.
	receivedSpeed = 0.5

	// giveUpAfter is how long past the planned receive time the receiver
	// keeps waiting for a ball that has stopped elsewhere.
	giveUpAfter = 2 * time.Second
)

// Receiver waits at the receiving end of a pass, facing the passer. It is
// done when it has the ball, or when the ball has come to rest or left
// the field after the pass was due.
type Receiver struct {
	Base
	pass pass.Pass
}

func NewReceiver(p pass.Pass) *Receiver {
	return &Receiver{pass: p}
}

func (*Receiver) Name() string { return "receiver" }

func (rc *Receiver) UpdateControlParams(p pass.Pass) {
	rc.pass = p
}

func (rc *Receiver) Target(*world.World) geom.Point {
	return behind(rc.pass.ReceiverPoint(), rc.pass.ReceiverOrientation())
}

func (rc *Receiver) Run(w *world.World, r world.Robot) Intent {
	in := Intent{
		Dest:        rc.Target(w),
		Orientation: rc.pass.ReceiverOrientation(),
		Dribble:     true,
	}
	if rc.done {
		return in
	}
	ball := w.Ball
	if r.Position.Dist(ball.Position) <= world.PossessionDist &&
		ball.Velocity.Sub(r.Velocity).Len() < receivedSpeed {
		rc.done = true
		return in
	}
	if !w.Field.Contains(ball.Position) {
		rc.done = true
		return in
	}
	if w.Timestamp.Sub(rc.pass.ReceiveTime()) > giveUpAfter && ball.Velocity.Len() < 0.05 {
		rc.done = true
	}
	return in
}
