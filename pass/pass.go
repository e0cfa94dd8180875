package pass

import (
	"fmt"
	"time"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

type Type byte

const (
	// ReceiveAndDribble passes are received and controlled before the
	// receiver does anything else with the ball.
	ReceiveAndDribble Type = iota
	// OneTouchShot passes are redirected at the goal on arrival.
	OneTouchShot
)

func (t Type) String() string {
	switch t {
	case ReceiveAndDribble:
		return "receive_and_dribble"
	case OneTouchShot:
		return "one_touch_shot"
	}
	return "unknown"
}

// A Pass is an immutable description of a planned ball transfer.
type Pass struct {
	passer   geom.Point
	receiver geom.Point
	speed    float64
	start    world.Timestamp
}

func New(passer, receiver geom.Point, speed float64, start world.Timestamp) Pass {
	return Pass{passer: passer, receiver: receiver, speed: speed, start: start}
}

func (p Pass) PasserPoint() geom.Point { return p.passer }
func (p Pass) ReceiverPoint() geom.Point { return p.receiver }
func (p Pass) Speed() float64 { return p.speed }
func (p Pass) StartTime() world.Timestamp { return p.start }

func (p Pass) Length() float64 { return p.passer.Dist(p.receiver) }

// TravelTime is how long the ball takes to cover the pass once kicked.
func (p Pass) TravelTime() time.Duration {
	if p.speed <= 0 {
		return 0
	}
	return time.Duration(p.Length() / p.speed * float64(time.Second))
}

func (p Pass) ReceiveTime() world.Timestamp { return p.start.Add(p.TravelTime()) }

func (p Pass) PasserOrientation() geom.Angle {
	return p.passer.To(p.receiver).Orientation()
}

func (p Pass) ReceiverOrientation() geom.Angle {
	return p.receiver.To(p.passer).Orientation()
}

func (p Pass) String() string {
	return fmt.Sprintf("pass{%s -> %s speed=%.2fm/s start=%s}",
		p.passer, p.receiver, p.speed, p.start)
}

// WithRating pairs a pass with its quality in [0,1]; 1 is an ideal,
// uncontested pass and 0 the worst one still considered.
type WithRating struct {
	Pass   Pass
	Rating float64
}
