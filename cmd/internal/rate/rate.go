package rate

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/sim"
)

type Command struct {
	px, py   float64
	rx, ry   float64
	speed    float64
	delay    time.Duration
	seed     int64
	posY     bool
	dribble  bool
	fromBall bool
}

func (*Command) Name() string     { return "rate" }
func (*Command) Synopsis() string { return "Rate a single pass in the corner kick scenario" }
func (*Command) Usage() string {
	return `rate -rx X -ry Y [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.Float64Var(&c.px, "px", 0, "passer x")
	flags.Float64Var(&c.py, "py", 0, "passer y")
	flags.BoolVar(&c.fromBall, "from-ball", true, "pass from the ball, ignoring -px and -py")
	flags.Float64Var(&c.rx, "rx", 2, "receiver x")
	flags.Float64Var(&c.ry, "ry", 0, "receiver y")
	flags.Float64Var(&c.speed, "speed", 4, "ball speed in m/s")
	flags.DurationVar(&c.delay, "delay", 0, "delay before the kick")
	flags.Int64Var(&c.seed, "seed", 1, "scenario seed")
	flags.BoolVar(&c.posY, "pos-y", true, "kick from the +y corner")
	flags.BoolVar(&c.dribble, "dribble", false, "rate as a receive-and-dribble pass")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w := sim.CornerKick(c.posY, c.seed)
	from := geom.Pt(c.px, c.py)
	if c.fromBall {
		from = w.Ball.Position
	}
	typ := pass.OneTouchShot
	if c.dribble {
		typ = pass.ReceiveAndDribble
	}
	cfg := pass.DefaultConfig()
	p := pass.New(from, geom.Pt(c.rx, c.ry), c.speed, w.Timestamp.Add(c.delay))
	r := pass.Rate(&w, p, pass.Params{Type: typ, MinSpeed: cfg.MinSpeed, MaxSpeed: cfg.MaxSpeed})

	fmt.Printf("%s %s\n", typ, p)
	fmt.Printf("  position=%.3f shoot=%.3f\n",
		pass.StaticPositionQuality(w.Field, p.ReceiverPoint()),
		pass.ShootQuality(&w, p.ReceiverPoint()))
	fmt.Printf("  rating=%.3f\n", r)
	return subcommands.ExitSuccess
}
