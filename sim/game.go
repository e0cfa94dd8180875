package sim

import (
	"context"

	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/stp"
	"github.com/sslteam/stp/world"
)

type GameConfig struct {
	STP  stp.Config
	Sim  Config
	PosY bool
	Seed int64

	// MaxTicks bounds the game; 0 means one simulated minute.
	MaxTicks int
}

type Result struct {
	Seed    int64
	PosY    bool
	Ticks   int
	Outcome stp.Outcome
	Ended   world.Timestamp

	Pass    pass.WithRating
	HasPass bool

	Events []Event
}

// Game sets up a corner kick scenario and runs it until the first play
// ends. Events are also sent to rec, if non-nil. A zero pass generator
// seed is replaced with the game's seed, and the generator's wall-clock
// budget is ignored in favor of its iteration count, so the same config
// always plays the same game.
func Game(ctx context.Context, cfg GameConfig, rec stp.Recorder, fn TickFunc) (Result, error) {
	if cfg.STP.Play.Pass.Seed == 0 {
		cfg.STP.Play.Pass.Seed = cfg.Seed
	}
	cfg.STP.Play.Pass.TimeBudget = 0
	if cfg.Sim.Tick <= 0 {
		cfg.Sim = DefaultConfig()
	}
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = int(60 / cfg.Sim.Tick.Seconds())
	}

	tally := &Tally{Next: rec}
	sched, err := stp.New(cfg.STP, tally)
	if err != nil {
		return Result{}, err
	}
	s := New(CornerKick(cfg.PosY, cfg.Seed), cfg.Sim)

	res := Result{Seed: cfg.Seed, PosY: cfg.PosY}
	err = Run(ctx, s, sched, tally, cfg.MaxTicks, func(w *world.World, as []stp.Assignment) {
		res.Ticks++
		if fn != nil {
			fn(w, as)
		}
	})
	res.Events = tally.Events()
	if e, ok := tally.Last(PlayEnded); ok {
		res.Outcome = e.Outcome
		res.Ended = e.At
	}
	if e, ok := tally.Last(PassCommitted); ok {
		res.Pass = e.Pass
		res.HasPass = true
	}
	return res, err
}
