package simulate

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/sslteam/stp/conf"
	"github.com/sslteam/stp/logs"
	"github.com/sslteam/stp/sim"
	"github.com/sslteam/stp/stp"
	"github.com/sslteam/stp/world"
)

type Command struct {
	games   int
	threads int
	seed    int64
	maxTime time.Duration

	db     string
	config string
	debug  int
	render bool
}

func (*Command) Name() string     { return "simulate" }
func (*Command) Synopsis() string { return "Play corner kicks in the kinematic simulator" }
func (*Command) Usage() string {
	return `simulate [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.games, "games", 10, "games to play")
	flags.IntVar(&c.threads, "threads", runtime.NumCPU(), "Number of threads")
	flags.Int64Var(&c.seed, "seed", 1, "Random seed of the first game")
	flags.DurationVar(&c.maxTime, "max-time", time.Minute, "Game time limit per game")

	flags.StringVar(&c.db, "db", "", "record plays to this sqlite database")
	flags.StringVar(&c.config, "config", "", "JSON config file")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.BoolVar(&c.render, "v", false, "render the field every tick (forces -threads 1)")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := stp.DefaultConfig()
	if c.config != "" {
		if err := conf.Load(c.config, &cfg); err != nil {
			log.Printf("config: %v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.debug > cfg.Debug {
		cfg.Debug = c.debug
		cfg.Play.Debug = c.debug
		cfg.Play.Pass.Debug = c.debug
	}

	var repo *logs.Repository
	if c.db != "" {
		var err error
		repo, err = logs.Open(c.db)
		if err != nil {
			log.Printf("open %q: %v", c.db, err)
			return subcommands.ExitFailure
		}
		defer repo.Close()
	}
	threads := c.threads
	if c.render || threads < 1 {
		threads = 1
	}
	simCfg := sim.DefaultConfig()
	maxTicks := int(c.maxTime / simCfg.Tick)
	runID := time.Now().UTC().Format("20060102T150405")

	results := make([]sim.Result, c.games)
	errs := make([]error, c.games)
	var out sync.Mutex

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(threads)
	for i := 0; i < c.games; i++ {
		i := i
		grp.Go(func() error {
			gc := sim.GameConfig{
				STP:      cfg,
				Sim:      simCfg,
				PosY:     i%2 == 0,
				Seed:     c.seed + int64(i),
				MaxTicks: maxTicks,
			}
			var rec stp.Recorder
			if repo != nil {
				rec = repo.Recorder(fmt.Sprintf("%s-%d", runID, gc.Seed))
			}
			var fn sim.TickFunc
			if c.render {
				fn = func(w *world.World, as []stp.Assignment) {
					out.Lock()
					defer out.Unlock()
					sim.Render(nil, os.Stdout, w, as)
				}
			}
			results[i], errs[i] = sim.Game(ctx, gc, rec, fn)
			return ctx.Err()
		})
	}
	if err := grp.Wait(); err != nil {
		log.Printf("simulate: %v", err)
		return subcommands.ExitFailure
	}

	var finished, abandoned, timedOut int
	for i, r := range results {
		if errs[i] != nil {
			timedOut++
			log.Printf("game seed=%d: %v", r.Seed, errs[i])
			continue
		}
		switch r.Outcome {
		case stp.Finished:
			finished++
		case stp.Abandoned:
			abandoned++
		}
		line := fmt.Sprintf("seed=%d pos_y=%v ticks=%d outcome=%s t=%s",
			r.Seed, r.PosY, r.Ticks, r.Outcome, r.Ended)
		if r.HasPass {
			line += fmt.Sprintf(" pass=%s rating=%.3f", r.Pass.Pass, r.Pass.Rating)
		}
		fmt.Println(line)
	}
	fmt.Printf("games=%d finished=%d abandoned=%d timeout=%d\n",
		c.games, finished, abandoned, timedOut)
	return subcommands.ExitSuccess
}
