package history

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sslteam/stp/logs"
)

type Command struct {
	db      string
	play    string
	limit   int
	passes  bool
	summary bool
	lang    string
}

func (*Command) Name() string     { return "history" }
func (*Command) Synopsis() string { return "List plays recorded by simulate" }
func (*Command) Usage() string {
	return `history -db FILE [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "", "sqlite database")
	flags.StringVar(&c.play, "play", "", "only list this play")
	flags.IntVar(&c.limit, "limit", 50, "list at most this many plays (0 for all)")
	flags.BoolVar(&c.passes, "passes", false, "list the passes committed in each play")
	flags.BoolVar(&c.summary, "summary", false, "print per-outcome totals")
	flags.StringVar(&c.lang, "lang", "en", "language for number formatting")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		log.Println("Must supply a database")
		return subcommands.ExitUsageError
	}
	tag, err := language.Parse(c.lang)
	if err != nil {
		log.Printf("lang: %v", err)
		return subcommands.ExitUsageError
	}
	p := message.NewPrinter(tag)

	repo, err := logs.Open(c.db)
	if err != nil {
		log.Printf("open %q: %v", c.db, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if c.summary {
		sum, err := repo.Summary()
		if err != nil {
			log.Printf("summary: %v", err)
			return subcommands.ExitFailure
		}
		for _, s := range sum {
			p.Fprintf(os.Stdout, "%-12s %-10s runs=%d mean=%.2fs\n",
				s.Play, s.Outcome, s.Runs, time.Duration(s.MeanDuration).Seconds())
		}
		return subcommands.ExitSuccess
	}

	plays, err := repo.Plays(c.play)
	if err != nil {
		log.Printf("plays: %v", err)
		return subcommands.ExitFailure
	}
	if c.limit > 0 && len(plays) > c.limit {
		plays = plays[len(plays)-c.limit:]
	}
	for _, pl := range plays {
		outcome := "running"
		if pl.Outcome.Valid {
			outcome = pl.Outcome.String
		}
		p.Fprintf(os.Stdout, "%s %s %s %.3fs\n", pl.Run, pl.Play, outcome, pl.Duration().Seconds())
		if !c.passes {
			continue
		}
		passes, err := repo.Passes(pl.Run)
		if err != nil {
			log.Printf("passes: %v", err)
			return subcommands.ExitFailure
		}
		for _, ps := range passes {
			wr := ps.Pass()
			p.Fprintf(os.Stdout, "  at=%s %s rating=%.3f\n",
				time.Duration(ps.At), wr.Pass, wr.Rating)
		}
	}
	p.Fprintf(os.Stdout, "%d plays\n", len(plays))
	return subcommands.ExitSuccess
}
