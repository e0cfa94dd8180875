package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/stp"
	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

var ErrTickLimit = errors.New("tick limit reached before the play ended")

type EventKind string

const (
	PlayStarted   EventKind = "started"
	PlayEnded     EventKind = "ended"
	PassCommitted EventKind = "committed"
)

type Event struct {
	Kind    EventKind
	Play    string
	At      world.Timestamp
	Outcome stp.Outcome
	Pass    pass.WithRating
}

// Tally is an stp.Recorder that keeps every event in memory and forwards
// it to Next, if set.
type Tally struct {
	Next stp.Recorder

	mu     sync.Mutex
	events []Event
}

func (t *Tally) add(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

func (t *Tally) PlayStarted(name string, at world.Timestamp) error {
	t.add(Event{Kind: PlayStarted, Play: name, At: at})
	if t.Next != nil {
		return t.Next.PlayStarted(name, at)
	}
	return nil
}

func (t *Tally) PlayEnded(name string, at world.Timestamp, outcome stp.Outcome) error {
	t.add(Event{Kind: PlayEnded, Play: name, At: at, Outcome: outcome})
	if t.Next != nil {
		return t.Next.PlayEnded(name, at, outcome)
	}
	return nil
}

func (t *Tally) PassCommitted(name string, at world.Timestamp, p pass.WithRating) error {
	t.add(Event{Kind: PassCommitted, Play: name, At: at, Pass: p})
	if t.Next != nil {
		return t.Next.PassCommitted(name, at, p)
	}
	return nil
}

func (t *Tally) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Last returns the most recent event of kind k.
func (t *Tally) Last(k EventKind) (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.events) - 1; i >= 0; i-- {
		if t.events[i].Kind == k {
			return t.events[i], true
		}
	}
	return Event{}, false
}

// TickFunc is called after every tick with the snapshot the scheduler
// saw and what it decided.
type TickFunc func(w *world.World, as []stp.Assignment)

// Run drives sched against s until the first play to start has ended.
// tally must be the recorder sched was built with.
func Run(ctx context.Context, s *Sim, sched *stp.STP, tally *Tally, maxTicks int, fn TickFunc) error {
	for i := 0; i < maxTicks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		w := s.World()
		as := sched.Tick(&w)
		if fn != nil {
			fn(&w, as)
		}
		intents := make(map[world.RobotID]tactic.Intent, len(as))
		for _, a := range as {
			intents[a.Robot] = a.Intent
		}
		s.Step(intents)
		if _, ok := tally.Last(PlayEnded); ok {
			return nil
		}
	}
	return ErrTickLimit
}
