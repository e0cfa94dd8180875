package stp

import (
	"fmt"
	"log"

	"github.com/expr-lang/expr/vm"

	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/play"
	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

type Config struct {
	// Plays lists the plays to consider, highest priority first. Empty
	// means every registered play, by name.
	Plays []string `json:"plays"`

	// Gates maps a play name to an expression over GateEnv that must
	// hold, on top of the play's own applicability, for it to start.
	Gates map[string]string `json:"gates"`

	Play  play.Config `json:"play"`
	Debug int         `json:"debug"`
}

func DefaultConfig() Config {
	return Config{Play: play.DefaultConfig()}
}

type Outcome string

const (
	Finished  Outcome = "finished"
	Abandoned Outcome = "abandoned"
)

// Recorder is told about play lifecycle events as they happen.
type Recorder interface {
	PlayStarted(name string, at world.Timestamp) error
	PlayEnded(name string, at world.Timestamp, outcome Outcome) error
	PassCommitted(name string, at world.Timestamp, p pass.WithRating) error
}

type committer interface {
	CommittedPass() (pass.WithRating, bool)
}

type Assignment struct {
	Robot  world.RobotID
	Tactic tactic.Tactic
	Intent tactic.Intent
}

// STP runs one play at a time: it selects an applicable play, drives it
// once per tick, drops it when its invariant fails, and binds the
// tactics it yields to robots.
type STP struct {
	cfg   Config
	names []string
	gates map[string]*vm.Program
	rec   Recorder

	current   play.Play
	committed bool
	tactics   []tactic.Tactic
}

func New(cfg Config, rec Recorder) (*STP, error) {
	names := cfg.Plays
	if len(names) == 0 {
		names = play.Names()
	}
	for _, n := range names {
		if _, ok := play.Lookup(n); !ok {
			return nil, fmt.Errorf("unknown play: %q", n)
		}
	}
	gates, err := compileGates(cfg.Gates)
	if err != nil {
		return nil, err
	}
	return &STP{cfg: cfg, names: names, gates: gates, rec: rec}, nil
}

func (s *STP) Current() play.Play { return s.current }

// Tactics returns the tactics yielded on the most recent tick.
func (s *STP) Tactics() []tactic.Tactic { return s.tactics }

func (s *STP) Tick(w *world.World) []Assignment {
	if s.current != nil && !s.current.InvariantHolds(w) {
		s.end(w, Abandoned)
	}
	if s.current == nil {
		s.current = s.selectPlay(w)
		if s.current == nil {
			s.tactics = nil
			return nil
		}
		s.committed = false
		if s.cfg.Debug > 0 {
			log.Printf("[stp] t=%s starting %s", w.Timestamp, s.current.Name())
		}
		if s.rec != nil {
			if err := s.rec.PlayStarted(s.current.Name(), w.Timestamp); err != nil {
				log.Printf("[stp] record: %v", err)
			}
		}
	}

	ts, ok := s.current.NextTactics(w)
	s.recordCommit(w)
	if !ok {
		s.end(w, Finished)
		s.tactics = nil
		return nil
	}
	s.tactics = ts
	s.assign(w, ts)
	return s.run(w, ts)
}

func (s *STP) selectPlay(w *world.World) play.Play {
	for _, n := range s.names {
		if prog, ok := s.gates[n]; ok {
			open, err := runGate(prog, w)
			if err != nil {
				log.Printf("[stp] gate for %s: %v", n, err)
				continue
			}
			if !open {
				continue
			}
		}
		p, err := play.New(n, s.cfg.Play)
		if err != nil {
			continue
		}
		if p.IsApplicable(w) && p.InvariantHolds(w) {
			return p
		}
	}
	return nil
}

func (s *STP) end(w *world.World, outcome Outcome) {
	if s.cfg.Debug > 0 {
		log.Printf("[stp] t=%s %s %s", w.Timestamp, s.current.Name(), outcome)
	}
	if s.rec != nil {
		if err := s.rec.PlayEnded(s.current.Name(), w.Timestamp, outcome); err != nil {
			log.Printf("[stp] record: %v", err)
		}
	}
	s.current = nil
}

func (s *STP) recordCommit(w *world.World) {
	if s.committed {
		return
	}
	c, ok := s.current.(committer)
	if !ok {
		return
	}
	p, ok := c.CommittedPass()
	if !ok {
		return
	}
	s.committed = true
	if s.cfg.Debug > 0 {
		log.Printf("[stp] t=%s %s committed %s rating=%.3f", w.Timestamp, s.current.Name(), p.Pass, p.Rating)
	}
	if s.rec != nil {
		if err := s.rec.PassCommitted(s.current.Name(), w.Timestamp, p); err != nil {
			log.Printf("[stp] record: %v", err)
		}
	}
}

func (s *STP) run(w *world.World, ts []tactic.Tactic) []Assignment {
	var out []Assignment
	for _, t := range ts {
		id, ok := t.AssignedRobot()
		if !ok {
			continue
		}
		r, ok := w.Friendly.Robot(id)
		if !ok {
			continue
		}
		out = append(out, Assignment{Robot: id, Tactic: t, Intent: t.Run(w, r)})
	}
	return out
}
