package stp

import (
	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

// assign binds every unassigned tactic in ts to a free robot, in order.
// Tactics that already have a robot keep it. The goalie tactic gets the
// team's designated goalie when there is one; other tactics only get the
// goalie robot once no one else is free.
func (s *STP) assign(w *world.World, ts []tactic.Tactic) {
	used := make(map[world.RobotID]bool)
	for _, t := range ts {
		if id, ok := t.AssignedRobot(); ok {
			used[id] = true
		}
	}
	for _, t := range ts {
		if _, ok := t.AssignedRobot(); ok {
			continue
		}
		id, ok := s.pick(w, t, used)
		if !ok {
			continue
		}
		t.Assign(id)
		used[id] = true
	}
}

func (s *STP) pick(w *world.World, t tactic.Tactic, used map[world.RobotID]bool) (world.RobotID, bool) {
	team := &w.Friendly
	if _, isGoalie := t.(*tactic.Goalie); isGoalie && team.HasGoalie && !used[team.Goalie] {
		if _, ok := team.Robot(team.Goalie); ok {
			return team.Goalie, true
		}
	}

	target := w.Ball.Position
	if tg, ok := t.(tactic.Targeter); ok {
		target = tg.Target(w)
	}

	var best world.RobotID
	bestDist := 0.0
	found := false
	for round := 0; round < 2 && !found; round++ {
		for _, r := range team.Robots {
			if used[r.ID] {
				continue
			}
			if round == 0 && team.HasGoalie && r.ID == team.Goalie {
				continue
			}
			if d := r.Position.Dist(target); !found || d < bestDist {
				best, bestDist, found = r.ID, d, true
			}
		}
	}
	return best, found
}
