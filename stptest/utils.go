// Package stptest holds helpers for building worlds and tactics in
// tests.
package stptest

import (
	"strconv"
	"strings"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

// Points parses "x,y x,y ..." into points. It panics on malformed input.
func Points(s string) []geom.Point {
	if s == "" {
		return nil
	}
	var out []geom.Point
	for _, b := range strings.Fields(s) {
		xy := strings.Split(b, ",")
		if len(xy) != 2 {
			panic("bad point: " + b)
		}
		x, e := strconv.ParseFloat(xy[0], 64)
		if e != nil {
			panic(e)
		}
		y, e := strconv.ParseFloat(xy[1], 64)
		if e != nil {
			panic(e)
		}
		out = append(out, geom.Pt(x, y))
	}
	return out
}

// Team builds a team with robots at the given points, numbered from 0.
// Robot 0 is the goalie.
func Team(pts string) world.Team {
	var t world.Team
	for i, p := range Points(pts) {
		t.Robots = append(t.Robots, world.Robot{ID: world.RobotID(i), Position: p})
	}
	if len(t.Robots) > 0 {
		t.HasGoalie = true
	}
	return t
}

// World builds a division B world during our direct free kick.
func World(ball geom.Point, friendly, enemy string) *world.World {
	return &world.World{
		Field:    world.DivisionB(),
		Ball:     world.Ball{Position: ball},
		Friendly: Team(friendly),
		Enemy:    Team(enemy),
		GameState: world.GameState{
			State:   world.Ready,
			Restart: world.DirectFree,
			Ours:    true,
		},
	}
}

// Fake is a tactic whose doneness is set by the test.
type Fake struct {
	tactic.Base
	Label  string
	Dest   geom.Point
	Finish bool
	Runs   int
}

func (f *Fake) Name() string {
	if f.Label == "" {
		return "fake"
	}
	return f.Label
}

func (f *Fake) Done() bool { return f.Finish }

func (f *Fake) Target(*world.World) geom.Point { return f.Dest }

func (f *Fake) Run(w *world.World, r world.Robot) tactic.Intent {
	f.Runs++
	return tactic.Intent{Dest: f.Dest}
}
