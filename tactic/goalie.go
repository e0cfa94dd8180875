package tactic

import (
	"math"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/world"
)

// goalieDepth is how far in front of the goal line the goalie stands.
const goalieDepth = 0.4

// Goalie keeps a robot between the ball and our goal, inside our defense
// area. It never finishes.
type Goalie struct {
	Base
	field world.Field
}

func NewGoalie(w *world.World) *Goalie {
	return &Goalie{field: w.Field}
}

func (*Goalie) Name() string { return "goalie" }

func (g *Goalie) Target(w *world.World) geom.Point {
	goal := g.field.FriendlyGoalCenter()
	toBall := goal.To(w.Ball.Position)
	if toBall.IsZero() {
		toBall = geom.Vec(1, 0)
	}
	depth := math.Min(goalieDepth, toBall.Len())
	area := g.field.FriendlyDefenseArea()
	return area.Clamp(goal.Add(toBall.Normalize(depth)))
}

func (g *Goalie) Run(w *world.World, r world.Robot) Intent {
	dest := g.Target(w)
	return Intent{
		Dest:        dest,
		Orientation: dest.To(w.Ball.Position).Orientation(),
	}
}
