package tactic

import (
	"math"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/world"
)

const cherryPickGrid = 5

// CherryPick roams a rectangle looking for an open spot to receive a pass:
// one with good static quality and plenty of room from enemy robots. It
// never finishes.
type CherryPick struct {
	Base
	region geom.Rectangle
	target geom.Point
}

func NewCherryPick(w *world.World, region geom.Rectangle) *CherryPick {
	c := &CherryPick{region: region}
	c.target = c.bestSpot(w)
	return c
}

func (*CherryPick) Name() string { return "cherry_pick" }

func (c *CherryPick) UpdateControlParams(region geom.Rectangle) {
	c.region = region
}

func (c *CherryPick) Region() geom.Rectangle { return c.region }

func (c *CherryPick) Target(*world.World) geom.Point { return c.target }

func (c *CherryPick) bestSpot(w *world.World) geom.Point {
	best := c.region.Center()
	bestScore := -1.0
	for i := 0; i < cherryPickGrid; i++ {
		for j := 0; j < cherryPickGrid; j++ {
			p := geom.Pt(
				c.region.Min.X+c.region.XLength()*(float64(i)+0.5)/cherryPickGrid,
				c.region.Min.Y+c.region.YLength()*(float64(j)+0.5)/cherryPickGrid,
			)
			clearance := math.Inf(1)
			for _, e := range w.Enemy.Robots {
				clearance = math.Min(clearance, e.Position.Dist(p))
			}
			score := pass.StaticPositionQuality(w.Field, p)
			if !math.IsInf(clearance, 1) {
				score *= 1 - math.Exp(-clearance)
			}
			if score > bestScore {
				best, bestScore = p, score
			}
		}
	}
	return best
}

func (c *CherryPick) Run(w *world.World, r world.Robot) Intent {
	c.target = c.bestSpot(w)
	return Intent{
		Dest:        c.target,
		Orientation: c.target.To(w.Ball.Position).Orientation(),
	}
}
