package play

import (
	"log"
	"math"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

type Stage byte

const (
	StageNotStarted Stage = iota
	// StageSetupAlign waits for a robot to be assigned to take the kick.
	StageSetupAlign
	// StageAlign moves the kick taker behind the ball.
	StageAlign
	// StageDecide searches for a pass, accepting worse passes as time
	// runs out.
	StageDecide
	// StageExecute runs the committed pass.
	StageExecute
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageNotStarted:
		return "not_started"
	case StageSetupAlign:
		return "setup_align"
	case StageAlign:
		return "align"
	case StageDecide:
		return "decide"
	case StageExecute:
		return "execute"
	case StageFinished:
		return "finished"
	}
	return "unknown"
}

const CornerKickName = "corner_kick"

func init() {
	Register(CornerKickName, func(cfg Config) Play { return NewCornerKick(cfg) })
}

// CornerKick takes a free kick from near an attacking corner.
//
// While a robot lines up behind the ball, two cherry pickers roam the
// attacking half looking for space and two bait robots stand on the far
// side to pull defenders away. Once the kick taker is in place the play
// searches for a pass, starting out demanding a perfect one and lowering
// its standards over time so that it always commits by the deadline.
// The committed pass is then executed by a passer and a receiver.
type CornerKick struct {
	cfg    Config
	newGen func(w *world.World, passer geom.Point) PassGenerator

	stage       Stage
	commitStart world.Timestamp
	best        pass.WithRating
	committed   pass.WithRating

	goalie       *tactic.Goalie
	bait1, bait2 *tactic.Move
	kicker       *tactic.Move
	cherryPos    *tactic.CherryPick
	cherryNeg    *tactic.CherryPick
	passer       *tactic.Passer
	receiver     *tactic.Receiver

	gen PassGenerator

	hasKickerTarget bool
}

// PassGenerator is the pass search the play consults while deciding.
// *pass.Generator implements it.
type PassGenerator interface {
	SetWorld(w *world.World)
	SetPasserPoint(p geom.Point)
	SetPasserRobotID(id world.RobotID)
	SetTargetRegion(r geom.Rectangle)
	BestPassSoFar() pass.WithRating
}

var _ PassGenerator = (*pass.Generator)(nil)

func NewCornerKick(cfg Config) *CornerKick {
	c := &CornerKick{cfg: cfg}
	c.newGen = func(w *world.World, passer geom.Point) PassGenerator {
		return pass.NewGenerator(w, passer, pass.OneTouchShot, c.cfg.Pass)
	}
	return c
}

func (*CornerKick) Name() string { return CornerKickName }

func (c *CornerKick) Stage() Stage { return c.stage }

// CommittedPass returns the pass the play decided on, once it has.
func (c *CornerKick) CommittedPass() (pass.WithRating, bool) {
	return c.committed, c.stage >= StageExecute
}

func (c *CornerKick) IsApplicable(w *world.World) bool {
	ball := w.Ball.Position
	dist := math.Min(
		ball.Dist(w.Field.EnemyCornerPos()),
		ball.Dist(w.Field.EnemyCornerNeg()),
	)
	return w.GameState.IsOurFreeKick() && dist <= c.cfg.CornerKick.BallInCornerRadius
}

func (c *CornerKick) InvariantHolds(w *world.World) bool {
	gs := w.GameState
	return (gs.IsPlaying() || gs.IsReady()) &&
		(!world.TeamHasPossession(w, &w.Enemy) || world.TeamPassInProgress(w, &w.Friendly))
}

func (c *CornerKick) setStage(s Stage) {
	if c.cfg.Debug > 0 {
		log.Printf("[corner_kick] stage %s -> %s", c.stage, s)
	}
	c.stage = s
}

func (c *CornerKick) NextTactics(w *world.World) ([]tactic.Tactic, bool) {
	switch c.stage {
	case StageNotStarted:
		c.setup(w)
		c.setStage(StageSetupAlign)
		fallthrough
	case StageSetupAlign:
		id, ok := c.kicker.AssignedRobot()
		if !ok {
			if c.cfg.Debug > 1 {
				log.Printf("[corner_kick] nothing assigned to align to ball yet")
			}
			c.refresh(w)
			return c.alignTactics(), true
		}
		c.gen.SetPasserRobotID(id)
		if c.cfg.Debug > 0 {
			log.Printf("[corner_kick] aligning robot %d as the passer", id)
		}
		c.setStage(StageAlign)
		c.refresh(w)
		return c.alignTactics(), true
	case StageAlign:
		if !c.kicker.Done() {
			c.refresh(w)
			return c.alignTactics(), true
		}
		c.commitStart = w.Timestamp
		c.setStage(StageDecide)
		c.refresh(w)
		return c.alignTactics(), true
	case StageDecide:
		c.best = c.gen.BestPassSoFar()
		elapsed := w.Timestamp.Sub(c.commitStart)
		minScore := MinScore(elapsed, c.cfg.CornerKick.MaxTimeToCommitToPass.D())
		if c.cfg.Debug > 1 {
			log.Printf("[corner_kick] best=%s rating=%.3f min=%.3f elapsed=%s",
				c.best.Pass, c.best.Rating, minScore, elapsed)
		}
		if c.best.Rating < minScore {
			c.refresh(w)
			return c.alignTactics(), true
		}
		c.commit(w)
		return c.executeTactics(), true
	case StageExecute:
		if c.receiver.Done() {
			c.setStage(StageFinished)
			return nil, false
		}
		c.passer.UpdateControlParams(c.committed.Pass)
		c.receiver.UpdateControlParams(c.committed.Pass)
		return c.executeTactics(), true
	}
	return nil, false
}

func (c *CornerKick) setup(w *world.World) {
	f := w.Field
	c.goalie = tactic.NewGoalie(w)

	b1, b2 := baitPositions(f, w.Ball.Position)
	c.bait1 = tactic.NewMove(true)
	c.bait2 = tactic.NewMove(true)
	c.bait1.UpdateControlParams(b1, b1.To(f.EnemyGoalCenter()).Orientation(), 0)
	c.bait2.UpdateControlParams(b2, b2.To(f.EnemyGoalCenter()).Orientation(), 0)

	pos, neg := cherryPickRegions(f, w.Ball.Position)
	c.kicker = tactic.NewMove(false)
	c.cherryPos = tactic.NewCherryPick(w, pos)
	c.cherryNeg = tactic.NewCherryPick(w, neg)

	c.gen = c.newGen(w, w.Ball.Position)
	c.gen.SetTargetRegion(targetRegion(f))
	c.best = c.gen.BestPassSoFar()
}

func (c *CornerKick) commit(w *world.World) {
	c.committed = c.best
	if c.cfg.Debug > 0 {
		log.Printf("[corner_kick] committing to %s rating=%.3f after %s",
			c.committed.Pass, c.committed.Rating, w.Timestamp.Sub(c.commitStart))
	}
	c.passer = tactic.NewPasser(c.committed.Pass)
	c.receiver = tactic.NewReceiver(c.committed.Pass)
	c.setStage(StageExecute)
}

func (c *CornerKick) refresh(w *world.World) {
	c.updateAlignToBall(w)
	c.gen.SetPasserPoint(w.Ball.Position)
	c.gen.SetWorld(w)
}

// updateAlignToBall puts the kick taker behind the ball, facing the
// center of the field. If the ball sits on the center point there is no
// such direction; the previous target is kept, or, on the first tick,
// the robot lines up facing the enemy goal.
func (c *CornerKick) updateAlignToBall(w *world.World) {
	ball := w.Ball.Position
	toCenter := ball.To(w.Field.Center())
	if toCenter.IsZero() {
		if c.hasKickerTarget {
			return
		}
		toCenter = geom.Vec(1, 0)
	}
	c.kicker.UpdateControlParams(
		ball.Sub(toCenter.Normalize(2*world.RobotMaxRadius)),
		toCenter.Orientation(),
		0,
	)
	c.hasKickerTarget = true
}

func (c *CornerKick) alignTactics() []tactic.Tactic {
	return []tactic.Tactic{c.goalie, c.kicker, c.cherryPos, c.cherryNeg, c.bait1, c.bait2}
}

func (c *CornerKick) executeTactics() []tactic.Tactic {
	return []tactic.Tactic{c.goalie, c.passer, c.receiver, c.bait1, c.bait2}
}

// baitPositions returns two spots near the corner opposite the kick,
// stepped back from the goal line along x, meant to draw defenders away
// from where the pass is likely to go.
func baitPositions(f world.Field, ball geom.Point) (geom.Point, geom.Point) {
	opposite := f.EnemyCornerPos()
	if ball.Y > 0 {
		opposite = f.EnemyCornerNeg()
	}
	dy := math.Copysign(0.5, opposite.Y)
	depth := f.EnemyDefenseArea().YLength()
	return opposite.Sub(geom.Vec(depth*0.5, dy)),
		opposite.Sub(geom.Vec(depth*1.5, dy))
}

// cherryPickRegions returns one rectangle per side of the attacking
// half. The one on the kick side is pulled further back from the goal
// line so the cherry picker stays clear of the kick taker.
func cherryPickRegions(f world.Field, ball geom.Point) (pos, neg geom.Rectangle) {
	depth := f.EnemyDefenseArea().YLength()
	posOffset := geom.Vec(depth, 0)
	negOffset := geom.Vec(depth, 0)
	if ball.Y > 0 {
		posOffset = posOffset.Add(geom.Vec(depth, 0))
	} else {
		negOffset = negOffset.Add(geom.Vec(depth, 0))
	}
	start := f.Center().Add(geom.Vec(1, 0))
	return geom.Rect(start, f.EnemyCornerPos().Sub(posOffset)),
		geom.Rect(start, f.EnemyCornerNeg().Sub(negOffset))
}

// targetRegion is the attacking half, starting 1m past the center line.
func targetRegion(f world.Field) geom.Rectangle {
	return geom.Rect(geom.Pt(1, f.YLength()/2), f.EnemyCornerNeg())
}
