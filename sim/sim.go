package sim

import (
	"math"
	"time"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

const (
	// RollingFriction is the ball's deceleration, in m/s², once kicked.
	RollingFriction = 0.5
	// TurnRate is how fast a robot can rotate, in rad/s.
	TurnRate = 4 * math.Pi

	// dribblerCatch is how close the ball must pass to a dribbling
	// robot's dribbler to be caught.
	dribblerCatch = 0.05
	// kickReach is how close the ball must be to a dribbler to be kicked.
	kickReach = 0.06
	// looseBallSpeed is the speed under which a non-dribbling enemy
	// robot picks up a ball that rolls into it.
	looseBallSpeed = 1.0
	// restartMoved is how far the ball must move to put it in play.
	restartMoved = 0.05
)

type Config struct {
	Tick time.Duration
}

func DefaultConfig() Config {
	return Config{Tick: time.Second / 60}
}

// Sim is a kinematic stand-in for the real world: robots move straight
// at their destination at a capped speed, kicks set the ball's velocity
// and the ball rolls to a stop. There are no collisions.
type Sim struct {
	cfg Config
	w   world.World

	holder  world.RobotID
	held    bool
	heldBy  *world.Team
	restart geom.Point
}

func New(w world.World, cfg Config) *Sim {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultConfig().Tick
	}
	return &Sim{cfg: cfg, w: w.Clone(), restart: w.Ball.Position}
}

// World returns a snapshot of the current state.
func (s *Sim) World() world.World {
	return s.w.Clone()
}

// Step advances the simulation by one tick, applying intents to the
// friendly robots they are keyed by. Robots without an intent stop.
func (s *Sim) Step(intents map[world.RobotID]tactic.Intent) {
	dt := s.cfg.Tick.Seconds()

	for i := range s.w.Friendly.Robots {
		r := &s.w.Friendly.Robots[i]
		in, ok := intents[r.ID]
		if !ok {
			r.Velocity = geom.Vector{}
			continue
		}
		if in.Kick != nil {
			s.kick(r, in.Kick)
		}
		moveRobot(r, in.Dest, in.Orientation, dt)
	}
	for i := range s.w.Enemy.Robots {
		s.w.Enemy.Robots[i].Velocity = geom.Vector{}
	}

	s.stepBall(intents, dt)
	s.referee()
	s.w.Timestamp = s.w.Timestamp.Add(s.cfg.Tick)
}

func moveRobot(r *world.Robot, dest geom.Point, orientation geom.Angle, dt float64) {
	to := r.Position.To(dest)
	step := math.Min(to.Len(), world.RobotMaxSpeed*dt)
	delta := to.Normalize(step)
	r.Position = r.Position.Add(delta)
	r.Velocity = delta.Scale(1 / dt)

	turn := (orientation - r.Orientation).Clamp()
	limit := geom.Angle(TurnRate * dt)
	if turn > limit {
		turn = limit
	} else if turn < -limit {
		turn = -limit
	}
	r.Orientation = (r.Orientation + turn).Clamp()
}

func (s *Sim) kick(r *world.Robot, k *tactic.Kick) {
	if r.DribblerPoint().Dist(s.w.Ball.Position) > kickReach {
		return
	}
	speed := math.Min(k.Speed, world.BallMaxSpeed)
	s.w.Ball.Velocity = k.Direction.Unit().Scale(speed)
	s.held = false
}

func (s *Sim) stepBall(intents map[world.RobotID]tactic.Intent, dt float64) {
	ball := &s.w.Ball
	if s.held {
		if r, ok := s.heldBy.Robot(s.holder); ok {
			ball.Position = r.DribblerPoint()
			ball.Velocity = r.Velocity
			return
		}
		s.held = false
	}

	from := ball.Position
	ball.Position = ball.Position.Add(ball.Velocity.Scale(dt))
	speed := ball.Velocity.Len()
	if speed > 0 {
		ball.Velocity = ball.Velocity.Normalize(math.Max(0, speed-RollingFriction*dt))
	}

	for _, r := range s.w.Friendly.Robots {
		in, ok := intents[r.ID]
		if !ok || !in.Dribble {
			continue
		}
		if geom.DistToSegment(r.DribblerPoint(), from, ball.Position) <= dribblerCatch {
			s.hold(&s.w.Friendly, r)
			return
		}
	}
	for _, r := range s.w.Enemy.Robots {
		if ball.Velocity.Len() < looseBallSpeed &&
			geom.DistToSegment(r.Position, from, ball.Position) <= world.PossessionDist {
			s.hold(&s.w.Enemy, r)
			return
		}
	}
}

func (s *Sim) hold(t *world.Team, r world.Robot) {
	s.held = true
	s.heldBy = t
	s.holder = r.ID
	s.w.Ball.Position = r.DribblerPoint()
	s.w.Ball.Velocity = r.Velocity
}

// referee puts the ball in play once it moves after a restart and stops
// play when it leaves the field.
func (s *Sim) referee() {
	gs := &s.w.GameState
	if gs.State == world.Ready && s.w.Ball.Position.Dist(s.restart) > restartMoved {
		*gs = world.GameState{State: world.Playing}
	}
	if gs.State == world.Playing && !s.w.Field.Contains(s.w.Ball.Position) {
		*gs = world.GameState{State: world.Stop}
		s.w.Ball.Velocity = geom.Vector{}
		s.held = false
	}
}
