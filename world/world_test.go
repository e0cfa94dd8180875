package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sslteam/stp/geom"
)

func TestDivisionB(t *testing.T) {
	f := DivisionB()
	assert.Equal(t, geom.Pt(4.5, 3), f.EnemyCornerPos())
	assert.Equal(t, geom.Pt(4.5, -3), f.EnemyCornerNeg())
	assert.Equal(t, 2.0, f.EnemyDefenseArea().YLength())
	assert.Equal(t, 1.0, f.EnemyDefenseArea().XLength())
	assert.True(t, f.Contains(geom.Pt(4.5, 3)))
	assert.False(t, f.Contains(geom.Pt(4.6, 0)))
}

func TestGameState(t *testing.T) {
	cases := []struct {
		gs       GameState
		freeKick bool
	}{
		{GameState{State: Ready, Restart: DirectFree, Ours: true}, true},
		{GameState{State: Ready, Restart: IndirectFree, Ours: true}, true},
		{GameState{State: Ready, Restart: DirectFree}, false},
		{GameState{State: Ready, Restart: Kickoff, Ours: true}, false},
		{GameState{State: Playing}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.freeKick, tc.gs.IsOurFreeKick(), "%s", tc.gs)
	}
	assert.True(t, GameState{State: Playing}.IsPlaying())
	assert.True(t, GameState{State: Ready}.IsReady())
}

func TestTimestamp(t *testing.T) {
	a := FromSeconds(1.5)
	b := a.Add(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, b.Sub(a))
	assert.Equal(t, 2.0, b.Seconds())
}

func TestClone(t *testing.T) {
	w := World{Friendly: Team{Robots: []Robot{{ID: 1}}}}
	c := w.Clone()
	c.Friendly.Robots[0].Position = geom.Pt(1, 1)
	assert.Equal(t, geom.Point{}, w.Friendly.Robots[0].Position)
}

func TestTeam(t *testing.T) {
	team := Team{Robots: []Robot{
		{ID: 3, Position: geom.Pt(0, 0)},
		{ID: 5, Position: geom.Pt(2, 0)},
	}}
	r, ok := team.Nearest(geom.Pt(1.5, 0))
	assert.True(t, ok)
	assert.Equal(t, RobotID(5), r.ID)
	_, ok = team.Robot(4)
	assert.False(t, ok)

	fast := Robot{Position: geom.Pt(0, 0)}
	assert.Equal(t, time.Duration(0), fast.TimeToReach(geom.Pt(0.05, 0)))
	assert.InDelta(t, 0.955, fast.TimeToReach(geom.Pt(2, 0)).Seconds(), 1e-6)
}

func TestPossession(t *testing.T) {
	w := &World{
		Field:    DivisionB(),
		Ball:     Ball{Position: geom.Pt(0.1, 0)},
		Friendly: Team{Robots: []Robot{{ID: 0, Position: geom.Pt(0, 0)}}},
		Enemy:    Team{Robots: []Robot{{ID: 0, Position: geom.Pt(2, 0)}}},
	}
	assert.True(t, TeamHasPossession(w, &w.Friendly))
	assert.False(t, TeamHasPossession(w, &w.Enemy))
	assert.False(t, TeamPassInProgress(w, &w.Friendly))

	// A fast ball leaves the robot behind.
	w.Ball.Velocity = geom.Vec(3, 0)
	assert.False(t, TeamHasPossession(w, &w.Friendly))

	// Travelling away from the friendly robot towards nobody.
	w.Ball.Position = geom.Pt(1, 0)
	w.Ball.Velocity = geom.Vec(-3, 0)
	w.Friendly.Robots[0].Position = geom.Pt(0, 2)
	assert.False(t, TeamPassInProgress(w, &w.Friendly))

	w.Friendly.Robots[0].Position = geom.Pt(-1, 0.2)
	assert.True(t, TeamPassInProgress(w, &w.Friendly))
	assert.False(t, TeamPassInProgress(w, &w.Enemy))

	// Too slow to count.
	w.Ball.Velocity = geom.Vec(-0.3, 0)
	assert.False(t, TeamPassInProgress(w, &w.Friendly))
}

func TestBallMovingTowards(t *testing.T) {
	b := Ball{Position: geom.Pt(0, 0), Velocity: geom.Vec(1, 0)}
	assert.True(t, BallMovingTowards(b, geom.Pt(2, 1), 0.5))
	assert.False(t, BallMovingTowards(b, geom.Pt(-2, 1), 0.5))
	assert.False(t, BallMovingTowards(b, geom.Pt(2, 1), 1.5))
}
