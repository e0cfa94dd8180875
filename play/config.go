package play

import (
	"math"
	"time"

	"github.com/sslteam/stp/conf"
	"github.com/sslteam/stp/pass"
)

type CornerKickConfig struct {
	// MaxTimeToCommitToPass is how long the play may spend looking for a
	// pass before it must take the best one it has.
	MaxTimeToCommitToPass conf.Duration `json:"max_time_to_commit_to_pass"`

	// BallInCornerRadius is how close to an attacking corner the ball
	// must be for a free kick to count as a corner kick.
	BallInCornerRadius float64 `json:"ball_in_corner_radius"`
}

type Config struct {
	CornerKick CornerKickConfig `json:"corner_kick"`
	Pass       pass.Config      `json:"pass"`
	Debug      int              `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		CornerKick: CornerKickConfig{
			MaxTimeToCommitToPass: conf.Duration(3 * time.Second),
			BallInCornerRadius:    0.5,
		},
		Pass: pass.DefaultConfig(),
	}
}

// MinScore is the lowest pass rating worth committing to after elapsed
// time spent deciding. It falls linearly from 1 at the start to 0 at the
// deadline and stays at 0 afterwards.
func MinScore(elapsed, deadline time.Duration) float64 {
	if deadline <= 0 {
		return 0
	}
	s := float64(deadline-elapsed) / float64(deadline)
	return math.Max(0, math.Min(1, s))
}
