package world

type PlayState byte

const (
	Halt PlayState = iota
	Stop
	Setup
	Ready
	Playing
)

func (s PlayState) String() string {
	switch s {
	case Halt:
		return "halt"
	case Stop:
		return "stop"
	case Setup:
		return "setup"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	}
	return "unknown"
}

type Restart byte

const (
	NoRestart Restart = iota
	Kickoff
	DirectFree
	IndirectFree
	Penalty
	BallPlacement
)

func (r Restart) String() string {
	switch r {
	case NoRestart:
		return "none"
	case Kickoff:
		return "kickoff"
	case DirectFree:
		return "direct_free"
	case IndirectFree:
		return "indirect_free"
	case Penalty:
		return "penalty"
	case BallPlacement:
		return "ball_placement"
	}
	return "unknown"
}

// GameState is the referee's view of the game: what phase play is in,
// which restart (if any) is pending, and whether it is ours.
type GameState struct {
	State   PlayState
	Restart Restart
	Ours    bool
}

func (g GameState) IsPlaying() bool { return g.State == Playing }
func (g GameState) IsReady() bool { return g.State == Ready }

func (g GameState) IsOurFreeKick() bool {
	return g.Ours && (g.Restart == DirectFree || g.Restart == IndirectFree)
}

func (g GameState) String() string {
	owner := "theirs"
	if g.Ours {
		owner = "ours"
	}
	if g.Restart == NoRestart {
		return g.State.String()
	}
	return g.State.String() + "/" + g.Restart.String() + "/" + owner
}
