package stp

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/sslteam/stp/world"
)

// GateEnv is the environment play gates are evaluated in. A gate is a
// boolean expr expression over these fields, for example
//
//	OurFreeKick && BallX > 3
type GateEnv struct {
	BallX     float64
	BallY     float64
	BallSpeed float64
	Time      float64

	OurFreeKick bool
	Playing     bool
	Ready       bool

	Friendly int
	Enemy    int
}

func gateEnv(w *world.World) GateEnv {
	return GateEnv{
		BallX:       w.Ball.Position.X,
		BallY:       w.Ball.Position.Y,
		BallSpeed:   w.Ball.Velocity.Len(),
		Time:        w.Timestamp.Seconds(),
		OurFreeKick: w.GameState.IsOurFreeKick(),
		Playing:     w.GameState.IsPlaying(),
		Ready:       w.GameState.IsReady(),
		Friendly:    len(w.Friendly.Robots),
		Enemy:       len(w.Enemy.Robots),
	}
}

func compileGates(src map[string]string) (map[string]*vm.Program, error) {
	out := make(map[string]*vm.Program, len(src))
	for name, s := range src {
		prog, err := expr.Compile(s, expr.Env(GateEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("gate for %q: %w", name, err)
		}
		out[name] = prog
	}
	return out, nil
}

func runGate(prog *vm.Program, w *world.World) (bool, error) {
	res, err := vm.Run(prog, gateEnv(w))
	if err != nil {
		return false, err
	}
	ok, _ := res.(bool)
	return ok, nil
}
