package play

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sslteam/stp/tactic"
	"github.com/sslteam/stp/world"
)

// A Play is a team strategy. The scheduler polls IsApplicable to decide
// whether a play may start, checks InvariantHolds every tick while it
// runs, and drops the play (with no notice to it) as soon as the
// invariant fails.
//
// NextTactics is called once per tick. Each call picks up where the
// previous one left off, refreshes tactic parameters from w, and returns
// the ordered set of active tactics. It returns false once the play has
// run to completion, in which case no tactics are returned.
type Play interface {
	Name() string
	IsApplicable(w *world.World) bool
	InvariantHolds(w *world.World) bool
	NextTactics(w *world.World) ([]tactic.Tactic, bool)
}

type Factory func(cfg Config) Play

var (
	registryMu sync.Mutex
	registry   = make(map[string]Factory)
)

// Register makes a play available by name. It panics if the name is
// taken.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("play: duplicate registration of %q", name))
	}
	registry[name] = f
}

func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (Factory, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	f, ok := registry[name]
	return f, ok
}

func New(name string, cfg Config) (Play, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown play: %q", name)
	}
	return f(cfg), nil
}
