package planner

import (
	"fmt"
	"sort"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
)

// builders maps strategy names to constructors. Every call builds a
// fresh value; strategies hold per-drone state and are never shared.
var builders = map[string]func() drone.Strategy{
	"plow":      func() drone.Strategy { return NewPlow() },
	"decompose": func() drone.Strategy { return NewDecompose() },
	"sweep":     func() drone.Strategy { return NewSweep() },
	"direct":    func() drone.Strategy { return NewDirect() },
	"relay":     func() drone.Strategy { return NewRelay() },
}

// New builds the strategy registered under name.
func New(name string) (drone.Strategy, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return build(), nil
}

// Strategies lists the registered strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
