package control

import (
	"fmt"
	"sort"
	"strings"

	"gridlearn/internal/district"
)

type builder func(env *district.District, seed int64) (Controller, error)

var builders = map[string]builder{
	"idle": func(env *district.District, _ int64) (Controller, error) {
		return NewIdleController(env), nil
	},
	"random": func(env *district.District, seed int64) (Controller, error) {
		return NewRandomController(env, seed), nil
	},
	"hour-schedule": func(env *district.District, _ int64) (Controller, error) {
		return NewHourScheduleController(env, DefaultHourSchedule())
	},
	"q-learning": func(env *district.District, seed int64) (Controller, error) {
		return NewEpsilonGreedyQController(env, seed)
	},
}

// Build constructs a named controller bound to the environment.
func Build(name string, env *district.District, seed int64) (Controller, error) {
	build, ok := builders[strings.TrimSpace(strings.ToLower(name))]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s (known: %s)", name, strings.Join(Names(), ", "))
	}
	return build(env, seed)
}

// Names lists the registered controller names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
