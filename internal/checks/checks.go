// Package checks holds the per-page audit checks. Each check is a named,
// stateless function producing one verdict; checks never depend on each
// other's results, so new ones register independently without touching
// existing ones.
package checks

import (
	"sync"

	"github.com/tmarchev/beacon/internal/model"
)

// Input carries everything a check may consult. Checks read, never mutate.
type Input struct {
	Content *model.PageContent
	Robots  model.RobotsPolicy
}

// CheckFunc evaluates one check against a page.
type CheckFunc func(in Input) model.Verdict

var (
	mu       sync.RWMutex
	registry = map[string]CheckFunc{}
	order    []string
)

// Register adds a named check. Registering an existing name overwrites the
// function but keeps its position in the run order.
func Register(name string, fn CheckFunc) {
	if name == "" || fn == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; !exists {
		order = append(order, name)
	}
	registry[name] = fn
}

// Names returns the registered check identifiers in registration order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// RunAll evaluates every registered check and returns verdicts in
// registration order, so reports are stable across runs.
func RunAll(in Input) []model.Verdict {
	mu.RLock()
	names := make([]string, len(order))
	copy(names, order)
	fns := make([]CheckFunc, 0, len(names))
	for _, n := range names {
		fns = append(fns, registry[n])
	}
	mu.RUnlock()

	verdicts := make([]model.Verdict, 0, len(fns))
	for i, fn := range fns {
		v := fn(in)
		v.Check = names[i]
		verdicts = append(verdicts, v)
	}
	return verdicts
}
