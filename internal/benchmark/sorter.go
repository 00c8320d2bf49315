package benchmark

import (
	"fmt"
	"slices"
	"sync"
)

// BuiltinAlgorithm is the name of the standard library sorter.
const BuiltinAlgorithm = "builtin"

// Sorter sorts a slice in place. The Runner times exactly one Sort call per
// repetition, so implementations must not defer work past their return.
type Sorter interface {
	Name() string
	Sort(values []int32)
}

// NamedSorter pairs an in-place sort function with its algorithm name.
type NamedSorter struct {
	Algo string
	Fn   func([]int32)
}

// Name returns the algorithm name.
func (f NamedSorter) Name() string { return f.Algo }

// Sort calls the wrapped function.
func (f NamedSorter) Sort(values []int32) { f.Fn(values) }

// registry maps algorithm names to sorters
var (
	registry      = make(map[string]Sorter)
	registryMutex sync.RWMutex
)

func init() {
	Register(BuiltinAlgorithm, NamedSorter{Algo: BuiltinAlgorithm, Fn: func(v []int32) { slices.Sort(v) }})
}

// Register makes a Sorter available under name.
// It panics if sorter is nil or name is already registered.
func Register(name string, sorter Sorter) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if sorter == nil {
		panic(fmt.Sprintf("benchmark: Register sorter is nil for %s", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("benchmark: Register called twice for %s", name))
	}

	registry[name] = sorter
}

// Lookup returns the Sorter registered under name.
func Lookup(name string) (Sorter, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	sorter, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return sorter, nil
}

// IsRegistered returns true if a Sorter is registered under name.
func IsRegistered(name string) bool {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	_, exists := registry[name]
	return exists
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
