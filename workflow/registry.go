package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/xraph/stepflow"
)

// Operation is a bound step callable. Operations with Arity 1 receive the
// previous step's result as last; Arity 0 operations receive nil.
type Operation[T Subject] struct {
	Arity int
	Fn    func(ctx context.Context, w T, last any) (any, error)
}

// StepRegistry is the ordered list of step names of one definition and the
// operation bound to each. Registering a name that already exists rebinds
// it in place. The registry is sealed by the first Call; any registration
// after that fails with stepflow.ErrRegistrySealed. It is safe for
// concurrent use.
type StepRegistry[T Subject] struct {
	mu     sync.RWMutex
	order  []string
	ops    map[string]Operation[T]
	sealed bool
}

// NewStepRegistry creates an empty step registry.
func NewStepRegistry[T Subject]() *StepRegistry[T] {
	return &StepRegistry[T]{ops: make(map[string]Operation[T])}
}

// Register appends name to the sequence, or rebinds it when already present.
func (s *StepRegistry[T]) Register(name string, op Operation[T]) error {
	if name == "" {
		return stepflow.ErrEmptyStepName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return fmt.Errorf("%w: cannot register %q", stepflow.ErrRegistrySealed, name)
	}
	if _, ok := s.ops[name]; !ok {
		s.order = append(s.order, name)
	}
	s.ops[name] = op
	return nil
}

// Replace discards the current sequence and makes name its only step.
func (s *StepRegistry[T]) Replace(name string, op Operation[T]) error {
	if name == "" {
		return stepflow.ErrEmptyStepName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return fmt.Errorf("%w: cannot replace with %q", stepflow.ErrRegistrySealed, name)
	}
	s.order = []string{name}
	s.ops = map[string]Operation[T]{name: op}
	return nil
}

// Steps returns a copy of the registered step names in order.
func (s *StepRegistry[T]) Steps() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Lookup returns the operation bound to name.
func (s *StepRegistry[T]) Lookup(name string) (Operation[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.ops[name]
	return op, ok
}

// Seal freezes the registry.
func (s *StepRegistry[T]) Seal() {
	s.mu.Lock()
	s.sealed = true
	s.mu.Unlock()
}

// Sealed reports whether Seal was called.
func (s *StepRegistry[T]) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// Described is implemented by every *Definition[T].
type Described interface {
	Name() string
	Steps() []string
}

// Descriptor is a point-in-time view of a registered workflow.
type Descriptor struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

// Registry is a catalog of workflow definitions keyed by name. Definitions
// of different subject types can share one registry. It is safe for
// concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Described
}

// NewRegistry creates an empty workflow registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Described)}
}

// Register adds d to the catalog.
func (r *Registry) Register(d Described) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[d.Name()]; ok {
		return fmt.Errorf("%w: %q", stepflow.ErrDuplicateWorkflow, d.Name())
	}
	r.defs[d.Name()] = d
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(d Described) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Described, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// Describe returns the current step sequence of the named workflow.
func (r *Registry) Describe(name string) (Descriptor, error) {
	d, ok := r.Get(name)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", stepflow.ErrWorkflowNotFound, name)
	}
	return Descriptor{Name: d.Name(), Steps: d.Steps()}, nil
}

// Names returns all registered workflow names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
