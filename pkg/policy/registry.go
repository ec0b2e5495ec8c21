package policy

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Registry maps policy names to policies. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry returns a registry holding the given policies.
// Duplicate names panic, since this is start-up configuration.
func NewRegistry(policies ...Policy) *Registry {
	r := &Registry{policies: make(map[string]Policy, len(policies))}
	for _, p := range policies {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// DefaultRegistry returns a registry with the built-in policies.
func DefaultRegistry() *Registry {
	return NewRegistry(EthicsApproval(), PlacementV1())
}

// Register adds a policy. Names must be unique and non-empty.
func (r *Registry) Register(p Policy) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPolicy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.policies[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePolicy, p.Name)
	}
	r.policies[p.Name] = p
	return nil
}

// Get returns the named policy.
func (r *Registry) Get(name string) (Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, name)
	}
	return p, nil
}

// Names returns registered policy names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile parses a policy document from disk and registers it.
func (r *Registry) LoadFile(path string) (Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return Policy{}, errors.Join(ErrReadPolicy, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return Policy{}, err
	}
	if err := r.Register(p); err != nil {
		return Policy{}, err
	}
	return p, nil
}
