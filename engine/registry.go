package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Component pairs one weighted check with its execution policy.
type Component struct {
	Name   string
	Weight float64
	Check  contract.Check

	// Timeout bounds one execution of the check. Zero means the configured
	// per-check default applies.
	Timeout time.Duration

	// Requires lists component names that must complete with status ok
	// before this check runs. Unmet prerequisites skip the check.
	Requires []string

	// RequireMin raises the bar for prerequisites: each one must reach this
	// effective score, not just complete. Zero disables the minimum.
	RequireMin int
}

// Registry holds the component definitions for one benchmark in declaration
// order. Declaration order is also the report order.
type Registry struct {
	components []Component
	index      map[string]int
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add appends a component definition. Names must be unique within a registry.
func (r *Registry) Add(c Component) error {
	if strings.TrimSpace(c.Name) == "" {
		return contract.ConfigurationErrorf("component name must not be empty")
	}
	if _, ok := r.index[c.Name]; ok {
		return contract.ConfigurationErrorf("%w: %q", contract.ErrDuplicateComponent, c.Name)
	}
	r.index[c.Name] = len(r.components)
	r.components = append(r.components, c)
	return nil
}

// Components returns the registered components in declaration order.
func (r *Registry) Components() []Component {
	return r.components
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}

// WeightSum returns the sum of all component weights.
func (r *Registry) WeightSum() float64 {
	sum := 0.0
	for _, c := range r.components {
		sum += c.Weight
	}
	return sum
}

// Validate checks the registry as a whole before any check runs: at least
// one component, positive weights that sum to 1.0 within tolerance, a check
// behind every component and a resolvable prerequisite graph.
func (r *Registry) Validate() error {
	if r.Len() == 0 {
		return contract.NewConfigurationError(contract.ErrEmptyRegistry)
	}
	for _, c := range r.components {
		if c.Check == nil {
			return contract.ConfigurationErrorf("component %q has no check", c.Name)
		}
		if c.Weight <= 0 {
			return contract.ConfigurationErrorf("component %q weight must be positive (received %v)", c.Name, c.Weight)
		}
		if c.RequireMin < 0 || c.RequireMin > 100 {
			return contract.ConfigurationErrorf("component %q require-min must be between 0 and 100 (received %d)", c.Name, c.RequireMin)
		}
	}
	if sum := r.WeightSum(); math.Abs(sum-1.0) > schema.WeightTolerance {
		return contract.ConfigurationErrorf("%w (got %.6f)", contract.ErrWeightSum, sum)
	}
	if _, err := r.executionOrder(); err != nil {
		return err
	}
	return nil
}

// executionOrder returns component indexes in a prerequisite-respecting
// order. Ready components are emitted lowest declaration index first so
// runs stay deterministic.
func (r *Registry) executionOrder() ([]int, error) {
	n := r.Len()
	pending := make([]int, n)
	dependents := make([][]int, n)
	for i, c := range r.components {
		for _, req := range c.Requires {
			j, ok := r.index[req]
			if !ok {
				return nil, contract.ConfigurationErrorf("%w: component %q requires %q", contract.ErrUnknownPrerequisite, c.Name, req)
			}
			if j == i {
				return nil, contract.ConfigurationErrorf("%w: component %q requires itself", contract.ErrPrerequisiteCycle, c.Name)
			}
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	order := make([]int, 0, n)
	for len(order) < n {
		next := -1
		for i := range n {
			if pending[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, contract.ConfigurationErrorf("%w among %s", contract.ErrPrerequisiteCycle, cycleMembers(r.components, pending))
		}
		pending[next] = -1 // emitted
		order = append(order, next)
		for _, dep := range dependents[next] {
			pending[dep]--
		}
	}
	return order, nil
}

// cycleMembers names the components still waiting on each other when
// ordering stalls.
func cycleMembers(components []Component, pending []int) string {
	var names []string
	for i, p := range pending {
		if p > 0 {
			names = append(names, fmt.Sprintf("%q", components[i].Name))
		}
	}
	return strings.Join(names, ", ")
}
