//go:build piranha_debug

package accumulator

import (
	"fmt"

	"github.com/piranha-go/piranha/piranha/internal/perrors"
)

// debugCheckInvariants re-validates the table's invariants after a mutation:
// every live entry has a non-zero coefficient, every live entry's monomial
// arity matches the table's, and the load factor has not exceeded its bound.
// Only compiled into `piranha_debug`-tagged builds (spec §7); the default
// build links the zero-cost stub in debug_release.go instead.
func (t *Table) debugCheckInvariants() error {
	if lf := t.LoadFactor(); lf > t.maxLoad+1e-9 {
		return perrors.Wrap(perrors.InternalInvariantViolated,
			fmt.Errorf("load factor %f exceeds bound %f", lf, t.maxLoad))
	}
	for _, s := range t.slots {
		if !s.used || s.tombstone {
			continue
		}
		if s.t.Coef.IsZero() {
			return perrors.Wrap(perrors.InternalInvariantViolated,
				fmt.Errorf("live slot holds a zero coefficient for monomial %v", s.t.Mono))
		}
		if s.t.Mono.Arity() != t.arity {
			return perrors.Wrap(perrors.InternalInvariantViolated,
				fmt.Errorf("live slot monomial arity %d does not match table arity %d", s.t.Mono.Arity(), t.arity))
		}
	}
	return nil
}
