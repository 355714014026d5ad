//go:build !piranha_debug

package accumulator

// debugCheckInvariants is a no-op outside piranha_debug builds; the full
// re-validation in debug_piranha_debug.go would otherwise pay an O(capacity)
// scan on every Insert/Merge.
func (t *Table) debugCheckInvariants() error { return nil }
