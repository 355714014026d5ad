// Package kernel multiplies term-pairs and deposits the product into a
// destination accumulator (spec §4.2). A general kernel treats coefficient
// and monomial operations as abstract; a packed kernel recognizes monomials
// that opt into the Packable trait and uses a vectorized-style add/hash
// path. Selecting the packed path never changes results, only throughput.
package kernel

import (
	"golang.org/x/sys/cpu"

	"github.com/piranha-go/piranha/piranha/internal/accumulator"
	"github.com/piranha-go/piranha/piranha/monomial"
	"github.com/piranha-go/piranha/piranha/term"
)

// Kernel multiplies two terms, optionally depositing the product into an
// accumulator directly.
type Kernel interface {
	// Combine computes the raw term-pair product (c_a*c_b, m_a+m_b)
	// without touching any accumulator, so callers that need the
	// monomial before deciding where to deposit it (e.g. hash-band
	// partitioning, spec §4.3) can do so.
	Combine(a, b term.Term) (term.Term, error)
	// Multiply computes the product, applies filter, and inserts into
	// dest unless the filter rejects it or the product was never
	// computed due to a coefficient error.
	Multiply(a, b term.Term, dest *accumulator.Table, filter term.Filter) error
}

// General is the fallback kernel: it only relies on the Coefficient and
// Monomial capability interfaces, so it works for any collaborator type.
type General struct{}

var _ Kernel = General{}

// Combine computes (c_a*c_b, m_a+m_b).
func (General) Combine(a, b term.Term) (term.Term, error) {
	mono := a.Mono.Add(b.Mono)
	coef, err := a.Coef.Multiply(b.Coef)
	if err != nil {
		return term.Term{}, err
	}
	return term.Term{Coef: coef, Mono: mono}, nil
}

// Multiply computes the product, applies filter, and inserts into dest
// unless the filter rejects it.
func (g General) Multiply(a, b term.Term, dest *accumulator.Table, filter term.Filter) error {
	out, err := g.Combine(a, b)
	if err != nil {
		return err
	}
	if filter != nil && !filter(out) {
		return nil
	}
	return dest.Insert(out)
}

// Packed is the specialized kernel for monomial.Packable-capable operands:
// it bypasses the abstract Monomial.Add dispatch for a direct packed-word
// add, matching the teacher's block-kernel practice of hoisting the
// innermost accumulate loop to the most concrete type available.
type Packed struct{}

var _ Kernel = Packed{}

// Combine is semantically identical to General.Combine but adds the
// monomials via their packed word representation directly when both
// operands support it, falling back to the general path otherwise.
func (Packed) Combine(a, b term.Term) (term.Term, error) {
	pa, okA := a.Mono.(monomial.Packable)
	pb, okB := b.Mono.(monomial.Packable)
	if !okA || !okB {
		return General{}.Combine(a, b)
	}
	va, _ := pa.PackedView()
	vb, _ := pb.PackedView()
	mono := va.Add(vb)

	coef, err := a.Coef.Multiply(b.Coef)
	if err != nil {
		return term.Term{}, err
	}
	return term.Term{Coef: coef, Mono: mono}, nil
}

// Multiply computes the product via Combine, applies filter, and inserts
// into dest unless the filter rejects it.
func (p Packed) Multiply(a, b term.Term, dest *accumulator.Table, filter term.Filter) error {
	out, err := p.Combine(a, b)
	if err != nil {
		return err
	}
	if filter != nil && !filter(out) {
		return nil
	}
	return dest.Insert(out)
}

// Select returns the packed kernel when both sample operands expose the
// Packable trait and the host has a vector-friendly instruction set,
// falling back to General otherwise. The selection is made once at
// construction time (spec §9), not per term-pair.
func Select(sampleA, sampleB term.Monomial) Kernel {
	if _, ok := sampleA.(monomial.Packable); !ok {
		return General{}
	}
	if _, ok := sampleB.(monomial.Packable); !ok {
		return General{}
	}
	if !hasVectorFriendlyISA() {
		return General{}
	}
	return Packed{}
}

// hasVectorFriendlyISA reports whether the host CPU exposes an instruction
// set wide enough to make the packed word-parallel add path worthwhile.
// Mirrors the teacher's runtime CPU-dispatch checks (hwy/dispatch_amd64.go)
// but only to gate a plain-Go fast path, not to select hand-written
// assembly (see DESIGN.md). Hosts exposing none of these fall back to
// General, where per-exponent dispatch through the Monomial interface is no
// worse than an unaided packed-word add.
func hasVectorFriendlyISA() bool {
	if cpu.X86.HasAVX2 || cpu.X86.HasSSE42 {
		return true
	}
	if cpu.ARM64.HasASIMD {
		return true
	}
	return false
}
